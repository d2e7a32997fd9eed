package term

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pitchperfect/internal/catalog"
	"github.com/abhisek/pitchperfect/internal/notation"
	"github.com/abhisek/pitchperfect/internal/scene"
)

// 1350x750 onto 135x75 cells is one cell per ten units.
const cols, rows = 135, 75

func newTree() (*scene.Tree, *Renderer) {
	r := New(1350, 750)
	return scene.New(r), r
}

func lines(r *Renderer) []string {
	return strings.Split(r.Text(cols, rows), "\n")
}

func TestTextCentredInBox(t *testing.T) {
	tree, r := newTree()
	root := tree.Create(scene.KindRectangle)
	tree.Move(root, scene.Box{XEnd: 1350, YEnd: 750})
	label := tree.Create(scene.KindText)
	tree.Attach(root, label, scene.Box{XStart: 100, XEnd: 300, YStart: 100, YEnd: 200})
	tree.SetText(label, "hello")
	tree.SortViewOrder()

	assert.Equal(t, strings.Repeat("\n", rows-1), r.Text(cols, rows), "hidden nodes draw nothing")

	tree.SetHidden(root, false)
	tree.SetHidden(label, false)
	got := lines(r)
	require.Len(t, got, rows)
	assert.Equal(t, strings.Repeat(" ", 17)+"hello", got[14])
}

func TestHiddenChildNotDrawn(t *testing.T) {
	tree, r := newTree()
	root := tree.Create(scene.KindRectangle)
	label := tree.Create(scene.KindText)
	tree.Attach(root, label, scene.Box{XEnd: 500, YEnd: 100})
	tree.SetText(label, "secret")
	tree.SetHidden(root, false)

	assert.NotContains(t, r.Text(cols, rows), "secret")
	assert.False(t, r.IsVisible(label))
	tree.SetHidden(label, false)
	assert.Contains(t, r.Text(cols, rows), "secret")
	assert.True(t, r.IsVisible(label))
}

func TestLaterRankDrawsOnTop(t *testing.T) {
	tree, r := newTree()
	root := tree.Create(scene.KindRectangle)
	a := tree.Create(scene.KindText)
	b := tree.Create(scene.KindText)
	box := scene.Box{XEnd: 200, YEnd: 100}
	tree.Attach(root, a, box)
	tree.Attach(root, b, box)
	tree.SetText(a, "under")
	tree.SetText(b, "over!")
	tree.SetRank(a, 5)
	tree.SortViewOrder()
	for _, id := range []scene.ID{root, a, b} {
		tree.SetHidden(id, false)
	}

	assert.Contains(t, r.Text(cols, rows), "under")
	assert.NotContains(t, r.Text(cols, rows), "over!")
}

func TestButtonsSortedAndVisibleOnly(t *testing.T) {
	tree, r := newTree()
	root := tree.Create(scene.KindRectangle)
	var ids []scene.ID
	for _, b := range []scene.Box{
		{XStart: 700, XEnd: 900, YStart: 400, YEnd: 500},
		{XStart: 100, XEnd: 300, YStart: 400, YEnd: 500},
		{XStart: 100, XEnd: 300, YStart: 100, YEnd: 200},
	} {
		id := tree.Create(scene.KindButton)
		tree.Attach(root, id, b)
		tree.SetText(id, "go")
		ids = append(ids, id)
	}
	tree.SetHidden(root, false)
	assert.Empty(t, r.Buttons())

	for _, id := range ids {
		tree.SetHidden(id, false)
	}
	tree.SetHidden(ids[0], true)

	got := r.Buttons()
	require.Len(t, got, 2)
	assert.Equal(t, ids[2], got[0].ID)
	assert.Equal(t, ids[1], got[1].ID)
	assert.Equal(t, "go", got[0].Label)
}

func TestStaffAndLedgerNote(t *testing.T) {
	tree, r := newTree()
	root := tree.Create(scene.KindRectangle)
	tree.Move(root, scene.Box{XEnd: 1350, YEnd: 750})
	staff := tree.Create(scene.KindImage)
	tree.Attach(root, staff, scene.Box{XEnd: 1350, YEnd: 800})
	tree.SetAsset(staff, notation.AssetTrebleStaff)
	note := tree.Create(scene.KindImage)
	tree.Attach(root, note, scene.Box{})
	box, glyph, ok := notation.Place(60, catalog.Treble)
	require.True(t, ok)
	tree.SetAbsolute(note, box)
	tree.SetAsset(note, glyph.Asset())
	tree.SortViewOrder()
	for _, id := range []scene.ID{root, staff, note} {
		tree.SetHidden(id, false)
	}

	got := lines(r)
	for _, row := range []int{27, 33, 40, 46, 52} {
		assert.Equal(t, strings.Repeat("─", cols), got[row], "staff line at row %d", row)
	}
	assert.Equal(t, "treble", got[26])
	assert.Equal(t, strings.Repeat(" ", 66)+"──●──", got[59])
}

func TestSharpNoteBetweenLines(t *testing.T) {
	tree, r := newTree()
	note := tree.Create(scene.KindImage)
	box, glyph, ok := notation.Place(66, catalog.Treble)
	require.True(t, ok)
	tree.SetAbsolute(note, box)
	tree.SetAsset(note, glyph.Asset())
	tree.SetHidden(note, false)

	got := lines(r)
	// F#4 sits in the space between G4 and E4.
	assert.Equal(t, strings.Repeat(" ", 67)+"♯●", got[49])
}

func TestRenderStylesFocusedButton(t *testing.T) {
	tree, r := newTree()
	id := tree.Create(scene.KindButton)
	tree.Move(id, scene.Box{XStart: 100, XEnd: 400, YStart: 100, YEnd: 200})
	tree.SetText(id, "Start")
	tree.SetHidden(id, false)

	plain := r.Render(cols, rows, scene.NoID)
	focused := r.Render(cols, rows, id)
	assert.Contains(t, plain, "Start")
	assert.NotEqual(t, plain, focused)
	assert.Empty(t, r.Render(0, rows, id))
}
