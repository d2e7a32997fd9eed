package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op string
	id ID
}

// recorder logs every renderer call in order.
type recorder struct {
	calls []call
	order []ID
}

func (r *recorder) Create(id ID, _ Kind) { r.calls = append(r.calls, call{"create", id}) }
func (r *recorder) ApplyBox(id ID, _ Box) { r.calls = append(r.calls, call{"box", id}) }
func (r *recorder) ApplyVisibility(id ID, _ bool) { r.calls = append(r.calls, call{"vis", id}) }
func (r *recorder) ApplyContent(id ID, _ Content) { r.calls = append(r.calls, call{"content", id}) }
func (r *recorder) ApplyOrder(ids []ID) { r.order = ids }

func (r *recorder) reset() { r.calls = nil }

func (r *recorder) boxCalls() []ID {
	var ids []ID
	for _, c := range r.calls {
		if c.op == "box" {
			ids = append(ids, c.id)
		}
	}
	return ids
}

func TestCreateAssignsSequentialHiddenNodes(t *testing.T) {
	tr := New(nil)
	a := tr.Create(KindRectangle)
	b := tr.Create(KindButton)

	if a != 0 || b != 1 {
		t.Fatalf("ids = %d, %d, want 0, 1", a, b)
	}
	if !tr.Hidden(a) {
		t.Error("new node should start hidden")
	}
	if tr.Box(a) != (Box{}) {
		t.Errorf("new node box = %+v, want zero", tr.Box(a))
	}
	if tr.Kind(b) != KindButton {
		t.Errorf("kind = %v, want button", tr.Kind(b))
	}
}

func TestAttachTranslatesAndRanks(t *testing.T) {
	tr := New(nil)
	root := tr.Create(KindRectangle)
	tr.Move(root, Box{XStart: 100, XEnd: 500, YStart: 50, YEnd: 450})
	tr.SetRank(root, 3)

	child := tr.Create(KindImage)
	tr.Attach(root, child, Box{XStart: 10, XEnd: 20, YStart: 5, YEnd: 15})

	assert.Equal(t, Box{XStart: 110, XEnd: 120, YStart: 55, YEnd: 65}, tr.Box(child))
	assert.Equal(t, 4, tr.Rank(child))
	assert.Equal(t, root, tr.Parent(child))
	assert.Equal(t, 1, tr.NumChildren(root))
}

func TestAttachGrowsCapacity(t *testing.T) {
	tr := New(nil)
	root := tr.Create(KindRectangle)

	for i := 0; i < 6; i++ {
		tr.Attach(root, tr.Create(KindText), Box{})
	}
	if got := len(tr.Children(root)); got != initialCapacity {
		t.Fatalf("capacity after 6 children = %d, want %d", got, initialCapacity)
	}

	tr.Attach(root, tr.Create(KindText), Box{})
	slots := tr.Children(root)
	if len(slots) != 2*initialCapacity {
		t.Fatalf("capacity after 7 children = %d, want %d", len(slots), 2*initialCapacity)
	}
	for i := 7; i < len(slots); i++ {
		if slots[i] != NoID {
			t.Errorf("slot %d = %d, want NoID", i, slots[i])
		}
	}

	for i := 0; i < 20; i++ {
		tr.Attach(root, tr.Create(KindText), Box{})
	}
	assert.Equal(t, 27, tr.NumChildren(root))
}

func TestAttachMisusePanics(t *testing.T) {
	tr := New(nil)
	a := tr.Create(KindRectangle)
	b := tr.Create(KindRectangle)
	tr.Attach(a, b, Box{})

	assert.Panics(t, func() { tr.Attach(a, b, Box{}) }, "double attach")
	assert.Panics(t, func() { tr.Attach(b, a, Box{}) }, "cycle")
	assert.Panics(t, func() { tr.Attach(a, a, Box{}) }, "self")
	assert.Panics(t, func() { tr.Box(ID(42)) }, "unknown id")
	assert.Panics(t, func() { tr.SetHidden(NoID, true) }, "NoID")
}

func TestMovePropagatesDeltaToEveryDepth(t *testing.T) {
	tr := New(nil)
	root := tr.Create(KindRectangle)
	mid := tr.Create(KindRectangle)
	leaf := tr.Create(KindImage)
	tr.Attach(root, mid, Box{XStart: 10, XEnd: 110, YStart: 10, YEnd: 110})
	tr.Attach(mid, leaf, Box{XStart: 5, XEnd: 15, YStart: 5, YEnd: 15})

	tr.Move(root, Box{XStart: 50, XEnd: 150, YStart: -20, YEnd: 80})

	assert.Equal(t, Box{XStart: 60, XEnd: 160, YStart: -10, YEnd: 90}, tr.Box(mid))
	assert.Equal(t, Box{XStart: 65, XEnd: 75, YStart: -5, YEnd: 5}, tr.Box(leaf))
}

func TestMoveAppliesOwnHookLast(t *testing.T) {
	rec := &recorder{}
	tr := New(rec)
	root := tr.Create(KindRectangle)
	a := tr.Create(KindText)
	b := tr.Create(KindText)
	tr.Attach(root, a, Box{})
	tr.Attach(root, b, Box{})
	rec.reset()

	tr.Move(root, Box{XStart: 1, YStart: 1})

	assert.Equal(t, []ID{a, b, root}, rec.boxCalls())
}

func TestMoveZeroDeltaLeavesChildren(t *testing.T) {
	rec := &recorder{}
	tr := New(rec)
	root := tr.Create(KindRectangle)
	child := tr.Create(KindText)
	tr.Attach(root, child, Box{XStart: 1, XEnd: 2})
	rec.reset()

	tr.Move(root, Box{XEnd: 900, YEnd: 900})

	assert.Equal(t, []ID{root}, rec.boxCalls())
	assert.Equal(t, Box{XStart: 1, XEnd: 2}, tr.Box(child))
}

func TestSetAbsoluteDoesNotPropagate(t *testing.T) {
	tr := New(nil)
	root := tr.Create(KindRectangle)
	child := tr.Create(KindText)
	tr.Attach(root, child, Box{XStart: 10, XEnd: 20})

	tr.SetAbsolute(root, Box{XStart: 500, XEnd: 600})

	assert.Equal(t, Box{XStart: 10, XEnd: 20}, tr.Box(child))
}

func TestHideCascadesBottomUp(t *testing.T) {
	rec := &recorder{}
	tr := New(rec)
	root := tr.Create(KindRectangle)
	mid := tr.Create(KindRectangle)
	leaf := tr.Create(KindImage)
	tr.Attach(root, mid, Box{})
	tr.Attach(mid, leaf, Box{})
	for _, id := range []ID{root, mid, leaf} {
		tr.SetHidden(id, false)
	}
	rec.reset()

	if !tr.SetHidden(root, true) {
		t.Fatal("root should end hidden")
	}
	for _, id := range []ID{root, mid, leaf} {
		if !tr.Hidden(id) {
			t.Errorf("node %d still visible", id)
		}
	}

	var visOrder []ID
	for _, c := range rec.calls {
		if c.op == "vis" {
			visOrder = append(visOrder, c.id)
		}
	}
	assert.Equal(t, []ID{leaf, mid, root}, visOrder)
}

func TestHideIsIdempotent(t *testing.T) {
	rec := &recorder{}
	tr := New(rec)
	root := tr.Create(KindRectangle)
	tr.SetHidden(root, false)
	tr.SetHidden(root, true)
	rec.reset()

	tr.SetHidden(root, true)
	assert.Empty(t, rec.calls)
}

func TestShowIsLocal(t *testing.T) {
	tr := New(nil)
	root := tr.Create(KindRectangle)
	child := tr.Create(KindText)
	tr.Attach(root, child, Box{})

	tr.SetHidden(root, false)
	assert.False(t, tr.Hidden(root))
	assert.True(t, tr.Hidden(child), "showing a parent must not show children")

	tr.SetHidden(child, false)
	tr.SetHidden(root, false)
	assert.False(t, tr.Hidden(child))
}

func TestSetRankShiftsDescendants(t *testing.T) {
	tr := New(nil)
	root := tr.Create(KindRectangle)
	mid := tr.Create(KindRectangle)
	leaf := tr.Create(KindText)
	tr.Attach(root, mid, Box{})
	tr.Attach(mid, leaf, Box{})
	require.Equal(t, 2, tr.Rank(leaf))

	tr.SetRank(root, 10)

	assert.Equal(t, 11, tr.Rank(mid))
	assert.Equal(t, 12, tr.Rank(leaf))
}

func TestSortViewOrder(t *testing.T) {
	rec := &recorder{}
	tr := New(rec)
	top := tr.Create(KindRectangle)
	tr.SetRank(top, 5)
	bg := tr.Create(KindRectangle)
	child := tr.Create(KindText)
	tr.Attach(bg, child, Box{})

	got := tr.SortViewOrder()

	assert.Equal(t, []ID{bg, child, top}, got)
	assert.Equal(t, got, rec.order)
}

func TestContentUpdates(t *testing.T) {
	tr := New(nil)
	id := tr.Create(KindButton)
	tr.SetContent(id, Content{Text: "Start", Color: "#fff"})
	tr.SetText(id, "Go")

	assert.Equal(t, Content{Text: "Go", Color: "#fff"}, tr.Content(id))
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindText, KindImage, KindRectangle, KindButton} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("slider")
	assert.Error(t, err)
}
