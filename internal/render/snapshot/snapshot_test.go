package snapshot

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pitchperfect/internal/catalog"
	"github.com/abhisek/pitchperfect/internal/notation"
	"github.com/abhisek/pitchperfect/internal/scene"
	"github.com/abhisek/pitchperfect/internal/ui/theme"
)

func rgb(c color.Color) [3]uint32 {
	r, g, b, _ := c.RGBA()
	return [3]uint32{r >> 8, g >> 8, b >> 8}
}

func hex(t *testing.T, s string) [3]uint32 {
	t.Helper()
	var r, g, b uint32
	_, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	require.NoError(t, err)
	return [3]uint32{r, g, b}
}

func TestImageDrawsVisibleRectangles(t *testing.T) {
	r, err := New(200, 100)
	require.NoError(t, err)
	tree := scene.New(r)
	shown := tree.Create(scene.KindRectangle)
	tree.Move(shown, scene.Box{XStart: 0, XEnd: 100, YStart: 0, YEnd: 100})
	tree.SetContent(shown, scene.Content{Color: "#FF0000"})
	hidden := tree.Create(scene.KindRectangle)
	tree.Move(hidden, scene.Box{XStart: 100, XEnd: 200, YStart: 0, YEnd: 100})
	tree.SetContent(hidden, scene.Content{Color: "#00FF00"})
	tree.SetHidden(shown, false)

	img := r.Image()
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, [3]uint32{255, 0, 0}, rgb(img.At(50, 50)))
	assert.Equal(t, hex(t, theme.HexBgDark), rgb(img.At(150, 50)))
}

func TestNoteHeadPainted(t *testing.T) {
	r, err := New(1350, 750)
	require.NoError(t, err)
	tree := scene.New(r)
	note := tree.Create(scene.KindImage)
	box, glyph, ok := notation.Place(67, catalog.Treble)
	require.True(t, ok)
	tree.SetAbsolute(note, box)
	tree.SetAsset(note, glyph.Asset())
	tree.SetHidden(note, false)

	img := r.Image()
	assert.Equal(t, hex(t, theme.HexText), rgb(img.At(680, 465)))
	assert.Equal(t, hex(t, theme.HexBgDark), rgb(img.At(100, 465)))
}

func TestEncodeAndSavePNG(t *testing.T) {
	r, err := New(64, 32)
	require.NoError(t, err)
	tree := scene.New(r)
	label := tree.Create(scene.KindText)
	tree.Move(label, scene.Box{XEnd: 64, YEnd: 32})
	tree.SetText(label, "hi")
	tree.SetHidden(label, false)

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, r.SavePNG(path))
	assert.FileExists(t, path)
}
