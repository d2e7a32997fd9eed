// Package snapshot draws the composition tree to a PNG image.
package snapshot

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/abhisek/pitchperfect/internal/notation"
	"github.com/abhisek/pitchperfect/internal/render"
	"github.com/abhisek/pitchperfect/internal/scene"
	"github.com/abhisek/pitchperfect/internal/ui/theme"
)

const (
	fontSize      = 32
	staffStroke   = 3
	noteHeadRX    = 38
	noteHeadRY    = 27
	ledgerHalfLen = 60
)

// Renderer records tree updates and paints them on demand.
type Renderer struct {
	*render.Store
	width  int
	height int
	face   font.Face
}

// New returns a renderer producing width x height images.
func New(width, height int) (*Renderer, error) {
	face, err := loadFontFace(fontSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{Store: render.NewStore(), width: width, height: height, face: face}, nil
}

func loadFontFace(size float64) (font.Face, error) {
	parsedFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

// Image paints every visible surface.
func (r *Renderer) Image() image.Image {
	return r.paint().Image()
}

func (r *Renderer) paint() *gg.Context {
	dc := gg.NewContext(r.width, r.height)
	dc.SetFontFace(r.face)
	dc.SetHexColor(theme.HexBgDark)
	dc.Clear()

	for _, s := range r.Visible() {
		b := s.Box
		switch s.Kind {
		case scene.KindRectangle:
			if s.Content.Color == "" {
				continue
			}
			dc.SetHexColor(s.Content.Color)
			dc.DrawRectangle(float64(b.XStart), float64(b.YStart), float64(b.Width()), float64(b.Height()))
			dc.Fill()
		case scene.KindText:
			centredText(dc, b, s.Content.Text, theme.HexText)
		case scene.KindButton:
			dc.SetHexColor(theme.HexBgCard)
			dc.DrawRoundedRectangle(float64(b.XStart), float64(b.YStart), float64(b.Width()), float64(b.Height()), 12)
			dc.Fill()
			dc.SetHexColor(theme.HexBorder)
			dc.SetLineWidth(2)
			dc.DrawRoundedRectangle(float64(b.XStart), float64(b.YStart), float64(b.Width()), float64(b.Height()), 12)
			dc.Stroke()
			centredText(dc, b, s.Content.Text, theme.HexText)
		case scene.KindImage:
			drawAsset(dc, b, s.Content.Asset)
		}
	}
	return dc
}

// EncodePNG writes the current frame as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	if err := r.paint().EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the current frame to path.
func (r *Renderer) SavePNG(path string) error {
	if err := r.paint().SavePNG(path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

func centredText(dc *gg.Context, b scene.Box, text, hex string) {
	if text == "" {
		return
	}
	x, y := render.Centre(b)
	dc.SetHexColor(hex)
	dc.DrawStringAnchored(text, float64(x), float64(y), 0.5, 0.5)
}

func drawAsset(dc *gg.Context, b scene.Box, asset string) {
	x0, x1 := float64(b.XStart), float64(b.XEnd)
	cx, cy := render.Centre(b)
	x, y := float64(cx), float64(cy)

	switch asset {
	case notation.AssetTrebleStaff, notation.AssetBassStaff:
		dc.SetHexColor(theme.HexTextDim)
		dc.SetLineWidth(staffStroke)
		for _, ly := range notation.StaffLines {
			yy := float64(b.YStart + ly)
			dc.DrawLine(x0, yy, x1, yy)
		}
		dc.Stroke()
		label := "treble"
		if asset == notation.AssetBassStaff {
			label = "bass"
		}
		dc.DrawStringAnchored(label, x0, float64(b.YStart+notation.StaffLines[0]-notation.StaffSpacing/2), 0, 0.5)
	case notation.AssetLeftHandFilled, notation.AssetRightHandFilled,
		notation.AssetLeftHandBlank, notation.AssetRightHandBlank:
		drawHand(dc, b, asset)
	case notation.AssetCheck:
		dc.SetHexColor(theme.HexSuccess)
		dc.SetLineWidth(14)
		dc.MoveTo(x-50, y)
		dc.LineTo(x-15, y+40)
		dc.LineTo(x+55, y-45)
		dc.Stroke()
	case notation.AssetCross:
		dc.SetHexColor(theme.HexError)
		dc.SetLineWidth(14)
		dc.DrawLine(x-45, y-45, x+45, y+45)
		dc.DrawLine(x-45, y+45, x+45, y-45)
		dc.Stroke()
	case notation.AssetHomePage:
		dc.SetHexColor(theme.HexPrimary)
		dc.DrawStringAnchored("Pitch Perfect", x, float64(b.YStart+150), 0.5, 0.5)
	case notation.OnLine.Asset(), notation.BetweenLines.Asset(),
		notation.SharpOnLine.Asset(), notation.SharpBetweenLines.Asset():
		drawNote(dc, x, y, asset)
	default:
		dc.SetHexColor(theme.HexTextDim)
		dc.DrawRectangle(x0, float64(b.YStart), float64(b.Width()), float64(b.Height()))
		dc.Stroke()
		dc.DrawStringAnchored(asset, x, y, 0.5, 0.5)
	}
}

func drawHand(dc *gg.Context, b scene.Box, asset string) {
	filled := asset == notation.AssetLeftHandFilled || asset == notation.AssetRightHandFilled
	label := "L"
	if asset == notation.AssetRightHandFilled || asset == notation.AssetRightHandBlank {
		label = "R"
	}
	x, _ := render.Centre(b)
	y := float64(b.YStart) + 60
	dc.DrawCircle(float64(x), y, 50)
	if filled {
		dc.SetHexColor(theme.HexAccent)
		dc.FillPreserve()
	}
	dc.SetHexColor(theme.HexText)
	dc.SetLineWidth(4)
	dc.Stroke()
	dc.DrawStringAnchored(label, float64(x), y, 0.5, 0.5)
}

func drawNote(dc *gg.Context, x, y float64, asset string) {
	onLine := asset == notation.OnLine.Asset() || asset == notation.SharpOnLine.Asset()
	top, bottom := float64(notation.StaffLines[0]), float64(notation.StaffLines[4])
	if onLine && (y < top || y > bottom) {
		dc.SetHexColor(theme.HexTextDim)
		dc.SetLineWidth(staffStroke)
		dc.DrawLine(x-ledgerHalfLen, y, x+ledgerHalfLen, y)
		dc.Stroke()
	}
	dc.SetHexColor(theme.HexText)
	dc.DrawEllipse(x, y, noteHeadRX, noteHeadRY)
	dc.Fill()
	if asset == notation.SharpOnLine.Asset() || asset == notation.SharpBetweenLines.Asset() {
		dc.DrawStringAnchored("#", x-noteHeadRX-30, y, 0.5, 0.5)
	}
}
