// Package term rasterizes the composition tree onto a grid of terminal
// cells.
package term

import (
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pitchperfect/internal/notation"
	"github.com/abhisek/pitchperfect/internal/render"
	"github.com/abhisek/pitchperfect/internal/scene"
	"github.com/abhisek/pitchperfect/internal/ui/theme"
)

// Renderer draws the surfaces recorded in its store.
type Renderer struct {
	*render.Store
	width  int
	height int
}

// New returns a renderer for a screen space of width x height units.
func New(width, height int) *Renderer {
	return &Renderer{Store: render.NewStore(), width: width, height: height}
}

// Button is a visible, activatable surface.
type Button struct {
	ID    scene.ID
	Label string
	Box   scene.Box
}

// Buttons lists the visible buttons top to bottom, left to right.
func (r *Renderer) Buttons() []Button {
	var out []Button
	for _, s := range r.Visible() {
		if s.Kind == scene.KindButton {
			out = append(out, Button{ID: s.ID, Label: s.Content.Text, Box: s.Box})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Box.YStart != out[j].Box.YStart {
			return out[i].Box.YStart < out[j].Box.YStart
		}
		return out[i].Box.XStart < out[j].Box.XStart
	})
	return out
}

// Render draws every visible surface into cols x rows styled cells. The
// focused button is highlighted.
func (r *Renderer) Render(cols, rows int, focused scene.ID) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	return r.raster(cols, rows, focused).String()
}

// Text is Render without styling.
func (r *Renderer) Text(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	return r.raster(cols, rows, scene.NoID).Plain()
}

func (r *Renderer) raster(cols, rows int, focused scene.ID) *canvas {
	c := newCanvas(cols, rows, r.width, r.height)
	for _, s := range r.Visible() {
		switch s.Kind {
		case scene.KindRectangle:
			c.fill(s.Box, s.Content.Color)
		case scene.KindText:
			c.text(s.Box, s.Content.Text, cellStyle{fg: theme.HexText, bold: true})
		case scene.KindButton:
			st := cellStyle{fg: theme.HexText, bg: theme.HexBgCard}
			if s.ID == focused {
				st = cellStyle{fg: theme.HexText, bg: theme.HexPrimary, bold: true}
			}
			c.fill(s.Box, st.bg)
			c.text(s.Box, s.Content.Text, st)
		case scene.KindImage:
			c.image(s.Box, s.Content.Asset)
		}
	}
	return c
}

type cellStyle struct {
	fg   string
	bg   string
	bold bool
}

type cell struct {
	ch rune
	cellStyle
}

type canvas struct {
	cols, rows int
	sx, sy     float64
	cells      [][]cell
}

func newCanvas(cols, rows, width, height int) *canvas {
	c := &canvas{
		cols:  cols,
		rows:  rows,
		sx:    float64(cols) / float64(width),
		sy:    float64(rows) / float64(height),
		cells: make([][]cell, rows),
	}
	for y := range c.cells {
		c.cells[y] = make([]cell, cols)
		for x := range c.cells[y] {
			c.cells[y][x].ch = ' '
		}
	}
	return c
}

func (c *canvas) col(x int) int { return int(float64(x)*c.sx + 0.5) }
func (c *canvas) row(y int) int { return int(float64(y) * c.sy) }

// cellBox maps a box to [x0, x1) x [y0, y1) cells, at least one cell in
// each direction.
func (c *canvas) cellBox(b scene.Box) (x0, x1, y0, y1 int) {
	x0, x1 = c.col(b.XStart), c.col(b.XEnd)
	y0, y1 = c.row(b.YStart), c.row(b.YEnd)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, x1, y0, y1
}

func (c *canvas) in(x, y int) bool { return x >= 0 && y >= 0 && x < c.cols && y < c.rows }

// put writes a rune, keeping the background underneath when st has none.
func (c *canvas) put(x, y int, ch rune, st cellStyle) {
	if !c.in(x, y) {
		return
	}
	cl := &c.cells[y][x]
	if st.bg == "" {
		st.bg = cl.bg
	}
	cl.ch = ch
	cl.cellStyle = st
}

func (c *canvas) fill(b scene.Box, color string) {
	x0, x1, y0, y1 := c.cellBox(b)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if c.in(x, y) {
				c.cells[y][x] = cell{ch: ' ', cellStyle: cellStyle{bg: color}}
			}
		}
	}
}

func (c *canvas) write(x, y int, s string, st cellStyle) {
	for _, ch := range s {
		c.put(x, y, ch, st)
		x++
	}
}

// text centres s in b on the box's middle row.
func (c *canvas) text(b scene.Box, s string, st cellStyle) {
	if s == "" {
		return
	}
	x0, x1, y0, y1 := c.cellBox(b)
	n := len([]rune(s))
	x := x0 + (x1-x0-n)/2
	if x < x0 {
		x = x0
	}
	c.write(x, (y0+y1-1)/2, s, st)
}

func (c *canvas) hline(x0, x1, y int, st cellStyle) {
	for x := x0; x < x1; x++ {
		c.put(x, y, '─', st)
	}
}

func (c *canvas) image(b scene.Box, asset string) {
	line := cellStyle{fg: theme.HexTextDim}
	switch asset {
	case notation.AssetTrebleStaff, notation.AssetBassStaff:
		x0, x1, _, _ := c.cellBox(b)
		for _, ly := range notation.StaffLines {
			c.hline(x0, x1, c.row(b.YStart+ly), line)
		}
		label := "treble"
		if asset == notation.AssetBassStaff {
			label = "bass"
		}
		c.write(x0, c.row(b.YStart+notation.StaffLines[0])-1, label, line)
	case notation.AssetLeftHandFilled, notation.AssetRightHandFilled:
		c.text(b, handLabel(asset), cellStyle{fg: theme.HexAccent, bold: true})
	case notation.AssetLeftHandBlank, notation.AssetRightHandBlank:
		c.text(b, handLabel(asset), line)
	case notation.AssetCheck:
		c.text(b, "✔ correct", cellStyle{fg: theme.HexSuccess, bold: true})
	case notation.AssetCross:
		c.text(b, "✘ try again", cellStyle{fg: theme.HexError, bold: true})
	case notation.AssetHomePage:
		c.text(b, "♪ Pitch Perfect ♪", cellStyle{fg: theme.HexPrimary, bold: true})
	case notation.OnLine.Asset(), notation.BetweenLines.Asset(),
		notation.SharpOnLine.Asset(), notation.SharpBetweenLines.Asset():
		c.note(b, asset)
	default:
		c.text(b, "["+asset+"]", line)
	}
}

func handLabel(asset string) string {
	if strings.HasPrefix(asset, "left") {
		return "◀ left hand"
	}
	return "right hand ▶"
}

// note draws a note head at the centre of its glyph box. Heads on ledger
// lines outside the staff get a short ledger stroke.
func (c *canvas) note(b scene.Box, asset string) {
	st := cellStyle{fg: theme.HexText, bold: true}
	x, cy := render.Centre(b)
	cx, y := c.col(x), c.row(cy)

	onLine := asset == notation.OnLine.Asset() || asset == notation.SharpOnLine.Asset()
	if onLine && (cy < notation.StaffLines[0] || cy > notation.StaffLines[4]) {
		c.hline(cx-2, cx+3, y, cellStyle{fg: theme.HexTextDim})
	}
	if asset == notation.SharpOnLine.Asset() || asset == notation.SharpBetweenLines.Asset() {
		c.put(cx-1, y, '♯', st)
	}
	c.put(cx, y, '●', st)
}

func (c *canvas) String() string {
	var sb strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].cellStyle == row[start].cellStyle {
				continue
			}
			var run strings.Builder
			for _, cl := range row[start:x] {
				run.WriteRune(cl.ch)
			}
			sb.WriteString(styled(row[start].cellStyle, run.String()))
			start = x
		}
	}
	return sb.String()
}

// Plain returns the canvas runes only, trailing spaces trimmed.
func (c *canvas) Plain() string {
	lines := make([]string, len(c.cells))
	for y, row := range c.cells {
		var sb strings.Builder
		for _, cl := range row {
			sb.WriteRune(cl.ch)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}

func styled(st cellStyle, s string) string {
	if st == (cellStyle{}) {
		return s
	}
	style := lipgloss.NewStyle().Bold(st.bold)
	if st.fg != "" {
		style = style.Foreground(lipgloss.Color(st.fg))
	}
	if st.bg != "" {
		style = style.Background(lipgloss.Color(st.bg))
	}
	return style.Render(s)
}
