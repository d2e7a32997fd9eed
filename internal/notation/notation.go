// Package notation places notes on the staff surface and names the image
// assets the views draw.
package notation

import (
	"fmt"

	"github.com/abhisek/pitchperfect/internal/catalog"
	"github.com/abhisek/pitchperfect/internal/scene"
)

// Asset names understood by the renderers.
const (
	AssetTrebleStaff     = "trebleStaff"
	AssetBassStaff       = "bassStaff"
	AssetLeftHandFilled  = "leftHandFilled"
	AssetLeftHandBlank   = "leftHandBlank"
	AssetRightHandFilled = "rightHandFilled"
	AssetRightHandBlank  = "rightHandBlank"
	AssetCheck           = "check"
	AssetCross           = "cross"
	AssetHomePage        = "homePage"
)

// StaffLines are the y offsets of the five staff lines on a staff image,
// top to bottom. A glyph box is centred vertically on its line or space.
var StaffLines = [5]int{273, 337, 401, 465, 529}

// StaffSpacing is the distance between adjacent staff lines.
const StaffSpacing = 64

// Glyph is the note head drawing used for a pitch.
type Glyph int

const (
	OnLine Glyph = iota
	BetweenLines
	SharpOnLine
	SharpBetweenLines
)

// Asset returns the image asset name of the glyph.
func (g Glyph) Asset() string {
	switch g {
	case OnLine:
		return "NoteOnLedgerLine"
	case BetweenLines:
		return "NoteBetweenLines"
	case SharpOnLine:
		return "SharpNoteOnLedgerLine"
	default:
		return "SharpNoteBetweenLines"
	}
}

// Sharp reports whether the glyph carries an accidental.
func (g Glyph) Sharp() bool { return g == SharpOnLine || g == SharpBetweenLines }

type placement struct {
	y     int
	glyph Glyph
}

// Glyph box widths; sharp glyphs are wider and taller to fit the accidental.
const (
	naturalX0, naturalX1 = 615, 745
	naturalHeight        = 130
	sharpX0, sharpX1     = 560, 800
	sharpHeight          = 240
)

// Place returns the absolute box and glyph of pitch on the given clef. ok is
// false when the pitch is outside the drawable range of that staff.
func Place(pitch int, clef catalog.Clef) (box scene.Box, glyph Glyph, ok bool) {
	table := trebleTable
	if clef == catalog.Bass {
		table = bassTable
	}
	pl, ok := table[pitch]
	if !ok {
		return scene.Box{}, 0, false
	}
	if pl.glyph.Sharp() {
		return scene.Box{XStart: sharpX0, XEnd: sharpX1, YStart: pl.y, YEnd: pl.y + sharpHeight}, pl.glyph, true
	}
	return scene.Box{XStart: naturalX0, XEnd: naturalX1, YStart: pl.y, YEnd: pl.y + naturalHeight}, pl.glyph, true
}

// StaffAsset returns the staff image for a clef.
func StaffAsset(clef catalog.Clef) string {
	if clef == catalog.Bass {
		return AssetBassStaff
	}
	return AssetTrebleStaff
}

// HandAssets returns the left and right hand images with the playing hand
// filled in.
func HandAssets(hand catalog.Hand) (left, right string) {
	if hand == catalog.Left {
		return AssetLeftHandFilled, AssetRightHandBlank
	}
	return AssetLeftHandBlank, AssetRightHandFilled
}

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchName returns the scientific pitch name, with middle C (60) as C4.
func PitchName(pitch int) string {
	return fmt.Sprintf("%s%d", pitchClasses[((pitch%12)+12)%12], pitch/12-1)
}
