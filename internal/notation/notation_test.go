package notation

import (
	"testing"

	"github.com/abhisek/pitchperfect/internal/catalog"
	"github.com/abhisek/pitchperfect/internal/scene"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		pitch int
		clef  catalog.Clef
		box   scene.Box
		glyph Glyph
	}{
		{60, catalog.Treble, scene.Box{XStart: 615, XEnd: 745, YStart: 528, YEnd: 658}, OnLine},
		{61, catalog.Treble, scene.Box{XStart: 560, XEnd: 800, YStart: 473, YEnd: 713}, SharpOnLine},
		{82, catalog.Treble, scene.Box{XStart: 560, XEnd: 800, YStart: 89, YEnd: 329}, SharpOnLine},
		{40, catalog.Bass, scene.Box{XStart: 615, XEnd: 745, YStart: 528, YEnd: 658}, OnLine},
		{60, catalog.Bass, scene.Box{XStart: 615, XEnd: 745, YStart: 144, YEnd: 274}, OnLine},
		{56, catalog.Bass, scene.Box{XStart: 560, XEnd: 800, YStart: 185, YEnd: 425}, SharpBetweenLines},
	}

	for _, tt := range tests {
		box, glyph, ok := Place(tt.pitch, tt.clef)
		if !ok {
			t.Errorf("Place(%d, %s) not ok", tt.pitch, tt.clef)
			continue
		}
		if box != tt.box {
			t.Errorf("Place(%d, %s) box = %+v, want %+v", tt.pitch, tt.clef, box, tt.box)
		}
		if glyph != tt.glyph {
			t.Errorf("Place(%d, %s) glyph = %v, want %v", tt.pitch, tt.clef, glyph, tt.glyph)
		}
	}
}

func TestPlaceOutOfRange(t *testing.T) {
	if _, _, ok := Place(59, catalog.Treble); ok {
		t.Error("59 should not be drawable on the treble staff")
	}
	if _, _, ok := Place(62, catalog.Bass); ok {
		t.Error("62 should not be drawable on the bass staff")
	}
}

func TestHandAssets(t *testing.T) {
	l, r := HandAssets(catalog.Left)
	if l != AssetLeftHandFilled || r != AssetRightHandBlank {
		t.Errorf("HandAssets(Left) = %s, %s", l, r)
	}
	l, r = HandAssets(catalog.Right)
	if l != AssetLeftHandBlank || r != AssetRightHandFilled {
		t.Errorf("HandAssets(Right) = %s, %s", l, r)
	}
}

func TestPitchName(t *testing.T) {
	for p, want := range map[int]string{60: "C4", 61: "C#4", 21: "A0", 108: "C8", 70: "A#4"} {
		if got := PitchName(p); got != want {
			t.Errorf("PitchName(%d) = %q, want %q", p, got, want)
		}
	}
}

func TestGlyphsCentreOnLinesAndSpaces(t *testing.T) {
	for _, table := range []map[int]placement{trebleTable, bassTable} {
		for pitch, pl := range table {
			h := naturalHeight
			if pl.glyph.Sharp() {
				h = sharpHeight
			}
			offset := pl.y + h/2 - StaffLines[0]
			half := StaffSpacing / 2
			if offset%half != 0 {
				t.Errorf("pitch %d centre %d is off the staff grid", pitch, pl.y+h/2)
				continue
			}
			onLine := offset%StaffSpacing == 0
			wantLine := pl.glyph == OnLine || pl.glyph == SharpOnLine
			if onLine != wantLine {
				t.Errorf("pitch %d glyph %v but centre on line = %v", pitch, pl.glyph, onLine)
			}
		}
	}
}
