// Package keyboard maps a QWERTY keyboard onto piano keys. Terminals report
// no key releases, so keys stay held until ReleaseAll.
package keyboard

import "github.com/abhisek/pitchperfect/internal/notation"

// qwertyKeys starts at C, naturals on the home row and accidentals on the
// row above.
var qwertyKeys = []string{"a", "w", "s", "e", "d", "f", "t", "g", "y", "h", "u", "j", "k", "o", "l", "p", ";", "'"}

// Octave bounds keep every bound key on an 88-key piano.
const (
	MinOctave     = 1
	MaxOctave     = 6
	DefaultOctave = 4
)

// Key is one bound piano key.
type Key struct {
	Pitch      int
	Name       string
	Binding    string
	Accidental bool
}

// Piano tracks the current octave and the keys held down.
type Piano struct {
	octave int
	held   []int
}

// New returns a piano whose "a" key plays C of the given octave.
func New(octave int) *Piano {
	return &Piano{octave: clamp(octave)}
}

func clamp(o int) int {
	if o < MinOctave {
		return MinOctave
	}
	if o > MaxOctave {
		return MaxOctave
	}
	return o
}

// Octave returns the octave of the "a" key.
func (p *Piano) Octave() int { return p.octave }

// Shift moves the keyboard by delta octaves within bounds.
func (p *Piano) Shift(delta int) {
	p.octave = clamp(p.octave + delta)
}

func (p *Piano) base() int { return 12 * (p.octave + 1) }

// Keys lists the current bindings from lowest to highest.
func (p *Piano) Keys() []Key {
	keys := make([]Key, len(qwertyKeys))
	for i, b := range qwertyKeys {
		pitch := p.base() + i
		name := notation.PitchName(pitch)
		keys[i] = Key{
			Pitch:      pitch,
			Name:       name,
			Binding:    b,
			Accidental: len(name) > 1 && name[1] == '#',
		}
	}
	return keys
}

// Lookup returns the pitch bound to a key.
func (p *Piano) Lookup(binding string) (int, bool) {
	for i, b := range qwertyKeys {
		if b == binding {
			return p.base() + i, true
		}
	}
	return 0, false
}

// Press holds the key bound to binding. ok is false for unbound keys and
// for keys already held, which filters terminal auto-repeat.
func (p *Piano) Press(binding string) (pitch int, ok bool) {
	pitch, ok = p.Lookup(binding)
	if !ok {
		return 0, false
	}
	for _, h := range p.held {
		if h == pitch {
			return pitch, false
		}
	}
	p.held = append(p.held, pitch)
	return pitch, true
}

// ReleaseAll lets go of every held key and returns them in press order.
func (p *Piano) ReleaseAll() []int {
	out := p.held
	p.held = nil
	return out
}

// Held returns the held keys in press order.
func (p *Piano) Held() []int {
	return append([]int(nil), p.held...)
}
