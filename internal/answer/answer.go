// Package answer turns overlapping press and release events into single
// chord submissions and checks them against the armed flashcard.
package answer

import (
	"errors"
	"fmt"
	"sort"
)

// Lowest and highest pitch accepted from any input source (piano A0..C8).
const (
	MinPitch = 21
	MaxPitch = 108
)

// ErrPitchOutOfRange is returned by ValidPitch for pitches outside the keyboard.
var ErrPitchOutOfRange = errors.New("pitch out of range")

// ValidPitch reports whether p lies on the keyboard.
func ValidPitch(p int) error {
	if p < MinPitch || p > MaxPitch {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrPitchOutOfRange, p, MinPitch, MaxPitch)
	}
	return nil
}

// Target is the expected answer of a flashcard.
type Target interface {
	TargetPitches() []int
}

// Matcher tracks held keys and the pitches accumulated since the last
// verdict. It is owned by a single writer.
type Matcher struct {
	held   map[int]struct{}
	input  map[int]struct{}
	target map[int]struct{}
	armed  bool
}

// New returns an unarmed matcher.
func New() *Matcher {
	return &Matcher{
		held:  make(map[int]struct{}),
		input: make(map[int]struct{}),
	}
}

// Arm sets the flashcard the next verdict is checked against.
func (m *Matcher) Arm(t Target) {
	m.target = make(map[int]struct{})
	for _, p := range t.TargetPitches() {
		m.target[p] = struct{}{}
	}
	m.armed = true
}

// Reset drops held keys, accumulated input and the armed target.
func (m *Matcher) Reset() {
	clear(m.held)
	clear(m.input)
	m.target = nil
	m.armed = false
}

// OnPress records a depressed key.
func (m *Matcher) OnPress(pitch int) {
	m.held[pitch] = struct{}{}
	m.input[pitch] = struct{}{}
}

// OnRelease records a released key. It returns true when the last held key
// was let go, which completes the chord.
func (m *Matcher) OnRelease(pitch int) bool {
	if _, ok := m.held[pitch]; !ok {
		return false
	}
	delete(m.held, pitch)
	return len(m.held) == 0
}

// CheckAnswer compares the accumulated input to the armed target and clears
// the input either way.
func (m *Matcher) CheckAnswer() bool {
	defer clear(m.input)
	if !m.armed || len(m.input) != len(m.target) {
		return false
	}
	for p := range m.input {
		if _, ok := m.target[p]; !ok {
			return false
		}
	}
	return true
}

// Input returns the accumulated pitches in ascending order.
func (m *Matcher) Input() []int {
	return sortedKeys(m.input)
}

// Held returns the currently depressed pitches in ascending order.
func (m *Matcher) Held() []int {
	return sortedKeys(m.held)
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
