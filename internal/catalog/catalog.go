// Package catalog holds the read-only lesson content: units owning lessons
// and drills, each a fixed sequence of flashcards.
package catalog

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a unit, lesson or drill id does not exist.
var ErrNotFound = errors.New("not found")

// Clef selects the staff a flashcard is drawn on.
type Clef int

const (
	Treble Clef = iota
	Bass
)

func (c Clef) String() string {
	if c == Bass {
		return "bass"
	}
	return "treble"
}

// ParseClef maps "treble" or "bass" to a Clef.
func ParseClef(s string) (Clef, error) {
	switch s {
	case "treble":
		return Treble, nil
	case "bass":
		return Bass, nil
	}
	return 0, fmt.Errorf("unknown clef %q", s)
}

// Hand is the hand expected to play a flashcard.
type Hand int

const (
	Left Hand = iota
	Right
)

func (h Hand) String() string {
	if h == Right {
		return "right"
	}
	return "left"
}

// ParseHand maps "left" or "right" to a Hand.
func ParseHand(s string) (Hand, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown hand %q", s)
}

// Flashcard is a single prompt: one or more pitches to play together.
type Flashcard struct {
	ID      int
	Pitches []int
	Degrees []int
	Clef    Clef
	Hand    Hand
}

// TargetPitches returns the pitches a correct answer consists of.
func (f Flashcard) TargetPitches() []int { return f.Pitches }

func (f Flashcard) String() string {
	return fmt.Sprintf("card %d %v (%s, %s hand)", f.ID, f.Pitches, f.Clef, f.Hand)
}

// Lesson is an ordered flashcard sequence.
type Lesson struct {
	ID     int
	Name   string
	Info   string
	Cards  []Flashcard
	Review bool
}

// Size returns the number of flashcards.
func (l *Lesson) Size() int { return len(l.Cards) }

// Drill is a lesson played against a countdown.
type Drill struct {
	Lesson
	TimeLimit time.Duration
}

// Unit groups lessons and drills by id.
type Unit struct {
	ID      int
	Name    string
	Info    string
	Lessons []int
	Drills  []int
}

// Catalog is the loaded content. Review lessons are appended at run time;
// it is owned by a single writer.
type Catalog struct {
	version string
	units   []Unit
	lessons []*Lesson
	drills  []*Drill
}

// Version returns the content format version.
func (c *Catalog) Version() string { return c.version }

// Units returns every unit in id order.
func (c *Catalog) Units() []Unit { return c.units }

// Lessons returns every lesson in id order, review lessons included.
func (c *Catalog) Lessons() []*Lesson { return c.lessons }

// Drills returns every drill in id order.
func (c *Catalog) Drills() []*Drill { return c.drills }

// Unit returns the unit with the given id.
func (c *Catalog) Unit(id int) (Unit, error) {
	if id < 0 || id >= len(c.units) {
		return Unit{}, fmt.Errorf("unit %d: %w", id, ErrNotFound)
	}
	return c.units[id], nil
}

// Lesson returns the lesson with the given id.
func (c *Catalog) Lesson(id int) (*Lesson, error) {
	if id < 0 || id >= len(c.lessons) {
		return nil, fmt.Errorf("lesson %d: %w", id, ErrNotFound)
	}
	return c.lessons[id], nil
}

// Drill returns the drill with the given id.
func (c *Catalog) Drill(id int) (*Drill, error) {
	if id < 0 || id >= len(c.drills) {
		return nil, fmt.Errorf("drill %d: %w", id, ErrNotFound)
	}
	return c.drills[id], nil
}

// AppendReview adds a review lesson built from cards and returns it. Its id
// is the current lesson count, so ids stay dense.
func (c *Catalog) AppendReview(cards []Flashcard) *Lesson {
	l := &Lesson{
		ID:     len(c.lessons),
		Name:   "Review Drill",
		Info:   "Review Session",
		Cards:  append([]Flashcard(nil), cards...),
		Review: true,
	}
	c.lessons = append(c.lessons, l)
	return l
}
