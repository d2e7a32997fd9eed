package catalog

import (
	"fmt"
	"strings"

	"github.com/abhisek/pitchperfect/internal/answer"
)

// validateDocument performs the structural checks the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateDocument(doc *document) error {
	var errs []string

	// Lesson sizes by id, filled as lessons are declared so refs can only
	// point backwards.
	var sizes []int
	nextLesson, nextDrill := 0, 0

	checkCards := func(owner string, cards []cardDoc, visible int) {
		if len(cards) == 0 {
			errs = append(errs, fmt.Sprintf("%s has no cards", owner))
		}
		for i, cd := range cards {
			prefix := fmt.Sprintf("%s card %d", owner, i)
			if cd.Ref != nil {
				if len(cd.Ref) != 2 {
					errs = append(errs, fmt.Sprintf("%s: ref must be [lesson, index]", prefix))
					continue
				}
				lesson, idx := cd.Ref[0], cd.Ref[1]
				if lesson < 0 || lesson >= visible {
					errs = append(errs, fmt.Sprintf("%s: ref to undeclared lesson %d", prefix, lesson))
					continue
				}
				if idx < 0 || idx >= sizes[lesson] {
					errs = append(errs, fmt.Sprintf("%s: ref index %d out of range for lesson %d (size %d)", prefix, idx, lesson, sizes[lesson]))
				}
				continue
			}
			if len(cd.Pitches) == 0 {
				errs = append(errs, fmt.Sprintf("%s: no pitches", prefix))
			}
			seen := make(map[int]bool, len(cd.Pitches))
			for _, p := range cd.Pitches {
				if err := answer.ValidPitch(p); err != nil {
					errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
				}
				if seen[p] {
					errs = append(errs, fmt.Sprintf("%s: duplicate pitch %d", prefix, p))
				}
				seen[p] = true
			}
			if len(cd.Degrees) > 0 && len(cd.Degrees) != len(cd.Pitches) {
				errs = append(errs, fmt.Sprintf("%s: %d degrees for %d pitches", prefix, len(cd.Degrees), len(cd.Pitches)))
			}
			if _, err := ParseClef(cd.Clef); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
			}
			if _, err := ParseHand(cd.Hand); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
			}
		}
	}

	for ui, u := range doc.Units {
		if u.ID != ui {
			errs = append(errs, fmt.Sprintf("unit %q has id %d, want %d", u.Name, u.ID, ui))
		}
		for _, l := range u.Lessons {
			owner := fmt.Sprintf("lesson %d (%s)", l.ID, l.Name)
			if l.ID != nextLesson {
				errs = append(errs, fmt.Sprintf("%s: id out of sequence, want %d", owner, nextLesson))
			}
			checkCards(owner, l.Cards, len(sizes))
			sizes = append(sizes, len(l.Cards))
			nextLesson++
		}
		for _, d := range u.Drills {
			owner := fmt.Sprintf("drill %d (%s)", d.ID, d.Name)
			if d.ID != nextDrill {
				errs = append(errs, fmt.Sprintf("%s: id out of sequence, want %d", owner, nextDrill))
			}
			if d.TimeLimit < 0 {
				errs = append(errs, fmt.Sprintf("%s: time_limit must be >= 0, got %d", owner, d.TimeLimit))
			}
			checkCards(owner, d.Cards, len(sizes))
			nextDrill++
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
