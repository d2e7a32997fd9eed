package activity

import (
	"fmt"
	"time"

	"github.com/abhisek/pitchperfect/internal/catalog"
)

// State is the machine's top-level state.
type State int

const (
	Idle State = iota
	InLesson
	InDrill
)

func (s State) String() string {
	switch s {
	case InLesson:
		return "in-lesson"
	case InDrill:
		return "in-drill"
	default:
		return "idle"
	}
}

// Kind identifies an activity type.
type Kind int

const (
	KindNone Kind = iota
	KindLesson
	KindDrill
)

func (k Kind) String() string {
	switch k {
	case KindLesson:
		return "lesson"
	case KindDrill:
		return "drill"
	default:
		return "none"
	}
}

// Timer names a cancellable scheduled action.
type Timer int

const (
	TimerFeedback Timer = iota
	TimerCountdown
	numTimers
)

func (t Timer) String() string {
	if t == TimerCountdown {
		return "countdown"
	}
	return "feedback"
}

// Scheduler runs delayed actions for the machine. When a scheduled timer
// elapses the owner must call Machine.Fire with the same timer and
// generation on the machine's goroutine.
type Scheduler interface {
	Schedule(t Timer, gen uint64, d time.Duration)
	Cancel(t Timer)
}

// Adapter is the presentation side of an activity.
type Adapter interface {
	ShowFlashcard(kind Kind, card catalog.Flashcard, index, total int)
	ShowFeedback(card catalog.Flashcard, input []int, correct bool)
	HideFeedback()
	ShowCountdown(remaining time.Duration)
	Close(kind Kind)
}

// ReviewStore receives review lessons synthesized from drill mistakes.
type ReviewStore interface {
	AppendReview(cards []catalog.Flashcard) *catalog.Lesson
}

// Score is the result of a drill.
type Score struct {
	Correct int
	Total   int
}

// SignalType enumerates what the machine reports to listeners.
type SignalType int

const (
	SignalFlashcardShown SignalType = iota
	SignalVerdict
	SignalLessonComplete
	SignalDrillComplete
	SignalDrillCompleteWithReview
	SignalAborted
)

func (t SignalType) String() string {
	switch t {
	case SignalFlashcardShown:
		return "flashcard-shown"
	case SignalVerdict:
		return "verdict"
	case SignalLessonComplete:
		return "lesson-complete"
	case SignalDrillComplete:
		return "drill-complete"
	case SignalDrillCompleteWithReview:
		return "drill-complete-with-review"
	case SignalAborted:
		return "aborted"
	}
	return "unknown"
}

// Signal is an event emitted by the machine. Fields not relevant to Type
// are zero.
type Signal struct {
	Type       SignalType
	SessionID  string
	Kind       Kind
	ActivityID int

	Card  catalog.Flashcard
	Index int
	Total int

	Input   []int
	Correct bool

	Score  Score
	Review *catalog.Lesson
}

func (s Signal) String() string {
	switch s.Type {
	case SignalFlashcardShown:
		return fmt.Sprintf("%s %s %d: %d/%d %s", s.Type, s.Kind, s.ActivityID, s.Index+1, s.Total, s.Card)
	case SignalVerdict:
		return fmt.Sprintf("%s %s %d: correct=%t input=%v", s.Type, s.Kind, s.ActivityID, s.Correct, s.Input)
	case SignalDrillComplete:
		return fmt.Sprintf("%s drill %d: score %d/%d", s.Type, s.ActivityID, s.Score.Correct, s.Score.Total)
	case SignalDrillCompleteWithReview:
		review := -1
		if s.Review != nil {
			review = s.Review.ID
		}
		return fmt.Sprintf("%s drill %d: score %d/%d review lesson %d", s.Type, s.ActivityID, s.Score.Correct, s.Score.Total, review)
	}
	return fmt.Sprintf("%s %s %d", s.Type, s.Kind, s.ActivityID)
}
