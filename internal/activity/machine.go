// Package activity sequences flashcards through lessons and timed drills,
// turns drill mistakes into review lessons and scores drills.
package activity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/pitchperfect/internal/answer"
	"github.com/abhisek/pitchperfect/internal/catalog"
	"github.com/abhisek/pitchperfect/internal/logger"
)

// DefaultFeedbackDwell is how long lesson feedback stays up.
const DefaultFeedbackDwell = 500 * time.Millisecond

const countdownStep = time.Second

// ErrEmptyActivity is returned when starting an activity with no flashcards.
var ErrEmptyActivity = errors.New("activity has no flashcards")

// Config tunes the machine.
type Config struct {
	FeedbackDwell time.Duration
}

// DefaultConfig returns a Config with the standard dwell.
func DefaultConfig() Config {
	return Config{FeedbackDwell: DefaultFeedbackDwell}
}

// Deps are the machine's collaborators.
type Deps struct {
	Reviews   ReviewStore
	Adapter   Adapter
	Scheduler Scheduler
	Logger    *logger.Logger
}

type inputEvent struct {
	pitch   int
	pressed bool
}

// Machine is the activity state machine. It is driven by a single writer;
// none of its methods may be called concurrently.
type Machine struct {
	cfg     Config
	deps    Deps
	log     *logger.Logger
	matcher *answer.Matcher

	state     State
	lesson    *catalog.Lesson
	drillID   int
	index     int
	missed    []catalog.Flashcard
	sessionID string
	remaining time.Duration

	dwelling       bool
	pendingCorrect bool
	deferred       []inputEvent

	gens      [numTimers]uint64
	listeners []func(Signal)
}

// New creates an idle machine.
func New(deps Deps, cfg Config) *Machine {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if cfg.FeedbackDwell <= 0 {
		cfg.FeedbackDwell = DefaultFeedbackDwell
	}
	return &Machine{
		cfg:     cfg,
		deps:    deps,
		log:     deps.Logger.With("component", "activity"),
		matcher: answer.New(),
	}
}

// OnSignal registers a listener. Listeners run synchronously on the
// machine's goroutine.
func (m *Machine) OnSignal(fn func(Signal)) {
	m.listeners = append(m.listeners, fn)
}

// StartLesson begins l, discarding any running activity.
func (m *Machine) StartLesson(l *catalog.Lesson) error {
	if l == nil || l.Size() == 0 {
		return ErrEmptyActivity
	}
	m.cleanup()
	m.state = InLesson
	m.lesson = l
	m.begin()
	m.log.Info("lesson started", "lesson", l.ID, "session", m.sessionID, "cards", l.Size())
	m.show()
	return nil
}

// StartDrill begins d, discarding any running activity.
func (m *Machine) StartDrill(d *catalog.Drill) error {
	if d == nil || d.Size() == 0 {
		return ErrEmptyActivity
	}
	m.cleanup()
	m.state = InDrill
	m.lesson = &d.Lesson
	m.drillID = d.ID
	m.begin()
	m.remaining = d.TimeLimit
	m.log.Info("drill started", "drill", d.ID, "session", m.sessionID, "cards", d.Size(), "limit", d.TimeLimit)
	m.show()
	if m.remaining > 0 {
		m.deps.Adapter.ShowCountdown(m.remaining)
		m.schedule(TimerCountdown, countdownStep)
	}
	return nil
}

func (m *Machine) begin() {
	m.index = 0
	m.missed = nil
	m.sessionID = uuid.New().String()
	m.matcher.Reset()
}

// Press feeds a key press into the matcher.
func (m *Machine) Press(pitch int) {
	if m.state == Idle {
		return
	}
	if m.dwelling {
		m.deferred = append(m.deferred, inputEvent{pitch: pitch, pressed: true})
		return
	}
	m.matcher.OnPress(pitch)
}

// Release feeds a key release into the matcher and judges the chord once
// every key is up.
func (m *Machine) Release(pitch int) {
	if m.state == Idle {
		return
	}
	if m.dwelling {
		m.deferred = append(m.deferred, inputEvent{pitch: pitch})
		return
	}
	if m.matcher.OnRelease(pitch) {
		m.verdict()
	}
}

// Fire runs the action of an elapsed timer. Fires carrying a stale
// generation are ignored.
func (m *Machine) Fire(t Timer, gen uint64) {
	if t < 0 || t >= numTimers || gen != m.gens[t] || m.state == Idle {
		return
	}
	switch t {
	case TimerFeedback:
		m.endDwell()
	case TimerCountdown:
		m.tick()
	}
}

// Abort leaves the running activity without completing it.
func (m *Machine) Abort() {
	if m.state == Idle {
		return
	}
	sig := m.signal(SignalAborted)
	m.cleanup()
	m.log.Info("activity aborted", "session", sig.SessionID)
	m.emit(sig)
}

func (m *Machine) verdict() {
	card := m.lesson.Cards[m.index]
	input := m.matcher.Input()
	correct := m.matcher.CheckAnswer()
	m.log.Debug("verdict", "session", m.sessionID, "index", m.index, "want", card.Pitches, "got", input, "correct", correct)

	sig := m.signal(SignalVerdict)
	sig.Card = card
	sig.Index = m.index
	sig.Input = input
	sig.Correct = correct
	m.emit(sig)

	if m.state == InLesson {
		m.deps.Adapter.ShowFeedback(card, input, correct)
		m.dwelling = true
		m.pendingCorrect = correct
		m.schedule(TimerFeedback, m.cfg.FeedbackDwell)
		return
	}

	if !correct {
		m.missed = append(m.missed, card)
	}
	m.advance()
}

func (m *Machine) endDwell() {
	m.dwelling = false
	m.deps.Adapter.HideFeedback()
	if m.pendingCorrect {
		m.advance()
	}

	replay := m.deferred
	m.deferred = nil
	for _, ev := range replay {
		if ev.pressed {
			m.Press(ev.pitch)
		} else {
			m.Release(ev.pitch)
		}
	}
}

func (m *Machine) tick() {
	m.remaining -= countdownStep
	if m.remaining < 0 {
		m.remaining = 0
	}
	m.deps.Adapter.ShowCountdown(m.remaining)
	if m.remaining > 0 {
		m.schedule(TimerCountdown, countdownStep)
		return
	}
	m.missed = append(m.missed, m.lesson.Cards[m.index:]...)
	m.log.Info("drill time expired", "session", m.sessionID, "unanswered", m.lesson.Size()-m.index)
	m.complete()
}

func (m *Machine) advance() {
	if m.index < m.lesson.Size()-1 {
		m.index++
		m.show()
		return
	}
	m.complete()
}

func (m *Machine) show() {
	card := m.lesson.Cards[m.index]
	m.matcher.Arm(card)
	m.deps.Adapter.ShowFlashcard(m.kind(), card, m.index, m.lesson.Size())

	sig := m.signal(SignalFlashcardShown)
	sig.Card = card
	sig.Index = m.index
	m.emit(sig)
}

func (m *Machine) complete() {
	var sig Signal
	if m.state == InLesson {
		sig = m.signal(SignalLessonComplete)
	} else {
		total := m.lesson.Size()
		score := Score{Correct: total - len(m.missed), Total: total}
		if len(m.missed) > 0 {
			sig = m.signal(SignalDrillCompleteWithReview)
			sig.Review = m.deps.Reviews.AppendReview(m.missed)
		} else {
			sig = m.signal(SignalDrillComplete)
		}
		sig.Score = score
	}
	m.cleanup()
	m.log.Info("activity complete", "session", sig.SessionID, "type", sig.Type.String(), "score", fmt.Sprintf("%d/%d", sig.Score.Correct, sig.Score.Total))
	m.emit(sig)
}

// cleanup returns to Idle, hiding surfaces and cancelling timers.
func (m *Machine) cleanup() {
	if m.state == Idle {
		return
	}
	kind := m.kind()
	for t := Timer(0); t < numTimers; t++ {
		m.cancel(t)
	}
	m.deps.Adapter.Close(kind)
	m.matcher.Reset()
	m.state = Idle
	m.lesson = nil
	m.missed = nil
	m.dwelling = false
	m.pendingCorrect = false
	m.deferred = nil
	m.remaining = 0
}

func (m *Machine) schedule(t Timer, d time.Duration) {
	m.gens[t]++
	m.deps.Scheduler.Schedule(t, m.gens[t], d)
}

func (m *Machine) cancel(t Timer) {
	m.gens[t]++
	m.deps.Scheduler.Cancel(t)
}

func (m *Machine) signal(t SignalType) Signal {
	s := Signal{
		Type:      t,
		SessionID: m.sessionID,
		Kind:      m.kind(),
	}
	if m.lesson != nil {
		s.Total = m.lesson.Size()
		s.ActivityID = m.lesson.ID
		if m.state == InDrill {
			s.ActivityID = m.drillID
		}
	}
	return s
}

func (m *Machine) emit(s Signal) {
	for _, fn := range m.listeners {
		fn(s)
	}
}

func (m *Machine) kind() Kind {
	switch m.state {
	case InLesson:
		return KindLesson
	case InDrill:
		return KindDrill
	}
	return KindNone
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Kind returns the kind of the running activity.
func (m *Machine) Kind() Kind { return m.kind() }

// Index returns the position of the current flashcard.
func (m *Machine) Index() int { return m.index }

// Current returns the flashcard being shown, if any.
func (m *Machine) Current() (catalog.Flashcard, bool) {
	if m.state == Idle {
		return catalog.Flashcard{}, false
	}
	return m.lesson.Cards[m.index], true
}

// Total returns the number of flashcards in the running activity.
func (m *Machine) Total() int {
	if m.lesson == nil {
		return 0
	}
	return m.lesson.Size()
}

// MissedCount returns the drill mistakes so far.
func (m *Machine) MissedCount() int { return len(m.missed) }

// Remaining returns the drill time left.
func (m *Machine) Remaining() time.Duration { return m.remaining }

// SessionID identifies the running activity.
func (m *Machine) SessionID() string { return m.sessionID }

// Dwelling reports whether lesson feedback is on screen.
func (m *Machine) Dwelling() bool { return m.dwelling }

// Held returns the keys currently held down.
func (m *Machine) Held() []int { return m.matcher.Held() }
