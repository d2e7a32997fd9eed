package controller

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/pitchperfect/internal/activity"
	"github.com/abhisek/pitchperfect/internal/logger"
)

// DefaultQueueSize is the event buffer of a Loop.
const DefaultQueueSize = 256

// Handler consumes events on the loop goroutine.
type Handler interface {
	Handle(ev Event)
}

// Loop serialises events from every input context onto one goroutine and
// schedules timers that report back through the same queue.
type Loop struct {
	events chan Event
	done   chan struct{}
	log    *logger.Logger

	mu     sync.Mutex
	timers map[activity.Timer]*time.Timer
	after  []func()

	stopOnce sync.Once
}

// NewLoop creates a loop with the given queue size.
func NewLoop(size int, log *logger.Logger) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Loop{
		events: make(chan Event, size),
		done:   make(chan struct{}),
		log:    log.With("component", "loop"),
		timers: make(map[activity.Timer]*time.Timer),
	}
}

// Post enqueues ev. It blocks while the queue is full and returns false once
// the loop has stopped.
func (l *Loop) Post(ev Event) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- ev:
		return true
	case <-l.done:
		return false
	}
}

// AfterEach registers fn to run on the loop goroutine after every event.
// Must be called before Run.
func (l *Loop) AfterEach(fn func()) {
	l.after = append(l.after, fn)
}

// Schedule posts a TimerFired for t after d, replacing any pending fire of
// the same timer.
func (l *Loop) Schedule(t activity.Timer, gen uint64, d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if old, ok := l.timers[t]; ok {
		old.Stop()
	}
	l.timers[t] = time.AfterFunc(d, func() {
		l.Post(TimerFired{Timer: t, Gen: gen})
	})
}

// Cancel stops the pending fire of t, if any. A fire already queued is
// rejected by its stale generation.
func (l *Loop) Cancel(t activity.Timer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if old, ok := l.timers[t]; ok {
		old.Stop()
		delete(l.timers, t)
	}
}

// Run consumes events until ctx is cancelled.
func (l *Loop) Run(ctx context.Context, h Handler) error {
	defer l.stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-l.events:
			h.Handle(ev)
			for _, fn := range l.after {
				fn()
			}
		}
	}
}

// Pending returns the number of queued events.
func (l *Loop) Pending() int { return len(l.events) }

// Drain handles every queued event without blocking and returns how many
// were handled. Used by headless runs that drive the loop themselves.
func (l *Loop) Drain(h Handler) int {
	n := 0
	for {
		select {
		case ev := <-l.events:
			h.Handle(ev)
			for _, fn := range l.after {
				fn()
			}
			n++
		default:
			return n
		}
	}
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() {
		close(l.done)
		l.mu.Lock()
		defer l.mu.Unlock()
		for t, timer := range l.timers {
			timer.Stop()
			delete(l.timers, t)
		}
		l.log.Debug("loop stopped")
	})
}
