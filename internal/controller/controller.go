// Package controller is the single writer of the trainer: it applies input
// events, command lines and timer fires to the activity machine, the views
// and the menu router.
package controller

import (
	"errors"
	"time"

	"github.com/abhisek/pitchperfect/internal/activity"
	"github.com/abhisek/pitchperfect/internal/answer"
	"github.com/abhisek/pitchperfect/internal/catalog"
	"github.com/abhisek/pitchperfect/internal/command"
	"github.com/abhisek/pitchperfect/internal/logger"
	"github.com/abhisek/pitchperfect/internal/router"
	"github.com/abhisek/pitchperfect/internal/scene"
	"github.com/abhisek/pitchperfect/internal/views"
)

// Deps are the controller's collaborators.
type Deps struct {
	Catalog   *catalog.Catalog
	Views     *views.Views
	Scheduler activity.Scheduler
	Logger    *logger.Logger
}

// Status summarises what is on screen for headers and status lines.
type Status struct {
	State     activity.State
	Title     string
	Index     int
	Total     int
	Missed    int
	Remaining time.Duration
	Held      []int
}

// Controller owns the machine, views and router. Handle must only be called
// from one goroutine.
type Controller struct {
	cat     *catalog.Catalog
	views   *views.Views
	router  *router.Router
	machine *activity.Machine
	log     *logger.Logger

	title      string
	lastScores map[int]activity.Score
	lastReview activity.Score
}

// New wires a controller and shows the home menu.
func New(deps Deps, cfg activity.Config) *Controller {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	c := &Controller{
		cat:        deps.Catalog,
		views:      deps.Views,
		log:        log.With("component", "controller"),
		lastScores: make(map[int]activity.Score),
	}
	c.router = router.New(deps.Views, deps.Views.Menus.Home)
	c.machine = activity.New(activity.Deps{
		Reviews:   deps.Catalog,
		Adapter:   deps.Views.Adapter(),
		Scheduler: deps.Scheduler,
		Logger:    log,
	}, cfg)
	c.machine.OnSignal(c.onSignal)
	return c
}

// OnSignal registers a listener for activity signals.
func (c *Controller) OnSignal(fn func(activity.Signal)) { c.machine.OnSignal(fn) }

// Machine exposes the activity machine.
func (c *Controller) Machine() *activity.Machine { return c.machine }

// Router exposes the menu router.
func (c *Controller) Router() *router.Router { return c.router }

// Status returns the current on-screen summary.
func (c *Controller) Status() Status {
	s := Status{
		State:     c.machine.State(),
		Index:     c.machine.Index(),
		Total:     c.machine.Total(),
		Missed:    c.machine.MissedCount(),
		Remaining: c.machine.Remaining(),
		Held:      c.machine.Held(),
	}
	if s.State != activity.Idle {
		s.Title = c.title
	}
	return s
}

// Handle applies one event.
func (c *Controller) Handle(ev Event) {
	switch ev := ev.(type) {
	case NoteOn:
		if !c.validPitch(ev.Pitch) {
			return
		}
		if ev.Velocity == 0 {
			c.machine.Release(ev.Pitch)
			return
		}
		c.machine.Press(ev.Pitch)
	case NoteOff:
		if !c.validPitch(ev.Pitch) {
			return
		}
		c.machine.Release(ev.Pitch)
	case ReleaseAll:
		for _, p := range c.machine.Held() {
			c.machine.Release(p)
		}
	case Activated:
		c.activate(ev.Surface)
	case Command:
		c.Exec(ev.Line)
	case Back:
		if c.machine.State() != activity.Idle {
			c.machine.Abort()
			c.router.Home()
			return
		}
		c.router.Pop()
	case TimerFired:
		c.machine.Fire(ev.Timer, ev.Gen)
	}
}

func (c *Controller) validPitch(p int) bool {
	if err := answer.ValidPitch(p); err != nil {
		c.log.Warn("dropping input", "err", err)
		return false
	}
	return true
}

func (c *Controller) activate(id scene.ID) {
	tree := c.views.Tree()
	if !tree.Exists(id) || tree.Hidden(id) {
		c.log.Warn("activation of unknown or hidden surface", "surface", id)
		return
	}
	line, ok := c.views.Command(id)
	if !ok {
		c.log.Debug("surface has no command", "surface", id, "kind", tree.Kind(id).String())
		return
	}
	c.Exec(line)
}

// Exec parses and runs a command line. Unknown verbs are ignored and
// malformed lines are dropped; neither changes any state.
func (c *Controller) Exec(line string) {
	cmd, err := command.Parse(line)
	if err != nil {
		if errors.Is(err, command.ErrUnknownVerb) {
			c.log.Debug("ignoring command", "line", line)
			return
		}
		c.log.Warn("dropping command", "line", line, "err", err)
		return
	}
	c.log.Debug("command", "line", cmd.String())

	switch cmd.Verb {
	case command.ShowHomePage:
		c.router.Home()
	case command.ShowUnitSelection:
		c.router.Push(c.views.Menus.UnitSelect)
	case command.ShowLessonSelection:
		unit := cmd.Arg(0)
		if unit < 0 || unit >= len(c.views.Menus.Units) {
			c.log.Warn("unknown unit", "unit", unit)
			return
		}
		c.router.Push(c.views.Menus.Units[unit])
	case command.ShowLessonComplete:
		l, err := c.cat.Lesson(cmd.Arg(0))
		if err != nil {
			c.log.Warn("dropping command", "line", line, "err", err)
			return
		}
		c.machine.Abort()
		c.router.Push(c.views.PrepareLessonComplete(l))
	case command.ShowDrillComplete:
		if _, err := c.cat.Drill(cmd.Arg(0)); err != nil {
			c.log.Warn("dropping command", "line", line, "err", err)
			return
		}
		c.machine.Abort()
		c.router.Push(c.views.PrepareDrillComplete(c.lastScores[cmd.Arg(0)]))
	case command.ShowReviewDrillComplete:
		l, err := c.cat.Lesson(cmd.Arg(0))
		if err != nil || !l.Review {
			c.log.Warn("not a review lesson", "line", line)
			return
		}
		c.machine.Abort()
		c.router.Push(c.views.PrepareReviewComplete(c.lastReview, l))
	case command.LoadLesson:
		l, err := c.cat.Lesson(cmd.Arg(0))
		if err != nil {
			c.log.Warn("dropping command", "line", line, "err", err)
			return
		}
		c.leaveMenu(cmd.Arg(1))
		c.title = l.Name
		if err := c.machine.StartLesson(l); err != nil {
			c.log.Error("start lesson", "lesson", l.ID, "err", err)
			c.router.Home()
		}
	case command.LoadDrill:
		d, err := c.cat.Drill(cmd.Arg(0))
		if err != nil {
			c.log.Warn("dropping command", "line", line, "err", err)
			return
		}
		c.leaveMenu(cmd.Arg(1))
		c.title = d.Name
		if err := c.machine.StartDrill(d); err != nil {
			c.log.Error("start drill", "drill", d.ID, "err", err)
			c.router.Home()
		}
	case command.Back:
		c.machine.Abort()
		c.router.Home()
	}
}

func (c *Controller) leaveMenu(menu int) {
	if !c.router.Suspended() && scene.ID(menu) != c.router.Active() {
		c.log.Debug("closing active menu instead of requested one", "requested", menu, "active", c.router.Active())
	}
	c.router.Suspend()
}

func (c *Controller) onSignal(sig activity.Signal) {
	switch sig.Type {
	case activity.SignalLessonComplete:
		l, err := c.cat.Lesson(sig.ActivityID)
		if err != nil {
			l = nil
		}
		c.router.Push(c.views.PrepareLessonComplete(l))
	case activity.SignalDrillComplete:
		c.lastScores[sig.ActivityID] = sig.Score
		c.router.Push(c.views.PrepareDrillComplete(sig.Score))
	case activity.SignalDrillCompleteWithReview:
		c.lastScores[sig.ActivityID] = sig.Score
		c.lastReview = sig.Score
		c.router.Push(c.views.PrepareReviewComplete(sig.Score, sig.Review))
	}
}
