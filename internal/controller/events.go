package controller

import (
	"github.com/abhisek/pitchperfect/internal/activity"
	"github.com/abhisek/pitchperfect/internal/scene"
)

// Event is anything posted to the controller.
type Event interface {
	isEvent()
}

// NoteOn is a key press. A zero velocity is treated as a release.
type NoteOn struct {
	Pitch    int
	Velocity int
}

// NoteOff is a key release.
type NoteOff struct {
	Pitch int
}

// ReleaseAll lets go of every held key, e.g. when an input device vanishes.
type ReleaseAll struct{}

// Activated is a click or keyboard activation of a surface.
type Activated struct {
	Surface scene.ID
}

// Command executes a command line directly.
type Command struct {
	Line string
}

// Back navigates up: it leaves a running activity or pops a menu.
type Back struct{}

// TimerFired reports an elapsed scheduled action.
type TimerFired struct {
	Timer activity.Timer
	Gen   uint64
}

func (NoteOn) isEvent()     {}
func (NoteOff) isEvent()    {}
func (ReleaseAll) isEvent() {}
func (Activated) isEvent()  {}
func (Command) isEvent()    {}
func (Back) isEvent()       {}
func (TimerFired) isEvent() {}
