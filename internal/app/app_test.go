package app

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pitchperfect/internal/activity"
	"github.com/abhisek/pitchperfect/internal/controller"
	"github.com/abhisek/pitchperfect/internal/keyboard"
	"github.com/abhisek/pitchperfect/internal/render/term"
	"github.com/abhisek/pitchperfect/internal/scene"
)

type recorder struct {
	events []controller.Event
}

func (r *recorder) Post(ev controller.Event) bool {
	r.events = append(r.events, ev)
	return true
}

func press(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func newModel(t *testing.T, buttons int) (AppModel, *recorder, []scene.ID) {
	t.Helper()
	r := term.New(1350, 750)
	tree := scene.New(r)
	root := tree.Create(scene.KindRectangle)
	tree.SetHidden(root, false)
	var ids []scene.ID
	for i := 0; i < buttons; i++ {
		id := tree.Create(scene.KindButton)
		tree.Attach(root, id, scene.Box{XStart: i * 300, XEnd: i*300 + 200, YStart: 300, YEnd: 400})
		tree.SetText(id, "b")
		tree.SetHidden(id, false)
		ids = append(ids, id)
	}
	rec := &recorder{}
	return New(rec, r, keyboard.New(keyboard.DefaultOctave)), rec, ids
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am
}

func TestPianoKeysPostNotes(t *testing.T) {
	m, rec, _ := newModel(t, 0)

	m = update(t, m, press('a', "a"))
	m = update(t, m, press('a', "a"))
	m = update(t, m, press('d', "d"))
	m = update(t, m, press('x', "x"))
	m = update(t, m, press('a', "a"))
	m = update(t, m, press(tea.KeySpace, " "))

	assert.Equal(t, []controller.Event{
		controller.NoteOn{Pitch: 60, Velocity: keyVelocity},
		controller.NoteOn{Pitch: 64, Velocity: keyVelocity},
		controller.NoteOn{Pitch: 72, Velocity: keyVelocity},
		controller.NoteOff{Pitch: 60},
		controller.NoteOff{Pitch: 64},
		controller.NoteOff{Pitch: 72},
	}, rec.events)
	assert.Equal(t, 5, m.piano.Octave())
}

func TestBackAndQuit(t *testing.T) {
	m, rec, _ := newModel(t, 0)

	m = update(t, m, press(tea.KeyEscape, ""))
	assert.Equal(t, []controller.Event{controller.Back{}}, rec.events)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestFocusCyclesAndSelects(t *testing.T) {
	m, rec, ids := newModel(t, 3)

	m = update(t, m, press(tea.KeyEnter, ""))
	m = update(t, m, press(tea.KeyTab, ""))
	m = update(t, m, press(tea.KeyRight, ""))
	m = update(t, m, press(tea.KeyEnter, ""))
	m = update(t, m, press(tea.KeyRight, ""))
	m = update(t, m, press(tea.KeyEnter, ""))
	m = update(t, m, press(tea.KeyLeft, ""))
	update(t, m, press(tea.KeyEnter, ""))

	assert.Equal(t, []controller.Event{
		controller.Activated{Surface: ids[0]},
		controller.Activated{Surface: ids[2]},
		controller.Activated{Surface: ids[0]},
		controller.Activated{Surface: ids[2]},
	}, rec.events)
}

func TestSelectWithoutButtons(t *testing.T) {
	m, rec, _ := newModel(t, 0)
	update(t, m, press(tea.KeyEnter, ""))
	assert.Empty(t, rec.events)
}

func TestProgress(t *testing.T) {
	m, _, _ := newModel(t, 0)
	assert.Equal(t, "Main Menu", m.title())
	assert.Empty(t, m.progress())

	m = update(t, m, RedrawMsg{Status: controller.Status{
		State: activity.InLesson, Title: "Lesson 1", Index: 2, Total: 10, Held: []int{60, 64},
	}})
	assert.Equal(t, "Lesson 1", m.title())
	assert.Equal(t, "3/10   ♪ C4 E4", m.progress())

	m = update(t, m, RedrawMsg{Status: controller.Status{
		State: activity.InDrill, Title: "Drill 1", Index: 0, Total: 20, Missed: 2, Remaining: 95 * time.Second,
	}})
	assert.Equal(t, "1/20   ✘ 2   1:35", m.progress())
}

func TestFrame(t *testing.T) {
	m, _, _ := newModel(t, 1)
	assert.True(t, m.View().AltScreen)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.frame(), "Pitch Perfect")
	assert.Contains(t, m.frame(), "Navigate")

	m = update(t, m, RedrawMsg{Status: controller.Status{State: activity.InLesson, Total: 1}})
	assert.Contains(t, m.frame(), "Play from C4")

	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.frame(), "Terminal too small")
}

func TestNotifierCoalesces(t *testing.T) {
	n := NewNotifier(5 * time.Millisecond)
	got := make(chan tea.Msg, 4)
	n.Attach(func(msg tea.Msg) { got <- msg })

	n.Notify(controller.Status{Index: 1})
	n.Notify(controller.Status{Index: 2})
	n.Notify(controller.Status{Index: 3})

	select {
	case msg := <-got:
		assert.Equal(t, RedrawMsg{Status: controller.Status{Index: 3}}, msg)
	case <-time.After(time.Second):
		t.Fatal("no redraw")
	}
	select {
	case msg := <-got:
		t.Fatalf("unexpected second redraw %v", msg)
	case <-time.After(30 * time.Millisecond):
	}
}
