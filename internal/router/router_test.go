package router

import (
	"testing"

	"github.com/abhisek/pitchperfect/internal/scene"
)

// stubSurfaces tracks which roots are visible.
type stubSurfaces struct {
	visible map[scene.ID]bool
}

func newStub() *stubSurfaces { return &stubSurfaces{visible: map[scene.ID]bool{}} }

func (s *stubSurfaces) ShowSubtree(id scene.ID) { s.visible[id] = true }
func (s *stubSurfaces) Hide(id scene.ID) { s.visible[id] = false }

func (s *stubSurfaces) shown() []scene.ID {
	var out []scene.ID
	for id, v := range s.visible {
		if v {
			out = append(out, id)
		}
	}
	return out
}

func TestNewShowsHome(t *testing.T) {
	s := newStub()
	r := New(s, 7)

	if r.Depth() != 1 || r.Active() != 7 {
		t.Errorf("depth %d active %d, want 1 and 7", r.Depth(), r.Active())
	}
	if !s.visible[7] {
		t.Error("expected home to be visible")
	}
}

func TestPush(t *testing.T) {
	s := newStub()
	r := New(s, 1)

	r.Push(2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active() != 2 {
		t.Errorf("expected active 2, got %d", r.Active())
	}
	if s.visible[1] || !s.visible[2] {
		t.Errorf("visible = %v, want only 2", s.shown())
	}
}

func TestPop(t *testing.T) {
	s := newStub()
	r := New(s, 1)
	r.Push(2)

	if !r.Pop() {
		t.Fatal("expected pop to succeed")
	}
	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if !s.visible[1] || s.visible[2] {
		t.Errorf("visible = %v, want only 1", s.shown())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s := newStub()
	r := New(s, 1)

	if r.Pop() {
		t.Error("expected pop at bottom to report false")
	}
	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
	if !s.visible[1] {
		t.Error("home should stay visible")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s := newStub()
	r := New(s, 1)
	r.Push(2)

	r.Replace(3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active() != 3 {
		t.Errorf("expected active 3, got %d", r.Active())
	}
	if s.visible[2] {
		t.Error("replaced menu still visible")
	}
}

func TestHome(t *testing.T) {
	s := newStub()
	r := New(s, 1)
	r.Push(2)
	r.Push(3)

	r.Home()

	if r.Depth() != 1 || r.Active() != 1 {
		t.Errorf("depth %d active %d, want 1 and 1", r.Depth(), r.Active())
	}
	if len(s.shown()) != 1 || !s.visible[1] {
		t.Errorf("visible = %v, want only home", s.shown())
	}
}

func TestSuspendAndResume(t *testing.T) {
	s := newStub()
	r := New(s, 1)
	r.Push(2)

	r.Suspend()
	if !r.Suspended() {
		t.Fatal("expected suspended")
	}
	if len(s.shown()) != 0 {
		t.Errorf("visible = %v while suspended, want none", s.shown())
	}

	// Pretend the activity screen reused menu 2's slot; a push after the
	// activity must not hide it again.
	s.visible[2] = true
	r.Push(5)
	if r.Suspended() {
		t.Error("push should end the suspension")
	}
	if !s.visible[2] || !s.visible[5] {
		t.Errorf("visible = %v, want 2 untouched and 5 shown", s.shown())
	}
	if r.Depth() != 3 {
		t.Errorf("expected depth 3, got %d", r.Depth())
	}
}
