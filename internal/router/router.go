package router

import "github.com/abhisek/pitchperfect/internal/scene"

// Surfaces shows and hides menu subtrees.
type Surfaces interface {
	ShowSubtree(id scene.ID)
	Hide(id scene.ID)
}

// Router manages a stack of menu roots. Only the top menu is visible, and
// nothing is visible while an activity has the screen.
type Router struct {
	surfaces  Surfaces
	home      scene.ID
	stack     []scene.ID
	suspended bool
}

// New creates a Router with home as the bottom menu and shows it.
func New(s Surfaces, home scene.ID) *Router {
	r := &Router{
		surfaces: s,
		home:     home,
		stack:    []scene.ID{home},
	}
	s.ShowSubtree(home)
	return r
}

// Push hides the active menu and shows id on top of it.
func (r *Router) Push(id scene.ID) {
	r.hideActive()
	r.stack = append(r.stack, id)
	r.surfaces.ShowSubtree(id)
}

// Pop returns to the previous menu. No-op if stack depth would become 0.
func (r *Router) Pop() bool {
	if len(r.stack) <= 1 {
		return false
	}
	r.hideActive()
	r.stack = r.stack[:len(r.stack)-1]
	r.surfaces.ShowSubtree(r.Active())
	return true
}

// Replace swaps the active menu for id, keeping the depth.
func (r *Router) Replace(id scene.ID) {
	r.hideActive()
	r.stack[len(r.stack)-1] = id
	r.surfaces.ShowSubtree(id)
}

// Home clears the stack down to the home menu.
func (r *Router) Home() {
	r.hideActive()
	r.stack = r.stack[:1]
	r.surfaces.ShowSubtree(r.home)
}

// Suspend hides the active menu while an activity runs. The next Push,
// Pop, Replace or Home shows a menu again.
func (r *Router) Suspend() {
	r.hideActive()
	r.suspended = true
}

// Suspended reports whether an activity has the screen.
func (r *Router) Suspended() bool { return r.suspended }

// Active returns the top menu on the stack.
func (r *Router) Active() scene.ID {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of menus on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

func (r *Router) hideActive() {
	if !r.suspended {
		r.surfaces.Hide(r.Active())
	}
	r.suspended = false
}
