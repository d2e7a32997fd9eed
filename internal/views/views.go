// Package views builds every surface of the trainer on the composition
// tree: the lesson and drill card views, the menus and the completion
// screens. Buttons carry command lines that are executed on activation.
package views

import (
	"fmt"

	"github.com/abhisek/pitchperfect/internal/catalog"
	"github.com/abhisek/pitchperfect/internal/scene"
)

// Screen space every box is expressed in.
const (
	ScreenWidth  = 1350
	ScreenHeight = 750
	Padding      = 50
)

// FullScreen is the box of every top-level surface.
var FullScreen = scene.Box{XStart: 0, XEnd: ScreenWidth, YStart: 0, YEnd: ScreenHeight}

// Colours used by rectangles.
const (
	ColorBackground  = "#0F172A"
	ColorProgressBg  = "#808080"
	ColorProgressBar = "#22C55E"
)

// Views owns the surfaces built on a tree.
type Views struct {
	tree    *scene.Tree
	buttons map[scene.ID]string

	Lesson *CardView
	Drill  *CardView
	Menus  *Menus
}

// Build creates every surface for cat on tree. All of them start hidden.
func Build(tree *scene.Tree, cat *catalog.Catalog) *Views {
	v := &Views{
		tree:    tree,
		buttons: make(map[scene.ID]string),
	}
	v.Lesson = v.newCardView(true)
	v.Drill = v.newCardView(false)
	v.Menus = v.buildMenus(cat)
	tree.SortViewOrder()
	return v
}

// Tree returns the tree the views are built on.
func (v *Views) Tree() *scene.Tree { return v.tree }

// Command returns the command line bound to a button.
func (v *Views) Command(id scene.ID) (string, bool) {
	cmd, ok := v.buttons[id]
	return cmd, ok
}

// Buttons returns every button id in creation order.
func (v *Views) Buttons() []scene.ID {
	ids := make([]scene.ID, 0, len(v.buttons))
	for id := 0; id < v.tree.Len(); id++ {
		if _, ok := v.buttons[scene.ID(id)]; ok {
			ids = append(ids, scene.ID(id))
		}
	}
	return ids
}

// ShowSubtree makes id and every node below it visible.
func (v *Views) ShowSubtree(id scene.ID) {
	stack := []scene.ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v.tree.SetHidden(cur, false)
		for _, c := range v.tree.Children(cur) {
			if c != scene.NoID {
				stack = append(stack, c)
			}
		}
	}
}

// Hide hides id and everything below it.
func (v *Views) Hide(id scene.ID) { v.tree.SetHidden(id, true) }

func (v *Views) root() scene.ID {
	id := v.tree.Create(scene.KindRectangle)
	v.tree.Move(id, FullScreen)
	v.tree.SetContent(id, scene.Content{Color: ColorBackground})
	return id
}

func (v *Views) add(parent scene.ID, kind scene.Kind, box scene.Box, c scene.Content) scene.ID {
	id := v.tree.Create(kind)
	v.tree.Attach(parent, id, box)
	v.tree.SetContent(id, c)
	return id
}

func (v *Views) button(parent scene.ID, box scene.Box, label, command string) scene.ID {
	id := v.add(parent, scene.KindButton, box, scene.Content{Text: label})
	v.buttons[id] = command
	return id
}

func (v *Views) rebind(id scene.ID, command string) {
	if _, ok := v.buttons[id]; !ok {
		panic(fmt.Sprintf("views: %d is not a button", id))
	}
	v.buttons[id] = command
}
