// Package scene holds the composition tree every on-screen surface is built
// from. Nodes own absolute boxes, a depth rank and a visibility flag, and
// cascade moves, rank shifts and hides down to their children.
package scene

import (
	"fmt"
	"sort"
)

// ID addresses a node. IDs are assigned sequentially from 0 and never reused.
type ID int

// NoID marks an empty slot in a children list.
const NoID ID = -1

// Kind is the surface kind a node was created as.
type Kind int

const (
	KindText Kind = iota
	KindImage
	KindRectangle
	KindButton
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindRectangle:
		return "rectangle"
	case KindButton:
		return "button"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a factory key to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "text":
		return KindText, nil
	case "image":
		return KindImage, nil
	case "rectangle":
		return KindRectangle, nil
	case "button":
		return KindButton, nil
	}
	return 0, fmt.Errorf("unknown surface kind %q", s)
}

// Box is an axis-aligned bounding box in screen units.
type Box struct {
	XStart, XEnd int
	YStart, YEnd int
}

// Translate returns the box shifted by (dx, dy).
func (b Box) Translate(dx, dy int) Box {
	return Box{XStart: b.XStart + dx, XEnd: b.XEnd + dx, YStart: b.YStart + dy, YEnd: b.YEnd + dy}
}

func (b Box) Width() int { return b.XEnd - b.XStart }
func (b Box) Height() int { return b.YEnd - b.YStart }

// Content is what a surface displays. Text applies to text and button nodes,
// Asset to image nodes and Color to rectangles.
type Content struct {
	Text  string
	Asset string
	Color string
}

// Renderer receives the tree's state changes. Implementations draw; the tree
// never reads anything back.
type Renderer interface {
	Create(id ID, kind Kind)
	ApplyBox(id ID, box Box)
	ApplyVisibility(id ID, visible bool)
	ApplyContent(id ID, content Content)
}

// Orderer is implemented by renderers that care about draw order.
type Orderer interface {
	ApplyOrder(ids []ID)
}

// NopRenderer discards every update.
type NopRenderer struct{}

func (NopRenderer) Create(ID, Kind) {}
func (NopRenderer) ApplyBox(ID, Box) {}
func (NopRenderer) ApplyVisibility(ID, bool) {}
func (NopRenderer) ApplyContent(ID, Content) {}

const initialCapacity = 8

type node struct {
	kind     Kind
	box      Box
	rank     int
	hidden   bool
	parent   ID
	children []ID // len == capacity, unused slots hold NoID
	count    int
	content  Content
}

// Tree owns every node. It is not safe for concurrent use; a single writer
// drives it.
type Tree struct {
	nodes    []node
	renderer Renderer
}

// New creates an empty tree reporting to r. A nil renderer discards updates.
func New(r Renderer) *Tree {
	if r == nil {
		r = NopRenderer{}
	}
	return &Tree{renderer: r}
}

func (t *Tree) node(id ID) *node {
	if id < 0 || int(id) >= len(t.nodes) {
		panic(fmt.Sprintf("scene: unknown node %d", id))
	}
	return &t.nodes[id]
}

// Create allocates a hidden node with a zero box under the next id.
func (t *Tree) Create(kind Kind) ID {
	id := ID(len(t.nodes))
	children := make([]ID, initialCapacity)
	for i := range children {
		children[i] = NoID
	}
	t.nodes = append(t.nodes, node{
		kind:     kind,
		hidden:   true,
		parent:   NoID,
		children: children,
	})
	t.renderer.Create(id, kind)
	t.renderer.ApplyVisibility(id, false)
	return id
}

// Attach makes child a child of parent. rel is relative to the parent's
// start corner. The child's rank becomes parent rank + 1.
func (t *Tree) Attach(parent, child ID, rel Box) {
	p := t.node(parent)
	c := t.node(child)
	if c.parent != NoID {
		panic(fmt.Sprintf("scene: node %d already attached to %d", child, c.parent))
	}
	for a := parent; a != NoID; a = t.nodes[a].parent {
		if a == child {
			panic(fmt.Sprintf("scene: attaching %d under %d creates a cycle", child, parent))
		}
	}

	p.children[p.count] = child
	p.count++
	if p.count == len(p.children)-1 {
		grown := make([]ID, len(p.children)*2)
		copy(grown, p.children)
		for i := len(p.children); i < len(grown); i++ {
			grown[i] = NoID
		}
		p.children = grown
	}
	c.parent = parent

	t.Move(child, rel.Translate(p.box.XStart, p.box.YStart))
	t.SetRank(child, p.rank+1)
}

// Move places id at box and shifts every descendant by the same start-corner
// delta. Descendant hooks run before the node's own.
func (t *Tree) Move(id ID, box Box) {
	n := t.node(id)
	dx := box.XStart - n.box.XStart
	dy := box.YStart - n.box.YStart
	n.box = box

	if dx != 0 || dy != 0 {
		for _, d := range t.descendants(id) {
			dn := &t.nodes[d]
			dn.box = dn.box.Translate(dx, dy)
			t.renderer.ApplyBox(d, dn.box)
		}
	}
	t.renderer.ApplyBox(id, box)
}

// SetAbsolute places id at box without touching its descendants.
func (t *Tree) SetAbsolute(id ID, box Box) {
	t.node(id).box = box
	t.renderer.ApplyBox(id, box)
}

// SetHidden hides or shows id. Hiding works bottom-up through the subtree
// and marks a node hidden only once all of its children are hidden. Showing
// affects id alone. Returns whether id ends up hidden.
func (t *Tree) SetHidden(id ID, hidden bool) bool {
	n := t.node(id)
	if !hidden {
		if n.hidden {
			n.hidden = false
			t.renderer.ApplyVisibility(id, true)
		}
		return false
	}

	order := append([]ID{id}, t.descendants(id)...)
	for i := len(order) - 1; i >= 0; i-- {
		t.tryHide(order[i])
	}
	return n.hidden
}

func (t *Tree) tryHide(id ID) {
	n := &t.nodes[id]
	if n.hidden {
		return
	}
	for _, c := range n.children[:n.count] {
		if !t.nodes[c].hidden {
			return
		}
	}
	n.hidden = true
	t.renderer.ApplyVisibility(id, false)
}

// SetRank sets the rank of id and shifts every descendant by the same delta.
func (t *Tree) SetRank(id ID, rank int) {
	n := t.node(id)
	delta := rank - n.rank
	if delta == 0 {
		return
	}
	n.rank = rank
	for _, d := range t.descendants(id) {
		t.nodes[d].rank += delta
	}
}

// SetContent replaces what id displays.
func (t *Tree) SetContent(id ID, c Content) {
	t.node(id).content = c
	t.renderer.ApplyContent(id, c)
}

// SetText replaces only the text of id.
func (t *Tree) SetText(id ID, text string) {
	n := t.node(id)
	n.content.Text = text
	t.renderer.ApplyContent(id, n.content)
}

// SetAsset replaces only the asset of id.
func (t *Tree) SetAsset(id ID, asset string) {
	n := t.node(id)
	n.content.Asset = asset
	t.renderer.ApplyContent(id, n.content)
}

// SortViewOrder hands the renderer every node ordered by rank, ties broken
// by id, and returns the same order.
func (t *Tree) SortViewOrder() []ID {
	ids := make([]ID, len(t.nodes))
	for i := range ids {
		ids[i] = ID(i)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return t.nodes[ids[i]].rank < t.nodes[ids[j]].rank
	})
	if o, ok := t.renderer.(Orderer); ok {
		o.ApplyOrder(ids)
	}
	return ids
}

// Children returns a copy of the children slots of id, holes included.
func (t *Tree) Children(id ID) []ID {
	n := t.node(id)
	out := make([]ID, len(n.children))
	copy(out, n.children)
	return out
}

// NumChildren returns how many children id owns.
func (t *Tree) NumChildren(id ID) int { return t.node(id).count }

func (t *Tree) Box(id ID) Box { return t.node(id).box }
func (t *Tree) Rank(id ID) int { return t.node(id).rank }
func (t *Tree) Hidden(id ID) bool { return t.node(id).hidden }
func (t *Tree) Kind(id ID) Kind { return t.node(id).kind }
func (t *Tree) Content(id ID) Content { return t.node(id).content }
func (t *Tree) Parent(id ID) ID { return t.node(id).parent }

// Exists reports whether id names a node.
func (t *Tree) Exists(id ID) bool { return id >= 0 && int(id) < len(t.nodes) }

// Len returns the number of nodes created so far.
func (t *Tree) Len() int { return len(t.nodes) }

// descendants lists the subtree below id in pre-order, id excluded.
func (t *Tree) descendants(id ID) []ID {
	var out []ID
	stack := []ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur != id {
			out = append(out, cur)
		}
		n := &t.nodes[cur]
		for i := n.count - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
	return out
}
