// Package render keeps the renderer-side copy of the composition tree that
// the terminal and PNG renderers draw from.
package render

import (
	"sync"

	"github.com/abhisek/pitchperfect/internal/scene"
)

// Surface is the last state the tree pushed for one node.
type Surface struct {
	ID      scene.ID
	Kind    scene.Kind
	Box     scene.Box
	Visible bool
	Content scene.Content
}

// Store records tree updates. It is safe for concurrent use so frames can
// be drawn while the controller mutates the tree.
type Store struct {
	mu       sync.Mutex
	surfaces map[scene.ID]*Surface
	created  []scene.ID
	order    []scene.ID
}

var (
	_ scene.Renderer = (*Store)(nil)
	_ scene.Orderer  = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{surfaces: make(map[scene.ID]*Surface)}
}

func (s *Store) Create(id scene.ID, kind scene.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surfaces[id] = &Surface{ID: id, Kind: kind}
	s.created = append(s.created, id)
}

func (s *Store) ApplyBox(id scene.ID, box scene.Box) {
	s.update(id, func(sf *Surface) { sf.Box = box })
}

func (s *Store) ApplyVisibility(id scene.ID, visible bool) {
	s.update(id, func(sf *Surface) { sf.Visible = visible })
}

func (s *Store) ApplyContent(id scene.ID, content scene.Content) {
	s.update(id, func(sf *Surface) { sf.Content = content })
}

func (s *Store) ApplyOrder(ids []scene.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order[:0], ids...)
}

func (s *Store) update(id scene.ID, fn func(*Surface)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sf, ok := s.surfaces[id]; ok {
		fn(sf)
	}
}

// IsVisible reports whether a surface is currently shown.
func (s *Store) IsVisible(id scene.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sf, ok := s.surfaces[id]
	return ok && sf.Visible
}

// Visible returns copies of the shown surfaces in draw order: the last
// applied order, then anything created after it in creation order.
func (s *Store) Visible() []Surface {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.order
	if len(s.order) != len(s.created) {
		seen := make(map[scene.ID]bool, len(s.order))
		for _, id := range s.order {
			seen[id] = true
		}
		ids = append([]scene.ID(nil), s.order...)
		for _, id := range s.created {
			if !seen[id] {
				ids = append(ids, id)
			}
		}
	}

	var out []Surface
	for _, id := range ids {
		if sf := s.surfaces[id]; sf != nil && sf.Visible {
			out = append(out, *sf)
		}
	}
	return out
}

// Centre returns the midpoint of a box.
func Centre(b scene.Box) (x, y int) {
	return (b.XStart + b.XEnd) / 2, (b.YStart + b.YEnd) / 2
}
