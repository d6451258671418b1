package editor

import "floormap/internal/geom"

// ElementStore is the ordered element collection. Ids are assigned on Add
// from a counter that only grows, so an id is never handed out twice.
type ElementStore struct {
	elements []geom.MapElement
	nextID   int

	subs   []subscriber
	subSeq int
}

type subscriber struct {
	id int
	fn func([]geom.MapElement)
}

func NewElementStore() *ElementStore {
	return &ElementStore{nextID: 1}
}

// Add appends e with a fresh id and returns the stored element.
func (s *ElementStore) Add(e geom.MapElement) geom.MapElement {
	e = e.Clone()
	e.ID = s.nextID
	s.nextID++
	s.elements = append(s.elements, e)
	s.notify()
	return e.Clone()
}

func (s *ElementStore) index(id int) int {
	for i, e := range s.elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the element with the given id.
func (s *ElementStore) Get(id int) (geom.MapElement, bool) {
	i := s.index(id)
	if i < 0 {
		return geom.MapElement{}, false
	}
	return s.elements[i].Clone(), true
}

// Replace swaps the stored element carrying e.ID for e, keeping its
// position. It reports false when no such element exists.
func (s *ElementStore) Replace(e geom.MapElement) bool {
	i := s.index(e.ID)
	if i < 0 {
		return false
	}
	s.elements[i] = e.Clone()
	s.notify()
	return true
}

// Remove deletes one element.
func (s *ElementStore) Remove(id int) bool {
	return s.RemoveAll([]int{id}) == 1
}

// RemoveAll deletes every listed element in one batch; subscribers see a
// single change. It returns how many elements were removed.
func (s *ElementStore) RemoveAll(ids []int) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.elements[:0:0]
	for _, e := range s.elements {
		if _, ok := drop[e.ID]; ok {
			continue
		}
		kept = append(kept, e)
	}
	n := len(s.elements) - len(kept)
	if n == 0 {
		return 0
	}
	s.elements = kept
	s.notify()
	return n
}

// Elements returns a copy of the collection in insertion order.
func (s *ElementStore) Elements() []geom.MapElement {
	out := make([]geom.MapElement, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.Clone()
	}
	return out
}

func (s *ElementStore) Len() int { return len(s.elements) }

// NextID is the id the next Add will assign.
func (s *ElementStore) NextID() int { return s.nextID }

// Load replaces the collection. Stored ids are kept; invalid elements are
// dropped and missing or duplicate ids get fresh ones. The counter
// continues after the highest id.
func (s *ElementStore) Load(elements []geom.MapElement) {
	s.elements = s.elements[:0:0]
	seen := make(map[int]struct{}, len(elements))
	maxID := 0
	for _, e := range elements {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	next := maxID + 1
	for _, e := range elements {
		if !e.Valid() {
			continue
		}
		e = e.Clone()
		if _, dup := seen[e.ID]; dup || e.ID <= 0 {
			e.ID = next
			next++
		}
		seen[e.ID] = struct{}{}
		s.elements = append(s.elements, e)
	}
	s.nextID = next
	s.notify()
}

// Subscribe registers fn to run after every change with the new
// collection. The returned func unregisters it.
func (s *ElementStore) Subscribe(fn func([]geom.MapElement)) func() {
	s.subSeq++
	id := s.subSeq
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *ElementStore) notify() {
	if len(s.subs) == 0 {
		return
	}
	snapshot := s.Elements()
	for _, sub := range s.subs {
		sub.fn(snapshot)
	}
}
