// Package state holds the editor's canvases and items.
//
// Every mutation goes through Store.Update, which clones the current
// snapshot, applies the change to the clone and then publishes the clone as
// the new current reference. Observers compare references to detect change.
package state

import "gridboard/internal/domain"

// Store owns the current snapshot and its subscribers.
type Store struct {
	current  *Snapshot
	nextSub  int
	subs     map[int]func(*Snapshot)
	subOrder []int
}

// New returns a store holding an empty snapshot for viewport.
func New(viewport domain.Viewport) *Store {
	return &Store{current: NewSnapshot(viewport), subs: make(map[int]func(*Snapshot))}
}

// Snapshot returns the current published snapshot. Callers must not modify it.
func (s *Store) Snapshot() *Snapshot {
	return s.current
}

// Update applies fn to a copy of the current snapshot and publishes the copy.
// If fn returns an error nothing is published.
func (s *Store) Update(fn func(next *Snapshot) error) error {
	next := s.current.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.Version = s.current.Version + 1
	s.current = next
	s.notify()
	return nil
}

// Replace publishes snap as the new state. The store takes ownership of snap.
func (s *Store) Replace(snap *Snapshot) {
	snap.Version = s.current.Version + 1
	s.current = snap
	s.notify()
}

// Subscribe registers fn to receive every published snapshot.
func (s *Store) Subscribe(fn func(*Snapshot)) func() {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subOrder = append(s.subOrder, id)
	return func() {
		delete(s.subs, id)
		for i, v := range s.subOrder {
			if v == id {
				s.subOrder = append(s.subOrder[:i], s.subOrder[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) notify() {
	snap := s.current
	for _, id := range s.subOrder {
		if fn, ok := s.subs[id]; ok {
			fn(snap)
		}
	}
}
