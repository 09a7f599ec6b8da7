package registry

import "sync/atomic"

// Store holds the current snapshot for long-lived processes that reload the
// registry while compositions are in flight. Replacement is an atomic
// pointer swap: readers either see the old catalog or the new one, never a
// half-updated view.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store holding the given initial snapshot.
func NewStore(initial *Snapshot) *Store {
	s := &Store{}
	s.current.Store(initial)
	return s
}

// Snapshot returns the current snapshot. Callers keep the returned pointer
// for the duration of one composition; a concurrent Swap does not affect it.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Swap atomically replaces the current snapshot and returns the previous one.
func (s *Store) Swap(next *Snapshot) *Snapshot {
	return s.current.Swap(next)
}
