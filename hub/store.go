package hub

import "sync"

// Store persists stream states and cycle deltas. An engine operation stages
// all of its writes and commits them in one Batch; a store must apply a
// batch completely or not at all.
//
// Values returned by State and Delta are owned by the caller; mutating them
// must not affect the store.
type Store interface {
	// State returns the stream state for the key, or ErrStateNotFound.
	State(k StateKey) (StreamState, error)

	// Delta returns the delta entry for the key; absent entries read as a
	// zero delta.
	Delta(k DeltaKey) (AmtDelta, error)

	// Commit atomically applies a batch. Zero deltas in the batch are
	// removed from storage rather than written.
	Commit(b *Batch) error

	// Close releases the store's resources.
	Close() error
}

// Batch is the write set of one engine operation.
type Batch struct {
	States map[StateKey]StreamState
	Deltas map[DeltaKey]AmtDelta
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{
		States: make(map[StateKey]StreamState),
		Deltas: make(map[DeltaKey]AmtDelta),
	}
}

// MemStore is an in-memory implementation of Store. It is the reference
// semantics for other implementations and the store used in tests.
type MemStore struct {
	mu     sync.RWMutex
	states map[StateKey]StreamState
	deltas map[DeltaKey]AmtDelta
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		states: make(map[StateKey]StreamState),
		deltas: make(map[DeltaKey]AmtDelta),
	}
}

// State returns the stream state for the key, or ErrStateNotFound.
func (s *MemStore) State(k StateKey) (StreamState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[k]
	if !ok {
		return StreamState{}, ErrStateNotFound
	}
	return st, nil
}

// Delta returns the delta entry for the key, a zero delta if absent.
func (s *MemStore) Delta(k DeltaKey) (AmtDelta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.deltas[k]
	if !ok {
		return NewAmtDelta(), nil
	}
	return d.Clone(), nil
}

// Commit applies a batch under the write lock.
func (s *MemStore) Commit(b *Batch) error {
	if b == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, st := range b.States {
		s.states[k] = st
	}
	for k, d := range b.Deltas {
		if d.IsZero() {
			delete(s.deltas, k)
			continue
		}
		s.deltas[k] = d.Clone()
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }

// DeltaCount returns the number of stored (non-zero) delta entries.
func (s *MemStore) DeltaCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deltas)
}
