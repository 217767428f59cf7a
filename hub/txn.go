package hub

import "errors"

// txn stages every read and write of one engine operation. Reads are served
// from the staged set first, so an operation observes its own writes;
// nothing reaches the store until commit, so a failed operation leaves no
// partial state. Read-only operations simply never commit.
type txn struct {
	store  Store
	states map[StateKey]*StreamState
	deltas map[DeltaKey]AmtDelta
}

func newTxn(store Store) *txn {
	return &txn{
		store:  store,
		states: make(map[StateKey]*StreamState),
		deltas: make(map[DeltaKey]AmtDelta),
	}
}

// state returns the staged stream state for the key, loading it from the
// store on first access. An absent record reads as the zero state. The
// returned pointer is the staged instance: mutations are part of the write
// set, and every caller within the operation sees the same instance.
func (t *txn) state(k StateKey) (*StreamState, error) {
	if st, ok := t.states[k]; ok {
		return st, nil
	}
	st, err := t.store.State(k)
	if err != nil && !errors.Is(err, ErrStateNotFound) {
		return nil, err
	}
	staged := st
	t.states[k] = &staged
	return &staged, nil
}

// delta returns the staged delta for the key, loading it on first access.
// The big.Int fields are the staged instances; accumulating into them
// updates the write set in place.
func (t *txn) delta(k DeltaKey) (AmtDelta, error) {
	if d, ok := t.deltas[k]; ok {
		return d, nil
	}
	d, err := t.store.Delta(k)
	if err != nil {
		return AmtDelta{}, err
	}
	t.deltas[k] = d
	return d, nil
}

// commit writes the staged set to the store in one atomic batch.
func (t *txn) commit() error {
	b := NewBatch()
	for k, st := range t.states {
		b.States[k] = *st
	}
	for k, d := range t.deltas {
		b.Deltas[k] = d
	}
	return t.store.Commit(b)
}
