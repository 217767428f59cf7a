package hub

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore_State(t *testing.T) {
	s := NewMemStore()
	k := StateKey{Asset: 1, Account: 2}

	_, err := s.State(k)
	assert.ErrorIs(t, err, ErrStateNotFound)

	b := NewBatch()
	b.States[k] = StreamState{Balance: 100, LastUpdate: 5}
	require.NoError(t, s.Commit(b))

	st, err := s.State(k)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), st.Balance)
	assert.Equal(t, uint64(5), st.LastUpdate)
}

func TestMemStore_Delta(t *testing.T) {
	s := NewMemStore()
	k := DeltaKey{Asset: 1, Account: 2, Cycle: 3}

	// Absent entries read as zero.
	d, err := s.Delta(k)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	b := NewBatch()
	b.Deltas[k] = AmtDelta{ThisCycle: big.NewInt(7), NextCycle: big.NewInt(-3)}
	require.NoError(t, s.Commit(b))

	d, err = s.Delta(k)
	require.NoError(t, err)
	assert.Equal(t, int64(7), d.ThisCycle.Int64())
	assert.Equal(t, int64(-3), d.NextCycle.Int64())
	assert.Equal(t, 1, s.DeltaCount())
}

func TestMemStore_ZeroDeltaDeleted(t *testing.T) {
	s := NewMemStore()
	k := DeltaKey{Asset: 1, Account: 2, Cycle: 3}

	b := NewBatch()
	b.Deltas[k] = AmtDelta{ThisCycle: big.NewInt(7), NextCycle: big.NewInt(0)}
	require.NoError(t, s.Commit(b))
	assert.Equal(t, 1, s.DeltaCount())

	b = NewBatch()
	b.Deltas[k] = NewAmtDelta()
	require.NoError(t, s.Commit(b))
	assert.Equal(t, 0, s.DeltaCount())
}

// The store owns its copies: mutating a read or committed value must not
// leak into it.
func TestMemStore_Isolation(t *testing.T) {
	s := NewMemStore()
	k := DeltaKey{Asset: 1, Account: 2, Cycle: 3}

	committed := AmtDelta{ThisCycle: big.NewInt(7), NextCycle: big.NewInt(0)}
	b := NewBatch()
	b.Deltas[k] = committed
	require.NoError(t, s.Commit(b))

	committed.ThisCycle.SetInt64(999)

	d, err := s.Delta(k)
	require.NoError(t, err)
	assert.Equal(t, int64(7), d.ThisCycle.Int64())

	d.ThisCycle.SetInt64(123)
	again, err := s.Delta(k)
	require.NoError(t, err)
	assert.Equal(t, int64(7), again.ThisCycle.Int64())
}

func TestMemStore_NilBatch(t *testing.T) {
	s := NewMemStore()
	assert.NoError(t, s.Commit(nil))
	assert.NoError(t, s.Close())
}
