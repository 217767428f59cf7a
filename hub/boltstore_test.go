package hub

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "streams.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBoltStore_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dirs", "streams.db")
	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestBoltStore_StateRoundTrip(t *testing.T) {
	s := newTestBoltStore(t)
	k := StateKey{Asset: 1, Account: 2}

	_, err := s.State(k)
	assert.ErrorIs(t, err, ErrStateNotFound)

	st := StreamState{
		LastUpdate:          10,
		DefaultEnd:          60,
		Balance:             500,
		NextReceivableCycle: 2,
	}
	st.ReceiversHash[0] = 0xab

	b := NewBatch()
	b.States[k] = st
	require.NoError(t, s.Commit(b))

	got, err := s.State(k)
	require.NoError(t, err)
	assert.Equal(t, st, got)
}

func TestBoltStore_DeltaRoundTrip(t *testing.T) {
	s := newTestBoltStore(t)
	k := DeltaKey{Asset: 1, Account: 2, Cycle: 3}

	d, err := s.Delta(k)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	b := NewBatch()
	b.Deltas[k] = AmtDelta{ThisCycle: big.NewInt(-42), NextCycle: big.NewInt(7)}
	require.NoError(t, s.Commit(b))

	d, err = s.Delta(k)
	require.NoError(t, err)
	assert.Equal(t, int64(-42), d.ThisCycle.Int64())
	assert.Equal(t, int64(7), d.NextCycle.Int64())

	// A zero delta in a batch removes the stored entry.
	b = NewBatch()
	b.Deltas[k] = NewAmtDelta()
	require.NoError(t, s.Commit(b))

	d, err = s.Delta(k)
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streams.db")
	s, err := OpenBoltStore(path)
	require.NoError(t, err)

	k := StateKey{Asset: 9, Account: 9}
	b := NewBatch()
	b.States[k] = StreamState{Balance: 77}
	b.Deltas[DeltaKey{Asset: 9, Account: 9, Cycle: 1}] = AmtDelta{
		ThisCycle: big.NewInt(5), NextCycle: big.NewInt(0),
	}
	require.NoError(t, s.Commit(b))
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	st, err := s.State(k)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), st.Balance)

	d, err := s.Delta(DeltaKey{Asset: 9, Account: 9, Cycle: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(5), d.ThisCycle.Int64())
}
