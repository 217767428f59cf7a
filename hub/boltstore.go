package hub

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	bucketStates = []byte("stream_states")
	bucketDeltas = []byte("amt_deltas")
)

// BoltStore is a Store backed by a bbolt database. States are keyed by
// asset|account, deltas by asset|account|cycle (all big-endian, so one
// account's deltas are cycle-ordered and prefix-scannable). A batch commit
// is one bbolt update transaction.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("hub: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("hub: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketStates, bucketDeltas} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("hub: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// stateKeyBytes encodes a state key as a 16-byte big-endian composite.
func stateKeyBytes(k StateKey) []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[0:8], k.Asset)
	binary.BigEndian.PutUint64(b[8:16], k.Account)
	return b
}

// deltaKeyBytes encodes a delta key as a 24-byte big-endian composite.
func deltaKeyBytes(k DeltaKey) []byte {
	b := make([]byte, 24)
	binary.BigEndian.PutUint64(b[0:8], k.Asset)
	binary.BigEndian.PutUint64(b[8:16], k.Account)
	binary.BigEndian.PutUint64(b[16:24], k.Cycle)
	return b
}

// State returns the stream state for the key, or ErrStateNotFound.
func (s *BoltStore) State(k StateKey) (StreamState, error) {
	var st StreamState
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStates).Get(stateKeyBytes(k))
		if data == nil {
			return ErrStateNotFound
		}
		var err error
		st, err = decodeState(data)
		return err
	})
	if err != nil {
		return StreamState{}, err
	}
	return st, nil
}

// Delta returns the delta entry for the key, a zero delta if absent.
func (s *BoltStore) Delta(k DeltaKey) (AmtDelta, error) {
	d := NewAmtDelta()
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDeltas).Get(deltaKeyBytes(k))
		if data == nil {
			return nil
		}
		var err error
		d, err = decodeDelta(data)
		return err
	})
	if err != nil {
		return AmtDelta{}, err
	}
	return d, nil
}

// Commit applies a batch in one bbolt update transaction.
func (s *BoltStore) Commit(b *Batch) error {
	if b == nil {
		return nil
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		states := tx.Bucket(bucketStates)
		for k, st := range b.States {
			if err := states.Put(stateKeyBytes(k), encodeState(st)); err != nil {
				return fmt.Errorf("boltstore: put state: %w", err)
			}
		}
		deltas := tx.Bucket(bucketDeltas)
		for k, d := range b.Deltas {
			key := deltaKeyBytes(k)
			if d.IsZero() {
				if err := deltas.Delete(key); err != nil {
					return fmt.Errorf("boltstore: delete delta: %w", err)
				}
				continue
			}
			if err := deltas.Put(key, encodeDelta(d)); err != nil {
				return fmt.Errorf("boltstore: put delta: %w", err)
			}
		}
		return nil
	})
}
