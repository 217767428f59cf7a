package streams

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// receiverEncSize is the fixed width of one encoded receiver:
// account(8) + rate(8) + start(8) + duration(8).
const receiverEncSize = 32

// HashReceivers returns the Keccak-256 fingerprint of a canonical receiver
// list. The fingerprint is the only durable representation of the list: the
// engine stores it and verifies caller-supplied lists against it. The empty
// list hashes to the zero fingerprint, which is also the fingerprint of an
// account that was never configured.
//
// The input is assumed canonical (see ValidateReceivers); hashing an
// unsorted list produces a fingerprint that will never match a stored one.
func HashReceivers(receivers []Receiver) [32]byte {
	var out [32]byte
	if len(receivers) == 0 {
		return out
	}
	h := sha3.NewLegacyKeccak256()
	var buf [receiverEncSize]byte
	for _, r := range receivers {
		binary.BigEndian.PutUint64(buf[0:8], r.AccountID)
		binary.BigEndian.PutUint64(buf[8:16], r.Config.Rate)
		binary.BigEndian.PutUint64(buf[16:24], r.Config.Start)
		binary.BigEndian.PutUint64(buf[24:32], r.Config.Duration)
		h.Write(buf[:])
	}
	h.Sum(out[:0])
	return out
}
