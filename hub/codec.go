package hub

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

const (
	stateRecSize = 64 // hash(32) + lastUpdate(8) + defaultEnd(8) + balance(8) + nextReceivableCycle(8)
	deltaRecSize = 32 // thisCycle(16) + nextCycle(16), two's complement big-endian
)

// encodeState serializes a StreamState to its fixed-width binary record.
func encodeState(st StreamState) []byte {
	buf := make([]byte, stateRecSize)
	copy(buf[0:32], st.ReceiversHash[:])
	binary.BigEndian.PutUint64(buf[32:40], st.LastUpdate)
	binary.BigEndian.PutUint64(buf[40:48], st.DefaultEnd)
	binary.BigEndian.PutUint64(buf[48:56], st.Balance)
	binary.BigEndian.PutUint64(buf[56:64], st.NextReceivableCycle)
	return buf
}

// decodeState deserializes a binary record into a StreamState.
func decodeState(data []byte) (StreamState, error) {
	if len(data) != stateRecSize {
		return StreamState{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidStateData, stateRecSize, len(data))
	}
	var st StreamState
	copy(st.ReceiversHash[:], data[0:32])
	st.LastUpdate = binary.BigEndian.Uint64(data[32:40])
	st.DefaultEnd = binary.BigEndian.Uint64(data[40:48])
	st.Balance = binary.BigEndian.Uint64(data[48:56])
	st.NextReceivableCycle = binary.BigEndian.Uint64(data[56:64])
	return st, nil
}

// encodeDelta serializes an AmtDelta. Both fields must already be within
// the signed 128-bit range; the accumulator rejects anything beyond it
// before staging.
func encodeDelta(d AmtDelta) []byte {
	buf := make([]byte, deltaRecSize)
	putInt128(buf[0:16], d.ThisCycle)
	putInt128(buf[16:32], d.NextCycle)
	return buf
}

// decodeDelta deserializes a binary record into an AmtDelta.
func decodeDelta(data []byte) (AmtDelta, error) {
	if len(data) != deltaRecSize {
		return AmtDelta{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidDeltaData, deltaRecSize, len(data))
	}
	return AmtDelta{
		ThisCycle: int128At(data[0:16]),
		NextCycle: int128At(data[16:32]),
	}, nil
}

// putInt128 writes v as a 16-byte two's complement big-endian value.
func putInt128(dst []byte, v *big.Int) {
	u := v
	if v.Sign() < 0 {
		u = new(big.Int).Add(two128, v)
	}
	u.FillBytes(dst[:16])
}

// int128At reads a 16-byte two's complement big-endian value.
func int128At(src []byte) *big.Int {
	v := new(big.Int).SetBytes(src[:16])
	if v.Bit(127) == 1 {
		v.Sub(v, two128)
	}
	return v
}
