package hub

import "math/big"

// MaxBalance caps a single stream balance. Keeping balances in the int64
// range keeps them compatible with the signed balance deltas accepted by
// Configure.
const MaxBalance uint64 = 1<<63 - 1

var (
	two128    = new(big.Int).Lsh(big.NewInt(1), 128)
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// StateKey identifies the stream state of one account for one asset.
type StateKey struct {
	Asset   uint64
	Account uint64
}

// DeltaKey identifies one cycle's delta entry of a receiving account.
type DeltaKey struct {
	Asset   uint64
	Account uint64
	Cycle   uint64
}

// StreamState is the per-(asset, account) engine state. One record serves
// both roles of an account: the sender fields describe its outgoing
// configuration, NextReceivableCycle tracks its incoming settlement
// progress. A zero StreamState is the valid state of an account that was
// never configured and never received.
type StreamState struct {
	// ReceiversHash is the fingerprint of the active receiver list; the
	// list itself is not stored.
	ReceiversHash [32]byte

	// LastUpdate is the time of the last reconfiguration. Balance is the
	// amount remaining as of LastUpdate; together with DefaultEnd and the
	// active receiver list they reconstruct the balance at any later time.
	LastUpdate uint64
	Balance    uint64

	// DefaultEnd is the resolved exhaustion time for unbounded-duration
	// receivers as of the last reconfiguration.
	DefaultEnd uint64

	// NextReceivableCycle is the first cycle not yet consumed by
	// settlement, or 0 if nothing ever streamed to this account. Every
	// delta before it is zero, so the entry at it is an absolute baseline.
	NextReceivableCycle uint64
}

// AmtDelta is one cycle's pair of signed rate adjustments: ThisCycle takes
// effect within the cycle, NextCycle from the following cycle onward. Both
// are confined to the signed 128-bit range.
type AmtDelta struct {
	ThisCycle *big.Int
	NextCycle *big.Int
}

// NewAmtDelta returns a zero delta with allocated fields.
func NewAmtDelta() AmtDelta {
	return AmtDelta{ThisCycle: new(big.Int), NextCycle: new(big.Int)}
}

// IsZero reports whether both adjustments are zero. Zero deltas are not
// stored; deleting them is what keeps consumed cycles absolute baselines.
func (d AmtDelta) IsZero() bool {
	return d.ThisCycle.Sign() == 0 && d.NextCycle.Sign() == 0
}

// Clone returns a deep copy of the delta.
func (d AmtDelta) Clone() AmtDelta {
	return AmtDelta{
		ThisCycle: new(big.Int).Set(d.ThisCycle),
		NextCycle: new(big.Int).Set(d.NextCycle),
	}
}

// inInt128 reports whether v fits the signed 128-bit delta range.
func inInt128(v *big.Int) bool {
	return v.Cmp(minInt128) >= 0 && v.Cmp(maxInt128) <= 0
}
