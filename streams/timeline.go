package streams

import (
	"fmt"
	"math/big"
)

var ratePrecision = big.NewInt(RatePrecision)

// Timeline fixes the settlement cycle length and derives all cycle and
// amount arithmetic from it. Cycles are numbered from 1 so that cycle 0 can
// mean "never"; cycle n covers [(n-1)*CycleSecs, n*CycleSecs).
type Timeline struct {
	cycleSecs uint64
}

// NewTimeline returns a timeline with the given cycle length in seconds.
func NewTimeline(cycleSecs uint64) (Timeline, error) {
	if cycleSecs == 0 {
		return Timeline{}, ErrInvalidCycleSecs
	}
	return Timeline{cycleSecs: cycleSecs}, nil
}

// CycleSecs returns the cycle length in seconds.
func (tl Timeline) CycleSecs() uint64 { return tl.cycleSecs }

// CycleOf returns the number of the cycle containing ts.
func (tl Timeline) CycleOf(ts uint64) uint64 {
	return ts/tl.cycleSecs + 1
}

// CycleStart returns the first timestamp of the given cycle.
func (tl Timeline) CycleStart(cycle uint64) uint64 {
	return (cycle - 1) * tl.cycleSecs
}

// DrippedAmount returns the amount transferred by one receiver streaming at
// rate over the half-open range [start, end). The amount is computed as the
// difference of a per-timestamp prefix function, so it is exactly additive
// across adjoining ranges and each second's contribution depends only on the
// second's position within its cycle, never on when streaming began.
func (tl Timeline) DrippedAmount(rate, start, end uint64) (uint64, error) {
	if end < start {
		return 0, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, start, end)
	}
	amt := tl.drippedAmt(rate, start, end)
	if !amt.IsUint64() {
		return 0, fmt.Errorf("%w: rate %d over [%d, %d)", ErrAmountOverflow, rate, start, end)
	}
	return amt.Uint64(), nil
}

// drippedAmt is DrippedAmount without the uint64 clamp, for callers that
// only compare the result against a balance.
func (tl Timeline) drippedAmt(rate, start, end uint64) *big.Int {
	amt := tl.drippedUpTo(rate, end)
	return amt.Sub(amt, tl.drippedUpTo(rate, start))
}

// drippedUpTo is the prefix function F(t): the full cycles before t each
// contribute the truncated whole-cycle amount, and the partial cycle
// containing t contributes the truncated amount for t's offset within it.
// Both divisions truncate; rounding up anywhere would let a stream transfer
// more than rate*elapsed/RatePrecision.
func (tl Timeline) drippedUpTo(rate, t uint64) *big.Int {
	r := new(big.Int).SetUint64(rate)

	perCycle := new(big.Int).SetUint64(tl.cycleSecs)
	perCycle.Mul(perCycle, r)
	perCycle.Quo(perCycle, ratePrecision)
	full := new(big.Int).SetUint64(t / tl.cycleSecs)
	full.Mul(full, perCycle)

	part := new(big.Int).SetUint64(t % tl.cycleSecs)
	part.Mul(part, r)
	part.Quo(part, ratePrecision)

	return full.Add(full, part)
}
