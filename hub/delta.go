package hub

import (
	"fmt"
	"math/big"

	"github.com/radicle-dev/drips-go/streams"
)

var ratePrecision = big.NewInt(streams.RatePrecision)

// addDeltaRange records that the account's incoming rate changes by rate
// during [start, end): +rate takes effect at start, -rate at end. The empty
// range is a no-op. An inverted range (start > end) is valid and contributes
// the negated amount; the differ relies on this when it squashes a stream
// shift into two range applications.
func (t *txn) addDeltaRange(tl streams.Timeline, asset, account uint64, start, end uint64, rate *big.Int) error {
	if start == end {
		return nil
	}
	if err := t.addDelta(tl, asset, account, start, rate); err != nil {
		return err
	}
	return t.addDelta(tl, asset, account, end, new(big.Int).Neg(rate))
}

// addDelta applies a rate change taking effect at ts. The change lands in
// ts's cycle as two compensating entries sized with the same truncating
// split as the dripped-amount prefix function: ThisCycle carries the
// whole-cycle amount minus the part before ts, NextCycle carries the part
// before ts. Summing ThisCycle then NextCycle entries cycle by cycle during
// settlement therefore reproduces exactly the directly computed dripped
// amount.
func (t *txn) addDelta(tl streams.Timeline, asset, account uint64, ts uint64, rate *big.Int) error {
	whole := new(big.Int).SetUint64(tl.CycleSecs())
	whole.Mul(whole, rate)
	whole.Quo(whole, ratePrecision)

	next := new(big.Int).SetUint64(ts % tl.CycleSecs())
	next.Mul(next, rate)
	next.Quo(next, ratePrecision)

	d, err := t.delta(DeltaKey{Asset: asset, Account: account, Cycle: tl.CycleOf(ts)})
	if err != nil {
		return err
	}
	d.ThisCycle.Add(d.ThisCycle, whole.Sub(whole, next))
	d.NextCycle.Add(d.NextCycle, next)
	if !inInt128(d.ThisCycle) || !inInt128(d.NextCycle) {
		return fmt.Errorf("%w: account %d cycle %d", ErrDeltaOverflow, account, tl.CycleOf(ts))
	}
	return nil
}
