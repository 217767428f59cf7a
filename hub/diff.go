package hub

import (
	"math/big"

	"github.com/radicle-dev/drips-go/streams"
)

// applyReceiverChanges reconciles the old receiver list against the new one
// in a single linear merge over both pre-sorted lists, adjusting each
// touched receiver's cycle deltas.
//
// When both cursors point at the same account streaming at the same rate,
// the entry is treated as one stream being time-shifted: instead of
// removing [currStart, currEnd) and adding [newStart, newEnd), the merge
// applies -rate over [currStart, newStart) and +rate over [currEnd, newEnd).
// The four point changes are identical, but overlapping ranges collapse to
// two short adjustments. Entries that differ in rate are processed
// independently in canonical order: a removal for ones only in the old
// list, an addition for ones only in the new.
//
// Removals and additions are capped to start no earlier than now: elapsed
// time is already accounted in the sender's balance and must not be
// re-touched. When an addition (or a shift) makes a stream start before
// what its account was guaranteed to have received up to, the account's
// NextReceivableCycle is pulled back so settlement re-includes the
// retroactively covered cycles.
func (e *Engine) applyReceiverChanges(t *txn, asset uint64, curr, next []streams.Receiver, lastUpdate, currDefaultEnd, now, newDefaultEnd uint64) error {
	var ci, ni int
	for ci < len(curr) || ni < len(next) {
		pickCurr := ci < len(curr)
		pickNext := ni < len(next)
		if pickCurr && pickNext {
			c, n := curr[ci], next[ni]
			if c.AccountID != n.AccountID || c.Config.Rate != n.Config.Rate {
				// Not shiftable; advance only the lower cursor.
				if streams.CompareReceivers(c, n) < 0 {
					pickNext = false
				} else {
					pickCurr = false
				}
			}
		}

		switch {
		case pickCurr && pickNext:
			c, n := curr[ci], next[ni]
			rate := new(big.Int).SetUint64(c.Config.Rate)
			currStart, currEnd := streams.EffectiveRange(c, lastUpdate, currDefaultEnd, now, streams.MaxTimestamp)
			newStart, newEnd := streams.EffectiveRange(n, now, newDefaultEnd, now, streams.MaxTimestamp)
			if err := t.addDeltaRange(e.tl, asset, c.AccountID, currStart, newStart, new(big.Int).Neg(rate)); err != nil {
				return err
			}
			if err := t.addDeltaRange(e.tl, asset, c.AccountID, currEnd, newEnd, rate); err != nil {
				return err
			}
			if newStart < currStart {
				if err := t.pullBackReceivable(e.tl, asset, c.AccountID, newStart, currStart); err != nil {
					return err
				}
			}
			ci++
			ni++
		case pickCurr:
			c := curr[ci]
			rate := new(big.Int).SetUint64(c.Config.Rate)
			start, end := streams.EffectiveRange(c, lastUpdate, currDefaultEnd, now, streams.MaxTimestamp)
			if err := t.addDeltaRange(e.tl, asset, c.AccountID, start, end, rate.Neg(rate)); err != nil {
				return err
			}
			ci++
		case pickNext:
			n := next[ni]
			rate := new(big.Int).SetUint64(n.Config.Rate)
			start, end := streams.EffectiveRange(n, now, newDefaultEnd, now, streams.MaxTimestamp)
			if err := t.addDeltaRange(e.tl, asset, n.AccountID, start, end, rate); err != nil {
				return err
			}
			st, err := t.state(StateKey{Asset: asset, Account: n.AccountID})
			if err != nil {
				return err
			}
			startCycle := e.tl.CycleOf(start)
			if st.NextReceivableCycle == 0 || st.NextReceivableCycle > startCycle {
				st.NextReceivableCycle = startCycle
			}
			ni++
		}
	}
	return nil
}

// pullBackReceivable rewinds an account's NextReceivableCycle when a shift
// moved a stream's start from currStart back to newStart.
func (t *txn) pullBackReceivable(tl streams.Timeline, asset, account uint64, newStart, currStart uint64) error {
	st, err := t.state(StateKey{Asset: asset, Account: account})
	if err != nil {
		return err
	}
	currCycle := tl.CycleOf(currStart)
	newCycle := tl.CycleOf(newStart)
	if currCycle > newCycle && st.NextReceivableCycle >= currCycle {
		st.NextReceivableCycle = newCycle
	}
	return nil
}
