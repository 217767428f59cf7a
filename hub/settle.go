package hub

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/radicle-dev/drips-go/streams"
)

// ReceivableCycles returns the number of complete, not-yet-consumed cycles
// of the account. The in-progress cycle is never receivable.
func (e *Engine) ReceivableCycles(asset, account uint64) (uint64, error) {
	t := newTxn(e.store)
	st, err := t.state(StateKey{Asset: asset, Account: account})
	if err != nil {
		return 0, err
	}
	return receivable(*st, e.tl, e.clock.Now()), nil
}

// PreviewReceivable computes what Settle would return for maxCycles without
// mutating any state.
func (e *Engine) PreviewReceivable(asset, account uint64, maxCycles uint64) (uint64, uint64, error) {
	t := newTxn(e.store) // staged and discarded
	received, _, remaining, err := e.settleCycles(t, asset, account, maxCycles)
	return received, remaining, err
}

// Settle advances the account's settlement by up to maxCycles cycles and
// returns the amount that became receivable plus the number of receivable
// cycles still unconsumed. A caller that under-requested maxCycles sees a
// nonzero remainder and calls again; maxCycles bounds the work of a single
// call regardless of how long funds went unclaimed.
func (e *Engine) Settle(asset, account uint64, maxCycles uint64) (uint64, uint64, error) {
	t := newTxn(e.store)
	received, consumed, remaining, err := e.settleCycles(t, asset, account, maxCycles)
	if err != nil {
		return 0, 0, err
	}
	if err := t.commit(); err != nil {
		return 0, 0, err
	}

	settlesTotal.Inc()
	settledCyclesTotal.Add(float64(consumed))
	settledAmountTotal.Add(float64(received))
	e.log.Debug("settled cycles",
		zap.Uint64("asset", asset),
		zap.Uint64("account", account),
		zap.Uint64("received", received),
		zap.Uint64("remaining_cycles", remaining))
	return received, remaining, nil
}

// settleCycles walks up to maxCycles cycles from NextReceivableCycle,
// accumulating a running rate: each cycle adds its ThisCycle entry to the
// rate, the rate to the received total, and its NextCycle entry to the rate
// before moving on. Every consumed entry is zeroed and any residual rate is
// folded into the new head cycle's ThisCycle entry, so entries before
// NextReceivableCycle stay zero and the head entry remains an absolute
// baseline.
func (e *Engine) settleCycles(t *txn, asset, account uint64, maxCycles uint64) (received, consumed, remaining uint64, err error) {
	st, err := t.state(StateKey{Asset: asset, Account: account})
	if err != nil {
		return 0, 0, 0, err
	}
	receivableCycles := receivable(*st, e.tl, e.clock.Now())
	cycles := min(receivableCycles, maxCycles)

	from := st.NextReceivableCycle
	to := from + cycles
	running := new(big.Int)
	total := new(big.Int)
	for c := from; c < to; c++ {
		d, err := t.delta(DeltaKey{Asset: asset, Account: account, Cycle: c})
		if err != nil {
			return 0, 0, 0, err
		}
		running.Add(running, d.ThisCycle)
		total.Add(total, running)
		running.Add(running, d.NextCycle)
		d.ThisCycle.SetInt64(0)
		d.NextCycle.SetInt64(0)
	}
	if cycles > 0 {
		st.NextReceivableCycle = to
		if running.Sign() != 0 {
			d, err := t.delta(DeltaKey{Asset: asset, Account: account, Cycle: to})
			if err != nil {
				return 0, 0, 0, err
			}
			d.ThisCycle.Add(d.ThisCycle, running)
			if !inInt128(d.ThisCycle) {
				return 0, 0, 0, fmt.Errorf("%w: account %d cycle %d", ErrDeltaOverflow, account, to)
			}
		}
	}

	if total.Sign() < 0 || !total.IsUint64() {
		return 0, 0, 0, fmt.Errorf("%w: settled %v", ErrAmountOverflow, total)
	}
	return total.Uint64(), cycles, receivableCycles - cycles, nil
}

// receivable counts the complete cycles awaiting settlement as of now.
func receivable(st StreamState, tl streams.Timeline, now uint64) uint64 {
	if st.NextReceivableCycle == 0 {
		return 0
	}
	current := tl.CycleOf(now)
	if st.NextReceivableCycle >= current {
		return 0
	}
	return current - st.NextReceivableCycle
}
