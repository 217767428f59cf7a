// Package hub is the stateful streaming-settlement engine. It keeps one
// StreamState per (asset, account), converts reconfigurations into
// cycle-bucketed rate deltas, reconstructs balances at arbitrary times
// without iterating over elapsed seconds, and advances receiving accounts
// cycle by cycle under a caller-chosen work bound.
//
// The engine computes amounts but never moves funds and never decides who
// may call it; custody transfer and access control belong to the
// orchestration layer (see Custody). Operations are fully serialized by the
// caller: the engine assumes no two operations run concurrently.
package hub

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/radicle-dev/drips-go/streams"
)

// Engine is the streaming-settlement engine over a Store.
type Engine struct {
	store        Store
	clock        Clock
	log          *zap.Logger
	tl           streams.Timeline
	maxReceivers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the engine's time source. The default is SystemClock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the engine's logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMaxReceivers sets the receiver list length cap. The default is
// streams.DefaultMaxReceivers.
func WithMaxReceivers(n int) Option {
	return func(e *Engine) { e.maxReceivers = n }
}

// New creates an engine with the given store and cycle length in seconds.
func New(store Store, cycleSecs uint64, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store", ErrNilParam)
	}
	tl, err := streams.NewTimeline(cycleSecs)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		store:        store,
		clock:        SystemClock{},
		log:          zap.NewNop(),
		tl:           tl,
		maxReceivers: streams.DefaultMaxReceivers,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		return nil, fmt.Errorf("%w: clock", ErrNilParam)
	}
	if e.log == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilParam)
	}
	if e.maxReceivers <= 0 {
		return nil, fmt.Errorf("hub: max receivers must be positive, got %d", e.maxReceivers)
	}
	return e, nil
}

// Timeline returns the engine's cycle timeline.
func (e *Engine) Timeline() streams.Timeline { return e.tl }

// Configure replaces the account's receiver list and adjusts its streaming
// balance. currReceivers must be the active list (verified against the
// stored fingerprint), newReceivers the canonical new one. balanceDelta is
// added to the balance as reconstructed at the current time; a withdrawal
// larger than that balance is clamped to drain it exactly. It returns the
// new balance and the delta actually applied; the caller settles custody
// with the applied delta.
//
// Any error leaves the engine state untouched.
func (e *Engine) Configure(asset, account uint64, currReceivers []streams.Receiver, balanceDelta int64, newReceivers []streams.Receiver) (uint64, int64, error) {
	if err := streams.ValidateReceivers(currReceivers, e.maxReceivers); err != nil {
		return 0, 0, err
	}
	if err := streams.ValidateReceivers(newReceivers, e.maxReceivers); err != nil {
		return 0, 0, err
	}

	t := newTxn(e.store)
	st, err := t.state(StateKey{Asset: asset, Account: account})
	if err != nil {
		return 0, 0, err
	}
	if streams.HashReceivers(currReceivers) != st.ReceiversHash {
		return 0, 0, ErrReceiversMismatch
	}
	now := e.now(st)

	balance, err := e.balanceAt(st, currReceivers, now)
	if err != nil {
		return 0, 0, err
	}
	newBalance, applied, err := applyBalanceDelta(balance, balanceDelta)
	if err != nil {
		return 0, 0, err
	}
	defaultEnd, err := e.tl.ResolveDefaultEnd(newBalance, newReceivers, now)
	if err != nil {
		return 0, 0, err
	}
	if err := e.applyReceiverChanges(t, asset, currReceivers, newReceivers, st.LastUpdate, st.DefaultEnd, now, defaultEnd); err != nil {
		return 0, 0, err
	}

	st.ReceiversHash = streams.HashReceivers(newReceivers)
	st.LastUpdate = now
	st.DefaultEnd = defaultEnd
	st.Balance = newBalance
	if err := t.commit(); err != nil {
		return 0, 0, err
	}

	configuresTotal.Inc()
	e.log.Debug("configured streams",
		zap.Uint64("asset", asset),
		zap.Uint64("account", account),
		zap.Int("receivers", len(newReceivers)),
		zap.Uint64("balance", newBalance),
		zap.Int64("applied_delta", applied),
		zap.Uint64("default_end", defaultEnd))
	return newBalance, applied, nil
}

// BalanceAt reconstructs the account's streaming balance at ts without
// mutating state. receivers must match the stored fingerprint and ts must
// not precede the last reconfiguration.
func (e *Engine) BalanceAt(asset, account uint64, receivers []streams.Receiver, ts uint64) (uint64, error) {
	if err := streams.ValidateReceivers(receivers, e.maxReceivers); err != nil {
		return 0, err
	}
	t := newTxn(e.store)
	st, err := t.state(StateKey{Asset: asset, Account: account})
	if err != nil {
		return 0, err
	}
	if streams.HashReceivers(receivers) != st.ReceiversHash {
		return 0, ErrReceiversMismatch
	}
	return e.balanceAt(st, receivers, ts)
}

// HashReceivers validates a receiver list and returns its canonical
// fingerprint.
func (e *Engine) HashReceivers(receivers []streams.Receiver) ([32]byte, error) {
	if err := streams.ValidateReceivers(receivers, e.maxReceivers); err != nil {
		return [32]byte{}, err
	}
	return streams.HashReceivers(receivers), nil
}

// balanceAt subtracts from the last recorded balance everything the
// receivers streamed between the last update and ts.
func (e *Engine) balanceAt(st *StreamState, receivers []streams.Receiver, ts uint64) (uint64, error) {
	if ts < st.LastUpdate {
		return 0, fmt.Errorf("%w: %d precedes %d", ErrTimestampBeforeUpdate, ts, st.LastUpdate)
	}
	balance := new(big.Int).SetUint64(st.Balance)
	for _, r := range receivers {
		start, end := streams.EffectiveRange(r, st.LastUpdate, st.DefaultEnd, st.LastUpdate, ts)
		dripped, err := e.tl.DrippedAmount(r.Config.Rate, start, end)
		if err != nil {
			return 0, err
		}
		balance.Sub(balance, new(big.Int).SetUint64(dripped))
	}
	if balance.Sign() < 0 || !balance.IsUint64() {
		return 0, fmt.Errorf("%w: balance %v", ErrAmountOverflow, balance)
	}
	return balance.Uint64(), nil
}

// now reads the clock, clamped so a same-second reconfiguration after a
// state update stays well defined.
func (e *Engine) now(st *StreamState) uint64 {
	now := e.clock.Now()
	if now < st.LastUpdate {
		now = st.LastUpdate
	}
	return now
}

// applyBalanceDelta adds a signed delta to a balance, clamping withdrawals
// at zero and rejecting top-ups beyond MaxBalance. It returns the new
// balance and the delta actually applied.
func applyBalanceDelta(balance uint64, delta int64) (uint64, int64, error) {
	if delta >= 0 {
		newBalance := balance + uint64(delta)
		if newBalance > MaxBalance {
			return 0, 0, fmt.Errorf("%w: %d + %d", ErrBalanceTooHigh, balance, delta)
		}
		return newBalance, delta, nil
	}
	mag := uint64(-(delta + 1)) + 1 // |delta| without overflowing MinInt64
	if mag > balance {
		mag = balance
		delta = -int64(mag)
	}
	return balance - mag, delta, nil
}
