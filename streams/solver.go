package streams

import (
	"fmt"
	"math/big"
)

// ResolveDefaultEnd computes the shared end time of all unbounded-duration
// receivers in the list: the latest time T >= now such that the amount
// streamed by the unbounded receivers from now to T still fits the balance,
// MaxTimestamp if the balance funds them forever, or now if the balance is
// empty or no receiver is unbounded.
//
// Bounded-duration receivers are funded in full up front: their cost over
// their own ranges is subtracted from the balance before solving, and
// ErrBalanceTooLow is returned if those costs alone exceed the balance.
//
// The receiver list must be pre-validated (see ValidateReceivers).
func (tl Timeline) ResolveDefaultEnd(balance uint64, receivers []Receiver, now uint64) (uint64, error) {
	left := new(big.Int).SetUint64(balance)
	var unbounded []Receiver
	for _, r := range receivers {
		if r.Config.Duration == 0 {
			unbounded = append(unbounded, r)
			continue
		}
		start, end := EffectiveRange(r, now, 0, now, MaxTimestamp)
		left.Sub(left, tl.drippedAmt(r.Config.Rate, start, end))
		if left.Sign() < 0 {
			return 0, fmt.Errorf("%w: bounded receivers cost %d more than available",
				ErrBalanceTooLow, new(big.Int).Neg(left))
		}
	}
	if len(unbounded) == 0 || left.Sign() == 0 {
		return now, nil
	}

	affordable := func(end uint64) bool {
		spent := new(big.Int)
		for _, r := range unbounded {
			s, e := EffectiveRange(r, now, end, now, end)
			spent.Add(spent, tl.drippedAmt(r.Config.Rate, s, e))
		}
		return spent.Cmp(left) <= 0
	}
	if affordable(MaxTimestamp) {
		return MaxTimestamp, nil
	}

	// Integer bisection: lo is always affordable (lo=now costs nothing),
	// hi never is. Terminates with lo the last affordable timestamp.
	lo, hi := now, MaxTimestamp
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if affordable(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, nil
}
