package streams

import "fmt"

// DefaultMaxReceivers is the receiver list length cap applied when a caller
// does not configure one. It bounds the work of a single reconfiguration.
const DefaultMaxReceivers = 100

// ValidateReceivers checks that a receiver list is canonical: no longer than
// maxLen, strictly ascending in (account, config) order, and free of
// zero-rate entries. Every operation that accepts a receiver list validates
// it with this function before hashing or applying it.
func ValidateReceivers(receivers []Receiver, maxLen int) error {
	if len(receivers) > maxLen {
		return fmt.Errorf("%w: %d entries, maximum %d", ErrTooManyReceivers, len(receivers), maxLen)
	}
	for i, r := range receivers {
		if r.Config.Rate == 0 {
			return fmt.Errorf("%w: account %d", ErrZeroRate, r.AccountID)
		}
		if i == 0 {
			continue
		}
		switch CompareReceivers(receivers[i-1], r) {
		case 0:
			return fmt.Errorf("%w: account %d", ErrDuplicateReceiver, r.AccountID)
		case 1:
			return fmt.Errorf("%w: entry %d", ErrUnsortedReceivers, i)
		}
	}
	return nil
}
