package streams

import "errors"

var (
	// ErrInvalidCycleSecs indicates a cycle length of zero seconds.
	ErrInvalidCycleSecs = errors.New("streams: cycle length must be positive")

	// ErrUnsortedReceivers indicates a receiver list that is not in the
	// canonical (account, config) order.
	ErrUnsortedReceivers = errors.New("streams: receivers not sorted")

	// ErrDuplicateReceiver indicates two identical (account, config) entries.
	ErrDuplicateReceiver = errors.New("streams: duplicate receiver")

	// ErrZeroRate indicates a receiver configured with a rate of zero.
	ErrZeroRate = errors.New("streams: receiver rate must not be zero")

	// ErrTooManyReceivers indicates a receiver list longer than the maximum.
	ErrTooManyReceivers = errors.New("streams: too many receivers")

	// ErrInvalidRange indicates a time range whose end precedes its start.
	ErrInvalidRange = errors.New("streams: range end precedes start")

	// ErrAmountOverflow indicates a streamed amount beyond the uint64 range.
	ErrAmountOverflow = errors.New("streams: amount overflows uint64")

	// ErrBalanceTooLow indicates a balance that cannot fund the
	// bounded-duration receivers of a configuration.
	ErrBalanceTooLow = errors.New("streams: balance too low to fund bounded receivers")
)
