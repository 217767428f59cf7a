// Package streams implements the pure accounting rules for continuous value
// streaming with cycle-based settlement: stream configurations, canonical
// receiver lists, the dripped-amount function, effective stream ranges and
// the balance-exhaustion solver. Nothing in this package keeps state or reads
// a clock; the stateful engine lives in the hub package.
package streams

// RatePrecision is the fixed-point multiplier carried by StreamConfig.Rate.
// A rate of n*RatePrecision streams n base units per second; the 9 extra
// fractional decimals let very slow streams keep sub-unit-per-second rates.
const RatePrecision = 1_000_000_000

// MaxTimestamp is the largest representable timestamp, used as the "no end"
// sentinel. A default end of MaxTimestamp means the balance funds the
// unbounded receivers forever; callers observe it through resolved default
// ends, so the value is part of the public contract.
const MaxTimestamp uint64 = 1<<63 - 1

// StreamConfig describes one receiver's stream. It is an immutable value;
// reconfiguring a stream means replacing the whole config.
type StreamConfig struct {
	// Rate is the streamed amount per second, scaled by RatePrecision.
	// A config with Rate 0 is invalid in a receiver list.
	Rate uint64

	// Start is the absolute unix time the stream begins, or 0 to begin at
	// the time the configuration is applied.
	Start uint64

	// Duration is the streaming time span in seconds, or 0 to stream until
	// the sender's balance is exhausted.
	Duration uint64
}

// Compare orders configurations by rate, then start, then duration. It
// returns -1, 0 or 1. This is the canonical order used to sort and
// deduplicate receiver lists.
func (c StreamConfig) Compare(o StreamConfig) int {
	switch {
	case c.Rate != o.Rate:
		return cmpUint64(c.Rate, o.Rate)
	case c.Start != o.Start:
		return cmpUint64(c.Start, o.Start)
	default:
		return cmpUint64(c.Duration, o.Duration)
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Receiver is one entry of a sender's receiver list.
type Receiver struct {
	AccountID uint64
	Config    StreamConfig
}

// CompareReceivers orders receivers by account, then by config. Receiver
// lists must be strictly ascending in this order.
func CompareReceivers(a, b Receiver) int {
	if a.AccountID != b.AccountID {
		return cmpUint64(a.AccountID, b.AccountID)
	}
	return a.Config.Compare(b.Config)
}
