package hub

import "errors"

var (
	// ErrNilParam indicates a nil required parameter.
	ErrNilParam = errors.New("hub: parameter must not be nil")

	// ErrStateNotFound indicates no stream state is stored for the key.
	ErrStateNotFound = errors.New("hub: stream state not found")

	// ErrReceiversMismatch indicates a supplied receiver list whose
	// fingerprint does not match the stored one.
	ErrReceiversMismatch = errors.New("hub: receiver list does not match stored fingerprint")

	// ErrTimestampBeforeUpdate indicates a balance query for a time before
	// the state's last reconfiguration.
	ErrTimestampBeforeUpdate = errors.New("hub: timestamp precedes last update")

	// ErrBalanceTooHigh indicates a configuration that would push the
	// balance beyond MaxBalance.
	ErrBalanceTooHigh = errors.New("hub: balance exceeds maximum")

	// ErrDeltaOverflow indicates a delta accumulation outside the signed
	// 128-bit range. This bounds the maximum safe total system value.
	ErrDeltaOverflow = errors.New("hub: cycle delta overflows signed 128-bit range")

	// ErrAmountOverflow indicates a settled or reconstructed amount beyond
	// the uint64 range.
	ErrAmountOverflow = errors.New("hub: amount overflows uint64")

	// ErrInvalidStateData indicates a malformed stored stream state record.
	ErrInvalidStateData = errors.New("hub: invalid stream state data")

	// ErrInvalidDeltaData indicates a malformed stored delta record.
	ErrInvalidDeltaData = errors.New("hub: invalid delta data")
)
