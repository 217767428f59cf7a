package streams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReceivers(t *testing.T) {
	rcv := func(account, rate uint64) Receiver {
		return Receiver{AccountID: account, Config: StreamConfig{Rate: rate}}
	}

	tests := []struct {
		name      string
		receivers []Receiver
		maxLen    int
		wantErr   error
	}{
		{
			name:   "empty list",
			maxLen: DefaultMaxReceivers,
		},
		{
			name:      "single receiver",
			receivers: []Receiver{rcv(1, RatePrecision)},
			maxLen:    DefaultMaxReceivers,
		},
		{
			name:      "sorted by account",
			receivers: []Receiver{rcv(1, RatePrecision), rcv(2, RatePrecision), rcv(5, RatePrecision)},
			maxLen:    DefaultMaxReceivers,
		},
		{
			name: "same account sorted by config",
			receivers: []Receiver{
				{AccountID: 1, Config: StreamConfig{Rate: 1}},
				{AccountID: 1, Config: StreamConfig{Rate: 2}},
			},
			maxLen: DefaultMaxReceivers,
		},
		{
			name:      "unsorted accounts",
			receivers: []Receiver{rcv(2, RatePrecision), rcv(1, RatePrecision)},
			maxLen:    DefaultMaxReceivers,
			wantErr:   ErrUnsortedReceivers,
		},
		{
			name: "same account unsorted configs",
			receivers: []Receiver{
				{AccountID: 1, Config: StreamConfig{Rate: 2}},
				{AccountID: 1, Config: StreamConfig{Rate: 1}},
			},
			maxLen:  DefaultMaxReceivers,
			wantErr: ErrUnsortedReceivers,
		},
		{
			name:      "duplicate entry",
			receivers: []Receiver{rcv(1, RatePrecision), rcv(1, RatePrecision)},
			maxLen:    DefaultMaxReceivers,
			wantErr:   ErrDuplicateReceiver,
		},
		{
			name:      "zero rate",
			receivers: []Receiver{rcv(1, 0)},
			maxLen:    DefaultMaxReceivers,
			wantErr:   ErrZeroRate,
		},
		{
			name:      "over the cap",
			receivers: []Receiver{rcv(1, 1), rcv(2, 1), rcv(3, 1)},
			maxLen:    2,
			wantErr:   ErrTooManyReceivers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReceivers(tt.receivers, tt.maxLen)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCompareReceivers(t *testing.T) {
	a := Receiver{AccountID: 1, Config: StreamConfig{Rate: 5, Start: 10, Duration: 20}}
	b := a

	assert.Equal(t, 0, CompareReceivers(a, b))

	b.AccountID = 2
	assert.Equal(t, -1, CompareReceivers(a, b))
	assert.Equal(t, 1, CompareReceivers(b, a))

	b = a
	b.Config.Start = 11
	assert.Equal(t, -1, CompareReceivers(a, b))

	b = a
	b.Config.Duration = 19
	assert.Equal(t, 1, CompareReceivers(a, b))
}
