package streams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTimeline(t *testing.T, cycleSecs uint64) Timeline {
	t.Helper()
	tl, err := NewTimeline(cycleSecs)
	require.NoError(t, err)
	return tl
}

func TestNewTimeline_ZeroCycleSecs(t *testing.T) {
	_, err := NewTimeline(0)
	assert.ErrorIs(t, err, ErrInvalidCycleSecs)
}

func TestCycleOf(t *testing.T) {
	tl := mustTimeline(t, 10)

	tests := []struct {
		ts   uint64
		want uint64
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{19, 2},
		{100, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tl.CycleOf(tt.ts), "CycleOf(%d)", tt.ts)
	}
	assert.Equal(t, uint64(0), tl.CycleStart(1))
	assert.Equal(t, uint64(90), tl.CycleStart(10))
}

func TestDrippedAmount_Basic(t *testing.T) {
	tl := mustTimeline(t, 10)

	tests := []struct {
		name       string
		rate       uint64
		start, end uint64
		want       uint64
	}{
		{"one unit per second, one cycle", 1 * RatePrecision, 0, 10, 10},
		{"empty range", 5 * RatePrecision, 7, 7, 0},
		{"partial cycle", 1 * RatePrecision, 3, 7, 4},
		{"across cycle boundary", 1 * RatePrecision, 5, 15, 10},
		{"many cycles", 2 * RatePrecision, 0, 100, 200},
		{"fractional rate truncates", RatePrecision / 2, 0, 3, 1},
		{"sub-unit rate drips nothing", 1, 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tl.DrippedAmount(tt.rate, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDrippedAmount_InvalidRange(t *testing.T) {
	tl := mustTimeline(t, 10)
	_, err := tl.DrippedAmount(RatePrecision, 10, 5)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

// The amount must be exactly additive across adjoining ranges; settlement
// depends on it when it reassembles a stream cycle by cycle.
func TestDrippedAmount_Additive(t *testing.T) {
	rates := []uint64{1, 333_333_333, RatePrecision, RatePrecision / 2, 7*RatePrecision + 123}
	cuts := []uint64{0, 1, 3, 9, 10, 11, 25, 99, 100, 1000}

	for _, cycleSecs := range []uint64{7, 10, 86400} {
		tl := mustTimeline(t, cycleSecs)
		for _, rate := range rates {
			for _, a := range cuts {
				for _, b := range cuts {
					for _, c := range cuts {
						if a > b || b > c {
							continue
						}
						ab, err := tl.DrippedAmount(rate, a, b)
						require.NoError(t, err)
						bc, err := tl.DrippedAmount(rate, b, c)
						require.NoError(t, err)
						ac, err := tl.DrippedAmount(rate, a, c)
						require.NoError(t, err)
						assert.Equal(t, ac, ab+bc,
							"rate %d cycleSecs %d split %d/%d/%d", rate, cycleSecs, a, b, c)
					}
				}
			}
		}
	}
}

// A second's contribution depends only on its offset within the cycle, not
// on when the stream started.
func TestDrippedAmount_PositionWithinCycle(t *testing.T) {
	tl := mustTimeline(t, 10)
	rate := uint64(777_777_777)

	for ts := uint64(0); ts < 30; ts++ {
		base, err := tl.DrippedAmount(rate, ts, ts+1)
		require.NoError(t, err)
		for _, k := range []uint64{1, 5, 1000} {
			shifted, err := tl.DrippedAmount(rate, ts+k*10, ts+k*10+1)
			require.NoError(t, err)
			assert.Equal(t, base, shifted, "ts %d shifted by %d cycles", ts, k)
		}
	}
}

func TestDrippedAmount_Monotone(t *testing.T) {
	tl := mustTimeline(t, 10)
	rate := uint64(333_333_333)

	prev := uint64(0)
	for end := uint64(0); end <= 50; end++ {
		got, err := tl.DrippedAmount(rate, 0, end)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}
