package timeval_test

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/aelexs/timeval/pkg/timeval"
)

// samples mixes boundary values with seeded random ones.
func samples(t *testing.T) []uint64 {
	t.Helper()
	r := rand.New(rand.NewPCG(1632093707, 189334869))
	out := []uint64{0, 1, 999, 1_000, 999_999, 1_000_000, 999_999_999, 1_000_000_000, math.MaxUint32, math.MaxInt64, math.MaxUint64 - 1, math.MaxUint64}
	for i := 0; i < 200; i++ {
		out = append(out, r.Uint64())
	}
	return out
}

func TestDurationIntegerRoundTrip(t *testing.T) {
	for _, n := range samples(t) {
		assert.Equal(t, uint128.From64(n), timeval.DurationFromNanos(n).AsNanos(), "nanos %d", n)
		assert.Equal(t, uint128.From64(n), timeval.DurationFromMicros(n).AsMicros(), "micros %d", n)
		assert.Equal(t, uint128.From64(n), timeval.DurationFromMillis(n).AsMillis(), "millis %d", n)
		assert.Equal(t, n, timeval.DurationFromSecs(n).Secs(), "secs %d", n)
	}
}

func TestDurationUnitScaling(t *testing.T) {
	const us = 1_632_093_707_123_456
	d := timeval.DurationFromMicros(us)

	assert.Equal(t, uint128.From64(us*1_000), d.AsNanos())
	assert.Equal(t, uint128.From64(us/1_000), d.AsMillis())
	assert.Equal(t, uint64(1_632_093_707), d.Secs())
	assert.Equal(t, uint32(123_456_000), d.SubsecNanos())
	assert.Equal(t, uint32(123_456), d.SubsecMicros())
	assert.Equal(t, uint32(123), d.SubsecMillis())

	const ms = 1_632_093_707_123
	d = timeval.DurationFromMillis(ms)
	assert.Equal(t, uint128.From64(ms*1_000_000), d.AsNanos())
	assert.Equal(t, uint128.From64(ms*1_000), d.AsMicros())
}

func TestDurationWideProjections(t *testing.T) {
	d := timeval.MaxDuration

	assert.Equal(t, "18446744073709551615999999999", d.AsNanos().String())
	assert.Equal(t, "18446744073709551615999999", d.AsMicros().String())
	assert.Equal(t, "18446744073709551615999", d.AsMillis().String())

	back, err := timeval.DurationFromNanos128(d.AsNanos())
	require.NoError(t, err)
	assert.Equal(t, d, back)

	_, err = timeval.DurationFromNanos128(uint128.Max)
	assert.ErrorIs(t, err, timeval.ErrRangeConversion)
}

func TestNewDuration(t *testing.T) {
	t.Run("normalizes nanoseconds", func(t *testing.T) {
		d, err := timeval.NewDuration(1, 2_500_000_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), d.Secs())
		assert.Equal(t, uint32(500_000_000), d.SubsecNanos())
	})

	t.Run("carry overflow fails", func(t *testing.T) {
		_, err := timeval.NewDuration(math.MaxUint64, 1_000_000_000)
		assert.ErrorIs(t, err, timeval.ErrRangeConversion)
	})
}

func TestDurationFromSecsF64(t *testing.T) {
	tests := []struct {
		name  string
		in    float64
		secs  uint64
		nanos uint32
	}{
		{"zero", 0, 0, 0},
		{"negative saturates to zero", -1.5, 0, 0},
		{"NaN is zero", math.NaN(), 0, 0},
		{"fraction rounds to nearest", 0.3, 0, 300_000_000},
		{"rounding carries into seconds", 0.9999999999, 1, 0},
		{"fixture", 1_632_093_707.189_334_9, 1_632_093_707, 189_334_869},
		{"infinity saturates", math.Inf(1), math.MaxUint64, 999_999_999},
		{"beyond range saturates", 1e30, math.MaxUint64, 999_999_999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := timeval.DurationFromSecsF64(tt.in)
			assert.Equal(t, tt.secs, d.Secs())
			assert.Equal(t, tt.nanos, d.SubsecNanos())
		})
	}
}

func TestDurationFloatRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		f := r.Float64() * 4e9
		got := timeval.DurationFromSecsF64(f).AsSecsF64()
		assert.InDelta(t, f, got, 1e-6, "secs %v", f)
	}

	f32 := float32(12.5)
	assert.Equal(t, f32, timeval.DurationFromSecsF32(f32).AsSecsF32())
}

func TestDurationArithmetic(t *testing.T) {
	a := timeval.DurationFromNanos(1_700_000_000)
	b := timeval.DurationFromNanos(800_000_000)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(2_500_000_000), sum.AsNanos())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(900_000_000), diff.AsNanos())

	_, err = b.Sub(a)
	assert.ErrorIs(t, err, timeval.ErrRangeConversion)
	assert.True(t, b.SaturatingSub(a).IsZero())

	_, err = timeval.MaxDuration.Add(timeval.DurationFromNanos(1))
	assert.ErrorIs(t, err, timeval.ErrRangeConversion)
}

func TestDurationAbsDiff(t *testing.T) {
	vals := samples(t)
	for i := 1; i < len(vals); i++ {
		a := timeval.DurationFromNanos(vals[i-1])
		b := timeval.DurationFromNanos(vals[i])
		assert.Equal(t, a.AbsDiff(b), b.AbsDiff(a))
		assert.True(t, a.AbsDiff(a).IsZero())
	}
	assert.Equal(t, timeval.MaxDuration, timeval.MaxDuration.AbsDiff(timeval.Duration{}))
}

func TestDurationStd(t *testing.T) {
	d, err := timeval.DurationFromStd(90 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(90), d.Secs())

	std, err := d.Std()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, std)

	_, err = timeval.DurationFromStd(-time.Nanosecond)
	assert.ErrorIs(t, err, timeval.ErrRangeConversion)

	_, err = timeval.DurationFromSecs(300 * 365 * 24 * 3600).Std()
	assert.ErrorIs(t, err, timeval.ErrRangeConversion)
}

func TestDurationString(t *testing.T) {
	assert.Equal(t, "0", timeval.Duration{}.String())
	assert.Equal(t, "1500000000", timeval.DurationFromMillis(1500).String())
}
