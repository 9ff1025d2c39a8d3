package timeval

import (
	"math"
	"math/bits"
	"strconv"
	"time"

	"lukechampine.com/uint128"
)

// Duration is a non-negative span of time with nanosecond resolution.
// It is the single representation underneath Timestamp and Monotonic.
//
// The range is u64 seconds plus up to 999_999_999 nanoseconds (about 584
// billion years), wider than time.Duration. Projections that may not fit
// a 64-bit integer use uint128.
type Duration struct {
	secs  uint64
	nanos uint32 // always < nanosPerSec
}

// MaxDuration is the largest representable Duration.
var MaxDuration = Duration{secs: math.MaxUint64, nanos: nanosPerSec - 1}

// NewDuration builds a Duration from whole seconds and nanoseconds. Nanoseconds
// of a second or more carry into secs; the carry fails if secs overflows.
func NewDuration(secs uint64, nanos uint32) (Duration, error) {
	if nanos < nanosPerSec {
		return Duration{secs: secs, nanos: nanos}, nil
	}
	s, carry := bits.Add64(secs, uint64(nanos/nanosPerSec), 0)
	if carry != 0 {
		return Duration{}, rangeErrorf("%d s + %d ns: %w", secs, nanos, errOverflow)
	}
	return Duration{secs: s, nanos: nanos % nanosPerSec}, nil
}

// DurationFromSecs returns a Duration of s whole seconds.
func DurationFromSecs(s uint64) Duration {
	return Duration{secs: s}
}

// DurationFromMillis returns a Duration of ms milliseconds.
func DurationFromMillis(ms uint64) Duration {
	return Duration{secs: ms / millisPerSec, nanos: uint32(ms%millisPerSec) * nanosPerMilli}
}

// DurationFromMicros returns a Duration of us microseconds.
func DurationFromMicros(us uint64) Duration {
	return Duration{secs: us / microsPerSec, nanos: uint32(us%microsPerSec) * nanosPerMicro}
}

// DurationFromNanos returns a Duration of ns nanoseconds.
func DurationFromNanos(ns uint64) Duration {
	return Duration{secs: ns / nanosPerSec, nanos: uint32(ns % nanosPerSec)}
}

// DurationFromNanos128 returns a Duration of ns nanoseconds. It fails only
// when the whole-second part does not fit in 64 bits.
func DurationFromNanos128(ns uint128.Uint128) (Duration, error) {
	q, r := ns.QuoRem64(nanosPerSec)
	if q.Hi != 0 {
		return Duration{}, rangeErrorf("%s ns: %w", ns, errOverflow)
	}
	return Duration{secs: q.Lo, nanos: uint32(r)}, nil
}

// DurationFromSecsF64 converts floating-point seconds, rounding to the
// nearest nanosecond. The conversion is lossy by nature and never fails:
// NaN and values <= 0 give zero, values beyond the range give MaxDuration.
func DurationFromSecsF64(secs float64) Duration {
	switch {
	case math.IsNaN(secs) || secs <= 0:
		return Duration{}
	case secs >= 1<<64:
		return MaxDuration
	}
	whole := math.Floor(secs)
	frac := math.Round((secs - whole) * nanosPerSec)
	s := uint64(whole)
	if frac >= nanosPerSec {
		if s == math.MaxUint64 {
			return MaxDuration
		}
		s++
		frac = 0
	}
	return Duration{secs: s, nanos: uint32(frac)}
}

// DurationFromSecsF32 converts single-precision seconds. See DurationFromSecsF64.
func DurationFromSecsF32(secs float32) Duration {
	return DurationFromSecsF64(float64(secs))
}

// DurationFromStd converts a time.Duration. Negative values fail.
func DurationFromStd(d time.Duration) (Duration, error) {
	if d < 0 {
		return Duration{}, rangeErrorf("%v: %w", d, errNegative)
	}
	return DurationFromNanos(uint64(d)), nil
}

// Secs returns the whole seconds, discarding the sub-second part.
func (d Duration) Secs() uint64 { return d.secs }

// SubsecNanos returns the fractional part in nanoseconds.
func (d Duration) SubsecNanos() uint32 { return d.nanos }

// SubsecMicros returns the fractional part in whole microseconds.
func (d Duration) SubsecMicros() uint32 { return d.nanos / nanosPerMicro }

// SubsecMillis returns the fractional part in whole milliseconds.
func (d Duration) SubsecMillis() uint32 { return d.nanos / nanosPerMilli }

// AsMillis returns the total whole milliseconds.
func (d Duration) AsMillis() uint128.Uint128 {
	return uint128.From64(d.secs).Mul64(millisPerSec).Add64(uint64(d.nanos / nanosPerMilli))
}

// AsMicros returns the total whole microseconds.
func (d Duration) AsMicros() uint128.Uint128 {
	return uint128.From64(d.secs).Mul64(microsPerSec).Add64(uint64(d.nanos / nanosPerMicro))
}

// AsNanos returns the total nanoseconds. It never loses precision.
func (d Duration) AsNanos() uint128.Uint128 {
	return uint128.From64(d.secs).Mul64(nanosPerSec).Add64(uint64(d.nanos))
}

// AsSecsF64 returns the span as floating-point seconds. Precision is bounded
// by the float64 mantissa.
func (d Duration) AsSecsF64() float64 {
	return float64(d.secs) + float64(d.nanos)/nanosPerSec
}

// AsSecsF32 returns the span as single-precision seconds.
func (d Duration) AsSecsF32() float32 {
	return float32(d.secs) + float32(d.nanos)/nanosPerSec
}

// Std converts to a time.Duration, failing beyond roughly 292 years.
func (d Duration) Std() (time.Duration, error) {
	n := d.AsNanos()
	if n.Hi != 0 || n.Lo > uint64(maxStdDuration) {
		return 0, rangeErrorf("%s ns exceeds time.Duration: %w", n, errOverflow)
	}
	return time.Duration(n.Lo), nil
}

// IsZero reports whether d is the empty span.
func (d Duration) IsZero() bool { return d.secs == 0 && d.nanos == 0 }

// Compare returns -1, 0 or +1 depending on whether d is shorter than, equal
// to, or longer than o.
func (d Duration) Compare(o Duration) int {
	switch {
	case d.secs < o.secs:
		return -1
	case d.secs > o.secs:
		return 1
	case d.nanos < o.nanos:
		return -1
	case d.nanos > o.nanos:
		return 1
	}
	return 0
}

// Add returns d+o, failing on overflow.
func (d Duration) Add(o Duration) (Duration, error) {
	secs, carry := bits.Add64(d.secs, o.secs, 0)
	nanos := d.nanos + o.nanos
	if nanos >= nanosPerSec {
		nanos -= nanosPerSec
		var c2 uint64
		secs, c2 = bits.Add64(secs, 1, 0)
		carry |= c2
	}
	if carry != 0 {
		return Duration{}, rangeErrorf("%s + %s: %w", d, o, errOverflow)
	}
	return Duration{secs: secs, nanos: nanos}, nil
}

// Sub returns d-o, failing when o is longer than d.
func (d Duration) Sub(o Duration) (Duration, error) {
	if d.Compare(o) < 0 {
		return Duration{}, rangeErrorf("%s - %s: %w", d, o, errUnderflow)
	}
	return d.sub(o), nil
}

// SaturatingSub returns d-o, or zero when o is longer than d.
func (d Duration) SaturatingSub(o Duration) Duration {
	if d.Compare(o) <= 0 {
		return Duration{}
	}
	return d.sub(o)
}

// AbsDiff returns |d-o|. It never fails.
func (d Duration) AbsDiff(o Duration) Duration {
	if d.Compare(o) >= 0 {
		return d.sub(o)
	}
	return o.sub(d)
}

// sub assumes d >= o.
func (d Duration) sub(o Duration) Duration {
	secs := d.secs - o.secs
	var nanos uint32
	if d.nanos >= o.nanos {
		nanos = d.nanos - o.nanos
	} else {
		secs--
		nanos = d.nanos + nanosPerSec - o.nanos
	}
	return Duration{secs: secs, nanos: nanos}
}

// truncateSecs drops the sub-second part.
func (d Duration) truncateSecs() Duration { return Duration{secs: d.secs} }

// String renders the total nanosecond count.
func (d Duration) String() string {
	if d.secs == 0 {
		return strconv.FormatUint(uint64(d.nanos), 10)
	}
	return d.AsNanos().String()
}
