package timeval

import (
	"math"
	"strconv"

	"lukechampine.com/uint128"
)

// Instant is satisfied by the two instant types. Both wrap a Duration, so a
// single generic body serves every numeric constructor and projection.
type Instant interface {
	Timestamp | Monotonic
	span() Duration
}

func (d Duration) span() Duration { return d }

// FromDuration returns the instant d after T's origin.
func FromDuration[T Instant](d Duration) T { return T{d} }

// FromSecs returns the instant s seconds after T's origin.
func FromSecs[T Instant](s uint64) T { return T{DurationFromSecs(s)} }

// FromMillis returns the instant ms milliseconds after T's origin.
func FromMillis[T Instant](ms uint64) T { return T{DurationFromMillis(ms)} }

// FromMicros returns the instant us microseconds after T's origin.
func FromMicros[T Instant](us uint64) T { return T{DurationFromMicros(us)} }

// FromNanos returns the instant ns nanoseconds after T's origin.
func FromNanos[T Instant](ns uint64) T { return T{DurationFromNanos(ns)} }

// FromSecsF64 returns the instant secs seconds after T's origin. Lossy;
// see DurationFromSecsF64.
func FromSecsF64[T Instant](secs float64) T { return T{DurationFromSecsF64(secs)} }

// FromSecsF32 is FromSecsF64 for single precision.
func FromSecsF32[T Instant](secs float32) T { return T{DurationFromSecsF32(secs)} }

// FromNanos128 returns the instant ns nanoseconds after T's origin.
func FromNanos128[T Instant](ns uint128.Uint128) (T, error) {
	d, err := DurationFromNanos128(ns)
	if err != nil {
		var zero T
		return zero, err
	}
	return T{d}, nil
}

// FromInt64Nanos accepts a signed nanosecond count. Negative counts fail.
func FromInt64Nanos[T Instant](ns int64) (T, error) {
	if ns < 0 {
		var zero T
		return zero, rangeErrorf("%d ns: %w", ns, errNegative)
	}
	return FromNanos[T](uint64(ns)), nil
}

// FromInt64Micros accepts a signed microsecond count. Negative counts fail.
func FromInt64Micros[T Instant](us int64) (T, error) {
	if us < 0 {
		var zero T
		return zero, rangeErrorf("%d us: %w", us, errNegative)
	}
	return FromMicros[T](uint64(us)), nil
}

// AbsDiff returns the unsigned distance between a and b, in either order.
func AbsDiff[T Instant](a, b T) Duration { return a.span().AbsDiff(b.span()) }

// Compare returns -1, 0 or +1 ordering a against b.
func Compare[T Instant](a, b T) int { return a.span().Compare(b.span()) }

// Uint64Nanos narrows the nanosecond count to uint64.
func (d Duration) Uint64Nanos() (uint64, error) {
	n := d.AsNanos()
	if n.Hi != 0 {
		return 0, rangeError(&strconv.NumError{Func: "Uint64Nanos", Num: n.String(), Err: strconv.ErrRange})
	}
	return n.Lo, nil
}

// Int64Nanos narrows the nanosecond count to int64.
func (d Duration) Int64Nanos() (int64, error) {
	return narrowInt64("Int64Nanos", d.AsNanos())
}

// Int64Micros narrows the microsecond count to int64.
func (d Duration) Int64Micros() (int64, error) {
	return narrowInt64("Int64Micros", d.AsMicros())
}

// Int64Millis narrows the millisecond count to int64.
func (d Duration) Int64Millis() (int64, error) {
	return narrowInt64("Int64Millis", d.AsMillis())
}

// Int64Secs narrows the second count to int64.
func (d Duration) Int64Secs() (int64, error) {
	return narrowInt64("Int64Secs", uint128.From64(d.secs))
}

func narrowInt64(fn string, v uint128.Uint128) (int64, error) {
	if v.Hi != 0 || v.Lo > math.MaxInt64 {
		return 0, rangeError(&strconv.NumError{Func: fn, Num: v.String(), Err: strconv.ErrRange})
	}
	return int64(v.Lo), nil
}
