package timeval

import (
	"math/bits"
	"time"
)

// Timestamp is an absolute wall-clock instant: the Duration elapsed since
// 1970-01-01T00:00:00Z. The zero value is the UNIX epoch.
//
// Timestamps are immutable values; ordering and equality follow the
// embedded Duration, so == and Compare agree with AsNanos ordering.
type Timestamp struct {
	Duration
}

// Now samples the system wall clock.
//
// It panics if the clock reports a time before the UNIX epoch: a process
// running on such a clock cannot produce meaningful timestamps.
func Now() Timestamp {
	t, err := FromTime(time.Now())
	if err != nil {
		panic("timeval: system time is below the UNIX epoch")
	}
	return t
}

// NowRounded is Now truncated to whole seconds.
func NowRounded() Timestamp {
	return Now().Truncate()
}

// Truncate drops the sub-second part.
func (t Timestamp) Truncate() Timestamp {
	return Timestamp{t.truncateSecs()}
}

// Elapsed returns Now()-t. It fails with ErrClockWentBackward if t lies in
// the future, which happens legitimately when the wall clock is stepped
// back (e.g. by NTP).
func (t Timestamp) Elapsed() (Duration, error) {
	return t.ElapsedOn(SystemClock{})
}

// ElapsedOn is Elapsed measured against c.
func (t Timestamp) ElapsedOn(c Clock) (Duration, error) {
	d, err := c.Now().DurationSince(t)
	if err != nil {
		recordClockRegression()
	}
	return d, err
}

// DurationSince returns t-earlier, failing with ErrClockWentBackward if
// earlier is after t.
func (t Timestamp) DurationSince(earlier Timestamp) (Duration, error) {
	if t.Compare(earlier) < 0 {
		return Duration{}, ErrClockWentBackward
	}
	return t.Duration.sub(earlier.Duration), nil
}

// Add shifts t forward by d, failing on overflow.
func (t Timestamp) Add(d Duration) (Timestamp, error) {
	sum, err := t.Duration.Add(d)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{sum}, nil
}

// Sub shifts t backward by d. Shifting past the epoch fails.
func (t Timestamp) Sub(d Duration) (Timestamp, error) {
	diff, err := t.Duration.Sub(d)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{diff}, nil
}

// SaturatingSub shifts t backward by d, stopping at the epoch.
func (t Timestamp) SaturatingSub(d Duration) Timestamp {
	return Timestamp{t.Duration.SaturatingSub(d)}
}

// AddStd shifts t by a signed time.Duration.
func (t Timestamp) AddStd(d time.Duration) (Timestamp, error) {
	if d < 0 {
		// -d overflows for math.MinInt64; split off one nanosecond.
		back := DurationFromNanos(uint64(-(d + 1)) + 1)
		return t.Sub(back)
	}
	return t.Add(DurationFromNanos(uint64(d)))
}

// AbsDiff returns the unsigned distance between t and o.
func (t Timestamp) AbsDiff(o Timestamp) Duration { return AbsDiff(t, o) }

// Compare returns -1, 0 or +1 ordering t against o.
func (t Timestamp) Compare(o Timestamp) int { return t.Duration.Compare(o.Duration) }

// Before reports whether t is earlier than o.
func (t Timestamp) Before(o Timestamp) bool { return t.Compare(o) < 0 }

// After reports whether t is later than o.
func (t Timestamp) After(o Timestamp) bool { return t.Compare(o) > 0 }

// Equal reports whether t and o are the same instant.
func (t Timestamp) Equal(o Timestamp) bool { return t == o }

// TryFromANSIToUnix reinterprets t as nanoseconds since the ANSI epoch
// (1601-01-01) and returns the same instant relative to the UNIX epoch.
//
// The stored value MUST be in nanoseconds: Windows FILETIME ticks are 100 ns
// and have to be multiplied by 100 first (see FromWindowsTicks). Instants
// before 1970 fail.
func (t Timestamp) TryFromANSIToUnix() (Timestamp, error) {
	n, err := t.Uint64Nanos()
	if err != nil {
		return Timestamp{}, err
	}
	unix, borrow := bits.Sub64(n, ANSIEpochOffsetNanos, 0)
	if borrow != 0 {
		return Timestamp{}, rangeErrorf("ANSI %d ns predates the UNIX epoch: %w", n, errUnderflow)
	}
	return FromNanos[Timestamp](unix), nil
}

// TryFromUnixToANSI is the inverse of TryFromANSIToUnix. The result is in
// nanoseconds; divide by 100 for Windows ticks.
func (t Timestamp) TryFromUnixToANSI() (Timestamp, error) {
	n, err := t.Uint64Nanos()
	if err != nil {
		return Timestamp{}, err
	}
	ansi, carry := bits.Add64(n, ANSIEpochOffsetNanos, 0)
	if carry != 0 {
		return Timestamp{}, rangeErrorf("UNIX %d ns as ANSI: %w", n, errOverflow)
	}
	return FromNanos[Timestamp](ansi), nil
}

// FromWindowsTicks converts a Windows FILETIME (100 ns ticks since
// 1601-01-01) into a UNIX Timestamp.
func FromWindowsTicks(ticks uint64) (Timestamp, error) {
	hi, lo := bits.Mul64(ticks, NanosPerWindowsTick)
	if hi != 0 {
		return Timestamp{}, rangeErrorf("%d ticks: %w", ticks, errOverflow)
	}
	return FromNanos[Timestamp](lo).TryFromANSIToUnix()
}

// WindowsTicks converts t into a Windows FILETIME tick count.
func (t Timestamp) WindowsTicks() (uint64, error) {
	ansi, err := t.TryFromUnixToANSI()
	if err != nil {
		return 0, err
	}
	n, err := ansi.Uint64Nanos()
	if err != nil {
		return 0, err
	}
	return n / NanosPerWindowsTick, nil
}
