package timeval

// Monotonic is an instant on a clock that never moves backward within one
// process run. Its origin is unspecified and platform-chosen, so values are
// only comparable inside the process that sampled them and carry no
// calendar meaning.
type Monotonic struct {
	Duration
}

// NowMonotonic samples the monotonic clock.
//
// On platforms with a kernel monotonic clock it panics if that clock is
// unavailable. Elsewhere the origin is the first call in the process.
func NowMonotonic() Monotonic {
	return Monotonic{sampleMonotonic()}
}

// NowMonotonicRounded is NowMonotonic truncated to whole seconds.
func NowMonotonicRounded() Monotonic {
	return NowMonotonic().Truncate()
}

// Truncate drops the sub-second part.
func (m Monotonic) Truncate() Monotonic {
	return Monotonic{m.truncateSecs()}
}

// Elapsed returns NowMonotonic()-m. The clock cannot regress, so there is
// no error; a value from the future (only constructible by hand) gives zero.
func (m Monotonic) Elapsed() Duration {
	return NowMonotonic().DurationSince(m)
}

// ElapsedOn is Elapsed measured against c.
func (m Monotonic) ElapsedOn(c Clock) Duration {
	return c.NowMonotonic().DurationSince(m)
}

// DurationSince returns m-earlier, or zero if earlier is after m.
func (m Monotonic) DurationSince(earlier Monotonic) Duration {
	return m.Duration.SaturatingSub(earlier.Duration)
}

// Add shifts m forward by d, failing on overflow.
func (m Monotonic) Add(d Duration) (Monotonic, error) {
	sum, err := m.Duration.Add(d)
	if err != nil {
		return Monotonic{}, err
	}
	return Monotonic{sum}, nil
}

// Sub shifts m backward by d, failing past the clock origin.
func (m Monotonic) Sub(d Duration) (Monotonic, error) {
	diff, err := m.Duration.Sub(d)
	if err != nil {
		return Monotonic{}, err
	}
	return Monotonic{diff}, nil
}

// SaturatingSub shifts m backward by d, stopping at the origin.
func (m Monotonic) SaturatingSub(d Duration) Monotonic {
	return Monotonic{m.Duration.SaturatingSub(d)}
}

// AbsDiff returns the unsigned distance between m and o.
func (m Monotonic) AbsDiff(o Monotonic) Duration { return AbsDiff(m, o) }

// Compare returns -1, 0 or +1 ordering m against o.
func (m Monotonic) Compare(o Monotonic) int { return m.Duration.Compare(o.Duration) }

// Before reports whether m is earlier than o.
func (m Monotonic) Before(o Monotonic) bool { return m.Compare(o) < 0 }

// After reports whether m is later than o.
func (m Monotonic) After(o Monotonic) bool { return m.Compare(o) > 0 }

// Equal reports whether m and o are the same instant.
func (m Monotonic) Equal(o Monotonic) bool { return m == o }

// monotonicSource is the platform strategy behind NowMonotonic. Exactly one
// implementation is compiled in per build.
type monotonicSource interface {
	now() Duration
}
