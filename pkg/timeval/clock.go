package timeval

// Clock provides the current wall-clock and monotonic instants.
// Implementations may be real (SystemClock) or deterministic (timevaltest).
// Code that measures or stamps time should accept a Clock rather than call
// Now directly.
type Clock interface {
	// Now returns the current wall-clock Timestamp.
	Now() Timestamp

	// NowMonotonic returns the current Monotonic sample.
	NowMonotonic() Monotonic
}

// SystemClock implements Clock with the process clocks.
// It is a zero-allocation implementation (empty struct).
type SystemClock struct{}

// Now returns timeval.Now().
func (SystemClock) Now() Timestamp { return Now() }

// NowMonotonic returns timeval.NowMonotonic().
func (SystemClock) NowMonotonic() Monotonic { return NowMonotonic() }

// Ensure SystemClock implements Clock at compile time.
var _ Clock = SystemClock{}
