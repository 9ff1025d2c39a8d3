// Package wire defines cramberry messages carrying timeval instants.
//
// Timestamp and Monotonic travel as unsigned nanosecond counts.
// FloatTimestamp carries float64 seconds as raw IEEE-754 bits for peers
// built with the timeval_floatsecs wire mode.
package wire

import (
	"fmt"
	"math"

	"github.com/blockberries/cramberry/pkg/cramberry"

	"github.com/aelexs/timeval/pkg/timeval"
)

// Timestamp is a wall-clock instant as nanoseconds since the UNIX epoch.
type Timestamp struct {
	Nanos uint64 `cramberry:"1"`
}

// FloatTimestamp is a wall-clock instant as float64 seconds since the
// UNIX epoch, stored as math.Float64bits.
type FloatTimestamp struct {
	SecsBits uint64 `cramberry:"1"`
}

// Monotonic is a monotonic instant as nanoseconds since the clock origin.
type Monotonic struct {
	Nanos uint64 `cramberry:"1"`
}

// FromTimestamp fails with timeval.ErrRangeConversion past year 2554.
func FromTimestamp(t timeval.Timestamp) (Timestamp, error) {
	n, err := t.Uint64Nanos()
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{Nanos: n}, nil
}

// Timeval converts back to a timeval.Timestamp. It cannot fail.
func (w Timestamp) Timeval() timeval.Timestamp {
	return timeval.FromNanos[timeval.Timestamp](w.Nanos)
}

// FromTimestampFloat encodes t as float seconds. Lossy below ~240 ns at
// present-day magnitudes.
func FromTimestampFloat(t timeval.Timestamp) FloatTimestamp {
	return FloatTimestamp{SecsBits: math.Float64bits(t.AsSecsF64())}
}

// Secs returns the float seconds carried by w.
func (w FloatTimestamp) Secs() float64 { return math.Float64frombits(w.SecsBits) }

// Timeval converts back to a timeval.Timestamp, saturating like
// timeval.FromSecsF64.
func (w FloatTimestamp) Timeval() timeval.Timestamp {
	return timeval.FromSecsF64[timeval.Timestamp](w.Secs())
}

// FromMonotonic fails with timeval.ErrRangeConversion when m exceeds
// uint64 nanoseconds.
func FromMonotonic(m timeval.Monotonic) (Monotonic, error) {
	n, err := m.Uint64Nanos()
	if err != nil {
		return Monotonic{}, err
	}
	return Monotonic{Nanos: n}, nil
}

// Timeval converts back to a timeval.Monotonic.
func (w Monotonic) Timeval() timeval.Monotonic {
	return timeval.FromNanos[timeval.Monotonic](w.Nanos)
}

// MarshalTimestamp encodes t in the build's wire mode: FloatTimestamp when
// timeval.FloatSecsWire reports true, Timestamp otherwise.
func MarshalTimestamp(t timeval.Timestamp) ([]byte, error) {
	if timeval.FloatSecsWire() {
		return cramberry.Marshal(FromTimestampFloat(t))
	}
	w, err := FromTimestamp(t)
	if err != nil {
		return nil, err
	}
	return cramberry.Marshal(w)
}

// UnmarshalTimestamp is the inverse of MarshalTimestamp. Both sides must
// use the same wire mode.
func UnmarshalTimestamp(data []byte) (timeval.Timestamp, error) {
	if timeval.FloatSecsWire() {
		var w FloatTimestamp
		if err := cramberry.Unmarshal(data, &w); err != nil {
			return timeval.Timestamp{}, fmt.Errorf("%w: %w", timeval.ErrParse, err)
		}
		return w.Timeval(), nil
	}
	var w Timestamp
	if err := cramberry.Unmarshal(data, &w); err != nil {
		return timeval.Timestamp{}, fmt.Errorf("%w: %w", timeval.ErrParse, err)
	}
	return w.Timeval(), nil
}

// MarshalMonotonic encodes m as a Monotonic message.
func MarshalMonotonic(m timeval.Monotonic) ([]byte, error) {
	w, err := FromMonotonic(m)
	if err != nil {
		return nil, err
	}
	return cramberry.Marshal(w)
}

// UnmarshalMonotonic is the inverse of MarshalMonotonic.
func UnmarshalMonotonic(data []byte) (timeval.Monotonic, error) {
	var w Monotonic
	if err := cramberry.Unmarshal(data, &w); err != nil {
		return timeval.Monotonic{}, fmt.Errorf("%w: %w", timeval.ErrParse, err)
	}
	return w.Timeval(), nil
}
