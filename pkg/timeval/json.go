package timeval

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"lukechampine.com/uint128"
)

// MarshalJSON emits the nanosecond count as a JSON integer, or float
// seconds when built with timeval_floatsecs.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if floatSecsWire {
		return json.Marshal(t.AsSecsF64())
	}
	return []byte(t.String()), nil
}

// UnmarshalJSON accepts:
//
//   - an integer: nanoseconds (seconds under timeval_floatsecs)
//   - a float: seconds
//   - a two-element array: [seconds, nanoseconds]
//   - a string: anything Parse accepts
//
// null leaves t unchanged.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return parseError("empty JSON value")
	}
	switch data[0] {
	case 'n':
		if string(data) == "null" {
			return nil
		}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return parseError(err.Error())
		}
		return t.UnmarshalText([]byte(s))
	case '[':
		return t.unmarshalPair(data)
	case 't', 'f', '{':
	default:
		return t.unmarshalNumber(string(data))
	}
	return parseError(fmt.Sprintf("unexpected JSON value %s", data))
}

func (t *Timestamp) unmarshalPair(data []byte) error {
	d, err := decodePair(data)
	if err != nil {
		return err
	}
	*t = Timestamp{d}
	return nil
}

func (t *Timestamp) unmarshalNumber(s string) error {
	d, err := decodeNumber(s, floatSecsWire)
	if err != nil {
		return err
	}
	*t = Timestamp{d}
	return nil
}

// MarshalJSON emits the nanosecond count as a JSON integer. Durations have
// no float-seconds wire form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts an integer (nanoseconds), a float (seconds), a
// [seconds, nanoseconds] pair or a string holding an integer nanosecond
// count. null leaves d unchanged.
func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return parseError("empty JSON value")
	}
	var (
		v   Duration
		err error
	)
	switch data[0] {
	case 'n':
		if string(data) == "null" {
			return nil
		}
		return parseError(fmt.Sprintf("unexpected JSON value %s", data))
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return parseError(err.Error())
		}
		if !isDigits(s) {
			return parseError(fmt.Sprintf("%q is not a nanosecond count", s))
		}
		v, err = decodeNumber(s, false)
	case '[':
		v, err = decodePair(data)
	case 't', 'f', '{':
		return parseError(fmt.Sprintf("unexpected JSON value %s", data))
	default:
		v, err = decodeNumber(string(data), false)
	}
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalText renders the nanosecond count.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts a non-negative integer nanosecond count.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(bytes.TrimSpace(text))
	if !isDigits(s) {
		return parseError(fmt.Sprintf("%q is not a nanosecond count", s))
	}
	v, err := decodeNumber(s, false)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalJSON emits the nanosecond count as a JSON integer in every build.
func (m Monotonic) MarshalJSON() ([]byte, error) { return m.Duration.MarshalJSON() }

// UnmarshalJSON accepts what Duration.UnmarshalJSON accepts.
func (m *Monotonic) UnmarshalJSON(data []byte) error { return m.Duration.UnmarshalJSON(data) }

// MarshalText renders the nanosecond count.
func (m Monotonic) MarshalText() ([]byte, error) { return m.Duration.MarshalText() }

// UnmarshalText accepts a non-negative integer nanosecond count.
func (m *Monotonic) UnmarshalText(text []byte) error { return m.Duration.UnmarshalText(text) }

// decodePair reads [seconds, nanoseconds].
func decodePair(data []byte) (Duration, error) {
	var pair []uint64
	if err := json.Unmarshal(data, &pair); err != nil {
		return Duration{}, parseError(err.Error())
	}
	if len(pair) != 2 {
		return Duration{}, parseError(fmt.Sprintf("expected [seconds, nanoseconds], got %d elements", len(pair)))
	}
	if pair[1] > math.MaxUint32 {
		return Duration{}, rangeErrorf("%d ns: %w", pair[1], errOverflow)
	}
	return NewDuration(pair[0], uint32(pair[1]))
}

// decodeNumber reads a JSON number. Integers are nanoseconds, or whole
// seconds when intSecs is set; anything else is float seconds.
func decodeNumber(s string, intSecs bool) (Duration, error) {
	if isDigits(s) {
		if intSecs {
			n, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return Duration{}, rangeError(err)
			}
			return DurationFromSecs(n), nil
		}
		n, err := uint128.FromString(s)
		if err != nil {
			return Duration{}, rangeError(err)
		}
		return DurationFromNanos128(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Duration{}, parseError(err.Error())
	}
	if f < 0 {
		return Duration{}, rangeErrorf("%s s: %w", s, errNegative)
	}
	return DurationFromSecsF64(f), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
