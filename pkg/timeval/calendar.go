package timeval

import (
	"fmt"
	"time"
)

// ToTime converts t to a UTC time.Time. It fails with ErrCalendarConversion
// when t lies beyond the range time.Time can represent.
func (t Timestamp) ToTime() (time.Time, error) {
	if t.secs > maxCalendarSecs {
		return time.Time{}, fmt.Errorf("%w: %d s after the UNIX epoch", ErrCalendarConversion, t.secs)
	}
	return time.Unix(int64(t.secs), int64(t.nanos)).UTC(), nil
}

// MustTime is ToTime for instants known to be in range. Use only in tests.
func (t Timestamp) MustTime() time.Time {
	tm, err := t.ToTime()
	if err != nil {
		panic(err)
	}
	return tm
}

// FromTime converts a civil time.Time. Instants before 1970 cannot be
// expressed as a non-negative offset and fail with ErrRangeConversion.
// The monotonic reading of tm, if any, is ignored.
func FromTime(tm time.Time) (Timestamp, error) {
	secs := tm.Unix()
	if secs < 0 {
		return Timestamp{}, rangeErrorf("%s: %w", tm.UTC().Format(time.RFC3339Nano), errNegative)
	}
	return Timestamp{Duration{secs: uint64(secs), nanos: uint32(tm.Nanosecond())}}, nil
}
