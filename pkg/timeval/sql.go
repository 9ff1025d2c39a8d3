package timeval

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
)

// Timestamp and Monotonic are stored by embedded/file databases (SQLite
// and friends) as one signed 64-bit integer column of nanoseconds. Scan
// also accepts narrower integer columns. The PostgreSQL TIMESTAMPTZ
// encoding lives in package pgtime.

// Value implements driver.Valuer. Instants past 2262-04-11 overflow int64
// nanoseconds and fail with ErrRangeConversion.
func (t Timestamp) Value() (driver.Value, error) {
	return int64Value(t.Duration)
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	d, err := scanNanos(src)
	if err != nil {
		return err
	}
	*t = Timestamp{d}
	return nil
}

// GormDataType maps the column type for gorm models.
func (Timestamp) GormDataType() string { return "integer" }

// Value implements driver.Valuer.
func (m Monotonic) Value() (driver.Value, error) {
	return int64Value(m.Duration)
}

// Scan implements sql.Scanner.
func (m *Monotonic) Scan(src any) error {
	d, err := scanNanos(src)
	if err != nil {
		return err
	}
	*m = Monotonic{d}
	return nil
}

// GormDataType maps the column type for gorm models.
func (Monotonic) GormDataType() string { return "integer" }

func int64Value(d Duration) (driver.Value, error) {
	n, err := d.Int64Nanos()
	if err != nil {
		return nil, err
	}
	return n, nil
}

func scanNanos(src any) (Duration, error) {
	var n int64
	switch v := src.(type) {
	case int64:
		n = v
	case int32:
		n = int64(v)
	case int16:
		n = int64(v)
	case int8:
		n = int64(v)
	case int:
		n = int64(v)
	case uint64:
		return DurationFromNanos(v), nil
	case []byte:
		return scanDecimal(string(v))
	case string:
		return scanDecimal(v)
	case nil:
		return Duration{}, parseError("NULL is not a timestamp")
	default:
		return Duration{}, parseError(fmt.Sprintf("unsupported column type %T", src))
	}
	if n < 0 {
		return Duration{}, rangeErrorf("%d ns: %w", n, errNegative)
	}
	return DurationFromNanos(uint64(n)), nil
}

func scanDecimal(s string) (Duration, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if errors.Is(err, strconv.ErrSyntax) {
		return Duration{}, parseError(err.Error())
	}
	if err != nil {
		return Duration{}, rangeError(err)
	}
	if n < 0 {
		return Duration{}, rangeErrorf("%d ns: %w", n, errNegative)
	}
	return DurationFromNanos(uint64(n)), nil
}

var (
	_ driver.Valuer = Timestamp{}
	_ sql.Scanner   = (*Timestamp)(nil)
	_ driver.Valuer = Monotonic{}
	_ sql.Scanner   = (*Monotonic)(nil)
)
