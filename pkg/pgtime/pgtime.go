// Package pgtime encodes timeval.Timestamp the way PostgreSQL stores
// TIMESTAMPTZ: a signed 64-bit count of microseconds since
// 2000-01-01T00:00:00Z.
//
// Sub-microsecond precision is dropped on encode. The infinity sentinels
// (math.MaxInt64 and math.MinInt64) and every instant before 1970 decode
// to timeval.ErrRangeConversion.
package pgtime

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/aelexs/timeval/pkg/timeval"
)

// J2000EpochMicros is the distance from the UNIX epoch to the PostgreSQL
// epoch (2000-01-01) in microseconds.
const J2000EpochMicros = 946_684_800_000_000

// Size of the binary wire form.
const Size = 8

// EncodeMicros converts t to microseconds since the PostgreSQL epoch.
// Instants before 2000 encode to negative values.
func EncodeMicros(t timeval.Timestamp) (int64, error) {
	us, err := t.Int64Micros()
	if err != nil {
		return 0, err
	}
	return us - J2000EpochMicros, nil
}

// DecodeMicros converts microseconds since the PostgreSQL epoch to a
// Timestamp.
func DecodeMicros(us int64) (timeval.Timestamp, error) {
	switch {
	case us == math.MaxInt64 || us == math.MinInt64:
		return timeval.Timestamp{}, fmt.Errorf("%w: infinite timestamp", timeval.ErrRangeConversion)
	case us > math.MaxInt64-J2000EpochMicros:
		return timeval.Timestamp{}, fmt.Errorf("%w: %d us overflows the UNIX offset", timeval.ErrRangeConversion, us)
	case us < -J2000EpochMicros:
		return timeval.Timestamp{}, fmt.Errorf("%w: %d us predates the UNIX epoch", timeval.ErrRangeConversion, us)
	}
	return timeval.FromInt64Micros[timeval.Timestamp](us + J2000EpochMicros)
}

// AppendBinary appends the 8-byte big-endian wire form of t to dst.
func AppendBinary(dst []byte, t timeval.Timestamp) ([]byte, error) {
	us, err := EncodeMicros(t)
	if err != nil {
		return dst, err
	}
	return binary.BigEndian.AppendUint64(dst, uint64(us)), nil
}

// ParseBinary reads the wire form produced by AppendBinary.
func ParseBinary(src []byte) (timeval.Timestamp, error) {
	if len(src) != Size {
		return timeval.Timestamp{}, fmt.Errorf("%w: timestamptz must be %d bytes, got %d", timeval.ErrParse, Size, len(src))
	}
	return DecodeMicros(int64(binary.BigEndian.Uint64(src)))
}
