// Package uuidtime extracts the creation instant from time-based UUIDs.
package uuidtime

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aelexs/timeval/pkg/timeval"
)

// FromUUID returns the instant embedded in a version 1, 6 or 7 UUID.
// Versions 1 and 6 carry 100 ns resolution, version 7 milliseconds.
// Other versions carry no time and fail with timeval.ErrParse.
func FromUUID(u uuid.UUID) (timeval.Timestamp, error) {
	switch v := u.Version(); v {
	case 1, 6, 7:
	default:
		return timeval.Timestamp{}, fmt.Errorf("%w: UUID version %d carries no timestamp", timeval.ErrParse, v)
	}

	sec, nsec := u.Time().UnixTime()
	if sec < 0 {
		return timeval.Timestamp{}, fmt.Errorf("%w: UUID time %d s predates the UNIX epoch", timeval.ErrRangeConversion, sec)
	}
	d, err := timeval.NewDuration(uint64(sec), uint32(nsec))
	if err != nil {
		return timeval.Timestamp{}, err
	}
	return timeval.FromDuration[timeval.Timestamp](d), nil
}

// Parse reads a UUID string and returns its embedded instant.
func Parse(s string) (timeval.Timestamp, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return timeval.Timestamp{}, fmt.Errorf("%w: %w", timeval.ErrParse, err)
	}
	return FromUUID(u)
}
