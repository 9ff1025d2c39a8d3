package timeval

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// CalendarParser turns free-form calendar text into an absolute time.
type CalendarParser interface {
	ParseCalendar(s string) (time.Time, error)
}

// DateParser is the default CalendarParser, backed by araddon/dateparse.
// Text without a zone is read in Location, or UTC when Location is nil.
type DateParser struct {
	Location *time.Location
}

// ParseCalendar implements CalendarParser.
func (p DateParser) ParseCalendar(s string) (time.Time, error) {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	return dateparse.ParseIn(s, loc)
}

var _ CalendarParser = DateParser{}

// Parse reads a Timestamp from text using DateParser for calendar strings.
// See ParseWith.
func Parse(s string) (Timestamp, error) {
	return ParseWith(s, DateParser{})
}

// ParseWith reads a Timestamp from text. The first interpretation that
// succeeds wins:
//
//  1. a non-negative integer: nanoseconds since the epoch
//  2. a non-negative float: seconds since the epoch
//  3. anything p understands as a calendar date-time
//
// An integer too large for uint64 fails with ErrRangeConversion rather than
// being reread as a float.
func ParseWith(s string, p CalendarParser) (Timestamp, error) {
	s = strings.TrimSpace(s)

	n, err := strconv.ParseUint(s, 10, 64)
	if err == nil {
		return FromNanos[Timestamp](n), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return Timestamp{}, rangeError(err)
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 && !math.IsInf(f, 0) {
		return FromSecsF64[Timestamp](f), nil
	}

	tm, err := p.ParseCalendar(s)
	if err != nil {
		return Timestamp{}, parseError(err.Error())
	}
	return FromTime(tm)
}

// MustParse is Parse that panics on error. Use only in tests.
func MustParse(s string) Timestamp {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// MarshalText renders the nanosecond count.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts anything Parse accepts.
func (t *Timestamp) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
