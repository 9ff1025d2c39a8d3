package timeval

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure the package can report.
// Use errors.Is() for matching - never compare error strings.
var (
	// ErrParse means a textual, calendar or encoded form could not be read.
	// The wrapped message is diagnostic only.
	ErrParse = errors.New("timestamp parse failed")

	// ErrCalendarConversion means the instant lies outside the range of the
	// civil calendar type it was converted to or from.
	ErrCalendarConversion = errors.New("timestamp calendar conversion failed")

	// ErrRangeConversion means a numeric narrowing or widening step over- or
	// under-flowed its target. The originating cause is wrapped alongside.
	ErrRangeConversion = errors.New("timestamp number conversion failed")

	// ErrClockWentBackward means a wall-clock comparison observed now < self.
	ErrClockWentBackward = errors.New("time went backward")
)

// errOverflow and errUnderflow are the causes wrapped by ErrRangeConversion
// when no lower-level error (e.g. *strconv.NumError) exists.
var (
	errOverflow  = errors.New("value overflows target range")
	errUnderflow = errors.New("value underflows target range")
	errNegative  = errors.New("negative value")
)

// Kind classifies an error returned by this package.
type Kind int

const (
	// KindUnknown is returned for nil and for errors not produced here.
	KindUnknown Kind = iota
	KindParse
	KindCalendarConversion
	KindRangeConversion
	KindClockWentBackward
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindCalendarConversion:
		return "calendar_conversion"
	case KindRangeConversion:
		return "range_conversion"
	case KindClockWentBackward:
		return "clock_went_backward"
	default:
		return "unknown"
	}
}

// KindOf returns the Kind of err, looking through wrapping.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrCalendarConversion):
		return KindCalendarConversion
	case errors.Is(err, ErrRangeConversion):
		return KindRangeConversion
	case errors.Is(err, ErrClockWentBackward):
		return KindClockWentBackward
	default:
		return KindUnknown
	}
}

// IsParse reports whether err is a parse failure.
func IsParse(err error) bool { return errors.Is(err, ErrParse) }

// IsRange reports whether err is a numeric range conversion failure.
func IsRange(err error) bool { return errors.Is(err, ErrRangeConversion) }

// IsCalendar reports whether err is a calendar conversion failure.
func IsCalendar(err error) bool { return errors.Is(err, ErrCalendarConversion) }

// IsClockWentBackward reports whether err reports a wall-clock regression.
func IsClockWentBackward(err error) bool { return errors.Is(err, ErrClockWentBackward) }

func parseError(msg string) error {
	return fmt.Errorf("%w: %s", ErrParse, msg)
}

func rangeError(cause error) error {
	return fmt.Errorf("%w: %w", ErrRangeConversion, cause)
}

func rangeErrorf(format string, args ...any) error {
	return rangeError(fmt.Errorf(format, args...))
}
