// Package convert implements tsconv: it reads instants in one of several
// input encodings and renders each into every representation timeval knows.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lukechampine.com/uint128"

	"github.com/aelexs/timeval/internal/config"
	"github.com/aelexs/timeval/pkg/pgtime"
	"github.com/aelexs/timeval/pkg/timeval"
	"github.com/aelexs/timeval/pkg/uuidtime"
)

// Now is the argument that samples the clock instead of parsing.
const Now = "now"

// Reader turns one argument into a Timestamp according to an input mode.
type Reader struct {
	Mode   string
	Parser timeval.CalendarParser
	Clock  timeval.Clock
}

// NewReader builds a Reader from loaded configuration.
func NewReader(cfg *config.Config, clock timeval.Clock) *Reader {
	return &Reader{
		Mode:   cfg.Input,
		Parser: timeval.DateParser{Location: cfg.Location()},
		Clock:  clock,
	}
}

// Read interprets s. The literal "now" is accepted in every mode.
func (r *Reader) Read(s string) (timeval.Timestamp, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, Now) {
		return r.Clock.Now(), nil
	}

	switch r.Mode {
	case config.InputAuto, "":
		return timeval.ParseWith(s, r.Parser)
	case config.InputNanos:
		n, err := parseUint128(s)
		if err != nil {
			return timeval.Timestamp{}, err
		}
		return timeval.FromNanos128[timeval.Timestamp](n)
	case config.InputMicros:
		n, err := parseUint(s)
		if err != nil {
			return timeval.Timestamp{}, err
		}
		return timeval.FromMicros[timeval.Timestamp](n), nil
	case config.InputMillis:
		n, err := parseUint(s)
		if err != nil {
			return timeval.Timestamp{}, err
		}
		return timeval.FromMillis[timeval.Timestamp](n), nil
	case config.InputSecs:
		return readSecs(s)
	case config.InputANSI:
		n, err := parseUint(s)
		if err != nil {
			return timeval.Timestamp{}, err
		}
		return timeval.FromNanos[timeval.Timestamp](n).TryFromANSIToUnix()
	case config.InputTicks:
		n, err := parseUint(s)
		if err != nil {
			return timeval.Timestamp{}, err
		}
		return timeval.FromWindowsTicks(n)
	case config.InputPG:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return timeval.Timestamp{}, numError(s, err)
		}
		return pgtime.DecodeMicros(n)
	case config.InputUUID:
		return uuidtime.Parse(s)
	default:
		return timeval.Timestamp{}, fmt.Errorf("%w: input mode %q", config.ErrInvalidConfig, r.Mode)
	}
}

// readSecs accepts whole seconds exactly and fractional seconds through
// the float path.
func readSecs(s string) (timeval.Timestamp, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return timeval.FromSecs[timeval.Timestamp](n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return timeval.Timestamp{}, numError(s, err)
	}
	if f < 0 {
		return timeval.Timestamp{}, fmt.Errorf("%w: %s s predates the UNIX epoch", timeval.ErrRangeConversion, s)
	}
	// FromSecsF64 saturates; reject what it would clamp.
	if f >= float64(1<<64) {
		return timeval.Timestamp{}, fmt.Errorf("%w: %s s", timeval.ErrRangeConversion, s)
	}
	return timeval.FromSecsF64[timeval.Timestamp](f), nil
}

func parseUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, numError(s, err)
	}
	return n, nil
}

func parseUint128(s string) (uint128.Uint128, error) {
	if !isDigits(s) {
		return uint128.Zero, numError(s, strconv.ErrSyntax)
	}
	// Only overflow is left once the text is all digits.
	n, err := uint128.FromString(s)
	if err != nil {
		return uint128.Zero, fmt.Errorf("%w: %q: %w", timeval.ErrRangeConversion, s, err)
	}
	return n, nil
}

// numError classifies strconv failures: out-of-range numbers are range
// errors, everything else is a parse error.
func numError(s string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: %q: %w", timeval.ErrRangeConversion, s, err)
	}
	if strings.HasPrefix(s, "-") && isNumeric(s[1:]) {
		return fmt.Errorf("%w: %q predates the UNIX epoch", timeval.ErrRangeConversion, s)
	}
	return fmt.Errorf("%w: %q: %w", timeval.ErrParse, s, err)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
