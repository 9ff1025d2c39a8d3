package errmap

import "github.com/aelexs/timeval/pkg/timeval"

// Process exit codes for command-line tools.
const (
	ExitOK            = 0
	ExitInternal      = 1
	ExitUsage         = 2
	ExitParse         = 3
	ExitRange         = 4
	ExitCalendar      = 5
	ExitClockBackward = 6
)

var exitCodes = map[timeval.Kind]int{
	timeval.KindParse:              ExitParse,
	timeval.KindRangeConversion:    ExitRange,
	timeval.KindCalendarConversion: ExitCalendar,
	timeval.KindClockWentBackward:  ExitClockBackward,
}

// ExitCode returns the process exit code for err. Errors from outside the
// timeval taxonomy map to ExitInternal.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if code, ok := exitCodes[timeval.KindOf(err)]; ok {
		return code
	}
	return ExitInternal
}
