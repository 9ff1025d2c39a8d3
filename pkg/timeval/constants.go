package timeval

import "time"

// Unit factors. Every conversion routes through these.
const (
	nanosPerSec   = 1_000_000_000
	nanosPerMilli = 1_000_000
	nanosPerMicro = 1_000
	microsPerSec  = 1_000_000
	millisPerSec  = 1_000
)

// Epoch offsets.
const (
	// ANSIEpochOffsetSecs is the distance from the ANSI epoch (1601-01-01)
	// to the UNIX epoch (1970-01-01).
	ANSIEpochOffsetSecs = 11_644_473_600

	// ANSIEpochOffsetNanos is ANSIEpochOffsetSecs in nanoseconds.
	ANSIEpochOffsetNanos uint64 = ANSIEpochOffsetSecs * nanosPerSec

	// NanosPerWindowsTick is the width of a Windows FILETIME tick (100 ns).
	NanosPerWindowsTick = 100
)

// maxCalendarSecs is the largest UNIX second time.Time can represent
// without its internal year-1 based seconds overflowing int64.
const maxCalendarSecs = 1<<63 - 1 - 62_135_596_800

// maxStdDuration bounds Duration.Std.
const maxStdDuration = time.Duration(1<<63 - 1)
