//go:build linux || darwin || freebsd || netbsd || openbsd

package timeval

import "golang.org/x/sys/unix"

// kernelSource reads CLOCK_MONOTONIC directly with nanosecond resolution.
type kernelSource struct{}

func (kernelSource) now() Duration {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		panic("timeval: monotonic clock unavailable: " + err.Error())
	}
	sec, nsec := ts.Unix()
	return Duration{secs: uint64(sec), nanos: uint32(nsec)}
}

var _ monotonicSource = kernelSource{}

func sampleMonotonic() Duration { return kernelSource{}.now() }
