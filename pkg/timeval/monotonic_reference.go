//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package timeval

import (
	"sync"
	"time"
)

// startedAt is recorded once, on first use, and read-only afterwards.
var startedAt = sync.OnceValue(time.Now)

// referenceSource measures time since startedAt using the runtime's
// monotonic reading embedded in time.Time.
type referenceSource struct{}

func (referenceSource) now() Duration {
	return DurationFromNanos(uint64(time.Since(startedAt())))
}

var _ monotonicSource = referenceSource{}

func sampleMonotonic() Duration { return referenceSource{}.now() }
