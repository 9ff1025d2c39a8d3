//go:build !timeval_floatsecs

package timeval

// floatSecsWire selects the Timestamp wire form. Build with the
// timeval_floatsecs tag to encode float64 seconds instead of uint64
// nanoseconds. Encoder and decoder must be built the same way.
const floatSecsWire = false
