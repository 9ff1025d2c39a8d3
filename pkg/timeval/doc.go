// Package timeval provides precise time values: a wall-clock Timestamp and a
// Monotonic instant, both stored as a non-negative Duration (u64 seconds plus
// nanoseconds) since their origin.
//
// Conversions into and out of integers, floats, time.Time, text, binary,
// JSON, msgpack and SQL columns either round-trip exactly or fail with one
// of the package's sentinel errors. The only intentionally lossy
// conversions are the float-seconds ones.
//
// Generic constructors serve both instant types:
//
//	ts := timeval.FromNanos[timeval.Timestamp](1_632_093_707_123_456_789)
//	mono := timeval.FromSecs[timeval.Monotonic](30)
//
// Timestamp.Elapsed can fail with ErrClockWentBackward because the wall
// clock may be stepped backward; Monotonic.Elapsed cannot.
package timeval
