//go:build timeval_floatsecs

package timeval

// floatSecsWire selects the Timestamp wire form. See wire_nanos.go.
const floatSecsWire = true
