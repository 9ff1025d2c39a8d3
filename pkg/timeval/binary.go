package timeval

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// BinarySize is the length of the binary form of Timestamp and Monotonic:
// one big-endian 64-bit word, no tag, no length prefix.
const BinarySize = 8

// FloatSecsWire reports whether this build encodes Timestamps as float64
// seconds (timeval_floatsecs build tag) rather than uint64 nanoseconds.
// Monotonic values always use nanoseconds.
func FloatSecsWire() bool { return floatSecsWire }

func appendNanos(dst []byte, d Duration) ([]byte, error) {
	n, err := d.Uint64Nanos()
	if err != nil {
		return dst, err
	}
	return binary.BigEndian.AppendUint64(dst, n), nil
}

func appendFloatSecs(dst []byte, d Duration) []byte {
	return binary.BigEndian.AppendUint64(dst, math.Float64bits(d.AsSecsF64()))
}

func readWord(data []byte) (uint64, error) {
	if len(data) != BinarySize {
		return 0, parseError(fmt.Sprintf("binary instant must be %d bytes, got %d", BinarySize, len(data)))
	}
	return binary.BigEndian.Uint64(data), nil
}

// AppendBinary appends the wire form of t to dst. Nanosecond counts that
// do not fit uint64 fail with ErrRangeConversion.
func (t Timestamp) AppendBinary(dst []byte) ([]byte, error) {
	if floatSecsWire {
		return appendFloatSecs(dst, t.Duration), nil
	}
	return appendNanos(dst, t.Duration)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t Timestamp) MarshalBinary() ([]byte, error) {
	return t.AppendBinary(make([]byte, 0, BinarySize))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Timestamp) UnmarshalBinary(data []byte) error {
	w, err := readWord(data)
	if err != nil {
		return err
	}
	if floatSecsWire {
		*t = FromSecsF64[Timestamp](math.Float64frombits(w))
		return nil
	}
	*t = FromNanos[Timestamp](w)
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (t Timestamp) EncodeMsgpack(enc *msgpack.Encoder) error {
	if floatSecsWire {
		return enc.EncodeFloat64(t.AsSecsF64())
	}
	n, err := t.Uint64Nanos()
	if err != nil {
		return err
	}
	return enc.EncodeUint64(n)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (t *Timestamp) DecodeMsgpack(dec *msgpack.Decoder) error {
	if floatSecsWire {
		f, err := dec.DecodeFloat64()
		if err != nil {
			return parseError(err.Error())
		}
		*t = FromSecsF64[Timestamp](f)
		return nil
	}
	n, err := dec.DecodeUint64()
	if err != nil {
		return parseError(err.Error())
	}
	*t = FromNanos[Timestamp](n)
	return nil
}

// AppendBinary appends the uint64 nanosecond wire form of m to dst.
func (m Monotonic) AppendBinary(dst []byte) ([]byte, error) {
	return appendNanos(dst, m.Duration)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m Monotonic) MarshalBinary() ([]byte, error) {
	return m.AppendBinary(make([]byte, 0, BinarySize))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (m *Monotonic) UnmarshalBinary(data []byte) error {
	w, err := readWord(data)
	if err != nil {
		return err
	}
	*m = FromNanos[Monotonic](w)
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (m Monotonic) EncodeMsgpack(enc *msgpack.Encoder) error {
	n, err := m.Uint64Nanos()
	if err != nil {
		return err
	}
	return enc.EncodeUint64(n)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (m *Monotonic) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeUint64()
	if err != nil {
		return parseError(err.Error())
	}
	*m = FromNanos[Monotonic](n)
	return nil
}

var (
	_ encoding.BinaryMarshaler   = Timestamp{}
	_ encoding.BinaryUnmarshaler = (*Timestamp)(nil)
	_ encoding.BinaryMarshaler   = Monotonic{}
	_ encoding.BinaryUnmarshaler = (*Monotonic)(nil)
	_ msgpack.CustomEncoder      = Timestamp{}
	_ msgpack.CustomDecoder      = (*Timestamp)(nil)
	_ msgpack.CustomEncoder      = Monotonic{}
	_ msgpack.CustomDecoder      = (*Monotonic)(nil)
)
