package pgtime_test

import (
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/timeval/pkg/pgtime"
	"github.com/aelexs/timeval/pkg/timeval"
)

func TestEncodeMicros(t *testing.T) {
	t.Run("postgres epoch is zero", func(t *testing.T) {
		us, err := pgtime.EncodeMicros(timeval.FromSecs[timeval.Timestamp](946_684_800))
		require.NoError(t, err)
		assert.Zero(t, us)
	})

	t.Run("unix epoch is negative", func(t *testing.T) {
		us, err := pgtime.EncodeMicros(timeval.Timestamp{})
		require.NoError(t, err)
		assert.Equal(t, int64(-pgtime.J2000EpochMicros), us)
	})

	t.Run("drops sub-microsecond digits", func(t *testing.T) {
		us, err := pgtime.EncodeMicros(timeval.FromNanos[timeval.Timestamp](946_684_800_000_001_999))
		require.NoError(t, err)
		assert.Equal(t, int64(1), us)
	})

	t.Run("beyond int64 micros fails", func(t *testing.T) {
		_, err := pgtime.EncodeMicros(timeval.FromSecs[timeval.Timestamp](math.MaxUint64))
		assert.ErrorIs(t, err, timeval.ErrRangeConversion)
	})
}

func TestDecodeMicros(t *testing.T) {
	t.Run("round trip one second after J2000", func(t *testing.T) {
		in := timeval.FromMicros[timeval.Timestamp](pgtime.J2000EpochMicros + 1_000_000)

		us, err := pgtime.EncodeMicros(in)
		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000), us)

		out, err := pgtime.DecodeMicros(us)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	tests := []struct {
		name string
		us   int64
	}{
		{"before 1970", -pgtime.J2000EpochMicros - 1},
		{"infinity", math.MaxInt64},
		{"negative infinity", math.MinInt64},
		{"overflow", math.MaxInt64 - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pgtime.DecodeMicros(tt.us)
			assert.ErrorIs(t, err, timeval.ErrRangeConversion)
		})
	}
}

func TestBinaryWire(t *testing.T) {
	ts := timeval.FromMicros[timeval.Timestamp](1_632_093_707_123_456)

	buf, err := pgtime.AppendBinary(nil, ts)
	require.NoError(t, err)
	require.Len(t, buf, pgtime.Size)

	back, err := pgtime.ParseBinary(buf)
	require.NoError(t, err)
	assert.Equal(t, ts, back)

	_, err = pgtime.ParseBinary(buf[:4])
	assert.ErrorIs(t, err, timeval.ErrParse)
}

func newMap() *pgtype.Map {
	m := pgtype.NewMap()
	pgtime.Register(m)
	return m
}

func TestCodec_Binary(t *testing.T) {
	m := newMap()
	ts := timeval.FromMicros[timeval.Timestamp](1_632_093_707_123_456)

	buf, err := m.Encode(pgtype.TimestamptzOID, pgtype.BinaryFormatCode, ts, nil)
	require.NoError(t, err)

	var out timeval.Timestamp
	require.NoError(t, m.Scan(pgtype.TimestamptzOID, pgtype.BinaryFormatCode, buf, &out))
	assert.Equal(t, ts, out)

	var tm time.Time
	require.NoError(t, m.Scan(pgtype.TimestamptzOID, pgtype.BinaryFormatCode, buf, &tm))
	assert.True(t, ts.MustTime().Equal(tm))
}

func TestCodec_Text(t *testing.T) {
	m := newMap()
	ts := timeval.FromMicros[timeval.Timestamp](1_632_093_707_123_456)

	buf, err := m.Encode(pgtype.TimestamptzOID, pgtype.TextFormatCode, ts, nil)
	require.NoError(t, err)

	var out timeval.Timestamp
	require.NoError(t, m.Scan(pgtype.TimestamptzOID, pgtype.TextFormatCode, buf, &out))
	assert.Equal(t, ts, out)
}

func TestCodec_TextWireForm(t *testing.T) {
	m := newMap()
	ts := timeval.FromNanos[timeval.Timestamp](1_632_093_707_123_456_789)

	tests := []struct {
		name string
		oid  uint32
		want string
	}{
		{"timestamptz", pgtype.TimestamptzOID, "2021-09-19 23:21:47.123456Z"},
		{"timestamp", pgtype.TimestampOID, "2021-09-19 23:21:47.123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := m.Encode(tt.oid, pgtype.TextFormatCode, ts, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(buf))

			var out timeval.Timestamp
			require.NoError(t, m.Scan(tt.oid, pgtype.TextFormatCode, buf, &out))
			assert.Equal(t, timeval.FromMicros[timeval.Timestamp](1_632_093_707_123_456), out)
		})
	}
}

func TestCodec_TextScanErrors(t *testing.T) {
	m := newMap()

	tests := []struct {
		name string
		oid  uint32
		src  string
		want error
	}{
		{"timestamptz infinity", pgtype.TimestamptzOID, "infinity", timeval.ErrRangeConversion},
		{"timestamp -infinity", pgtype.TimestampOID, "-infinity", timeval.ErrRangeConversion},
		{"before 1970", pgtype.TimestamptzOID, "1969-07-20 20:17:00Z", timeval.ErrRangeConversion},
		{"garbage", pgtype.TimestamptzOID, "yesterday", timeval.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts timeval.Timestamp
			err := m.Scan(tt.oid, pgtype.TextFormatCode, []byte(tt.src), &ts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCodec_TimeStillWorks(t *testing.T) {
	m := newMap()
	in := time.Date(2021, time.September, 19, 23, 21, 47, 123_456_000, time.UTC)

	buf, err := m.Encode(pgtype.TimestamptzOID, pgtype.BinaryFormatCode, in, nil)
	require.NoError(t, err)

	var ts timeval.Timestamp
	require.NoError(t, m.Scan(pgtype.TimestamptzOID, pgtype.BinaryFormatCode, buf, &ts))
	assert.Equal(t, uint64(1_632_093_707_123_456_000), mustNanos(t, ts))
}

func TestCodec_ScanErrors(t *testing.T) {
	m := newMap()

	var ts timeval.Timestamp
	err := m.Scan(pgtype.TimestamptzOID, pgtype.BinaryFormatCode, nil, &ts)
	assert.ErrorIs(t, err, timeval.ErrParse)

	before1970, err := m.Encode(pgtype.TimestamptzOID, pgtype.BinaryFormatCode, time.Date(1969, time.July, 20, 20, 17, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	err = m.Scan(pgtype.TimestamptzOID, pgtype.BinaryFormatCode, before1970, &ts)
	assert.ErrorIs(t, err, timeval.ErrRangeConversion)
}

func mustNanos(t *testing.T, ts timeval.Timestamp) uint64 {
	t.Helper()
	n, err := ts.Uint64Nanos()
	require.NoError(t, err)
	return n
}
