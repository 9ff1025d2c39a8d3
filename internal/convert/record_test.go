package convert_test

import (
	"bytes"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/timeval/internal/convert"
	"github.com/aelexs/timeval/pkg/timeval"
)

func fixtureRecord() convert.Record {
	return convert.NewRecord("fixture",
		timeval.FromNanos[timeval.Timestamp](fixtureNanos),
		timeval.FromSecs[timeval.Monotonic](42),
	)
}

func TestNewRecord(t *testing.T) {
	r := fixtureRecord()

	assert.Equal(t, "fixture", r.Input)
	assert.Equal(t, "1632093707123456789", r.Nanos)
	assert.Equal(t, "1632093707123456", r.Micros)
	assert.Equal(t, "1632093707123", r.Millis)
	assert.Equal(t, uint64(1_632_093_707), r.Secs)
	assert.InDelta(t, 1_632_093_707.123_456_789, r.SecsF64, 1e-6)
	assert.Equal(t, "2021-09-19T23:21:47.123456789Z", r.RFC3339)
	require.NotNil(t, r.ANSINanos)
	assert.Equal(t, uint64(13_276_567_307_123_456_789), *r.ANSINanos)
	require.NotNil(t, r.WindowsTicks)
	assert.Equal(t, uint64(132_765_673_071_234_567), *r.WindowsTicks)
	require.NotNil(t, r.PGMicros)
	assert.Equal(t, int64(685_408_907_123_456), *r.PGMicros)
	assert.Equal(t, "42000000000", r.MonotonicNanos)
	assert.Empty(t, r.Errors)

	if !timeval.FloatSecsWire() {
		assert.Equal(t, "16a65c94553e7b15", r.Binary)
	} else {
		assert.Len(t, r.Binary, 2*timeval.BinarySize)
	}
}

func TestNewRecord_OmitsUnrepresentable(t *testing.T) {
	// Microseconds overflow int64 and nanoseconds overflow uint64.
	wide := timeval.FromSecs[timeval.Timestamp](1 << 44)

	r := convert.NewRecord("wide", wide, timeval.Monotonic{})

	assert.Equal(t, uint64(1<<44), r.Secs)
	assert.NotEmpty(t, r.RFC3339)
	assert.Nil(t, r.ANSINanos)
	assert.Nil(t, r.WindowsTicks)
	assert.Nil(t, r.PGMicros)
	assert.NotEmpty(t, r.Errors)
	assert.True(t, strings.HasPrefix(r.Errors[0], "ansi_nanos: "))
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, convert.Write(&buf, "json", []convert.Record{fixtureRecord(), fixtureRecord()}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var got map[string]any
	require.NoError(t, jsoniter.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, "1632093707123456789", got["nanos"])
	assert.Equal(t, "2021-09-19T23:21:47.123456789Z", got["rfc3339"])
	assert.NotContains(t, got, "errors")
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, convert.Write(&buf, "text", []convert.Record{fixtureRecord(), fixtureRecord()}))

	blocks := strings.Split(buf.String(), "\n\n")
	require.Len(t, blocks, 2)
	assert.True(t, strings.HasPrefix(blocks[0], "input=fixture\nnanos=1632093707123456789\n"))
	assert.Contains(t, blocks[1], "pg_micros=685408907123456\n")
	assert.Contains(t, blocks[1], "monotonic_nanos=42000000000\n")
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := convert.Write(&bytes.Buffer{}, "xml", nil)

	assert.Error(t, err)
}
