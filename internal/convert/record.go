package convert

import (
	"encoding/hex"
	"strconv"
	"time"

	"github.com/aelexs/timeval/pkg/pgtime"
	"github.com/aelexs/timeval/pkg/timeval"
)

// Record is every representation of one instant. Representations the
// instant cannot be expressed in are left empty and omitted on output.
type Record struct {
	Input          string   `json:"input"`
	Nanos          string   `json:"nanos"`
	Micros         string   `json:"micros"`
	Millis         string   `json:"millis"`
	Secs           uint64   `json:"secs"`
	SecsF64        float64  `json:"secs_f64"`
	RFC3339        string   `json:"rfc3339,omitempty"`
	ANSINanos      *uint64  `json:"ansi_nanos,omitempty"`
	WindowsTicks   *uint64  `json:"windows_ticks,omitempty"`
	PGMicros       *int64   `json:"pg_micros,omitempty"`
	Binary         string   `json:"binary,omitempty"`
	MonotonicNanos string   `json:"monotonic_nanos"`
	Errors         []string `json:"errors,omitempty"`
}

// NewRecord renders ts into every representation. Failures of individual
// representations are listed in Errors rather than failing the record;
// mono is the run's monotonic sample.
func NewRecord(input string, ts timeval.Timestamp, mono timeval.Monotonic) Record {
	r := Record{
		Input:          input,
		Nanos:          ts.AsNanos().String(),
		Micros:         ts.AsMicros().String(),
		Millis:         ts.AsMillis().String(),
		Secs:           ts.Secs(),
		SecsF64:        ts.AsSecsF64(),
		MonotonicNanos: mono.AsNanos().String(),
	}

	if tm, err := ts.ToTime(); err != nil {
		r.fail("rfc3339", err)
	} else {
		r.RFC3339 = tm.Format(time.RFC3339Nano)
	}

	if ansi, err := ts.TryFromUnixToANSI(); err != nil {
		r.fail("ansi_nanos", err)
	} else if n, err := ansi.Uint64Nanos(); err != nil {
		r.fail("ansi_nanos", err)
	} else {
		r.ANSINanos = &n
	}

	if ticks, err := ts.WindowsTicks(); err != nil {
		r.fail("windows_ticks", err)
	} else {
		r.WindowsTicks = &ticks
	}

	if us, err := pgtime.EncodeMicros(ts); err != nil {
		r.fail("pg_micros", err)
	} else {
		r.PGMicros = &us
	}

	if b, err := ts.MarshalBinary(); err != nil {
		r.fail("binary", err)
	} else {
		r.Binary = hex.EncodeToString(b)
	}

	return r
}

func (r *Record) fail(field string, err error) {
	r.Errors = append(r.Errors, field+": "+err.Error())
}

// Pairs lists the record's fields in output order, skipping empty ones.
func (r Record) Pairs() [][2]string {
	pairs := [][2]string{
		{"input", r.Input},
		{"nanos", r.Nanos},
		{"micros", r.Micros},
		{"millis", r.Millis},
		{"secs", strconv.FormatUint(r.Secs, 10)},
		{"secs_f64", strconv.FormatFloat(r.SecsF64, 'f', -1, 64)},
	}
	add := func(k, v string) {
		if v != "" {
			pairs = append(pairs, [2]string{k, v})
		}
	}
	add("rfc3339", r.RFC3339)
	if r.ANSINanos != nil {
		add("ansi_nanos", strconv.FormatUint(*r.ANSINanos, 10))
	}
	if r.WindowsTicks != nil {
		add("windows_ticks", strconv.FormatUint(*r.WindowsTicks, 10))
	}
	if r.PGMicros != nil {
		add("pg_micros", strconv.FormatInt(*r.PGMicros, 10))
	}
	add("binary", r.Binary)
	add("monotonic_nanos", r.MonotonicNanos)
	for _, e := range r.Errors {
		add("error", e)
	}
	return pairs
}
