package pgtime

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aelexs/timeval/pkg/timeval"
)

// Codec is a pgtype.Codec for timestamptz and timestamp columns that adds
// timeval.Timestamp support on top of pgx's own time.Time handling.
// Binary values go through EncodeMicros/DecodeMicros; text values are
// routed through the fallback codec as pgtype.Timestamptz (or
// pgtype.Timestamp for columns without a zone).
type Codec struct {
	fallback pgtype.Codec
	withZone bool
}

// NewCodec returns a Codec backed by pgx's TimestamptzCodec.
func NewCodec() *Codec {
	return &Codec{fallback: &pgtype.TimestamptzCodec{}, withZone: true}
}

// NewTimestampCodec returns a Codec backed by pgx's TimestampCodec, for
// columns declared without a time zone. Values are read and written as UTC.
func NewTimestampCodec() *Codec {
	return &Codec{fallback: &pgtype.TimestampCodec{}}
}

// Register installs Codec for timestamptz and timestamp on m. Other Go
// types bound to those columns keep working through the fallback.
func Register(m *pgtype.Map) {
	m.RegisterType(&pgtype.Type{Name: "timestamptz", OID: pgtype.TimestamptzOID, Codec: NewCodec()})
	m.RegisterType(&pgtype.Type{Name: "timestamp", OID: pgtype.TimestampOID, Codec: NewTimestampCodec()})
}

// textValue wraps tm in the type the fallback codec plans text for.
func (c *Codec) textValue(tm time.Time) any {
	if c.withZone {
		return pgtype.Timestamptz{Time: tm, Valid: true}
	}
	return pgtype.Timestamp{Time: tm, Valid: true}
}

func (c *Codec) FormatSupported(format int16) bool { return c.fallback.FormatSupported(format) }

func (c *Codec) PreferredFormat() int16 { return pgtype.BinaryFormatCode }

func (c *Codec) PlanEncode(m *pgtype.Map, oid uint32, format int16, value any) pgtype.EncodePlan {
	switch value.(type) {
	case timeval.Timestamp, *timeval.Timestamp:
	default:
		return c.fallback.PlanEncode(m, oid, format, value)
	}

	if format == pgtype.BinaryFormatCode {
		return encodeBinaryPlan{}
	}
	next := c.fallback.PlanEncode(m, oid, format, c.textValue(time.Time{}))
	if next == nil {
		return nil
	}
	return encodeViaTimePlan{next: next, codec: c}
}

func (c *Codec) PlanScan(m *pgtype.Map, oid uint32, format int16, target any) pgtype.ScanPlan {
	if _, ok := target.(*timeval.Timestamp); !ok {
		return c.fallback.PlanScan(m, oid, format, target)
	}

	if format == pgtype.BinaryFormatCode {
		return scanBinaryPlan{}
	}
	var scanTarget any = &pgtype.Timestamp{}
	if c.withZone {
		scanTarget = &pgtype.Timestamptz{}
	}
	next := c.fallback.PlanScan(m, oid, format, scanTarget)
	if next == nil {
		return nil
	}
	return scanViaTimePlan{next: next, withZone: c.withZone}
}

func (c *Codec) DecodeDatabaseSQLValue(m *pgtype.Map, oid uint32, format int16, src []byte) (driver.Value, error) {
	return c.fallback.DecodeDatabaseSQLValue(m, oid, format, src)
}

func (c *Codec) DecodeValue(m *pgtype.Map, oid uint32, format int16, src []byte) (any, error) {
	return c.fallback.DecodeValue(m, oid, format, src)
}

func timestampOf(value any) timeval.Timestamp {
	if p, ok := value.(*timeval.Timestamp); ok {
		return *p
	}
	return value.(timeval.Timestamp)
}

type encodeBinaryPlan struct{}

func (encodeBinaryPlan) Encode(value any, buf []byte) ([]byte, error) {
	return AppendBinary(buf, timestampOf(value))
}

type encodeViaTimePlan struct {
	next  pgtype.EncodePlan
	codec *Codec
}

func (p encodeViaTimePlan) Encode(value any, buf []byte) ([]byte, error) {
	tm, err := timestampOf(value).ToTime()
	if err != nil {
		return nil, err
	}
	return p.next.Encode(p.codec.textValue(tm), buf)
}

type scanBinaryPlan struct{}

func (scanBinaryPlan) Scan(src []byte, target any) error {
	if src == nil {
		return fmt.Errorf("%w: NULL is not a timestamp", timeval.ErrParse)
	}
	ts, err := ParseBinary(src)
	if err != nil {
		return err
	}
	*target.(*timeval.Timestamp) = ts
	return nil
}

type scanViaTimePlan struct {
	next     pgtype.ScanPlan
	withZone bool
}

func (p scanViaTimePlan) Scan(src []byte, target any) error {
	if src == nil {
		return fmt.Errorf("%w: NULL is not a timestamp", timeval.ErrParse)
	}
	var (
		tm  time.Time
		inf pgtype.InfinityModifier
	)
	if p.withZone {
		var v pgtype.Timestamptz
		if err := p.next.Scan(src, &v); err != nil {
			return fmt.Errorf("%w: %w", timeval.ErrParse, err)
		}
		tm, inf = v.Time, v.InfinityModifier
	} else {
		var v pgtype.Timestamp
		if err := p.next.Scan(src, &v); err != nil {
			return fmt.Errorf("%w: %w", timeval.ErrParse, err)
		}
		tm, inf = v.Time, v.InfinityModifier
	}
	if inf != pgtype.Finite {
		return fmt.Errorf("%w: infinite timestamp", timeval.ErrRangeConversion)
	}
	ts, err := timeval.FromTime(tm)
	if err != nil {
		return err
	}
	*target.(*timeval.Timestamp) = ts
	return nil
}

var _ pgtype.Codec = (*Codec)(nil)
