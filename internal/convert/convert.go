package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/aelexs/timeval/internal/config"
	"github.com/aelexs/timeval/internal/observability"
	"github.com/aelexs/timeval/pkg/timeval"
)

const instrumentationName = "github.com/aelexs/timeval/internal/convert"

// Converter reads arguments and renders them as records.
type Converter struct {
	reader      *Reader
	clock       timeval.Clock
	tracer      trace.Tracer
	conversions metric.Int64Counter
}

// New builds a Converter. Instruments come from the global providers
// installed by observability.InitOTEL.
func New(cfg *config.Config, clock timeval.Clock) (*Converter, error) {
	conversions, err := observability.Meter(instrumentationName).Int64Counter(
		"tsconv.conversions",
		metric.WithDescription("Arguments converted, by input mode and result."),
		metric.WithUnit("{conversion}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create conversions counter: %w", err)
	}
	return &Converter{
		reader:      NewReader(cfg, clock),
		clock:       clock,
		tracer:      observability.Tracer(instrumentationName),
		conversions: conversions,
	}, nil
}

// Convert reads every argument and returns one record each, stopping at
// the first argument that cannot be read. The monotonic clock is sampled
// once so all records share it.
func (c *Converter) Convert(ctx context.Context, args []string) ([]Record, error) {
	mono := c.clock.NowMonotonic()
	records := make([]Record, 0, len(args))
	for i, arg := range args {
		rec, err := c.convertOne(ctx, arg, mono)
		if err != nil {
			return records, fmt.Errorf("argument %d %q: %w", i+1, arg, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Converter) convertOne(ctx context.Context, arg string, mono timeval.Monotonic) (Record, error) {
	ctx, span := c.tracer.Start(ctx, "tsconv.convert",
		trace.WithAttributes(attribute.String("tsconv.input_mode", c.reader.Mode)),
	)
	defer span.End()

	ts, err := c.reader.Read(arg)
	if err != nil {
		kind := timeval.KindOf(err).String()
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		c.conversions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("input_mode", c.reader.Mode),
			attribute.String("result", kind),
		))
		return Record{}, err
	}

	rec := NewRecord(arg, ts, mono)
	span.SetAttributes(attribute.Int("tsconv.failed_fields", len(rec.Errors)))
	c.conversions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("input_mode", c.reader.Mode),
		attribute.String("result", "ok"),
	))
	return rec, nil
}

// Run is the tsconv task: it converts args ("now" when empty) and writes
// the records to out in the configured format.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, clock timeval.Clock, args []string, out io.Writer) error {
	if len(args) == 0 {
		args = []string{Now}
	}

	c, err := New(cfg, clock)
	if err != nil {
		return err
	}

	records, convErr := c.Convert(ctx, args)
	for _, rec := range records {
		if len(rec.Errors) > 0 {
			observability.WithTraceID(ctx, logger).Debug("some representations unavailable",
				slog.String("input", rec.Input),
				slog.Any("errors", rec.Errors),
			)
		}
	}

	// Records converted before a failure are still written.
	if err := Write(out, cfg.Output, records); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return convErr
}
