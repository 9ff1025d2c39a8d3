package timeval

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/aelexs/timeval"

// regressions counts Elapsed calls that saw the wall clock behind a stored
// Timestamp. It goes through the global meter provider, so it is a no-op
// until the host application installs one.
var regressions = sync.OnceValue(func() metric.Int64Counter {
	c, err := otel.Meter(instrumentationName).Int64Counter(
		"timeval.clock.regressions",
		metric.WithDescription("Wall-clock reads that were earlier than the timestamp being measured."),
		metric.WithUnit("{regression}"),
	)
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
})

func recordClockRegression() {
	regressions().Add(context.Background(), 1)
}
