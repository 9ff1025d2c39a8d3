// Package main is the entrypoint for tsconv.
// tsconv converts instants between every encoding timeval supports.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aelexs/timeval/internal/config"
	"github.com/aelexs/timeval/internal/convert"
	"github.com/aelexs/timeval/internal/observability"
	"github.com/aelexs/timeval/internal/runner"
	"github.com/aelexs/timeval/pkg/errmap"
	"github.com/aelexs/timeval/pkg/timeval"
)

const usage = `usage: tsconv [value ...]

Converts each value (or "now" when none is given) into every representation.

Environment:
  TSCONV_INPUT          auto, nanos, micros, millis, secs, ansi, ticks, pg, uuid (default auto)
  TSCONV_OUTPUT         json or text (default json)
  TSCONV_TIMEZONE       zone for calendar text without an offset (default UTC)
  TSCONV_LOG_LEVEL      debug, info, warn, error (default info)
  TSCONV_LOG_FORMAT     json or text (default json)
  TSCONV_OTEL_ENDPOINT  OTLP/gRPC collector address (default disabled)
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		fmt.Fprint(stdout, usage)
		return errmap.ExitOK
	}

	err := runner.Run(ctx, runner.Params{
		Name:      "tsconv",
		LogWriter: stderr,
		// runner installs logger as the slog default, which LoggerFromContext reads.
		Task: func(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
			if err := convert.Run(ctx, cfg, logger, timeval.SystemClock{}, args, stdout); err != nil {
				observability.LoggerFromContext(ctx).Error("conversion failed", observability.ErrorAttr(err))
				return err
			}
			return nil
		},
	})
	return exitCode(err, stderr)
}

// exitCode maps err to a process exit code. Configuration errors happen
// before the logger exists, so they are printed directly.
func exitCode(err error, stderr io.Writer) int {
	if errors.Is(err, config.ErrInvalidConfig) || errors.Is(err, config.ErrConfigRequired) {
		fmt.Fprintf(stderr, "tsconv: %v\n\n%s", err, usage)
		return errmap.ExitUsage
	}
	return errmap.ExitCode(err)
}
