package errmap_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"

	"github.com/aelexs/timeval/pkg/errmap"
	"github.com/aelexs/timeval/pkg/timeval"
)

func TestToGRPCStatus(t *testing.T) {
	_, parseErr := timeval.Parse("not a time")
	_, rangeErr := timeval.MaxDuration.Int64Nanos()

	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
	}{
		{"nil error", nil, codes.OK},

		{"ErrParse", timeval.ErrParse, codes.InvalidArgument},
		{"ErrRangeConversion", timeval.ErrRangeConversion, codes.OutOfRange},
		{"ErrCalendarConversion", timeval.ErrCalendarConversion, codes.OutOfRange},
		{"ErrClockWentBackward", timeval.ErrClockWentBackward, codes.FailedPrecondition},

		// Errors produced by the library carry their sentinel
		{"parse failure", parseErr, codes.InvalidArgument},
		{"narrowing failure", rangeErr, codes.OutOfRange},
		{"wrapped", fmt.Errorf("decode row %d: %w", 3, timeval.ErrParse), codes.InvalidArgument},

		// Unknown errors map to Internal
		{"unknown error", fmt.Errorf("something unexpected"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errmap.ToGRPCStatus(tt.err)
			assert.Equal(t, tt.wantCode, got.Code(), "expected code %v, got %v", tt.wantCode, got.Code())
		})
	}
}

func TestToGRPCStatus_HidesInternalDetails(t *testing.T) {
	got := errmap.ToGRPCStatus(fmt.Errorf("dial tcp 10.0.0.1:5432: refused"))
	assert.Equal(t, "internal error", got.Message())
}

func TestToGRPCError(t *testing.T) {
	t.Run("returns nil for nil error", func(t *testing.T) {
		got := errmap.ToGRPCError(nil)
		assert.Nil(t, got)
	})

	t.Run("returns error for non-nil", func(t *testing.T) {
		got := errmap.ToGRPCError(timeval.ErrParse)
		assert.NotNil(t, got)
		assert.Equal(t, codes.InvalidArgument, errmap.FromGRPCError(got))
	})
}

func TestFromGRPCError(t *testing.T) {
	t.Run("returns OK for nil", func(t *testing.T) {
		assert.Equal(t, codes.OK, errmap.FromGRPCError(nil))
	})

	t.Run("returns Unknown for non-gRPC error", func(t *testing.T) {
		assert.Equal(t, codes.Unknown, errmap.FromGRPCError(fmt.Errorf("regular error")))
	})
}

// allSentinels lists every sentinel in timeval/errors.go. A new sentinel
// without mappings fails the completeness tests.
var allSentinels = []error{
	timeval.ErrParse,
	timeval.ErrCalendarConversion,
	timeval.ErrRangeConversion,
	timeval.ErrClockWentBackward,
}

func TestGRPCMappingCompleteness(t *testing.T) {
	for _, err := range allSentinels {
		t.Run(err.Error(), func(t *testing.T) {
			assert.NotEqual(t, codes.Internal, errmap.ToGRPCStatus(err).Code(),
				"timeval error %q should have explicit gRPC mapping, not Internal", err.Error())
		})
	}
}
