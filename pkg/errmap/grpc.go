// Package errmap maps timeval errors onto transport status codes.
// Every error kind has an explicit gRPC, HTTP and process exit mapping.
package errmap

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aelexs/timeval/pkg/timeval"
)

// grpcMappings maps timeval errors to gRPC status codes.
// Order matters: first match wins (via errors.Is).
//
// Mapping follows gRPC status codes reference:
// https://grpc.github.io/grpc/core/md_doc_statuscodes.html
var grpcMappings = []struct {
	err  error
	code codes.Code
}{
	// Malformed client input
	{timeval.ErrParse, codes.InvalidArgument},

	// Well-formed input that no representation can hold
	{timeval.ErrRangeConversion, codes.OutOfRange},
	{timeval.ErrCalendarConversion, codes.OutOfRange},

	// The server's own clock regressed; retrying later may succeed
	{timeval.ErrClockWentBackward, codes.FailedPrecondition},
}

// ToGRPCStatus converts a timeval error to a gRPC status.
// The returned status can be sent directly to gRPC clients.
func ToGRPCStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	for _, m := range grpcMappings {
		if errors.Is(err, m.err) {
			return status.New(m.code, err.Error())
		}
	}
	// Never expose internal error details to clients
	return status.New(codes.Internal, "internal error")
}

// ToGRPCError converts a timeval error to a gRPC error (implements error interface).
func ToGRPCError(err error) error {
	return ToGRPCStatus(err).Err()
}

// FromGRPCError extracts the gRPC status code from an error.
// Returns codes.Unknown if the error is not a gRPC status error.
func FromGRPCError(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Unknown
}
