// Package protoconv converts timeval values to and from the protobuf
// well-known types Timestamp and Duration.
package protoconv

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/aelexs/timeval/pkg/timeval"
)

// ToTimestampPB converts t. Seconds beyond int64 fail with
// timeval.ErrRangeConversion.
func ToTimestampPB(t timeval.Timestamp) (*timestamppb.Timestamp, error) {
	secs, err := t.Int64Secs()
	if err != nil {
		return nil, err
	}
	return &timestamppb.Timestamp{Seconds: secs, Nanos: int32(t.SubsecNanos())}, nil
}

// FromTimestampPB converts pb. Invalid messages fail with timeval.ErrParse
// and instants before 1970 with timeval.ErrRangeConversion. A nil message
// is invalid.
func FromTimestampPB(pb *timestamppb.Timestamp) (timeval.Timestamp, error) {
	if pb == nil {
		return timeval.Timestamp{}, fmt.Errorf("%w: nil timestamp", timeval.ErrParse)
	}
	if pb.GetNanos() < 0 || pb.GetNanos() >= 1_000_000_000 {
		return timeval.Timestamp{}, fmt.Errorf("%w: nanos %d out of range", timeval.ErrParse, pb.GetNanos())
	}
	if pb.GetSeconds() < 0 {
		return timeval.Timestamp{}, fmt.Errorf("%w: %d s predates the UNIX epoch", timeval.ErrRangeConversion, pb.GetSeconds())
	}
	d, err := timeval.NewDuration(uint64(pb.GetSeconds()), uint32(pb.GetNanos()))
	if err != nil {
		return timeval.Timestamp{}, err
	}
	return timeval.FromDuration[timeval.Timestamp](d), nil
}

// ToDurationPB converts d. Durations outside the protobuf range (about
// 10,000 years) fail with timeval.ErrRangeConversion.
func ToDurationPB(d timeval.Duration) (*durationpb.Duration, error) {
	if d.Secs() > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d s exceeds int64", timeval.ErrRangeConversion, d.Secs())
	}
	pb := &durationpb.Duration{Seconds: int64(d.Secs()), Nanos: int32(d.SubsecNanos())}
	if err := pb.CheckValid(); err != nil {
		return nil, fmt.Errorf("%w: %w", timeval.ErrRangeConversion, err)
	}
	return pb, nil
}

// FromDurationPB converts pb. Negative durations fail with
// timeval.ErrRangeConversion; malformed ones with timeval.ErrParse.
func FromDurationPB(pb *durationpb.Duration) (timeval.Duration, error) {
	if pb == nil {
		return timeval.Duration{}, fmt.Errorf("%w: nil duration", timeval.ErrParse)
	}
	if err := pb.CheckValid(); err != nil {
		return timeval.Duration{}, fmt.Errorf("%w: %w", timeval.ErrParse, err)
	}
	if pb.GetSeconds() < 0 || pb.GetNanos() < 0 {
		return timeval.Duration{}, fmt.Errorf("%w: negative duration %s", timeval.ErrRangeConversion, pb.AsDuration())
	}
	return timeval.NewDuration(uint64(pb.GetSeconds()), uint32(pb.GetNanos()))
}
