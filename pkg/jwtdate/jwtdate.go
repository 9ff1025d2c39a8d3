// Package jwtdate bridges timeval instants and JWT NumericDate claims.
package jwtdate

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aelexs/timeval/pkg/timeval"
)

// ToNumericDate converts t, truncating to jwt.TimePrecision (whole
// seconds unless the caller changed it).
func ToNumericDate(t timeval.Timestamp) (*jwt.NumericDate, error) {
	tm, err := t.ToTime()
	if err != nil {
		return nil, err
	}
	return jwt.NewNumericDate(tm), nil
}

// FromNumericDate converts a claim. A missing claim is a parse error.
func FromNumericDate(d *jwt.NumericDate) (timeval.Timestamp, error) {
	if d == nil {
		return timeval.Timestamp{}, fmt.Errorf("%w: missing NumericDate", timeval.ErrParse)
	}
	return timeval.FromTime(d.Time)
}

// Stamp sets iat and nbf to issued and exp to issued+ttl.
func Stamp(claims *jwt.RegisteredClaims, issued timeval.Timestamp, ttl timeval.Duration) error {
	expires, err := issued.Add(ttl)
	if err != nil {
		return err
	}
	iat, err := ToNumericDate(issued)
	if err != nil {
		return err
	}
	exp, err := ToNumericDate(expires)
	if err != nil {
		return err
	}
	claims.IssuedAt = iat
	claims.NotBefore = iat
	claims.ExpiresAt = exp
	return nil
}

// latest is the last instant time.Time can hold.
var latest = time.Unix(1<<63-1-62_135_596_800, 999_999_999).UTC()

// TimeFunc adapts c for jwt.WithTimeFunc so token validation reads the
// same clock as the rest of the caller. A clock beyond the range of
// time.Time reads as the latest representable instant, so every token
// with an expiry is expired rather than validation panicking.
func TimeFunc(c timeval.Clock) func() time.Time {
	return func() time.Time {
		tm, err := c.Now().ToTime()
		if err != nil {
			return latest
		}
		return tm
	}
}
