package errmap

import (
	"errors"
	"net/http"

	"github.com/aelexs/timeval/pkg/timeval"
)

// HTTPError represents an HTTP error response.
type HTTPError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e HTTPError) Error() string {
	return e.Message
}

type httpMapping struct {
	err        error
	statusCode int
	code       string
}

// httpMappings maps timeval errors to HTTP status codes and error codes.
// Order matters: first match wins (via errors.Is).
var httpMappings = []httpMapping{
	{timeval.ErrParse, http.StatusBadRequest, "INVALID_TIMESTAMP"},
	{timeval.ErrRangeConversion, http.StatusUnprocessableEntity, "OUT_OF_RANGE"},
	{timeval.ErrCalendarConversion, http.StatusUnprocessableEntity, "OUT_OF_CALENDAR_RANGE"},
	{timeval.ErrClockWentBackward, http.StatusServiceUnavailable, "CLOCK_WENT_BACKWARD"},
}

// ToHTTPError converts a timeval error to an HTTP error.
func ToHTTPError(err error) HTTPError {
	if err == nil {
		return HTTPError{StatusCode: http.StatusOK}
	}
	for _, m := range httpMappings {
		if errors.Is(err, m.err) {
			return HTTPError{StatusCode: m.statusCode, Code: m.code, Message: err.Error()}
		}
	}
	// Never expose internal error details to clients
	return HTTPError{StatusCode: http.StatusInternalServerError, Code: "INTERNAL", Message: "internal error"}
}

// ToHTTPStatusCode extracts just the HTTP status code for a timeval error.
func ToHTTPStatusCode(err error) int {
	return ToHTTPError(err).StatusCode
}
