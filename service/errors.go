package service

import (
	"errors"
	"net/http"

	forecaster "github.com/muhardiansyah15/prophet-forecasting-app"
	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/ingest"
	"github.com/muhardiansyah15/prophet-forecasting-app/prophet"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

var (
	ErrBadRequest  = errors.New("invalid request")
	ErrRateLimited = errors.New("rate limit exceeded")
	ErrNoFile      = errors.New("no file in upload")
	ErrFileTooBig  = errors.New("upload exceeds the size limit")
)

// errorCodes maps caller errors onto a stable code. Order matters: the first match wins.
var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{timedataset.ErrMalformedTimestamp, http.StatusBadRequest, "malformed_timestamp"},
	{timedataset.ErrEmptySeries, http.StatusBadRequest, "empty_series"},
	{forecast.ErrLengthMismatch, http.StatusBadRequest, "length_mismatch"},
	{timedataset.ErrDatasetLenMismatch, http.StatusBadRequest, "length_mismatch"},
	{forecast.ErrUnknownMethod, http.StatusBadRequest, "unknown_method"},
	{forecast.ErrInvalidHorizon, http.StatusBadRequest, "invalid_horizon"},
	{ingest.ErrUnsupportedFormat, http.StatusBadRequest, "unsupported_format"},
	{ingest.ErrMissingColumn, http.StatusBadRequest, "missing_column"},
	{ingest.ErrNoRows, http.StatusBadRequest, "empty_file"},
	{ErrNoFile, http.StatusBadRequest, "no_file"},
	{ErrFileTooBig, http.StatusRequestEntityTooLarge, "file_too_large"},
	{ErrBadRequest, http.StatusBadRequest, "invalid_request"},
	{ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
	{forecast.ErrInsufficientHistory, http.StatusInternalServerError, "insufficient_history"},
	{forecaster.ErrMethodUnavailable, http.StatusInternalServerError, "method_unavailable"},
	{prophet.ErrUnavailable, http.StatusInternalServerError, "prophet_unavailable"},
	{prophet.ErrInvalidResponse, http.StatusInternalServerError, "prophet_unavailable"},
}

// statusFor returns the HTTP status and code for an error. Unrecognized errors are internal.
func statusFor(err error) (int, string) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.status, e.code
		}
	}
	return http.StatusInternalServerError, "internal"
}
