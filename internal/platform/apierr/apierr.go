// Package apierr renders every API failure as a JSON object with an "error"
// message and a stable machine-readable "code". Internal causes attached to
// an error are logged but never written to the client.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	CodeValidation      = "validation_error"
	CodeNotFound        = "not_found"
	CodeStoreError      = "store_unavailable"
	CodeUpstreamError   = "upstream_error"
	CodeBookingRejected = "booking_rejected"
	CodeUnauthorized    = "unauthorized"
	CodeRateLimited     = "rate_limited"
	CodeTooLarge        = "payload_too_large"
	CodeTimeout         = "timeout"
	CodeInternal        = "internal_error"
)

// Body is the JSON shape of every error response.
type Body struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// New returns an HTTP error carrying a sanitized body.
func New(status int, code, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, Body{Error: message, Code: code})
}

// Wrap is New with an internal cause attached for logging.
func Wrap(status int, code, message string, cause error) *echo.HTTPError {
	return New(status, code, message).SetInternal(cause)
}

// codeForStatus picks a code for errors raised by middleware, which only
// know the status.
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return CodeNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return CodeUnauthorized
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusRequestEntityTooLarge:
		return CodeTooLarge
	case http.StatusGatewayTimeout, http.StatusServiceUnavailable:
		return CodeTimeout
	default:
		return CodeInternal
	}
}

// BodyFor converts any handler error into a status and response body.
func BodyFor(err error) (int, Body) {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return http.StatusInternalServerError, Body{Error: "internal server error", Code: CodeInternal}
	}
	switch m := he.Message.(type) {
	case Body:
		return he.Code, m
	case string:
		return he.Code, Body{Error: m, Code: codeForStatus(he.Code)}
	case error:
		return he.Code, Body{Error: m.Error(), Code: codeForStatus(he.Code)}
	default:
		return he.Code, Body{Error: fmt.Sprint(m), Code: codeForStatus(he.Code)}
	}
}

// Handler is the echo HTTPErrorHandler for the server.
func Handler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := BodyFor(err)

		var he *echo.HTTPError
		if status >= http.StatusInternalServerError {
			evt := logger.Error().Err(err)
			if errors.As(err, &he) && he.Internal != nil {
				evt = evt.AnErr("cause", he.Internal)
			}
			rid, _ := c.Get("request_id").(string)
			evt.Str("request_id", rid).
				Int("status", status).
				Str("code", body.Code).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error().Err(err).Msg("write error response")
		}
	}
}
