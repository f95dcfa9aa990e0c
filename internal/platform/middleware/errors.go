package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dval/hmis/pkg/apperr"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
}

// ErrorHandler renders application errors as {message} with their status.
// Internal errors are logged with their cause and reported as "Server error".
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := http.StatusInternalServerError, "Server error"

		var he *echo.HTTPError
		if ae, ok := apperr.As(err); ok {
			status = ae.Status()
			if status < http.StatusInternalServerError {
				msg = ae.Message
			}
		} else if errors.As(err, &he) {
			status = he.Code
			if status < http.StatusInternalServerError ||
				status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout {
				msg = httpErrorMessage(he)
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error().
				Err(err).
				Str("request_id", requestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorBody{Message: msg})
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Str("request_id", requestID(c)).Msg("write error response")
		}
	}
}

func httpErrorMessage(he *echo.HTTPError) string {
	if m, ok := he.Message.(string); ok && m != "" {
		return m
	}
	return http.StatusText(he.Code)
}
