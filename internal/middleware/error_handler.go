package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"marketReco/business/recommendation"
	"marketReco/pkg/logger"
	jsonres "marketReco/pkg/response"
)

// ErrorHandler renders errors that reach echo without a response.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	code := "INTERNAL_SERVER_ERROR"
	message := "internal server error"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		status = he.Code
		code = http.StatusText(he.Code)
		message = fmt.Sprint(he.Message)
	case errors.Is(err, recommendation.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
		code = "INVALID_INPUT"
		message = err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error("unhandled request error",
			"trace_id", TraceID(c),
			"path", c.Request().URL.Path,
			"error", err,
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, jsonres.Error(code, message, nil))
	}
	if writeErr != nil {
		logger.Error("failed to write error response", "trace_id", TraceID(c), "error", writeErr)
	}
}
