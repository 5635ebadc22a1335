package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"marketReco/business/recommendation"
)

const traceHeader = "X-Request-ID"

// TraceMiddleware reuses the caller's X-Request-ID or mints one, echoes it
// back and stores it on the request context for logging.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(traceHeader)
			if id == "" || len(id) > 128 {
				id = uuid.NewString()
			}

			req := c.Request()
			c.SetRequest(req.WithContext(recommendation.ContextWithTraceID(req.Context(), id)))
			c.Response().Header().Set(traceHeader, id)

			return next(c)
		}
	}
}

// TraceID returns the trace id of the current request, if any.
func TraceID(c echo.Context) string {
	return recommendation.TraceIDFromContext(c.Request().Context())
}
