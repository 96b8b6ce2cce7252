package middleware

import (
	"context"

	"ecoVoyage/business/trip"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const traceHeader = "X-Trace-Id"

// TraceMiddleware attaches a trace id to the request context so service
// logs can be correlated per request. An incoming X-Trace-Id is honored.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get(traceHeader)
			if tid == "" {
				tid = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), trip.TraceIDKey, tid)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(traceHeader, tid)

			return next(c)
		}
	}
}
