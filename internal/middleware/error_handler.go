package middleware

import (
	"net/http"

	"ecoVoyage/pkg/logger"

	jsonres "ecoVoyage/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo-level fallback for errors no handler mapped.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error",
			"error", err,
			"method", c.Request().Method,
			"path", c.Path(),
		)
	}

	if err := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}
