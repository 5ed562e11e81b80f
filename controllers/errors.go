package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashflowx/cashflowx_backend/security"
)

// HTTPErrorHandler renders errors that escape the handlers (unknown routes,
// oversized bodies, recovered panics) in the response envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if status < http.StatusInternalServerError {
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		}
	}
	if status >= http.StatusInternalServerError {
		req := c.Request()
		c.Logger().Errorf("%s %s: %v headers=%v", req.Method, req.URL.Path, err, security.SanitizeHeaders(req.Header))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = fail(c, status, message)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
