package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/middleware"
	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/services"
)

const msgInvalidBody = "Invalid request body"

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, models.Response{
		Success: false,
		Message: message,
	})
}

// respondError maps a service error to its status code. Internal failures
// are logged and answered with their generic message only.
func respondError(c echo.Context, err error) error {
	var appErr *services.AppError
	if !errors.As(err, &appErr) {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	switch appErr.Kind {
	case services.KindInvalidInput, services.KindInvalidState:
		return fail(c, http.StatusBadRequest, appErr.Message)
	case services.KindNotFound:
		return fail(c, http.StatusNotFound, appErr.Message)
	case services.KindUnauthorized:
		return fail(c, http.StatusUnauthorized, appErr.Message)
	case services.KindForbidden:
		return fail(c, http.StatusForbidden, appErr.Message)
	case services.KindConflict:
		return fail(c, http.StatusConflict, appErr.Message)
	default:
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), appErr)
		return fail(c, http.StatusInternalServerError, appErr.Message)
	}
}

// bind decodes the JSON body into req and runs the registered validator.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return services.InvalidInput(msgInvalidBody)
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return services.InvalidInput(err.Error())
	}
	return nil
}

// principal returns the authenticated user id. Routes using it sit behind
// middleware.Authenticated.
func principal(c echo.Context) primitive.ObjectID {
	id, _ := middleware.PrincipalID(c)
	return id
}
