package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cashflowx/cashflowx_backend/middleware"
	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/services"
)

type UserController struct {
	service *services.UserService
	resolve services.URLResolver
}

func NewUserController(service *services.UserService, resolve services.URLResolver) *UserController {
	return &UserController{service: service, resolve: resolve}
}

// GetProfile handles GET /api/user/profile
func (uc *UserController) GetProfile(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		var err error
		if user, err = uc.service.Current(c.Request().Context(), principal(c)); err != nil {
			return respondError(c, err)
		}
	}
	return respond(c, http.StatusOK, "Profile retrieved successfully", echo.Map{"user": user.Profile(uc.resolve)})
}

// UpdateProfile handles PUT /api/user/profile. It accepts multipart or
// urlencoded forms with an optional "name" and an optional "profileImage" file,
// or a JSON body with "name".
func (uc *UserController) UpdateProfile(c echo.Context) error {
	var update services.ProfileUpdate

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) || strings.HasPrefix(contentType, echo.MIMEApplicationForm) {
		params, err := c.FormParams()
		if err != nil {
			return fail(c, http.StatusBadRequest, msgInvalidBody)
		}
		if values, ok := params["name"]; ok && len(values) > 0 {
			name := values[0]
			update.Name = &name
		}
		if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
			file, err := c.FormFile("profileImage")
			if err != nil && !errors.Is(err, http.ErrMissingFile) {
				return fail(c, http.StatusBadRequest, msgInvalidBody)
			}
			update.Image = file
		}
	} else {
		var body struct {
			Name *string `json:"name"`
		}
		if err := c.Bind(&body); err != nil {
			return fail(c, http.StatusBadRequest, msgInvalidBody)
		}
		update.Name = body.Name
	}

	profile, err := uc.service.UpdateProfile(c.Request().Context(), principal(c), update)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Profile updated successfully", echo.Map{"user": profile})
}

// ChangePassword handles PUT /api/user/change-password
func (uc *UserController) ChangePassword(c echo.Context) error {
	var req models.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := uc.service.ChangePassword(c.Request().Context(), principal(c), req); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Password changed successfully", nil)
}
