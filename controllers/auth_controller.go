package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/services"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// SignUp handles POST /api/auth/sign-up
func (ac *AuthController) SignUp(c echo.Context) error {
	var req models.SignUpRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := ac.service.SignUp(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "User created successfully", result)
}

// SignIn handles POST /api/auth/sign-in
func (ac *AuthController) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := ac.service.SignIn(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Sign in successful", result)
}

// ForgotPassword handles POST /api/auth/forgot-password. The reply does not
// reveal whether the email is registered.
func (ac *AuthController) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	message, err := ac.service.ForgotPassword(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, message, nil)
}

// VerifyToken handles POST /api/auth/verify-token
func (ac *AuthController) VerifyToken(c echo.Context) error {
	var req models.VerifyTokenRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := ac.service.VerifyToken(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Token is valid", result)
}
