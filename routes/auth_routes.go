package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/cashflowx/cashflowx_backend/controllers"
)

// RegisterAuthRoutes sets up the public authentication routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	auth := e.Group("/api/auth")
	auth.POST("/sign-in", authController.SignIn)
	auth.POST("/sign-up", authController.SignUp)
	auth.POST("/forgot-password", authController.ForgotPassword)
	auth.POST("/verify-token", authController.VerifyToken)
}
