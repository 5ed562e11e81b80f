package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/cashflowx/cashflowx_backend/controllers"
)

// RegisterUserRoutes sets up the profile routes. All of them require authentication.
func RegisterUserRoutes(e *echo.Echo, userController *controllers.UserController, protect ...echo.MiddlewareFunc) {
	user := e.Group("/api/user", protect...)
	user.GET("/profile", userController.GetProfile)
	user.PUT("/profile", userController.UpdateProfile)
	user.PUT("/change-password", userController.ChangePassword)
}
