// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/repositories"
)

// Context keys set by the authentication chain.
const (
	PrincipalKey = "userId"
	UserKey      = "currentUser"
)

// Authenticator resolves the principal behind a bearer token.
type Authenticator interface {
	Authenticate(token string) (primitive.ObjectID, error)
}

// JWTMiddleware requires an "Authorization: Bearer <token>" header and stores
// the principal id under PrincipalKey.
func JWTMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return echoMiddleware.JWTWithConfig(echoMiddleware.JWTConfig{
		TokenLookup: "header:" + echo.HeaderAuthorization,
		AuthScheme:  "Bearer",
		ParseTokenFunc: func(token string, c echo.Context) (interface{}, error) {
			return auth.Authenticate(token)
		},
		SuccessHandler: func(c echo.Context) {
			if id, ok := c.Get("user").(primitive.ObjectID); ok {
				c.Set(PrincipalKey, id)
			}
		},
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			message := "Invalid or expired token"
			if errors.Is(err, echoMiddleware.ErrJWTMissing) {
				message = "Authorization token is required"
			}
			return c.JSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: message,
			})
		},
	})
}

// RequireUser loads the principal's account and rejects tokens whose user no
// longer exists. It must run after JWTMiddleware.
func RequireUser(users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := PrincipalID(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Success: false,
					Message: "Authorization token is required",
				})
			}
			user, err := users.FindByID(c.Request().Context(), id)
			if errors.Is(err, repositories.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.Response{
					Success: false,
					Message: "User not found",
				})
			}
			if err != nil {
				c.Logger().Errorf("authentication lookup failed: %v", err)
				return c.JSON(http.StatusInternalServerError, models.Response{
					Success: false,
					Message: "An error occurred during authentication",
				})
			}
			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// Authenticated is the full chain protected routes use.
func Authenticated(auth Authenticator, users repositories.UserRepository) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{JWTMiddleware(auth), RequireUser(users)}
}

// PrincipalID returns the authenticated user id stored by JWTMiddleware.
func PrincipalID(c echo.Context) (primitive.ObjectID, bool) {
	id, ok := c.Get(PrincipalKey).(primitive.ObjectID)
	return id, ok && !id.IsZero()
}

// CurrentUser returns the account loaded by RequireUser.
func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(UserKey).(*models.User)
	return user, ok
}
