package routes

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/cashflowx/cashflowx_backend/controllers"
	"github.com/cashflowx/cashflowx_backend/middleware"
	"github.com/cashflowx/cashflowx_backend/repositories"
	"github.com/cashflowx/cashflowx_backend/security"
	"github.com/cashflowx/cashflowx_backend/services"
	"github.com/cashflowx/cashflowx_backend/utils"
)

// Options carries everything the HTTP server is assembled from.
type Options struct {
	Store          *repositories.Store
	Tokens         *security.TokenManager
	Mailer         services.Mailer
	Throttle       services.ResetThrottle
	Images         *utils.ImageStore
	BaseURL        string
	AllowedOrigins []string
	// RateLimiter is optional; nil disables request rate limiting.
	RateLimiter *middleware.RateLimiter
	// Quiet disables access logging.
	Quiet bool
}

// NewServer builds the echo instance with middleware and every route group.
func NewServer(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = controllers.NewValidator()
	e.HTTPErrorHandler = controllers.HTTPErrorHandler
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	if !opts.Quiet {
		e.Use(echoMiddleware.Logger())
	}
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORS(opts.AllowedOrigins))
	e.Use(echoMiddleware.BodyLimit("6M"))
	if opts.RateLimiter != nil {
		e.Use(opts.RateLimiter.RateLimit())
	}
	e.Use(middleware.SecurityHeaders(middleware.SecurityConfig{}))

	resolve := func(path string) string { return utils.AbsoluteURL(opts.BaseURL, path) }

	authService := services.NewAuthService(opts.Store.Users, opts.Tokens, opts.Mailer, opts.Throttle, resolve)
	var images services.ImageStore
	if opts.Images != nil {
		images = opts.Images
		e.Static(utils.PublicUploadPath, opts.Images.Root)
	}

	SetupRoutes(e, Handlers{
		Auth:        controllers.NewAuthController(authService),
		User:        controllers.NewUserController(services.NewUserService(opts.Store.Users, images, resolve), resolve),
		Category:    controllers.NewCategoryController(services.NewCategoryService(opts.Store)),
		SubCategory: controllers.NewSubCategoryController(services.NewSubCategoryService(opts.Store)),
		Budget:      controllers.NewBudgetController(services.NewBudgetService(opts.Store)),
		Transaction: controllers.NewTransactionController(services.NewTransactionService(opts.Store)),
	}, middleware.Authenticated(authService, opts.Store.Users)...)
	return e
}

type Handlers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Category    *controllers.CategoryController
	SubCategory *controllers.SubCategoryController
	Budget      *controllers.BudgetController
	Transaction *controllers.TransactionController
}

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(e *echo.Echo, h Handlers, protect ...echo.MiddlewareFunc) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"message": "Server is running",
		})
	})
	e.GET("/api", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "CashFlowX API",
		})
	})

	RegisterAuthRoutes(e, h.Auth)
	RegisterUserRoutes(e, h.User, protect...)
	RegisterCategoryRoutes(e, h.Category, protect...)
	RegisterSubCategoryRoutes(e, h.SubCategory, protect...)
	RegisterBudgetRoutes(e, h.Budget, protect...)
	RegisterTransactionRoutes(e, h.Transaction, protect...)
}
