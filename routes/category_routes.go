package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/cashflowx/cashflowx_backend/controllers"
)

// RegisterCategoryRoutes sets up all category routes
func RegisterCategoryRoutes(e *echo.Echo, categoryController *controllers.CategoryController, protect ...echo.MiddlewareFunc) {
	categories := e.Group("/api/category", protect...)
	categories.POST("", categoryController.CreateCategory)
	categories.GET("", categoryController.GetCategories)
	categories.GET("/:id", categoryController.GetCategory)
	categories.PUT("/:id", categoryController.UpdateCategory)
	categories.DELETE("/:id", categoryController.DeleteCategory)
}

// RegisterSubCategoryRoutes sets up all sub-category routes
func RegisterSubCategoryRoutes(e *echo.Echo, subCategoryController *controllers.SubCategoryController, protect ...echo.MiddlewareFunc) {
	subCategories := e.Group("/api/sub-category", protect...)
	subCategories.POST("", subCategoryController.CreateSubCategory)
	subCategories.GET("", subCategoryController.GetSubCategories)
	subCategories.GET("/:id", subCategoryController.GetSubCategory)
	subCategories.PUT("/:id", subCategoryController.UpdateSubCategory)
	subCategories.DELETE("/:id", subCategoryController.DeleteSubCategory)
}
