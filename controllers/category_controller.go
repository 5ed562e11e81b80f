package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/services"
)

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController(service *services.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

// CreateCategory handles POST /api/category
func (cc *CategoryController) CreateCategory(c echo.Context) error {
	var req models.CreateCategoryRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	category, err := cc.service.Create(c.Request().Context(), principal(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Category created successfully", echo.Map{"category": category})
}

// GetCategories handles GET /api/category
func (cc *CategoryController) GetCategories(c echo.Context) error {
	categories, err := cc.service.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Categories retrieved successfully", echo.Map{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory handles GET /api/category/:id
func (cc *CategoryController) GetCategory(c echo.Context) error {
	category, err := cc.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Category retrieved successfully", echo.Map{"category": category})
}

// UpdateCategory handles PUT /api/category/:id
func (cc *CategoryController) UpdateCategory(c echo.Context) error {
	var req models.UpdateCategoryRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	category, err := cc.service.Update(c.Request().Context(), principal(c), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Category updated successfully", echo.Map{"category": category})
}

// DeleteCategory handles DELETE /api/category/:id
func (cc *CategoryController) DeleteCategory(c echo.Context) error {
	if err := cc.service.Delete(c.Request().Context(), principal(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Category deleted successfully", nil)
}
