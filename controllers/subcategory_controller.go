package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/services"
)

type SubCategoryController struct {
	service *services.SubCategoryService
}

func NewSubCategoryController(service *services.SubCategoryService) *SubCategoryController {
	return &SubCategoryController{service: service}
}

func (sc *SubCategoryController) CreateSubCategory(c echo.Context) error {
	var req models.CreateSubCategoryRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	subCategory, err := sc.service.Create(c.Request().Context(), principal(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Sub-category created successfully", echo.Map{"subCategory": subCategory})
}

// GetSubCategories supports ?parentCategory=<id>
func (sc *SubCategoryController) GetSubCategories(c echo.Context) error {
	subCategories, err := sc.service.List(c.Request().Context(), services.SubCategoryQuery{
		ParentCategory: c.QueryParam("parentCategory"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Sub-categories retrieved successfully", echo.Map{
		"subCategories": subCategories,
		"count":         len(subCategories),
	})
}

func (sc *SubCategoryController) GetSubCategory(c echo.Context) error {
	subCategory, err := sc.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Sub-category retrieved successfully", echo.Map{"subCategory": subCategory})
}

func (sc *SubCategoryController) UpdateSubCategory(c echo.Context) error {
	var req models.UpdateSubCategoryRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	subCategory, err := sc.service.Update(c.Request().Context(), principal(c), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Sub-category updated successfully", echo.Map{"subCategory": subCategory})
}

func (sc *SubCategoryController) DeleteSubCategory(c echo.Context) error {
	if err := sc.service.Delete(c.Request().Context(), principal(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Sub-category deleted successfully", nil)
}
