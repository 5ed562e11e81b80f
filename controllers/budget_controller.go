package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/services"
)

type BudgetController struct {
	service *services.BudgetService
}

func NewBudgetController(service *services.BudgetService) *BudgetController {
	return &BudgetController{service: service}
}

func (bc *BudgetController) CreateBudget(c echo.Context) error {
	var req models.CreateBudgetRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	budget, err := bc.service.Create(c.Request().Context(), principal(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Budget created successfully", echo.Map{"budget": budget})
}

// GetBudgets supports ?category=<id>
func (bc *BudgetController) GetBudgets(c echo.Context) error {
	budgets, err := bc.service.List(c.Request().Context(), services.BudgetQuery{
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Budgets retrieved successfully", echo.Map{
		"budgets": budgets,
		"count":   len(budgets),
	})
}

func (bc *BudgetController) GetBudget(c echo.Context) error {
	budget, err := bc.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Budget retrieved successfully", echo.Map{"budget": budget})
}

func (bc *BudgetController) UpdateBudget(c echo.Context) error {
	var req models.UpdateBudgetRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	budget, err := bc.service.Update(c.Request().Context(), principal(c), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Budget updated successfully", echo.Map{"budget": budget})
}

func (bc *BudgetController) DeleteBudget(c echo.Context) error {
	if err := bc.service.Delete(c.Request().Context(), principal(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Budget deleted successfully", nil)
}
