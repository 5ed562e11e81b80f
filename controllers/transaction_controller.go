package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/services"
)

type TransactionController struct {
	service *services.TransactionService
}

func NewTransactionController(service *services.TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (tc *TransactionController) CreateTransaction(c echo.Context) error {
	var req models.CreateTransactionRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	transaction, err := tc.service.Create(c.Request().Context(), principal(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Transaction created successfully", echo.Map{"transaction": transaction})
}

// GetTransactions supports ?type=, ?category=, ?startDate= and ?endDate=
func (tc *TransactionController) GetTransactions(c echo.Context) error {
	transactions, err := tc.service.List(c.Request().Context(), services.TransactionQuery{
		Type:      c.QueryParam("type"),
		Category:  c.QueryParam("category"),
		StartDate: c.QueryParam("startDate"),
		EndDate:   c.QueryParam("endDate"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Transactions retrieved successfully", echo.Map{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

func (tc *TransactionController) GetTransaction(c echo.Context) error {
	transaction, err := tc.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Transaction retrieved successfully", echo.Map{"transaction": transaction})
}

func (tc *TransactionController) UpdateTransaction(c echo.Context) error {
	var req models.UpdateTransactionRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	transaction, err := tc.service.Update(c.Request().Context(), principal(c), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Transaction updated successfully", echo.Map{"transaction": transaction})
}

func (tc *TransactionController) DeleteTransaction(c echo.Context) error {
	if err := tc.service.Delete(c.Request().Context(), principal(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Transaction deleted successfully", nil)
}
