package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/cashflowx/cashflowx_backend/controllers"
)

// RegisterBudgetRoutes sets up all budget routes
func RegisterBudgetRoutes(e *echo.Echo, budgetController *controllers.BudgetController, protect ...echo.MiddlewareFunc) {
	budgets := e.Group("/api/budget", protect...)
	budgets.POST("", budgetController.CreateBudget)
	budgets.GET("", budgetController.GetBudgets)
	budgets.GET("/:id", budgetController.GetBudget)
	budgets.PUT("/:id", budgetController.UpdateBudget)
	budgets.DELETE("/:id", budgetController.DeleteBudget)
}

// RegisterTransactionRoutes sets up all transaction routes
func RegisterTransactionRoutes(e *echo.Echo, transactionController *controllers.TransactionController, protect ...echo.MiddlewareFunc) {
	transactions := e.Group("/api/transaction", protect...)
	transactions.POST("", transactionController.CreateTransaction)
	transactions.GET("", transactionController.GetTransactions)
	transactions.GET("/:id", transactionController.GetTransaction)
	transactions.PUT("/:id", transactionController.UpdateTransaction)
	transactions.DELETE("/:id", transactionController.DeleteTransaction)
}
