package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/repositories"
)

const (
	msgInvalidBudgetID = "Invalid budget ID"
	msgBudgetNotFound  = "Budget not found"
)

type BudgetService struct {
	store    *repositories.Store
	populate populator
}

func NewBudgetService(store *repositories.Store) *BudgetService {
	return &BudgetService{store: store, populate: populator{store: store}}
}

type BudgetQuery struct {
	Category string
}

func (s *BudgetService) Create(ctx context.Context, principal primitive.ObjectID, req models.CreateBudgetRequest) (*models.BudgetView, error) {
	const failed = "An error occurred while creating budget"

	if strings.TrimSpace(req.Category) == "" {
		return nil, InvalidInput(msgCategoryRequired)
	}
	amount, err := requiredAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	categoryID, err := parseID(req.Category, msgInvalidCategoryID)
	if err != nil {
		return nil, err
	}
	subIDs, err := parseIDs(req.SubCategories, msgInvalidSubCategoryID)
	if err != nil {
		return nil, err
	}

	category, err := loadCategory(ctx, s.store, categoryID, failed)
	if err != nil {
		return nil, err
	}
	if err := checkBudgetCategory(category); err != nil {
		return nil, err
	}
	if err := verifySubCategories(ctx, s.store, subIDs, categoryID, failed); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		Category:      categoryID,
		SubCategories: subIDs,
		Amount:        amount,
		CreatedBy:     principal,
	}
	if err := s.store.Budgets.Create(ctx, budget); err != nil {
		return nil, Internal(failed, err)
	}
	return s.view(ctx, *budget, failed)
}

func (s *BudgetService) List(ctx context.Context, query BudgetQuery) ([]models.BudgetView, error) {
	const failed = "An error occurred while retrieving budgets"

	var filter models.BudgetFilter
	if strings.TrimSpace(query.Category) != "" {
		id, err := parseID(query.Category, msgInvalidCategoryID)
		if err != nil {
			return nil, err
		}
		filter.Category = &id
	}

	budgets, err := s.store.Budgets.List(ctx, filter)
	if err != nil {
		return nil, Internal(failed, err)
	}
	views, err := s.populate.budgetViews(ctx, budgets)
	if err != nil {
		return nil, Internal(failed, err)
	}
	return views, nil
}

func (s *BudgetService) Get(ctx context.Context, rawID string) (*models.BudgetView, error) {
	const failed = "An error occurred while retrieving budget"

	id, err := parseID(rawID, msgInvalidBudgetID)
	if err != nil {
		return nil, err
	}
	budget, err := s.store.Budgets.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgBudgetNotFound, failed)
	}
	return s.view(ctx, *budget, failed)
}

// Update re-checks the category type whenever a category is supplied, and
// re-checks sub-category membership against the resulting category whenever
// either the category or the sub-category list changes.
func (s *BudgetService) Update(ctx context.Context, principal primitive.ObjectID, rawID string, req models.UpdateBudgetRequest) (*models.BudgetView, error) {
	const failed = "An error occurred while updating budget"

	id, err := parseID(rawID, msgInvalidBudgetID)
	if err != nil {
		return nil, err
	}
	budget, err := s.store.Budgets.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgBudgetNotFound, failed)
	}
	if err := ensureOwner(budget.CreatedBy, principal, "update", "budget"); err != nil {
		return nil, err
	}

	categoryID := budget.Category
	if req.Category.Set {
		if strings.TrimSpace(req.Category.Value) == "" {
			return nil, InvalidInput(msgCategoryRequired)
		}
		if categoryID, err = parseID(req.Category.Value, msgInvalidCategoryID); err != nil {
			return nil, err
		}
	}
	subIDs := budget.SubCategories
	if req.SubCategories.Set {
		if subIDs, err = parseIDs(req.SubCategories.Value, msgInvalidSubCategoryID); err != nil {
			return nil, err
		}
	}
	amount := budget.Amount
	if req.Amount.Set {
		if amount, err = patchAmount(req.Amount); err != nil {
			return nil, err
		}
	}

	if req.Category.Set {
		category, err := loadCategory(ctx, s.store, categoryID, failed)
		if err != nil {
			return nil, err
		}
		if err := checkBudgetCategory(category); err != nil {
			return nil, err
		}
	}
	if req.Category.Set || req.SubCategories.Set {
		if err := verifySubCategories(ctx, s.store, subIDs, categoryID, failed); err != nil {
			return nil, err
		}
	}

	budget.Category = categoryID
	budget.SubCategories = subIDs
	budget.Amount = amount
	if err := s.store.Budgets.Update(ctx, budget); err != nil {
		return nil, storeErr(err, msgBudgetNotFound, failed)
	}
	return s.view(ctx, *budget, failed)
}

func (s *BudgetService) Delete(ctx context.Context, principal primitive.ObjectID, rawID string) error {
	const failed = "An error occurred while deleting budget"

	id, err := parseID(rawID, msgInvalidBudgetID)
	if err != nil {
		return err
	}
	budget, err := s.store.Budgets.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, msgBudgetNotFound, failed)
	}
	if err := ensureOwner(budget.CreatedBy, principal, "delete", "budget"); err != nil {
		return err
	}
	if err := s.store.Budgets.Delete(ctx, id); err != nil {
		return storeErr(err, msgBudgetNotFound, failed)
	}
	return nil
}

func (s *BudgetService) view(ctx context.Context, budget models.Budget, failed string) (*models.BudgetView, error) {
	views, err := s.populate.budgetViews(ctx, []models.Budget{budget})
	if err != nil {
		return nil, Internal(failed, err)
	}
	return &views[0], nil
}
