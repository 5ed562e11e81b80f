package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/repositories"
)

// CategoryService manages income and expense categories.
type CategoryService struct {
	store    *repositories.Store
	populate populator
}

func NewCategoryService(store *repositories.Store) *CategoryService {
	return &CategoryService{store: store, populate: populator{store: store}}
}

// storeErr maps a repository failure: ErrNotFound becomes a NotFound with
// notFound as its message, anything else an Internal with internal as its message.
func storeErr(err error, notFound, internal string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return NotFound(notFound)
	}
	return Internal(internal, err)
}

func (s *CategoryService) Create(ctx context.Context, principal primitive.ObjectID, req models.CreateCategoryRequest) (*models.CategoryView, error) {
	const failed = "An error occurred while creating category"

	name, err := requiredText(req.Name, "Category name is required")
	if err != nil {
		return nil, err
	}
	categoryType, ok := parseCategoryType(req.Type)
	if !ok {
		return nil, InvalidInput("Category type is required and must be either INCOME or EXPENSE")
	}

	category := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Type:        categoryType,
		CreatedBy:   principal,
	}
	if err := s.store.Categories.Create(ctx, category); err != nil {
		return nil, Internal(failed, err)
	}
	return s.view(ctx, *category, failed)
}

func (s *CategoryService) List(ctx context.Context) ([]models.CategoryView, error) {
	const failed = "An error occurred while retrieving categories"

	categories, err := s.store.Categories.List(ctx)
	if err != nil {
		return nil, Internal(failed, err)
	}
	views, err := s.populate.categoryViews(ctx, categories)
	if err != nil {
		return nil, Internal(failed, err)
	}
	return views, nil
}

func (s *CategoryService) Get(ctx context.Context, rawID string) (*models.CategoryView, error) {
	const failed = "An error occurred while retrieving category"

	id, err := parseID(rawID, msgInvalidCategoryID)
	if err != nil {
		return nil, err
	}
	category, err := s.store.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgCategoryNotFound, failed)
	}
	return s.view(ctx, *category, failed)
}

// Update applies only the fields present in req. Changing the type is allowed
// even while budgets or transactions reference the category.
func (s *CategoryService) Update(ctx context.Context, principal primitive.ObjectID, rawID string, req models.UpdateCategoryRequest) (*models.CategoryView, error) {
	const failed = "An error occurred while updating category"

	id, err := parseID(rawID, msgInvalidCategoryID)
	if err != nil {
		return nil, err
	}
	category, err := s.store.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgCategoryNotFound, failed)
	}
	if err := ensureOwner(category.CreatedBy, principal, "update", "category"); err != nil {
		return nil, err
	}

	if req.Name.Set {
		name, err := requiredText(req.Name.Value, "Category name is required")
		if err != nil {
			return nil, err
		}
		category.Name = name
	}
	if req.Description.Set {
		category.Description = strings.TrimSpace(req.Description.Value)
	}
	if req.Type.Set {
		categoryType, ok := parseCategoryType(req.Type.Value)
		if !ok {
			return nil, InvalidInput("Category type must be either INCOME or EXPENSE")
		}
		category.Type = categoryType
	}

	if err := s.store.Categories.Update(ctx, category); err != nil {
		return nil, storeErr(err, msgCategoryNotFound, failed)
	}
	return s.view(ctx, *category, failed)
}

// Delete removes the category only. Sub-categories, budgets and transactions
// that reference it are left in place.
func (s *CategoryService) Delete(ctx context.Context, principal primitive.ObjectID, rawID string) error {
	const failed = "An error occurred while deleting category"

	id, err := parseID(rawID, msgInvalidCategoryID)
	if err != nil {
		return err
	}
	category, err := s.store.Categories.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, msgCategoryNotFound, failed)
	}
	if err := ensureOwner(category.CreatedBy, principal, "delete", "category"); err != nil {
		return err
	}
	if err := s.store.Categories.Delete(ctx, id); err != nil {
		return storeErr(err, msgCategoryNotFound, failed)
	}
	return nil
}

func (s *CategoryService) view(ctx context.Context, category models.Category, failed string) (*models.CategoryView, error) {
	views, err := s.populate.categoryViews(ctx, []models.Category{category})
	if err != nil {
		return nil, Internal(failed, err)
	}
	return &views[0], nil
}
