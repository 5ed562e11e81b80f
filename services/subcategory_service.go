package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/repositories"
)

const (
	msgSubCategoryNotFound    = "Sub-category not found"
	msgParentCategoryNotFound = "Parent category not found"
)

type SubCategoryService struct {
	store    *repositories.Store
	populate populator
}

func NewSubCategoryService(store *repositories.Store) *SubCategoryService {
	return &SubCategoryService{store: store, populate: populator{store: store}}
}

// SubCategoryQuery carries the raw list filters from the query string.
type SubCategoryQuery struct {
	ParentCategory string
}

// parent resolves the parent category. Only existence is checked; either
// category type may own sub-categories.
func (s *SubCategoryService) parent(ctx context.Context, id primitive.ObjectID, failed string) error {
	if _, err := s.store.Categories.FindByID(ctx, id); err != nil {
		return storeErr(err, msgParentCategoryNotFound, failed)
	}
	return nil
}

func (s *SubCategoryService) Create(ctx context.Context, principal primitive.ObjectID, req models.CreateSubCategoryRequest) (*models.SubCategoryView, error) {
	const failed = "An error occurred while creating sub-category"

	name, err := requiredText(req.Name, "Sub-category name is required")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ParentCategory) == "" {
		return nil, InvalidInput("Parent category is required")
	}
	parentID, err := parseID(req.ParentCategory, msgInvalidCategoryID)
	if err != nil {
		return nil, err
	}

	if err := s.parent(ctx, parentID, failed); err != nil {
		return nil, err
	}

	subCategory := &models.SubCategory{
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		ParentCategory: parentID,
		CreatedBy:      principal,
	}
	if err := s.store.SubCategories.Create(ctx, subCategory); err != nil {
		return nil, Internal(failed, err)
	}
	return s.view(ctx, *subCategory, failed)
}

func (s *SubCategoryService) List(ctx context.Context, query SubCategoryQuery) ([]models.SubCategoryView, error) {
	const failed = "An error occurred while retrieving sub-categories"

	var filter models.SubCategoryFilter
	if strings.TrimSpace(query.ParentCategory) != "" {
		id, err := parseID(query.ParentCategory, msgInvalidCategoryID)
		if err != nil {
			return nil, err
		}
		filter.ParentCategory = &id
	}

	subs, err := s.store.SubCategories.List(ctx, filter)
	if err != nil {
		return nil, Internal(failed, err)
	}
	views, err := s.populate.subCategoryViews(ctx, subs)
	if err != nil {
		return nil, Internal(failed, err)
	}
	return views, nil
}

func (s *SubCategoryService) Get(ctx context.Context, rawID string) (*models.SubCategoryView, error) {
	const failed = "An error occurred while retrieving sub-category"

	id, err := parseID(rawID, msgInvalidSubCategoryID)
	if err != nil {
		return nil, err
	}
	subCategory, err := s.store.SubCategories.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgSubCategoryNotFound, failed)
	}
	return s.view(ctx, *subCategory, failed)
}

func (s *SubCategoryService) Update(ctx context.Context, principal primitive.ObjectID, rawID string, req models.UpdateSubCategoryRequest) (*models.SubCategoryView, error) {
	const failed = "An error occurred while updating sub-category"

	id, err := parseID(rawID, msgInvalidSubCategoryID)
	if err != nil {
		return nil, err
	}
	subCategory, err := s.store.SubCategories.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgSubCategoryNotFound, failed)
	}
	if err := ensureOwner(subCategory.CreatedBy, principal, "update", "sub-category"); err != nil {
		return nil, err
	}

	if req.Name.Set {
		name, err := requiredText(req.Name.Value, "Sub-category name is required")
		if err != nil {
			return nil, err
		}
		subCategory.Name = name
	}
	if req.Description.Set {
		subCategory.Description = strings.TrimSpace(req.Description.Value)
	}
	var newParent *primitive.ObjectID
	if req.ParentCategory.Set {
		if strings.TrimSpace(req.ParentCategory.Value) == "" {
			return nil, InvalidInput("Parent category is required")
		}
		parentID, err := parseID(req.ParentCategory.Value, msgInvalidCategoryID)
		if err != nil {
			return nil, err
		}
		newParent = &parentID
	}

	if newParent != nil {
		if err := s.parent(ctx, *newParent, failed); err != nil {
			return nil, err
		}
		subCategory.ParentCategory = *newParent
	}

	if err := s.store.SubCategories.Update(ctx, subCategory); err != nil {
		return nil, storeErr(err, msgSubCategoryNotFound, failed)
	}
	return s.view(ctx, *subCategory, failed)
}

// Delete leaves budgets and transactions that list the sub-category untouched.
func (s *SubCategoryService) Delete(ctx context.Context, principal primitive.ObjectID, rawID string) error {
	const failed = "An error occurred while deleting sub-category"

	id, err := parseID(rawID, msgInvalidSubCategoryID)
	if err != nil {
		return err
	}
	subCategory, err := s.store.SubCategories.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, msgSubCategoryNotFound, failed)
	}
	if err := ensureOwner(subCategory.CreatedBy, principal, "delete", "sub-category"); err != nil {
		return err
	}
	if err := s.store.SubCategories.Delete(ctx, id); err != nil {
		return storeErr(err, msgSubCategoryNotFound, failed)
	}
	return nil
}

func (s *SubCategoryService) view(ctx context.Context, subCategory models.SubCategory, failed string) (*models.SubCategoryView, error) {
	views, err := s.populate.subCategoryViews(ctx, []models.SubCategory{subCategory})
	if err != nil {
		return nil, Internal(failed, err)
	}
	return &views[0], nil
}
