package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/repositories"
)

// loadCategory resolves a referenced category.
func loadCategory(ctx context.Context, store *repositories.Store, id primitive.ObjectID, failed string) (*models.Category, error) {
	category, err := store.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgCategoryNotFound, failed)
	}
	return category, nil
}

// verifySubCategories runs the batched existence and membership check. The
// read is not isolated from the write that follows it.
func verifySubCategories(ctx context.Context, store *repositories.Store, ids []primitive.ObjectID, parent primitive.ObjectID, failed string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := store.SubCategories.FindInParent(ctx, ids, parent)
	if err != nil {
		return Internal(failed, err)
	}
	return checkMembership(ids, found, parent)
}
