package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
)

func TestSubCategoryCreate(t *testing.T) {
	f := newFixture(t)
	salary := f.category(t, f.alice, "Salary", models.CategoryTypeIncome)

	// Either category type may own sub-categories.
	view, err := f.subs.Create(f.ctx, f.bob, models.CreateSubCategoryRequest{Name: "Bonus", ParentCategory: salary.Hex()})
	require.NoError(t, err)
	require.NotNil(t, view.ParentCategory)
	assert.Equal(t, "Salary", view.ParentCategory.Name)
	assert.Equal(t, models.CategoryTypeIncome, view.ParentCategory.Type)
	assert.Equal(t, "Bob", view.CreatedBy.Name)

	tests := []struct {
		name string
		req  models.CreateSubCategoryRequest
		kind ErrorKind
		msg  string
	}{
		{"missing name", models.CreateSubCategoryRequest{ParentCategory: salary.Hex()}, KindInvalidInput, "Sub-category name is required"},
		{"missing parent", models.CreateSubCategoryRequest{Name: "X"}, KindInvalidInput, "Parent category is required"},
		{"malformed parent", models.CreateSubCategoryRequest{Name: "X", ParentCategory: "123"}, KindInvalidInput, "Invalid category ID"},
		{"unknown parent", models.CreateSubCategoryRequest{Name: "X", ParentCategory: primitive.NewObjectID().Hex()}, KindNotFound, "Parent category not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.subs.Create(f.ctx, f.alice, tt.req)
			assertAppError(t, err, tt.kind, tt.msg)
		})
	}
}

func TestSubCategoryListFilter(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, f.alice, "Food", models.CategoryTypeExpense)
	rent := f.category(t, f.alice, "Rent", models.CategoryTypeExpense)
	f.subCategory(t, f.alice, food, "Groceries")
	f.subCategory(t, f.alice, food, "Dining")
	f.subCategory(t, f.alice, rent, "Deposit")

	views, err := f.subs.List(f.ctx, SubCategoryQuery{ParentCategory: food.Hex()})
	require.NoError(t, err)
	assert.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, food, v.ParentCategory.ID)
	}

	all, err := f.subs.List(f.ctx, SubCategoryQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.subs.List(f.ctx, SubCategoryQuery{ParentCategory: "zzz"})
	assertAppError(t, err, KindInvalidInput, "Invalid category ID")
}

func TestSubCategoryUpdate(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, f.alice, "Food", models.CategoryTypeExpense)
	rent := f.category(t, f.alice, "Rent", models.CategoryTypeExpense)
	sub := f.subCategory(t, f.alice, food, "Groceries")

	moved, err := f.subs.Update(f.ctx, f.alice, sub.Hex(), models.UpdateSubCategoryRequest{ParentCategory: models.Some(rent.Hex())})
	require.NoError(t, err)
	assert.Equal(t, rent, moved.ParentCategory.ID)
	assert.Equal(t, "Groceries", moved.Name)

	_, err = f.subs.Update(f.ctx, f.alice, sub.Hex(), models.UpdateSubCategoryRequest{ParentCategory: models.Some(primitive.NewObjectID().Hex())})
	assertAppError(t, err, KindNotFound, "Parent category not found")

	_, err = f.subs.Update(f.ctx, f.bob, sub.Hex(), models.UpdateSubCategoryRequest{Name: models.Some("Hijack")})
	assertAppError(t, err, KindForbidden, "You are not authorized to update this sub-category")

	_, err = f.subs.Update(f.ctx, f.alice, "bad", models.UpdateSubCategoryRequest{})
	assertAppError(t, err, KindInvalidInput, "Invalid sub-category ID")
}

func TestSubCategoryDeleteLeavesReferences(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, f.alice, "Food", models.CategoryTypeExpense)
	groceries := f.subCategory(t, f.alice, food, "Groceries")
	dining := f.subCategory(t, f.alice, food, "Dining")
	tx, err := f.transactions.Create(f.ctx, f.alice, models.CreateTransactionRequest{
		Name: "Weekly shop", Type: "EXPENSE", Category: food.Hex(),
		SubCategories: hexes(groceries, dining), Amount: models.Some(80.0), TransactionOn: "2024-05-01",
	})
	require.NoError(t, err)

	assertAppError(t, f.subs.Delete(f.ctx, f.bob, groceries.Hex()), KindForbidden, "You are not authorized to delete this sub-category")
	require.NoError(t, f.subs.Delete(f.ctx, f.alice, groceries.Hex()))

	stored, err := f.store.Transactions.FindByID(f.ctx, tx.ID)
	require.NoError(t, err)
	assert.Len(t, stored.SubCategories, 2, "stored reference is untouched")

	view, err := f.transactions.Get(f.ctx, tx.ID.Hex())
	require.NoError(t, err)
	require.Len(t, view.SubCategories, 1, "dangling entries are dropped on read")
	assert.Equal(t, "Dining", view.SubCategories[0].Name)
}
