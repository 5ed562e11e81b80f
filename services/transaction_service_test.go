package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
)

func expense(category primitive.ObjectID, name, on string, amount float64, subs ...primitive.ObjectID) models.CreateTransactionRequest {
	return models.CreateTransactionRequest{
		Name: name, Type: "EXPENSE", Category: category.Hex(),
		SubCategories: hexes(subs...), Amount: models.Some(amount), TransactionOn: on,
	}
}

func TestTransactionCreate(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, f.alice, "Food", models.CategoryTypeExpense)
	groceries := f.subCategory(t, f.alice, food, "Groceries")

	view, err := f.transactions.Create(f.ctx, f.alice, expense(food, "Market", "2024-04-02", 42.5, groceries))
	require.NoError(t, err)
	assert.Equal(t, "Market", view.Name)
	assert.Equal(t, models.CategoryTypeExpense, view.Type)
	assert.Equal(t, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), view.TransactionOn)
	assert.Equal(t, "Food", view.Category.Name)
	require.Len(t, view.SubCategories, 1)
	assert.Equal(t, "Alice", view.CreatedBy.Name)
}

func TestTransactionTypeMustMatchCategory(t *testing.T) {
	f := newFixture(t)
	salary := f.category(t, f.alice, "Salary", models.CategoryTypeIncome)

	_, err := f.transactions.Create(f.ctx, f.alice, expense(salary, "Oops", "2024-04-02", 10))
	assertAppError(t, err, KindInvalidState, "Category type (INCOME) must match transaction type (EXPENSE)")

	list, err := f.transactions.List(f.ctx, TransactionQuery{})
	require.NoError(t, err)
	assert.Empty(t, list, "nothing is persisted on rejection")
}

func TestTransactionRejectsForeignSubCategories(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, f.alice, "Food", models.CategoryTypeExpense)
	rent := f.category(t, f.alice, "Rent", models.CategoryTypeExpense)
	groceries := f.subCategory(t, f.alice, food, "Groceries")
	deposit := f.subCategory(t, f.alice, rent, "Deposit")

	tests := []struct {
		name string
		subs []primitive.ObjectID
	}{
		{"other parent", []primitive.ObjectID{deposit}},
		{"mixed", []primitive.ObjectID{groceries, deposit}},
		{"unknown", []primitive.ObjectID{primitive.NewObjectID()}},
		{"repeated", []primitive.ObjectID{groceries, groceries}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.transactions.Create(f.ctx, f.alice, expense(food, "Market", "2024-04-02", 10, tt.subs...))
			assertAppError(t, err, KindInvalidInput, msgSubCategoryMembers)

			list, err := f.transactions.List(f.ctx, TransactionQuery{})
			require.NoError(t, err)
			assert.Empty(t, list, "a partial membership failure rejects the whole write")
		})
	}
}

func TestTransactionCreateValidation(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, f.alice, "Food", models.CategoryTypeExpense)
	salary := f.category(t, f.alice, "Salary", models.CategoryTypeIncome)
	bonus := f.subCategory(t, f.alice, salary, "Bonus")

	valid := expense(food, "Lunch", "2024-04-02", 10)
	with := func(mutate func(*models.CreateTransactionRequest)) models.CreateTransactionRequest {
		req := valid
		mutate(&req)
		return req
	}

	tests := []struct {
		name string
		req  models.CreateTransactionRequest
		kind ErrorKind
		msg  string
	}{
		{"name", with(func(r *models.CreateTransactionRequest) { r.Name = "" }), KindInvalidInput, msgTransactionNameMissing},
		{"type", with(func(r *models.CreateTransactionRequest) { r.Type = "SPEND" }), KindInvalidInput, "Transaction type is required and must be either INCOME or EXPENSE"},
		{"category", with(func(r *models.CreateTransactionRequest) { r.Category = "" }), KindInvalidInput, msgCategoryRequired},
		{"amount", with(func(r *models.CreateTransactionRequest) { r.Amount = models.Optional[float64]{} }), KindInvalidInput, msgAmountRequired},
		{"date missing", with(func(r *models.CreateTransactionRequest) { r.TransactionOn = "" }), KindInvalidInput, msgTransactionDateMissing},
		{"date malformed", with(func(r *models.CreateTransactionRequest) { r.TransactionOn = "yesterday" }), KindInvalidInput, msgInvalidTransactionDate},
		{"category id", with(func(r *models.CreateTransactionRequest) { r.Category = "abc" }), KindInvalidInput, msgInvalidCategoryID},
		{"category unknown", with(func(r *models.CreateTransactionRequest) { r.Category = primitive.NewObjectID().Hex() }), KindNotFound, msgCategoryNotFound},
		{"foreign sub", with(func(r *models.CreateTransactionRequest) { r.SubCategories = hexes(bonus) }), KindInvalidInput, msgSubCategoryMembers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.transactions.Create(f.ctx, f.alice, tt.req)
			assertAppError(t, err, tt.kind, tt.msg)
		})
	}
}

func TestTransactionUpdate(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, f.alice, "Food", models.CategoryTypeExpense)
	salary := f.category(t, f.alice, "Salary", models.CategoryTypeIncome)
	groceries := f.subCategory(t, f.alice, food, "Groceries")
	bonus := f.subCategory(t, f.alice, salary, "Bonus")

	tx, err := f.transactions.Create(f.ctx, f.alice, expense(food, "Market", "2024-04-02", 40, groceries))
	require.NoError(t, err)
	id := tx.ID.Hex()

	t.Run("type alone must still match stored category", func(t *testing.T) {
		_, err := f.transactions.Update(f.ctx, f.alice, id, models.UpdateTransactionRequest{Type: models.Some("INCOME")})
		assertAppError(t, err, KindInvalidState, "Category type (EXPENSE) must match transaction type (INCOME)")
	})

	t.Run("category alone must match stored type", func(t *testing.T) {
		_, err := f.transactions.Update(f.ctx, f.alice, id, models.UpdateTransactionRequest{
			Category: models.Some(salary.Hex()), SubCategories: models.Some([]string{}),
		})
		assertAppError(t, err, KindInvalidState, "Category type (INCOME) must match transaction type (EXPENSE)")
	})

	t.Run("category and type together with stale subs", func(t *testing.T) {
		_, err := f.transactions.Update(f.ctx, f.alice, id, models.UpdateTransactionRequest{
			Category: models.Some(salary.Hex()), Type: models.Some("INCOME"),
		})
		assertAppError(t, err, KindInvalidInput, msgSubCategoryMembers)

		stored, err := f.transactions.Get(f.ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.CategoryTypeExpense, stored.Type, "rejected update leaves the document unchanged")
		assert.Equal(t, food, stored.Category.ID)
	})

	t.Run("full move", func(t *testing.T) {
		view, err := f.transactions.Update(f.ctx, f.alice, id, models.UpdateTransactionRequest{
			Category: models.Some(salary.Hex()), Type: models.Some("INCOME"), SubCategories: models.Some(hexes(bonus)),
			Name: models.Some("Year-end bonus"), TransactionOn: models.Some("2024-12-20T09:00:00Z"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.CategoryTypeIncome, view.Type)
		assert.Equal(t, salary, view.Category.ID)
		assert.Equal(t, "Year-end bonus", view.Name)
		assert.Equal(t, 40.0, view.Amount)
		assert.Equal(t, time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC), view.TransactionOn)
	})

	t.Run("patch shape", func(t *testing.T) {
		_, err := f.transactions.Update(f.ctx, f.alice, id, models.UpdateTransactionRequest{Name: models.Some("  ")})
		assertAppError(t, err, KindInvalidInput, msgTransactionNameMissing)
		_, err = f.transactions.Update(f.ctx, f.alice, id, models.UpdateTransactionRequest{TransactionOn: models.Some("soon")})
		assertAppError(t, err, KindInvalidInput, msgInvalidTransactionDate)
		_, err = f.transactions.Update(f.ctx, f.alice, id, models.UpdateTransactionRequest{Amount: models.Some(-3.0)})
		assertAppError(t, err, KindInvalidInput, msgAmountNegative)
	})

	t.Run("not owner", func(t *testing.T) {
		_, err := f.transactions.Update(f.ctx, f.bob, id, models.UpdateTransactionRequest{Name: models.Some("x")})
		assertAppError(t, err, KindForbidden, "You are not authorized to update this transaction")
		assertAppError(t, f.transactions.Delete(f.ctx, f.bob, id), KindForbidden, "You are not authorized to delete this transaction")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, f.transactions.Delete(f.ctx, f.alice, id))
		_, err := f.transactions.Get(f.ctx, id)
		assertAppError(t, err, KindNotFound, msgTransactionNotFound)
	})
}

func TestTransactionList(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, f.alice, "Food", models.CategoryTypeExpense)
	salary := f.category(t, f.alice, "Salary", models.CategoryTypeIncome)

	_, err := f.transactions.Create(f.ctx, f.alice, expense(food, "Lunch", "2024-04-02", 12))
	require.NoError(t, err)
	_, err = f.transactions.Create(f.ctx, f.alice, expense(food, "Dinner", "2024-04-05", 30))
	require.NoError(t, err)
	_, err = f.transactions.Create(f.ctx, f.bob, models.CreateTransactionRequest{
		Name: "Pay", Type: "INCOME", Category: salary.Hex(), Amount: models.Some(2000.0), TransactionOn: "2024-04-30",
	})
	require.NoError(t, err)

	all, err := f.transactions.List(f.ctx, TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Pay", all[0].Name, "newest transaction date first")
	assert.Equal(t, "Lunch", all[2].Name)

	expenses, err := f.transactions.List(f.ctx, TransactionQuery{Type: "EXPENSE"})
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	ignored, err := f.transactions.List(f.ctx, TransactionQuery{Type: "bogus"})
	require.NoError(t, err)
	assert.Len(t, ignored, 3, "unknown type is ignored")

	window, err := f.transactions.List(f.ctx, TransactionQuery{StartDate: "2024-04-03", EndDate: "2024-04-30"})
	require.NoError(t, err)
	require.Len(t, window, 2)

	byCategory, err := f.transactions.List(f.ctx, TransactionQuery{Category: food.Hex(), EndDate: "2024-04-02"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Lunch", byCategory[0].Name)

	_, err = f.transactions.List(f.ctx, TransactionQuery{StartDate: "April"})
	assertAppError(t, err, KindInvalidInput, "Invalid start date")
	_, err = f.transactions.List(f.ctx, TransactionQuery{EndDate: "2024-13-01"})
	assertAppError(t, err, KindInvalidInput, "Invalid end date")
	_, err = f.transactions.List(f.ctx, TransactionQuery{Category: "nope"})
	assertAppError(t, err, KindInvalidInput, msgInvalidCategoryID)
}
