package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/repositories"
)

// fixture is a memory store with two users and the services under test.
type fixture struct {
	ctx          context.Context
	store        *repositories.Store
	alice, bob   primitive.ObjectID
	categories   *CategoryService
	subs         *SubCategoryService
	budgets      *BudgetService
	transactions *TransactionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), store: repositories.NewMemoryStore()}
	alice := &models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, f.store.Users.Create(f.ctx, alice))
	require.NoError(t, f.store.Users.Create(f.ctx, bob))
	f.alice, f.bob = alice.ID, bob.ID

	f.categories = NewCategoryService(f.store)
	f.subs = NewSubCategoryService(f.store)
	f.budgets = NewBudgetService(f.store)
	f.transactions = NewTransactionService(f.store)
	return f
}

func (f *fixture) category(t *testing.T, owner primitive.ObjectID, name string, kind models.CategoryType) primitive.ObjectID {
	t.Helper()
	view, err := f.categories.Create(f.ctx, owner, models.CreateCategoryRequest{Name: name, Type: string(kind)})
	require.NoError(t, err)
	return view.ID
}

func (f *fixture) subCategory(t *testing.T, owner, parent primitive.ObjectID, name string) primitive.ObjectID {
	t.Helper()
	view, err := f.subs.Create(f.ctx, owner, models.CreateSubCategoryRequest{Name: name, ParentCategory: parent.Hex()})
	require.NoError(t, err)
	return view.ID
}

// assertAppError checks both the kind and the client-facing message.
func assertAppError(t *testing.T, err error, kind ErrorKind, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, kind, appErr.Kind, "unexpected kind for %q", appErr.Message)
	require.Equal(t, message, appErr.Message)
}

func hexes(ids ...primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}
