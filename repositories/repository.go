package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned when a unique index rejects a write.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Every write below is a single-document operation. Callers that read other
// documents before writing get no isolation from concurrent writers.

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SubCategoryRepository interface {
	Create(ctx context.Context, subCategory *models.SubCategory) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.SubCategory, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.SubCategory, error)
	// FindInParent returns the sub-categories whose id is in ids and whose
	// parentCategory equals parent.
	FindInParent(ctx context.Context, ids []primitive.ObjectID, parent primitive.ObjectID) ([]models.SubCategory, error)
	List(ctx context.Context, filter models.SubCategoryFilter) ([]models.SubCategory, error)
	Update(ctx context.Context, subCategory *models.SubCategory) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type BudgetRepository interface {
	Create(ctx context.Context, budget *models.Budget) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Budget, error)
	List(ctx context.Context, filter models.BudgetFilter) ([]models.Budget, error)
	Update(ctx context.Context, budget *models.Budget) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	Update(ctx context.Context, transaction *models.Transaction) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Store bundles the repositories the services depend on.
type Store struct {
	Users         UserRepository
	Categories    CategoryRepository
	SubCategories SubCategoryRepository
	Budgets       BudgetRepository
	Transactions  TransactionRepository
}
