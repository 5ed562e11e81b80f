package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cashflowx/cashflowx_backend/models"
)

type MongoBudgetRepository struct {
	collection *mongo.Collection
}

func NewBudgetRepository(db *mongo.Database) *MongoBudgetRepository {
	return &MongoBudgetRepository{collection: db.Collection(BudgetsCollection)}
}

func (r *MongoBudgetRepository) Create(ctx context.Context, budget *models.Budget) error {
	if budget.ID.IsZero() {
		budget.ID = primitive.NewObjectID()
	}
	budget.SubCategories = emptyIfNil(budget.SubCategories)
	budget.CreatedAt = timestamp()
	budget.UpdatedAt = budget.CreatedAt
	return insertOne(ctx, r.collection, budget)
}

func (r *MongoBudgetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Budget, error) {
	var budget models.Budget
	if err := findOne(ctx, r.collection, bson.M{"_id": id}, &budget); err != nil {
		return nil, err
	}
	budget.SubCategories = emptyIfNil(budget.SubCategories)
	return &budget, nil
}

func (r *MongoBudgetRepository) List(ctx context.Context, filter models.BudgetFilter) ([]models.Budget, error) {
	query := bson.M{}
	if filter.Category != nil {
		query["category"] = *filter.Category
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	budgets, err := findAll[models.Budget](ctx, r.collection, query, opts)
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		budgets[i].SubCategories = emptyIfNil(budgets[i].SubCategories)
	}
	return budgets, nil
}

func (r *MongoBudgetRepository) Update(ctx context.Context, budget *models.Budget) error {
	budget.SubCategories = emptyIfNil(budget.SubCategories)
	budget.UpdatedAt = timestamp()
	return replaceOne(ctx, r.collection, budget.ID, budget)
}

func (r *MongoBudgetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteOne(ctx, r.collection, id)
}
