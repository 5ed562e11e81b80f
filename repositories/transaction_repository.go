package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cashflowx/cashflowx_backend/models"
)

type MongoTransactionRepository struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *MongoTransactionRepository {
	return &MongoTransactionRepository{collection: db.Collection(TransactionsCollection)}
}

func (r *MongoTransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID.IsZero() {
		transaction.ID = primitive.NewObjectID()
	}
	transaction.SubCategories = emptyIfNil(transaction.SubCategories)
	transaction.CreatedAt = timestamp()
	transaction.UpdatedAt = transaction.CreatedAt
	return insertOne(ctx, r.collection, transaction)
}

func (r *MongoTransactionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := findOne(ctx, r.collection, bson.M{"_id": id}, &transaction); err != nil {
		return nil, err
	}
	transaction.SubCategories = emptyIfNil(transaction.SubCategories)
	return &transaction, nil
}

func (r *MongoTransactionRepository) List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	query := bson.M{}
	if filter.Type.Valid() {
		query["type"] = filter.Type
	}
	if filter.Category != nil {
		query["category"] = *filter.Category
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		dateRange := bson.M{}
		if filter.StartDate != nil {
			dateRange["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			dateRange["$lte"] = *filter.EndDate
		}
		query["transactionOn"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "transactionOn", Value: -1},
		{Key: "createdAt", Value: -1},
	})
	transactions, err := findAll[models.Transaction](ctx, r.collection, query, opts)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		transactions[i].SubCategories = emptyIfNil(transactions[i].SubCategories)
	}
	return transactions, nil
}

func (r *MongoTransactionRepository) Update(ctx context.Context, transaction *models.Transaction) error {
	transaction.SubCategories = emptyIfNil(transaction.SubCategories)
	transaction.UpdatedAt = timestamp()
	return replaceOne(ctx, r.collection, transaction.ID, transaction)
}

func (r *MongoTransactionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteOne(ctx, r.collection, id)
}
