package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cashflowx/cashflowx_backend/models"
)

type MongoCategoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{collection: db.Collection(CategoriesCollection)}
}

func (r *MongoCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	category.CreatedAt = timestamp()
	category.UpdatedAt = category.CreatedAt
	return insertOne(ctx, r.collection, category)
}

func (r *MongoCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	if err := findOne(ctx, r.collection, bson.M{"_id": id}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *MongoCategoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	return findAll[models.Category](ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Category](ctx, r.collection, bson.M{}, opts)
}

func (r *MongoCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = timestamp()
	return replaceOne(ctx, r.collection, category.ID, category)
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteOne(ctx, r.collection, id)
}
