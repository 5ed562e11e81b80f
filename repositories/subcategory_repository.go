package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cashflowx/cashflowx_backend/models"
)

type MongoSubCategoryRepository struct {
	collection *mongo.Collection
}

func NewSubCategoryRepository(db *mongo.Database) *MongoSubCategoryRepository {
	return &MongoSubCategoryRepository{collection: db.Collection(SubCategoriesCollection)}
}

func (r *MongoSubCategoryRepository) Create(ctx context.Context, subCategory *models.SubCategory) error {
	if subCategory.ID.IsZero() {
		subCategory.ID = primitive.NewObjectID()
	}
	subCategory.CreatedAt = timestamp()
	subCategory.UpdatedAt = subCategory.CreatedAt
	return insertOne(ctx, r.collection, subCategory)
}

func (r *MongoSubCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SubCategory, error) {
	var subCategory models.SubCategory
	if err := findOne(ctx, r.collection, bson.M{"_id": id}, &subCategory); err != nil {
		return nil, err
	}
	return &subCategory, nil
}

func (r *MongoSubCategoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.SubCategory, error) {
	if len(ids) == 0 {
		return []models.SubCategory{}, nil
	}
	return findAll[models.SubCategory](ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoSubCategoryRepository) FindInParent(ctx context.Context, ids []primitive.ObjectID, parent primitive.ObjectID) ([]models.SubCategory, error) {
	if len(ids) == 0 {
		return []models.SubCategory{}, nil
	}
	return findAll[models.SubCategory](ctx, r.collection, bson.M{
		"_id":            bson.M{"$in": ids},
		"parentCategory": parent,
	})
}

func (r *MongoSubCategoryRepository) List(ctx context.Context, filter models.SubCategoryFilter) ([]models.SubCategory, error) {
	query := bson.M{}
	if filter.ParentCategory != nil {
		query["parentCategory"] = *filter.ParentCategory
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.SubCategory](ctx, r.collection, query, opts)
}

func (r *MongoSubCategoryRepository) Update(ctx context.Context, subCategory *models.SubCategory) error {
	subCategory.UpdatedAt = timestamp()
	return replaceOne(ctx, r.collection, subCategory.ID, subCategory)
}

func (r *MongoSubCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteOne(ctx, r.collection, id)
}
