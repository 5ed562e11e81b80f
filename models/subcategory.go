package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubCategory refines a parent Category.
type SubCategory struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Description    string             `json:"description" bson:"description"`
	ParentCategory primitive.ObjectID `json:"parentCategory" bson:"parentCategory"`
	CreatedBy      primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type SubCategoryRef struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
}

type SubCategoryView struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	ParentCategory *CategoryRef       `json:"parentCategory"`
	CreatedBy      *UserRef           `json:"createdBy"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func (v SubCategoryView) GetID() primitive.ObjectID { return v.ID }

func (s SubCategory) Ref() SubCategoryRef {
	return SubCategoryRef{ID: s.ID, Name: s.Name, Description: s.Description}
}

type CreateSubCategoryRequest struct {
	Name           string `json:"name" validate:"max=100"`
	Description    string `json:"description" validate:"max=500"`
	ParentCategory string `json:"parentCategory"`
}

type UpdateSubCategoryRequest struct {
	Name           Optional[string] `json:"name" validate:"max=100"`
	Description    Optional[string] `json:"description" validate:"max=500"`
	ParentCategory Optional[string] `json:"parentCategory"`
}

// SubCategoryFilter narrows sub-category listings.
type SubCategoryFilter struct {
	ParentCategory *primitive.ObjectID
}
