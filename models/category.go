// models/category.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryType is the flow direction a category (and a transaction) belongs to.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category is an income or expense bucket owned by its creator.
type Category struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Type        CategoryType       `json:"type" bson:"type"`
	CreatedBy   primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CategoryRef is the expanded form of a category reference.
type CategoryRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
	Type CategoryType       `json:"type"`
}

// CategoryView is a category with its creator expanded for display.
type CategoryView struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        CategoryType       `json:"type"`
	CreatedBy   *UserRef           `json:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func (v CategoryView) GetID() primitive.ObjectID { return v.ID }

// Ref returns the expanded reference form of c.
func (c Category) Ref() *CategoryRef {
	return &CategoryRef{ID: c.ID, Name: c.Name, Type: c.Type}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
	Type        string `json:"type"`
}

type UpdateCategoryRequest struct {
	Name        Optional[string] `json:"name" validate:"max=100"`
	Description Optional[string] `json:"description" validate:"max=500"`
	Type        Optional[string] `json:"type"`
}
