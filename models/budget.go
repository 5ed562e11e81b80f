package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Budget caps spending on an EXPENSE category, optionally narrowed to some of
// its sub-categories.
type Budget struct {
	ID            primitive.ObjectID   `json:"id" bson:"_id"`
	Category      primitive.ObjectID   `json:"category" bson:"category"`
	SubCategories []primitive.ObjectID `json:"subCategories" bson:"subCategories"`
	Amount        float64              `json:"amount" bson:"amount"`
	CreatedBy     primitive.ObjectID   `json:"createdBy" bson:"createdBy"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type BudgetView struct {
	ID            primitive.ObjectID `json:"id"`
	Category      *CategoryRef       `json:"category"`
	SubCategories []SubCategoryRef   `json:"subCategories"`
	Amount        float64            `json:"amount"`
	CreatedBy     *UserRef           `json:"createdBy"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func (v BudgetView) GetID() primitive.ObjectID { return v.ID }

// CreateBudgetRequest uses Optional for amount so that a missing amount can be
// told apart from an explicit zero.
type CreateBudgetRequest struct {
	Category      string            `json:"category"`
	SubCategories []string          `json:"subCategories" validate:"max=50"`
	Amount        Optional[float64] `json:"amount"`
}

type UpdateBudgetRequest struct {
	Category      Optional[string]   `json:"category"`
	SubCategories Optional[[]string] `json:"subCategories" validate:"max=50"`
	Amount        Optional[float64]  `json:"amount"`
}

type BudgetFilter struct {
	Category *primitive.ObjectID
}
