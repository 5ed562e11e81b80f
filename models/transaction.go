package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction records money moving in (INCOME) or out (EXPENSE).
type Transaction struct {
	ID            primitive.ObjectID   `json:"id" bson:"_id"`
	Name          string               `json:"name" bson:"name"`
	Type          CategoryType         `json:"type" bson:"type"`
	Category      primitive.ObjectID   `json:"category" bson:"category"`
	SubCategories []primitive.ObjectID `json:"subCategories" bson:"subCategories"`
	Amount        float64              `json:"amount" bson:"amount"`
	TransactionOn time.Time            `json:"transactionOn" bson:"transactionOn"`
	CreatedBy     primitive.ObjectID   `json:"createdBy" bson:"createdBy"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type TransactionView struct {
	ID            primitive.ObjectID `json:"id"`
	Name          string             `json:"name"`
	Type          CategoryType       `json:"type"`
	Category      *CategoryRef       `json:"category"`
	SubCategories []SubCategoryRef   `json:"subCategories"`
	Amount        float64            `json:"amount"`
	TransactionOn time.Time          `json:"transactionOn"`
	CreatedBy     *UserRef           `json:"createdBy"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func (v TransactionView) GetID() primitive.ObjectID { return v.ID }

type CreateTransactionRequest struct {
	Name          string            `json:"name" validate:"max=100"`
	Type          string            `json:"type"`
	Category      string            `json:"category"`
	SubCategories []string          `json:"subCategories" validate:"max=50"`
	Amount        Optional[float64] `json:"amount"`
	TransactionOn string            `json:"transactionOn"`
}

type UpdateTransactionRequest struct {
	Name          Optional[string]   `json:"name" validate:"max=100"`
	Type          Optional[string]   `json:"type"`
	Category      Optional[string]   `json:"category"`
	SubCategories Optional[[]string] `json:"subCategories" validate:"max=50"`
	Amount        Optional[float64]  `json:"amount"`
	TransactionOn Optional[string]   `json:"transactionOn"`
}

// TransactionFilter narrows transaction listings. Date bounds are inclusive.
type TransactionFilter struct {
	Type      CategoryType
	Category  *primitive.ObjectID
	StartDate *time.Time
	EndDate   *time.Time
}
