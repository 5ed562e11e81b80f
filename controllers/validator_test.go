package controllers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cashflowx/cashflowx_backend/models"
)

func TestValidatorMessages(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.CreateCategoryRequest{Name: "Food", Type: "EXPENSE"}))

	err := v.Validate(&models.CreateCategoryRequest{Name: strings.Repeat("n", 101)})
	assert.EqualError(t, err, "Name must be at most 100 characters")

	err = v.Validate(&models.CreateSubCategoryRequest{Name: "ok", Description: strings.Repeat("d", 501)})
	assert.EqualError(t, err, "Description must be at most 500 characters")

	subs := make([]string, 51)
	err = v.Validate(&models.CreateBudgetRequest{SubCategories: subs})
	assert.EqualError(t, err, "SubCategories must contain at most 50 items")
}

func TestValidatorUnwrapsOptionalFields(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.UpdateCategoryRequest{}), "absent fields are not validated")
	assert.NoError(t, v.Validate(&models.UpdateCategoryRequest{Name: models.Some("Meals")}))

	err := v.Validate(&models.UpdateCategoryRequest{Name: models.Some(strings.Repeat("n", 101))})
	assert.EqualError(t, err, "Name must be at most 100 characters")

	err = v.Validate(&models.UpdateTransactionRequest{SubCategories: models.Some(make([]string, 60))})
	assert.EqualError(t, err, "SubCategories must contain at most 50 items")
}
