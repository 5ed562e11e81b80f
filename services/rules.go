package services

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
)

// The functions in this file are the write-path rules. They only look at
// values already loaded by the services and never touch storage, so every
// check can be exercised without a database.

const (
	msgInvalidCategoryID    = "Invalid category ID"
	msgInvalidSubCategoryID = "Invalid sub-category ID"
	msgCategoryRequired     = "Category is required"
	msgCategoryNotFound     = "Category not found"
	msgAmountRequired       = "Amount is required and must be a positive number"
	msgAmountNegative       = "Amount must be a positive number"
	msgBudgetCategoryType   = "Budget can only be created for expense categories"
	msgSubCategoryMembers   = "One or more sub-categories not found or do not belong to the selected category"
)

// parseID converts a hex id supplied by a client.
func parseID(raw, message string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, InvalidInput(message)
	}
	return id, nil
}

func parseIDs(raw []string, message string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := parseID(r, message)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// requiredText returns the trimmed value or fails with message when blank.
func requiredText(value, message string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", InvalidInput(message)
	}
	return value, nil
}

func parseCategoryType(raw string) (models.CategoryType, bool) {
	t := models.CategoryType(strings.TrimSpace(raw))
	return t, t.Valid()
}

// requiredAmount accepts zero and rejects a missing or negative amount.
func requiredAmount(amount models.Optional[float64]) (float64, error) {
	if !amount.Present() || amount.Value < 0 {
		return 0, InvalidInput(msgAmountRequired)
	}
	return amount.Value, nil
}

// patchAmount validates an amount supplied on update.
func patchAmount(amount models.Optional[float64]) (float64, error) {
	if amount.Null {
		return 0, InvalidInput(msgAmountRequired)
	}
	if amount.Value < 0 {
		return 0, InvalidInput(msgAmountNegative)
	}
	return amount.Value, nil
}

// dateLayouts are tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseDate accepts a calendar date (YYYY-MM-DD, read as UTC midnight), an
// RFC 3339 timestamp, or a timestamp without a zone (read as UTC).
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// checkBudgetCategory enforces that budgets only target expense categories.
func checkBudgetCategory(category *models.Category) error {
	if category.Type != models.CategoryTypeExpense {
		return InvalidState(msgBudgetCategoryType)
	}
	return nil
}

// checkTransactionCategory enforces that a transaction and its category agree on type.
func checkTransactionCategory(category *models.Category, txType models.CategoryType) error {
	if category.Type != txType {
		return InvalidState(fmt.Sprintf("Category type (%s) must match transaction type (%s)", category.Type, txType))
	}
	return nil
}

// checkMembership compares what was requested with what the store found under
// the parent. Any shortfall, including a repeated id, rejects the whole set.
func checkMembership(requested []primitive.ObjectID, found []models.SubCategory, parent primitive.ObjectID) error {
	if len(found) != len(requested) {
		return InvalidInput(msgSubCategoryMembers)
	}
	for _, s := range found {
		if s.ParentCategory != parent {
			return InvalidInput(msgSubCategoryMembers)
		}
	}
	return nil
}
