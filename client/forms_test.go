package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v float64) *float64 { return &v }

func TestCheckFormReportsEveryField(t *testing.T) {
	v := newFormValidator()

	err := checkForm(v, BudgetForm{SubCategories: []string{"64b7f0c2a1b2c3d4e5f60718", "nope"}})
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Category is required", fields["category"])
	assert.Equal(t, "Amount is required", fields["amount"])
	assert.Equal(t, "SubCategories is not a valid ID", fields["subCategories[1]"])
	assert.NotContains(t, fields, "subCategories[0]")

	err = checkForm(v, BudgetForm{Category: "64b7f0c2a1b2c3d4e5f60718", Amount: amount(-1)})
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, FieldErrors{"amount": "Amount must be a positive number"}, fields)

	assert.NoError(t, checkForm(v, BudgetForm{Category: "64b7f0c2a1b2c3d4e5f60718", Amount: amount(0)}))
}

func TestCheckFormMessages(t *testing.T) {
	v := newFormValidator()

	tests := []struct {
		name  string
		form  interface{}
		field string
		want  string
	}{
		{"email", SignInForm{Email: "bad", Password: "x"}, "email", "Please provide a valid email"},
		{"short password", SignUpForm{Name: "A", Email: "a@example.com", Password: "short", ConfirmPassword: "short"}, "password", "Password must be at least 8 characters"},
		{"confirm", SignUpForm{Name: "A", Email: "a@example.com", Password: "longenough", ConfirmPassword: "different"}, "confirmPassword", "Passwords do not match"},
		{"type", CategoryForm{Name: "Food", Type: "SPEND"}, "type", "Type must be one of: INCOME, EXPENSE"},
		{"parent", SubCategoryForm{Name: "X", ParentCategory: "123"}, "parentCategory", "ParentCategory is not a valid ID"},
		{"date", TransactionForm{Name: "X", Type: "INCOME", Category: "64b7f0c2a1b2c3d4e5f60718", Amount: amount(1), TransactionOn: "01/02/2024"}, "transactionOn", "TransactionOn must be a date in YYYY-MM-DD format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields FieldErrors
			require.ErrorAs(t, checkForm(v, tt.form), &fields)
			assert.Equal(t, tt.want, fields[tt.field], "%v", fields)
		})
	}
}

func TestFieldErrorsString(t *testing.T) {
	err := FieldErrors{"name": "Name is required", "amount": "Amount is required"}
	assert.Equal(t, "amount: Amount is required; name: Name is required", err.Error())
}
