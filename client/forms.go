package client

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type SignInForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignUpForm struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type ForgotPasswordForm struct {
	Email string `json:"email" validate:"required,email"`
}

type ChangePasswordForm struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type CategoryForm struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Type        string `json:"type" validate:"required,oneof=INCOME EXPENSE"`
}

type SubCategoryForm struct {
	Name           string `json:"name" validate:"required,max=100"`
	Description    string `json:"description" validate:"max=500"`
	ParentCategory string `json:"parentCategory" validate:"required,len=24,hexadecimal"`
}

// BudgetForm carries Amount as a pointer so an unset amount is reported as
// missing rather than sent as zero.
type BudgetForm struct {
	Category      string   `json:"category" validate:"required,len=24,hexadecimal"`
	SubCategories []string `json:"subCategories" validate:"max=50,dive,len=24,hexadecimal"`
	Amount        *float64 `json:"amount" validate:"required,gte=0"`
}

type TransactionForm struct {
	Name          string   `json:"name" validate:"required,max=100"`
	Type          string   `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Category      string   `json:"category" validate:"required,len=24,hexadecimal"`
	SubCategories []string `json:"subCategories" validate:"max=50,dive,len=24,hexadecimal"`
	Amount        *float64 `json:"amount" validate:"required,gte=0"`
	TransactionOn string   `json:"transactionOn" validate:"required,datetime=2006-01-02"`
}

// FieldErrors maps a form field (by its JSON name) to a message. It is
// returned before any request is made.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+f[field])
	}
	return strings.Join(parts, "; ")
}

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// checkForm runs the form's tags and converts failures into FieldErrors.
func checkForm(v *validator.Validate, form interface{}) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := FieldErrors{}
	for _, fe := range fieldErrs {
		key := fieldKey(fe)
		if _, seen := out[key]; !seen {
			out[key] = fieldMessage(fe)
		}
	}
	return out
}

// fieldKey strips the form name from the namespace, keeping element
// indexes: "BudgetForm.subCategories[1]" becomes "subCategories[1]".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	label := fe.Field()
	if i := strings.Index(label, "["); i >= 0 {
		label = label[:i]
	}
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please provide a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s items", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return label + " must be a positive number"
	case "datetime":
		return label + " must be a date in YYYY-MM-DD format"
	case "len", "hexadecimal":
		return label + " is not a valid ID"
	default:
		return label + " is invalid"
	}
}
