package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/repositories"
)

const (
	msgInvalidTransactionID   = "Invalid transaction ID"
	msgTransactionNotFound    = "Transaction not found"
	msgTransactionNameMissing = "Transaction name is required"
	msgTransactionDateMissing = "Transaction date is required"
	msgInvalidTransactionDate = "Invalid transaction date"
)

type TransactionService struct {
	store    *repositories.Store
	populate populator
}

func NewTransactionService(store *repositories.Store) *TransactionService {
	return &TransactionService{store: store, populate: populator{store: store}}
}

// TransactionQuery carries the raw list filters. An unknown Type is ignored;
// malformed ids or dates are rejected.
type TransactionQuery struct {
	Type      string
	Category  string
	StartDate string
	EndDate   string
}

func (q TransactionQuery) filter() (models.TransactionFilter, error) {
	var filter models.TransactionFilter
	if t, ok := parseCategoryType(q.Type); ok {
		filter.Type = t
	}
	if strings.TrimSpace(q.Category) != "" {
		id, err := parseID(q.Category, msgInvalidCategoryID)
		if err != nil {
			return filter, err
		}
		filter.Category = &id
	}
	if strings.TrimSpace(q.StartDate) != "" {
		start, err := ParseDate(q.StartDate)
		if err != nil {
			return filter, InvalidInput("Invalid start date")
		}
		filter.StartDate = &start
	}
	if strings.TrimSpace(q.EndDate) != "" {
		end, err := ParseDate(q.EndDate)
		if err != nil {
			return filter, InvalidInput("Invalid end date")
		}
		filter.EndDate = &end
	}
	return filter, nil
}

func (s *TransactionService) Create(ctx context.Context, principal primitive.ObjectID, req models.CreateTransactionRequest) (*models.TransactionView, error) {
	const failed = "An error occurred while creating transaction"

	name, err := requiredText(req.Name, msgTransactionNameMissing)
	if err != nil {
		return nil, err
	}
	txType, ok := parseCategoryType(req.Type)
	if !ok {
		return nil, InvalidInput("Transaction type is required and must be either INCOME or EXPENSE")
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, InvalidInput(msgCategoryRequired)
	}
	amount, err := requiredAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.TransactionOn) == "" {
		return nil, InvalidInput(msgTransactionDateMissing)
	}
	transactionOn, err := ParseDate(req.TransactionOn)
	if err != nil {
		return nil, InvalidInput(msgInvalidTransactionDate)
	}
	categoryID, err := parseID(req.Category, msgInvalidCategoryID)
	if err != nil {
		return nil, err
	}
	subIDs, err := parseIDs(req.SubCategories, msgInvalidSubCategoryID)
	if err != nil {
		return nil, err
	}

	category, err := loadCategory(ctx, s.store, categoryID, failed)
	if err != nil {
		return nil, err
	}
	if err := checkTransactionCategory(category, txType); err != nil {
		return nil, err
	}
	if err := verifySubCategories(ctx, s.store, subIDs, categoryID, failed); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Name:          name,
		Type:          txType,
		Category:      categoryID,
		SubCategories: subIDs,
		Amount:        amount,
		TransactionOn: transactionOn,
		CreatedBy:     principal,
	}
	if err := s.store.Transactions.Create(ctx, transaction); err != nil {
		return nil, Internal(failed, err)
	}
	return s.view(ctx, *transaction, failed)
}

func (s *TransactionService) List(ctx context.Context, query TransactionQuery) ([]models.TransactionView, error) {
	const failed = "An error occurred while retrieving transactions"

	filter, err := query.filter()
	if err != nil {
		return nil, err
	}
	transactions, err := s.store.Transactions.List(ctx, filter)
	if err != nil {
		return nil, Internal(failed, err)
	}
	views, err := s.populate.transactionViews(ctx, transactions)
	if err != nil {
		return nil, Internal(failed, err)
	}
	return views, nil
}

func (s *TransactionService) Get(ctx context.Context, rawID string) (*models.TransactionView, error) {
	const failed = "An error occurred while retrieving transaction"

	id, err := parseID(rawID, msgInvalidTransactionID)
	if err != nil {
		return nil, err
	}
	transaction, err := s.store.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgTransactionNotFound, failed)
	}
	return s.view(ctx, *transaction, failed)
}

// Update resolves category and type together whenever either is supplied, then
// checks sub-category membership against the resulting category.
func (s *TransactionService) Update(ctx context.Context, principal primitive.ObjectID, rawID string, req models.UpdateTransactionRequest) (*models.TransactionView, error) {
	const failed = "An error occurred while updating transaction"

	id, err := parseID(rawID, msgInvalidTransactionID)
	if err != nil {
		return nil, err
	}
	transaction, err := s.store.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgTransactionNotFound, failed)
	}
	if err := ensureOwner(transaction.CreatedBy, principal, "update", "transaction"); err != nil {
		return nil, err
	}

	patched := *transaction
	if req.Name.Set {
		if patched.Name, err = requiredText(req.Name.Value, msgTransactionNameMissing); err != nil {
			return nil, err
		}
	}
	if req.Type.Set {
		txType, ok := parseCategoryType(req.Type.Value)
		if !ok {
			return nil, InvalidInput("Transaction type must be either INCOME or EXPENSE")
		}
		patched.Type = txType
	}
	if req.Category.Set {
		if strings.TrimSpace(req.Category.Value) == "" {
			return nil, InvalidInput(msgCategoryRequired)
		}
		if patched.Category, err = parseID(req.Category.Value, msgInvalidCategoryID); err != nil {
			return nil, err
		}
	}
	if req.SubCategories.Set {
		if patched.SubCategories, err = parseIDs(req.SubCategories.Value, msgInvalidSubCategoryID); err != nil {
			return nil, err
		}
	}
	if req.Amount.Set {
		if patched.Amount, err = patchAmount(req.Amount); err != nil {
			return nil, err
		}
	}
	if req.TransactionOn.Set {
		if strings.TrimSpace(req.TransactionOn.Value) == "" {
			return nil, InvalidInput(msgTransactionDateMissing)
		}
		if patched.TransactionOn, err = ParseDate(req.TransactionOn.Value); err != nil {
			return nil, InvalidInput(msgInvalidTransactionDate)
		}
	}

	if req.Category.Set || req.Type.Set {
		category, err := loadCategory(ctx, s.store, patched.Category, failed)
		if err != nil {
			return nil, err
		}
		if err := checkTransactionCategory(category, patched.Type); err != nil {
			return nil, err
		}
	}
	if req.Category.Set || req.SubCategories.Set {
		if err := verifySubCategories(ctx, s.store, patched.SubCategories, patched.Category, failed); err != nil {
			return nil, err
		}
	}

	if err := s.store.Transactions.Update(ctx, &patched); err != nil {
		return nil, storeErr(err, msgTransactionNotFound, failed)
	}
	return s.view(ctx, patched, failed)
}

func (s *TransactionService) Delete(ctx context.Context, principal primitive.ObjectID, rawID string) error {
	const failed = "An error occurred while deleting transaction"

	id, err := parseID(rawID, msgInvalidTransactionID)
	if err != nil {
		return err
	}
	transaction, err := s.store.Transactions.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, msgTransactionNotFound, failed)
	}
	if err := ensureOwner(transaction.CreatedBy, principal, "delete", "transaction"); err != nil {
		return err
	}
	if err := s.store.Transactions.Delete(ctx, id); err != nil {
		return storeErr(err, msgTransactionNotFound, failed)
	}
	return nil
}

func (s *TransactionService) view(ctx context.Context, transaction models.Transaction, failed string) (*models.TransactionView, error) {
	views, err := s.populate.transactionViews(ctx, []models.Transaction{transaction})
	if err != nil {
		return nil, Internal(failed, err)
	}
	return &views[0], nil
}
