package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
)

// NewMemoryStore returns a Store backed by process memory. It follows the same
// contract as the MongoDB store and is used by tests and STORAGE_DRIVER=memory.
func NewMemoryStore() *Store {
	return &Store{
		Users:         &memoryUsers{docs: map[primitive.ObjectID]models.User{}},
		Categories:    &memoryCategories{docs: map[primitive.ObjectID]models.Category{}},
		SubCategories: &memorySubCategories{docs: map[primitive.ObjectID]models.SubCategory{}},
		Budgets:       &memoryBudgets{docs: map[primitive.ObjectID]models.Budget{}},
		Transactions:  &memoryTransactions{docs: map[primitive.ObjectID]models.Transaction{}},
	}
}

func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)
	return out
}

func idSet(ids []primitive.ObjectID) map[primitive.ObjectID]struct{} {
	set := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

type memoryUsers struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.User
}

func (m *memoryUsers) emailTaken(email string, except primitive.ObjectID) bool {
	for id, u := range m.docs {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = strings.ToLower(user.Email)
	if _, ok := m.docs[user.ID]; ok || m.emailTaken(user.Email, user.ID) {
		return ErrDuplicateKey
	}
	user.CreatedAt = timestamp()
	user.UpdatedAt = user.CreatedAt
	m.docs[user.ID] = *user
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range m.docs {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryUsers) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, 0, len(ids))
	for id := range idSet(ids) {
		if u, ok := m.docs[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryUsers) Update(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[user.ID]; !ok {
		return ErrNotFound
	}
	user.Email = strings.ToLower(user.Email)
	if m.emailTaken(user.Email, user.ID) {
		return ErrDuplicateKey
	}
	user.UpdatedAt = timestamp()
	m.docs[user.ID] = *user
	return nil
}

type memoryCategories struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Category
}

func (m *memoryCategories) Create(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	if _, ok := m.docs[category.ID]; ok {
		return ErrDuplicateKey
	}
	category.CreatedAt = timestamp()
	category.UpdatedAt = category.CreatedAt
	m.docs[category.ID] = *category
	return nil
}

func (m *memoryCategories) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *memoryCategories) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Category, 0, len(ids))
	for id := range idSet(ids) {
		if c, ok := m.docs[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryCategories) List(_ context.Context) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Category, 0, len(m.docs))
	for _, c := range m.docs {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt.UnixNano(), out[j].CreatedAt.UnixNano(), out[i].ID, out[j].ID)
	})
	return out, nil
}

func (m *memoryCategories) Update(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[category.ID]; !ok {
		return ErrNotFound
	}
	category.UpdatedAt = timestamp()
	m.docs[category.ID] = *category
	return nil
}

func (m *memoryCategories) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

type memorySubCategories struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.SubCategory
}

func (m *memorySubCategories) Create(_ context.Context, subCategory *models.SubCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if subCategory.ID.IsZero() {
		subCategory.ID = primitive.NewObjectID()
	}
	if _, ok := m.docs[subCategory.ID]; ok {
		return ErrDuplicateKey
	}
	subCategory.CreatedAt = timestamp()
	subCategory.UpdatedAt = subCategory.CreatedAt
	m.docs[subCategory.ID] = *subCategory
	return nil
}

func (m *memorySubCategories) FindByID(_ context.Context, id primitive.ObjectID) (*models.SubCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *memorySubCategories) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.SubCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.SubCategory, 0, len(ids))
	for id := range idSet(ids) {
		if s, ok := m.docs[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memorySubCategories) FindInParent(_ context.Context, ids []primitive.ObjectID, parent primitive.ObjectID) ([]models.SubCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.SubCategory, 0, len(ids))
	for id := range idSet(ids) {
		if s, ok := m.docs[id]; ok && s.ParentCategory == parent {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memorySubCategories) List(_ context.Context, filter models.SubCategoryFilter) ([]models.SubCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.SubCategory, 0, len(m.docs))
	for _, s := range m.docs {
		if filter.ParentCategory != nil && s.ParentCategory != *filter.ParentCategory {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt.UnixNano(), out[j].CreatedAt.UnixNano(), out[i].ID, out[j].ID)
	})
	return out, nil
}

func (m *memorySubCategories) Update(_ context.Context, subCategory *models.SubCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[subCategory.ID]; !ok {
		return ErrNotFound
	}
	subCategory.UpdatedAt = timestamp()
	m.docs[subCategory.ID] = *subCategory
	return nil
}

func (m *memorySubCategories) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

type memoryBudgets struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Budget
}

func (m *memoryBudgets) Create(_ context.Context, budget *models.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if budget.ID.IsZero() {
		budget.ID = primitive.NewObjectID()
	}
	if _, ok := m.docs[budget.ID]; ok {
		return ErrDuplicateKey
	}
	budget.SubCategories = emptyIfNil(budget.SubCategories)
	budget.CreatedAt = timestamp()
	budget.UpdatedAt = budget.CreatedAt
	stored := *budget
	stored.SubCategories = cloneIDs(budget.SubCategories)
	m.docs[budget.ID] = stored
	return nil
}

func (m *memoryBudgets) FindByID(_ context.Context, id primitive.ObjectID) (*models.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.SubCategories = cloneIDs(b.SubCategories)
	return &b, nil
}

func (m *memoryBudgets) List(_ context.Context, filter models.BudgetFilter) ([]models.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Budget, 0, len(m.docs))
	for _, b := range m.docs {
		if filter.Category != nil && b.Category != *filter.Category {
			continue
		}
		b.SubCategories = cloneIDs(b.SubCategories)
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt.UnixNano(), out[j].CreatedAt.UnixNano(), out[i].ID, out[j].ID)
	})
	return out, nil
}

func (m *memoryBudgets) Update(_ context.Context, budget *models.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[budget.ID]; !ok {
		return ErrNotFound
	}
	budget.SubCategories = emptyIfNil(budget.SubCategories)
	budget.UpdatedAt = timestamp()
	stored := *budget
	stored.SubCategories = cloneIDs(budget.SubCategories)
	m.docs[budget.ID] = stored
	return nil
}

func (m *memoryBudgets) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

type memoryTransactions struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Transaction
}

func (m *memoryTransactions) Create(_ context.Context, transaction *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if transaction.ID.IsZero() {
		transaction.ID = primitive.NewObjectID()
	}
	if _, ok := m.docs[transaction.ID]; ok {
		return ErrDuplicateKey
	}
	transaction.SubCategories = emptyIfNil(transaction.SubCategories)
	transaction.CreatedAt = timestamp()
	transaction.UpdatedAt = transaction.CreatedAt
	stored := *transaction
	stored.SubCategories = cloneIDs(transaction.SubCategories)
	m.docs[transaction.ID] = stored
	return nil
}

func (m *memoryTransactions) FindByID(_ context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.SubCategories = cloneIDs(t.SubCategories)
	return &t, nil
}

func (m *memoryTransactions) List(_ context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Transaction, 0, len(m.docs))
	for _, t := range m.docs {
		if filter.Type.Valid() && t.Type != filter.Type {
			continue
		}
		if filter.Category != nil && t.Category != *filter.Category {
			continue
		}
		if filter.StartDate != nil && t.TransactionOn.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && t.TransactionOn.After(*filter.EndDate) {
			continue
		}
		t.SubCategories = cloneIDs(t.SubCategories)
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.TransactionOn.Equal(b.TransactionOn) {
			return a.TransactionOn.After(b.TransactionOn)
		}
		return newerFirst(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano(), a.ID, b.ID)
	})
	return out, nil
}

func (m *memoryTransactions) Update(_ context.Context, transaction *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[transaction.ID]; !ok {
		return ErrNotFound
	}
	transaction.SubCategories = emptyIfNil(transaction.SubCategories)
	transaction.UpdatedAt = timestamp()
	stored := *transaction
	stored.SubCategories = cloneIDs(transaction.SubCategories)
	m.docs[transaction.ID] = stored
	return nil
}

func (m *memoryTransactions) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

// newerFirst orders by creation time descending. ObjectIDs break ties since
// they grow monotonically within a process.
func newerFirst(a, b int64, idA, idB primitive.ObjectID) bool {
	if a != b {
		return a > b
	}
	return idA.Hex() > idB.Hex()
}
