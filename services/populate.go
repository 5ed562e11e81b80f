package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/repositories"
)

// populator expands stored references into the display shapes returned by the
// API. Lookups are batched per collection; a dangling single reference becomes
// nil and dangling array entries are dropped.
type populator struct {
	store *repositories.Store
}

func (p populator) users(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.UserRef, error) {
	users, err := p.store.Users.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*models.UserRef, len(users))
	for _, u := range users {
		out[u.ID] = u.Ref()
	}
	return out, nil
}

func (p populator) categories(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.CategoryRef, error) {
	categories, err := p.store.Categories.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*models.CategoryRef, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Ref()
	}
	return out, nil
}

func (p populator) subCategories(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.SubCategoryRef, error) {
	subs, err := p.store.SubCategories.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]models.SubCategoryRef, len(subs))
	for _, s := range subs {
		out[s.ID] = s.Ref()
	}
	return out, nil
}

func subCategoryRefs(ids []primitive.ObjectID, refs map[primitive.ObjectID]models.SubCategoryRef) []models.SubCategoryRef {
	out := make([]models.SubCategoryRef, 0, len(ids))
	for _, id := range ids {
		if ref, ok := refs[id]; ok {
			out = append(out, ref)
		}
	}
	return out
}

func (p populator) categoryViews(ctx context.Context, categories []models.Category) ([]models.CategoryView, error) {
	creators := make([]primitive.ObjectID, 0, len(categories))
	for _, c := range categories {
		creators = append(creators, c.CreatedBy)
	}
	users, err := p.users(ctx, creators)
	if err != nil {
		return nil, err
	}

	views := make([]models.CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, models.CategoryView{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Type:        c.Type,
			CreatedBy:   users[c.CreatedBy],
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		})
	}
	return views, nil
}

func (p populator) subCategoryViews(ctx context.Context, subs []models.SubCategory) ([]models.SubCategoryView, error) {
	var creators, parents []primitive.ObjectID
	for _, s := range subs {
		creators = append(creators, s.CreatedBy)
		parents = append(parents, s.ParentCategory)
	}
	users, err := p.users(ctx, creators)
	if err != nil {
		return nil, err
	}
	categories, err := p.categories(ctx, parents)
	if err != nil {
		return nil, err
	}

	views := make([]models.SubCategoryView, 0, len(subs))
	for _, s := range subs {
		views = append(views, models.SubCategoryView{
			ID:             s.ID,
			Name:           s.Name,
			Description:    s.Description,
			ParentCategory: categories[s.ParentCategory],
			CreatedBy:      users[s.CreatedBy],
			CreatedAt:      s.CreatedAt,
			UpdatedAt:      s.UpdatedAt,
		})
	}
	return views, nil
}

// refs loads the three reference maps shared by budgets and transactions.
func (p populator) refs(ctx context.Context, creators, categoryIDs, subIDs []primitive.ObjectID) (
	map[primitive.ObjectID]*models.UserRef,
	map[primitive.ObjectID]*models.CategoryRef,
	map[primitive.ObjectID]models.SubCategoryRef,
	error,
) {
	users, err := p.users(ctx, creators)
	if err != nil {
		return nil, nil, nil, err
	}
	categories, err := p.categories(ctx, categoryIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	subs, err := p.subCategories(ctx, subIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	return users, categories, subs, nil
}

func (p populator) budgetViews(ctx context.Context, budgets []models.Budget) ([]models.BudgetView, error) {
	var creators, categoryIDs, subIDs []primitive.ObjectID
	for _, b := range budgets {
		creators = append(creators, b.CreatedBy)
		categoryIDs = append(categoryIDs, b.Category)
		subIDs = append(subIDs, b.SubCategories...)
	}
	users, categories, subs, err := p.refs(ctx, creators, categoryIDs, subIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.BudgetView, 0, len(budgets))
	for _, b := range budgets {
		views = append(views, models.BudgetView{
			ID:            b.ID,
			Category:      categories[b.Category],
			SubCategories: subCategoryRefs(b.SubCategories, subs),
			Amount:        b.Amount,
			CreatedBy:     users[b.CreatedBy],
			CreatedAt:     b.CreatedAt,
			UpdatedAt:     b.UpdatedAt,
		})
	}
	return views, nil
}

func (p populator) transactionViews(ctx context.Context, transactions []models.Transaction) ([]models.TransactionView, error) {
	var creators, categoryIDs, subIDs []primitive.ObjectID
	for _, t := range transactions {
		creators = append(creators, t.CreatedBy)
		categoryIDs = append(categoryIDs, t.Category)
		subIDs = append(subIDs, t.SubCategories...)
	}
	users, categories, subs, err := p.refs(ctx, creators, categoryIDs, subIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.TransactionView, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, models.TransactionView{
			ID:            t.ID,
			Name:          t.Name,
			Type:          t.Type,
			Category:      categories[t.Category],
			SubCategories: subCategoryRefs(t.SubCategories, subs),
			Amount:        t.Amount,
			TransactionOn: t.TransactionOn,
			CreatedBy:     users[t.CreatedBy],
			CreatedAt:     t.CreatedAt,
			UpdatedAt:     t.UpdatedAt,
		})
	}
	return views, nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
