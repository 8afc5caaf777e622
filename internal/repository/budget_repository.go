package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"homekeeper/internal/model"
)

// BudgetRepository handles budgets and the aggregates computed over their transactions.
type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(ctx context.Context, budget *model.Budget) error {
	if err := r.db.WithContext(ctx).Create(budget).Error; err != nil {
		return persistenceError("create budget", err)
	}
	return nil
}

func (r *BudgetRepository) FindByID(ctx context.Context, id uint) (*model.Budget, error) {
	var budget model.Budget
	err := r.db.WithContext(ctx).First(&budget, id).Error
	switch {
	case err == nil:
		return &budget, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrBudgetNotFound
	default:
		return nil, persistenceError("find budget", err)
	}
}

func (r *BudgetRepository) List(ctx context.Context) ([]model.Budget, error) {
	var budgets []model.Budget
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&budgets).Error; err != nil {
		return nil, persistenceError("list budgets", err)
	}
	return budgets, nil
}

// ExpenseTotal sums the expense amounts booked against a budget. No expenses sum to zero.
func (r *BudgetRepository) ExpenseTotal(ctx context.Context, budgetID uint) (decimal.Decimal, error) {
	expenses, err := r.expenses(ctx, budgetID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, txn := range expenses {
		total = total.Add(txn.Amount)
	}
	return total, nil
}

// ExpensesByCategory groups a budget's expenses by category, ordered by category name.
func (r *BudgetRepository) ExpensesByCategory(ctx context.Context, budgetID uint) ([]model.CategoryTotal, error) {
	expenses, err := r.expenses(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	totals := []model.CategoryTotal{}
	for _, txn := range expenses {
		last := len(totals) - 1
		if last >= 0 && totals[last].Category == txn.Category {
			totals[last].Total = totals[last].Total.Add(txn.Amount)
			continue
		}
		totals = append(totals, model.CategoryTotal{Category: txn.Category, Total: txn.Amount})
	}
	return totals, nil
}

// expenses loads category and amount of a budget's expenses, sorted by category.
// Amounts are summed here rather than with SUM, which SQLite computes in floating point.
func (r *BudgetRepository) expenses(ctx context.Context, budgetID uint) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := r.db.WithContext(ctx).
		Select("category", "amount").
		Where("budget_id = ? AND type = ?", budgetID, string(model.Expense)).
		Order("category ASC").
		Order("id ASC").
		Find(&txns).Error; err != nil {
		return nil, persistenceError("list expenses", err)
	}
	return txns, nil
}
