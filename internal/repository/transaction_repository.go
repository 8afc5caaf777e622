package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"homekeeper/internal/model"
)

// TransactionRepository handles expense and income entries.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a transaction after checking that its budget exists.
func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) error {
	err := r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		var count int64
		if err := db.Model(&model.Budget{}).Where("id = ?", txn.BudgetID).Count(&count).Error; err != nil {
			return persistenceError("check budget", err)
		}
		if count == 0 {
			return ErrBudgetNotFound
		}
		if err := db.Create(txn).Error; err != nil {
			return persistenceError("create transaction", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrBudgetNotFound) && !IsPersistence(err) {
		return persistenceError("create transaction", err)
	}
	return err
}

// ListInRange returns a budget's transactions dated within [start, end], inclusive, in storage order.
func (r *TransactionRepository) ListInRange(ctx context.Context, budgetID uint, start, end model.Date) ([]model.Transaction, error) {
	txns := []model.Transaction{}
	if err := r.db.WithContext(ctx).
		Where("budget_id = ? AND date BETWEEN ? AND ?", budgetID, start, end).
		Order("id ASC").
		Find(&txns).Error; err != nil {
		return nil, persistenceError("list transactions", err)
	}
	return txns, nil
}
