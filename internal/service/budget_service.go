package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"homekeeper/internal/model"
	"homekeeper/internal/repository"
)

// TransactionInput represents data required to record an expense or income.
type TransactionInput struct {
	BudgetID uint
	Type     model.TransactionType
	Amount   decimal.Decimal
	Category string
	Tags     []string
	// Date defaults to the current day when nil.
	Date *model.Date
}

// BudgetTracker wraps budget-related business logic for one budget database.
type BudgetTracker struct {
	budgetRepo *repository.BudgetRepository
	txnRepo    *repository.TransactionRepository
	now        func() time.Time
	log        *slog.Logger
}

// BudgetOption customizes a BudgetTracker.
type BudgetOption func(*BudgetTracker)

// WithClock replaces the clock used to date transactions recorded without a date.
func WithClock(now func() time.Time) BudgetOption {
	return func(t *BudgetTracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithBudgetLogger sets the logger; slog.Default is used otherwise.
func WithBudgetLogger(l *slog.Logger) BudgetOption {
	return func(t *BudgetTracker) {
		if l != nil {
			t.log = l
		}
	}
}

func NewBudgetTracker(budgetRepo *repository.BudgetRepository, txnRepo *repository.TransactionRepository, opts ...BudgetOption) *BudgetTracker {
	t := &BudgetTracker{
		budgetRepo: budgetRepo,
		txnRepo:    txnRepo,
		now:        time.Now,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With("component", "budget")
	return t
}

func (t *BudgetTracker) CreateBudget(ctx context.Context, name, category string, limit decimal.Decimal) (*model.Budget, error) {
	budget := model.Budget{
		Name:        name,
		Category:    category,
		BudgetLimit: limit,
	}
	if err := t.budgetRepo.Create(ctx, &budget); err != nil {
		t.log.Error("create budget failed", "name", name, "error", err)
		return nil, fmt.Errorf("create budget: %w", err)
	}
	t.log.Info("budget created", "budget_id", budget.ID, "name", name)
	return &budget, nil
}

func (t *BudgetTracker) GetBudget(ctx context.Context, id uint) (*model.Budget, error) {
	budget, err := t.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get budget %d: %w", id, err)
	}
	return budget, nil
}

func (t *BudgetTracker) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	budgets, err := t.budgetRepo.List(ctx)
	if err != nil {
		t.log.Error("list budgets failed", "error", err)
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// AddTransaction records an entry against a budget. Type and amount sign are stored as given.
func (t *BudgetTracker) AddTransaction(ctx context.Context, input TransactionInput) (*model.Transaction, error) {
	date := model.DateOf(t.now())
	if input.Date != nil {
		date = *input.Date
	}

	txn := model.Transaction{
		BudgetID: input.BudgetID,
		Type:     input.Type,
		Amount:   input.Amount,
		Category: input.Category,
		Tags:     model.JoinTags(input.Tags),
		Date:     date,
	}
	if err := t.txnRepo.Create(ctx, &txn); err != nil {
		logFailure(ctx, t.log, "add transaction failed", err, "budget_id", input.BudgetID)
		return nil, fmt.Errorf("add transaction: %w", err)
	}
	t.log.Info("transaction added", "budget_id", txn.BudgetID, "transaction_id", txn.ID, "type", txn.Type)
	return &txn, nil
}

// CalculateRemainingBudget returns the budget limit minus the sum of its expenses.
// Income does not raise the remaining amount.
func (t *BudgetTracker) CalculateRemainingBudget(ctx context.Context, budgetID uint) (decimal.Decimal, error) {
	budget, err := t.budgetRepo.FindByID(ctx, budgetID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("remaining budget %d: %w", budgetID, err)
	}
	spent, err := t.budgetRepo.ExpenseTotal(ctx, budgetID)
	if err != nil {
		t.log.Error("sum expenses failed", "budget_id", budgetID, "error", err)
		return decimal.Zero, fmt.Errorf("remaining budget %d: %w", budgetID, err)
	}
	return budget.BudgetLimit.Sub(spent), nil
}

func (t *BudgetTracker) ExpenseAnalysis(ctx context.Context, budgetID uint) ([]model.CategoryTotal, error) {
	totals, err := t.budgetRepo.ExpensesByCategory(ctx, budgetID)
	if err != nil {
		t.log.Error("expense analysis failed", "budget_id", budgetID, "error", err)
		return nil, fmt.Errorf("expense analysis %d: %w", budgetID, err)
	}
	return totals, nil
}

// GenerateReport lists a budget's transactions dated between start and end inclusive.
// A start after end yields no rows.
func (t *BudgetTracker) GenerateReport(ctx context.Context, budgetID uint, start, end model.Date) ([]model.Transaction, error) {
	txns, err := t.txnRepo.ListInRange(ctx, budgetID, start, end)
	if err != nil {
		t.log.Error("generate report failed", "budget_id", budgetID, "error", err)
		return nil, fmt.Errorf("generate report %d: %w", budgetID, err)
	}
	return txns, nil
}

// logFailure logs not-found errors at Debug and everything else at Error.
func logFailure(ctx context.Context, log *slog.Logger, msg string, err error, args ...any) {
	level := slog.LevelError
	if errors.Is(err, repository.ErrBudgetNotFound) || errors.Is(err, repository.ErrUserNotFound) {
		level = slog.LevelDebug
	}
	log.Log(ctx, level, msg, append(args, "error", err)...)
}
