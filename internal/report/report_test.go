package report

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homekeeper/internal/model"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"120", "120.00"},
		{"0", "0.00"},
		{"30.5", "30.50"},
		{"1234.567", "1,234.57"},
		{"-20", "-20.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestRemaining(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Remaining(&buf, 1, decimal.NewFromInt(120)))
	assert.Equal(t, "Remaining Budget for Budget ID 1: 120.00\n", buf.String())
}

func TestExpenseAnalysisGolden(t *testing.T) {
	var buf bytes.Buffer
	err := ExpenseAnalysis(&buf, []model.CategoryTotal{
		{Category: "Food", Total: decimal.NewFromInt(80)},
		{Category: "Transport", Total: decimal.RequireFromString("12.5")},
		{Category: "", Total: decimal.NewFromInt(3)},
	})
	require.NoError(t, err)
	newGoldie(t).Assert(t, "expense_analysis", buf.Bytes())
}

func TestExpenseAnalysisEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExpenseAnalysis(&buf, nil))
	assert.Equal(t, "Expense Analysis:\n— no expenses recorded\n", buf.String())
}

func TestTransactionsGolden(t *testing.T) {
	var buf bytes.Buffer
	err := Transactions(&buf, []model.Transaction{
		{ID: 1, BudgetID: 1, Type: model.Expense, Amount: decimal.NewFromInt(50), Category: "Food",
			Tags: "groceries,weekly", Date: model.NewDate(2024, 3, 1)},
		{ID: 2, BudgetID: 1, Type: model.Income, Amount: decimal.RequireFromString("99.9"), Category: "Refund",
			Date: model.NewDate(2024, 3, 15)},
	})
	require.NoError(t, err)
	newGoldie(t).Assert(t, "transactions", buf.Bytes())
}

func TestBudgetsGolden(t *testing.T) {
	var buf bytes.Buffer
	err := Budgets(&buf, []model.Budget{
		{ID: 1, Name: "Groceries", Category: "Food", BudgetLimit: decimal.NewFromInt(200)},
		{ID: 2, Name: "Travel", Category: "Leisure", BudgetLimit: decimal.RequireFromString("750.25")},
	})
	require.NoError(t, err)
	newGoldie(t).Assert(t, "budgets", buf.Bytes())
}

func TestTaskListGolden(t *testing.T) {
	due := model.NewDate(2024, 5, 20)
	var buf bytes.Buffer
	err := TaskList(&buf, []model.Task{
		{ID: 4, Title: "Buy milk", Priority: model.PriorityHigh, DueDate: &due},
		{ID: 9, Title: "Call mom", Priority: model.PriorityLow, Completed: true},
	})
	require.NoError(t, err)
	newGoldie(t).Assert(t, "task_list", buf.Bytes())
}

func TestTaskTitlesUsesDisplayIndex(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TaskTitles(&buf, []model.Task{{ID: 7, Title: "a"}, {ID: 12, Title: "b"}}))
	assert.Equal(t, "1. a\n2. b\n", buf.String())
}
