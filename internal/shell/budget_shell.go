package shell

import (
	"context"
	"errors"
	"io"

	"homekeeper/internal/model"
	"homekeeper/internal/report"
	"homekeeper/internal/service"
)

const budgetMenu = `
== Budget Tracker Menu ==
1. Create Budget
2. Add Transaction
3. Calculate Remaining Budget
4. Expense Analysis
5. Generate Report
6. List Budgets
7. Exit`

// BudgetShell is the interactive menu over one user's budget tracker.
type BudgetShell struct {
	tracker *service.BudgetTracker
	p       *Prompter
	out     io.Writer
}

func NewBudgetShell(tracker *service.BudgetTracker, p *Prompter, out io.Writer) *BudgetShell {
	return &BudgetShell{tracker: tracker, p: p, out: out}
}

// Run loops until Exit is chosen or input ends. Failed actions are reported and the loop continues.
func (s *BudgetShell) Run(ctx context.Context) error {
	for {
		s.p.Say("%s", budgetMenu)
		choice, err := s.p.Ask("Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "1":
			err = s.createBudget(ctx)
		case "2":
			err = s.addTransaction(ctx)
		case "3":
			err = s.remaining(ctx)
		case "4":
			err = s.analysis(ctx)
		case "5":
			err = s.generateReport(ctx)
		case "6":
			err = s.listBudgets(ctx)
		case "7":
			s.p.Say("Exiting...")
			return nil
		default:
			s.p.Say("Invalid choice. Please try again.")
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			s.p.Say("Error: %v", err)
		}
	}
}

func (s *BudgetShell) createBudget(ctx context.Context) error {
	name, err := s.p.Ask("Enter budget name: ")
	if err != nil {
		return err
	}
	category, err := s.p.Ask("Enter budget category: ")
	if err != nil {
		return err
	}
	limit, err := s.p.AskAmount("Enter budget limit: ")
	if err != nil {
		return err
	}

	budget, err := s.tracker.CreateBudget(ctx, name, category, limit)
	if err != nil {
		return err
	}
	s.p.Say("Budget created successfully. Budget ID: %d", budget.ID)
	return nil
}

func (s *BudgetShell) addTransaction(ctx context.Context) error {
	var input service.TransactionInput
	var err error

	if input.BudgetID, err = s.p.AskUint("Enter budget ID: "); err != nil {
		return err
	}
	txnType, err := s.p.Ask("Enter transaction type (expense/income): ")
	if err != nil {
		return err
	}
	input.Type = model.TransactionType(txnType)
	if input.Amount, err = s.p.AskAmount("Enter transaction amount: "); err != nil {
		return err
	}
	if input.Category, err = s.p.Ask("Enter transaction category: "); err != nil {
		return err
	}

	withTags, err := s.p.AskYesNo("Do you want to add tags? (y/n): ")
	if err != nil {
		return err
	}
	if withTags {
		tags, err := s.p.Ask("Enter transaction tags (comma-separated): ")
		if err != nil {
			return err
		}
		input.Tags = splitTags(tags)
	}

	if input.Date, err = s.p.AskOptionalDate("Enter transaction date (YYYY-MM-DD) or leave empty for today: "); err != nil {
		return err
	}

	if _, err := s.tracker.AddTransaction(ctx, input); err != nil {
		return err
	}
	s.p.Say("Transaction added successfully.")
	return nil
}

func (s *BudgetShell) remaining(ctx context.Context) error {
	id, err := s.p.AskUint("Enter budget ID: ")
	if err != nil {
		return err
	}
	amount, err := s.tracker.CalculateRemainingBudget(ctx, id)
	if err != nil {
		return err
	}
	return report.Remaining(s.out, id, amount)
}

func (s *BudgetShell) analysis(ctx context.Context) error {
	id, err := s.p.AskUint("Enter budget ID: ")
	if err != nil {
		return err
	}
	totals, err := s.tracker.ExpenseAnalysis(ctx, id)
	if err != nil {
		return err
	}
	return report.ExpenseAnalysis(s.out, totals)
}

func (s *BudgetShell) generateReport(ctx context.Context) error {
	id, err := s.p.AskUint("Enter budget ID: ")
	if err != nil {
		return err
	}
	start, err := s.p.AskDate("Enter start date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	end, err := s.p.AskDate("Enter end date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	txns, err := s.tracker.GenerateReport(ctx, id, start, end)
	if err != nil {
		return err
	}
	return report.Transactions(s.out, txns)
}

func (s *BudgetShell) listBudgets(ctx context.Context) error {
	budgets, err := s.tracker.ListBudgets(ctx)
	if err != nil {
		return err
	}
	return report.Budgets(s.out, budgets)
}

// endOfInput treats exhausted input as a normal end of session.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
