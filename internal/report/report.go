// Package report renders budget and task results as console text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"homekeeper/internal/model"
)

var printer = message.NewPrinter(language.English)

// Amount formats money with English digit grouping and two decimals.
func Amount(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func Remaining(w io.Writer, budgetID uint, remaining decimal.Decimal) error {
	_, err := fmt.Fprintf(w, "Remaining Budget for Budget ID %d: %s\n", budgetID, Amount(remaining))
	return err
}

func ExpenseAnalysis(w io.Writer, totals []model.CategoryTotal) error {
	var sb strings.Builder
	sb.WriteString("Expense Analysis:\n")
	if len(totals) == 0 {
		sb.WriteString("— no expenses recorded\n")
	}
	for _, ct := range totals {
		sb.WriteString(fmt.Sprintf("%s: %s\n", displayCategory(ct.Category), Amount(ct.Total)))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Transactions prints one line per transaction in the order given.
func Transactions(w io.Writer, txns []model.Transaction) error {
	var sb strings.Builder
	sb.WriteString("Report Generated Successfully:\n")
	if len(txns) == 0 {
		sb.WriteString("— no transactions in range\n")
	}
	for _, txn := range txns {
		sb.WriteString(fmt.Sprintf("#%d %s %s %s %s",
			txn.ID, txn.Date, txn.Type, Amount(txn.Amount), displayCategory(txn.Category)))
		if tags := txn.TagList(); len(tags) > 0 {
			sb.WriteString(fmt.Sprintf(" [%s]", strings.Join(tags, ", ")))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func Budgets(w io.Writer, budgets []model.Budget) error {
	var sb strings.Builder
	sb.WriteString("Budgets:\n")
	if len(budgets) == 0 {
		sb.WriteString("— no budgets yet\n")
	}
	for _, b := range budgets {
		sb.WriteString(fmt.Sprintf("%d. %s (%s) limit %s\n",
			b.ID, strings.TrimSpace(b.Name), displayCategory(b.Category), Amount(b.BudgetLimit)))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// TaskTitles prints the numbered picker shown before removing or completing a task.
func TaskTitles(w io.Writer, tasks []model.Task) error {
	var sb strings.Builder
	for i, task := range tasks {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, task.Title))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// TaskList prints every task with its priority, due date and completion flag.
func TaskList(w io.Writer, tasks []model.Task) error {
	var sb strings.Builder
	if len(tasks) == 0 {
		sb.WriteString("— no tasks\n")
	}
	for i, task := range tasks {
		due := "None"
		if task.DueDate != nil && !task.DueDate.IsZero() {
			due = task.DueDate.String()
		}
		sb.WriteString(fmt.Sprintf("%d. %s - Priority: %s - Due Date: %s - Completed: %t\n",
			i+1, task.Title, task.Priority, due, task.Completed))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func displayCategory(category string) string {
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		return trimmed
	}
	return "(uncategorized)"
}
