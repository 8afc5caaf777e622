package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"homekeeper/internal/config"
	"homekeeper/internal/model"
	"homekeeper/internal/report"
	"homekeeper/internal/repository"
	"homekeeper/internal/service"
	"homekeeper/internal/shell"
)

// BudgetOptions holds the global flags of the budget command.
type BudgetOptions struct {
	commonOptions
	User    string
	DataDir string
}

// NewBudgetCommand creates the budget tracker root command. Without a subcommand it starts the menu.
func NewBudgetCommand() *cobra.Command {
	opts := &BudgetOptions{}

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Personal budget tracker",
		Long: `Track spending limits, expenses and income in a per-user SQLite file
(<data-dir>/<user>_budget_tracker.db).

Run without a subcommand for the interactive menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBudgetShell(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.User, "user", "u", "", "budget owner; selects the database file")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory holding the budget databases")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newBudgetCreateCommand(opts))
	cmd.AddCommand(newBudgetAddCommand(opts))
	cmd.AddCommand(newBudgetRemainingCommand(opts))
	cmd.AddCommand(newBudgetAnalysisCommand(opts))
	cmd.AddCommand(newBudgetReportCommand(opts))
	cmd.AddCommand(newBudgetListCommand(opts))

	return cmd
}

// openTracker opens the user's budget database. The returned func closes it.
func (o *BudgetOptions) openTracker(username string) (*service.BudgetTracker, func(), error) {
	cfg, err := loadConfig(o.commonOptions, func(c *config.Config) {
		if o.DataDir != "" {
			c.DataDir = o.DataDir
		}
	})
	if err != nil {
		return nil, nil, err
	}

	path, err := cfg.BudgetDatabasePath(username)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid user", err)
	}
	db, err := repository.OpenBudgetDB(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "open budget database", err)
	}

	tracker := service.NewBudgetTracker(
		repository.NewBudgetRepository(db),
		repository.NewTransactionRepository(db),
	)
	return tracker, func() { _ = repository.Close(db) }, nil
}

// scriptedTracker is openTracker for subcommands, which need --user.
func (o *BudgetOptions) scriptedTracker() (*service.BudgetTracker, func(), error) {
	if o.User == "" {
		return nil, nil, NewExitError(ExitCommandError, "--user is required")
	}
	return o.openTracker(o.User)
}

func runBudgetShell(cmd *cobra.Command, opts *BudgetOptions) error {
	out := cmd.OutOrStdout()
	p := shell.NewPrompter(cmd.InOrStdin(), out)
	p.Say("Welcome to Budget Tracker!")

	username := opts.User
	for username == "" {
		name, err := p.Ask("Enter your username: ")
		if err != nil {
			return nil
		}
		username = name
	}

	tracker, closeDB, err := opts.openTracker(username)
	if err != nil {
		return err
	}
	defer closeDB()

	return shell.NewBudgetShell(tracker, p, out).Run(cmd.Context())
}

func parseBudgetID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 0)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid budget id %q", arg), err)
	}
	return uint(id), nil
}

func parseAmount(flag, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, WrapExitError(ExitCommandError, fmt.Sprintf("invalid --%s %q", flag, value), err)
	}
	return amount, nil
}

func parseDateFlag(flag, value string) (model.Date, error) {
	date, err := model.ParseDate(value)
	if err != nil {
		return model.Date{}, WrapExitError(ExitCommandError, "invalid --"+flag, err)
	}
	return date, nil
}

// withTracker runs fn against the --user database and closes it afterwards.
func withTracker(cmd *cobra.Command, opts *BudgetOptions, fn func(ctx context.Context, t *service.BudgetTracker) error) error {
	tracker, closeDB, err := opts.scriptedTracker()
	if err != nil {
		return err
	}
	defer closeDB()
	return fn(cmd.Context(), tracker)
}

func newBudgetCreateCommand(opts *BudgetOptions) *cobra.Command {
	var name, category, limit string

	cmd := &cobra.Command{
		Use:           "create",
		Short:         "Create a budget",
		Example:       `  budget create --user alice --name Groceries --category Food --limit 200`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("limit", limit)
			if err != nil {
				return err
			}
			return withTracker(cmd, opts, func(ctx context.Context, t *service.BudgetTracker) error {
				budget, err := t.CreateBudget(ctx, name, category, amount)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Budget created successfully. Budget ID: %d\n", budget.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "budget name")
	cmd.Flags().StringVar(&category, "category", "", "budget category")
	cmd.Flags().StringVar(&limit, "limit", "", "spending limit")
	_ = cmd.MarkFlagRequired("limit")

	return cmd
}

func newBudgetAddCommand(opts *BudgetOptions) *cobra.Command {
	var txnType, amount, category, date string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add <budget-id>",
		Short: "Record an expense or income",
		Example: `  budget add 1 --user alice --amount 50 --category Food --tags weekly,market
  budget add 1 --user alice --type income --amount 1000 --category Salary --date 2024-03-01`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBudgetID(args[0])
			if err != nil {
				return err
			}
			input := service.TransactionInput{
				BudgetID: id,
				Type:     model.TransactionType(txnType),
				Category: category,
				Tags:     tags,
			}
			if input.Amount, err = parseAmount("amount", amount); err != nil {
				return err
			}
			if date != "" {
				d, err := parseDateFlag("date", date)
				if err != nil {
					return err
				}
				input.Date = &d
			}

			return withTracker(cmd, opts, func(ctx context.Context, t *service.BudgetTracker) error {
				if _, err := t.AddTransaction(ctx, input); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Transaction added successfully.")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&txnType, "type", string(model.Expense), "transaction type (expense|income)")
	cmd.Flags().StringVar(&amount, "amount", "", "transaction amount")
	cmd.Flags().StringVar(&category, "category", "", "transaction category")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma-separated tags")
	cmd.Flags().StringVar(&date, "date", "", "transaction date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newBudgetRemainingCommand(opts *BudgetOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remaining <budget-id>",
		Short:         "Show the limit minus total expenses",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBudgetID(args[0])
			if err != nil {
				return err
			}
			return withTracker(cmd, opts, func(ctx context.Context, t *service.BudgetTracker) error {
				remaining, err := t.CalculateRemainingBudget(ctx, id)
				if err != nil {
					return err
				}
				return report.Remaining(cmd.OutOrStdout(), id, remaining)
			})
		},
	}
}

func newBudgetAnalysisCommand(opts *BudgetOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "analysis <budget-id>",
		Short:         "Total expenses per category",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBudgetID(args[0])
			if err != nil {
				return err
			}
			return withTracker(cmd, opts, func(ctx context.Context, t *service.BudgetTracker) error {
				totals, err := t.ExpenseAnalysis(ctx, id)
				if err != nil {
					return err
				}
				return report.ExpenseAnalysis(cmd.OutOrStdout(), totals)
			})
		},
	}
}

func newBudgetReportCommand(opts *BudgetOptions) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:           "report <budget-id>",
		Short:         "List transactions dated within a range, inclusive",
		Example:       `  budget report 1 --user alice --from 2024-03-01 --to 2024-03-31`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBudgetID(args[0])
			if err != nil {
				return err
			}
			start, err := parseDateFlag("from", from)
			if err != nil {
				return err
			}
			end, err := parseDateFlag("to", to)
			if err != nil {
				return err
			}
			return withTracker(cmd, opts, func(ctx context.Context, t *service.BudgetTracker) error {
				txns, err := t.GenerateReport(ctx, id, start, end)
				if err != nil {
					return err
				}
				return report.Transactions(cmd.OutOrStdout(), txns)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newBudgetListCommand(opts *BudgetOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List budgets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, opts, func(ctx context.Context, t *service.BudgetTracker) error {
				budgets, err := t.ListBudgets(ctx)
				if err != nil {
					return err
				}
				return report.Budgets(cmd.OutOrStdout(), budgets)
			})
		},
	}
}
