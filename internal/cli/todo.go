package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"homekeeper/internal/auth"
	"homekeeper/internal/config"
	"homekeeper/internal/model"
	"homekeeper/internal/repository"
	"homekeeper/internal/service"
	"homekeeper/internal/shell"
)

// ToDoOptions holds the flags of the todo command.
type ToDoOptions struct {
	commonOptions
	Database string
}

// NewToDoCommand creates the to-do list root command, which starts the login menu.
func NewToDoCommand() *cobra.Command {
	opts := &ToDoOptions{}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Multi-user to-do list",
		Long: `Register, log in and manage your tasks in a SQLite file shared by all users
(tasks.db in the data directory unless --db is given).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToDoShell(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the tasks database")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func runToDoShell(cmd *cobra.Command, opts *ToDoOptions) error {
	cfg, err := loadConfig(opts.commonOptions, func(c *config.Config) {
		if opts.Database != "" {
			c.TasksDB = opts.Database
		}
	})
	if err != nil {
		return err
	}

	db, err := repository.OpenToDoDB(cfg.TasksDatabasePath())
	if err != nil {
		return WrapExitError(ExitFailure, "open tasks database", err)
	}
	defer repository.Close(db)

	tasks := repository.NewTaskRepository(db)
	authenticator := auth.NewPasswordAuthenticator(repository.NewUserRepository(db), cfg.PasswordCost)
	newList := func(user *model.User) *service.ToDoList {
		return service.NewToDoList(tasks, user.ID, slog.Default())
	}

	out := cmd.OutOrStdout()
	sh := shell.NewToDoShell(authenticator, newList, shell.NewPrompter(cmd.InOrStdin(), out), out)
	return sh.Run(cmd.Context())
}
