package shell

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"homekeeper/internal/auth"
	"homekeeper/internal/model"
	"homekeeper/internal/repository"
	"homekeeper/internal/service"
)

func lines(in ...string) *strings.Reader {
	return strings.NewReader(strings.Join(in, "\n") + "\n")
}

func runBudgetShell(t *testing.T, input *strings.Reader) string {
	t.Helper()
	db, err := repository.OpenBudgetDB(filepath.Join(t.TempDir(), "alice_budget_tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close(db) })

	tracker := service.NewBudgetTracker(
		repository.NewBudgetRepository(db),
		repository.NewTransactionRepository(db),
		service.WithClock(func() time.Time { return time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC) }),
	)

	var out bytes.Buffer
	sh := NewBudgetShell(tracker, NewPrompter(input, &out), &out)
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func TestBudgetShellGroceriesSession(t *testing.T) {
	out := runBudgetShell(t, lines(
		"1", "Groceries", "Food", "200",
		"2", "1", "expense", "50", "Food", "y", "weekly, market", "",
		"2", "1", "expense", "30", "Food", "n", "2024-03-01",
		"3", "1",
		"4", "1",
		"5", "1", "2024-03-01", "2024-03-31",
		"7",
	))

	assert.Contains(t, out, "Budget created successfully. Budget ID: 1")
	assert.Equal(t, 2, strings.Count(out, "Transaction added successfully."))
	assert.Contains(t, out, "Remaining Budget for Budget ID 1: 120.00")
	assert.Contains(t, out, "Expense Analysis:\nFood: 80.00\n")
	assert.Contains(t, out, "#1 2024-03-14 expense 50.00 Food [weekly, market]")
	assert.Contains(t, out, "#2 2024-03-01 expense 30.00 Food\n")
	assert.True(t, strings.HasSuffix(out, "Exiting...\n"))
}

func TestBudgetShellRepromptsAndContinues(t *testing.T) {
	out := runBudgetShell(t, lines(
		"9",
		"3", "abc", "5",
		"1", "Trip", "Travel", "lots", "300",
		"6",
		"7",
	))

	assert.Contains(t, out, "Invalid choice. Please try again.")
	assert.Contains(t, out, "Invalid number. Please try again.")
	assert.Contains(t, out, "Error: remaining budget 5: budget not found")
	assert.Contains(t, out, "Invalid amount. Please try again.")
	assert.Contains(t, out, "1. Trip (Travel) limit 300.00")
}

func TestBudgetShellMenuEndsWithExit(t *testing.T) {
	out := runBudgetShell(t, lines("7"))
	assert.Contains(t, out, "5. Generate Report\n6. List Budgets\n7. Exit\n")
}

func TestBudgetShellEndsOnEOF(t *testing.T) {
	out := runBudgetShell(t, lines("1", "Half"))
	assert.NotContains(t, out, "Budget created")
}

type todoEnv struct {
	auth    *auth.PasswordAuthenticator
	newList ToDoListFactory
}

func newToDoEnv(t *testing.T) todoEnv {
	t.Helper()
	db, err := repository.OpenToDoDB(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close(db) })

	tasks := repository.NewTaskRepository(db)
	return todoEnv{
		auth: auth.NewPasswordAuthenticator(repository.NewUserRepository(db), bcrypt.MinCost),
		newList: func(user *model.User) *service.ToDoList {
			return service.NewToDoList(tasks, user.ID, nil)
		},
	}
}

func (e todoEnv) run(t *testing.T, input *strings.Reader) string {
	t.Helper()
	var out bytes.Buffer
	sh := NewToDoShell(e.auth, e.newList, NewPrompter(input, &out), &out)
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func TestToDoShellRegisterLoginAndManageTasks(t *testing.T) {
	env := newToDoEnv(t)

	out := env.run(t, lines(
		"2", "alice", "pw1",
		"2", "alice", "again",
		"1", "alice", "wrong",
		"1", "alice", "pw1",
		"1", "Buy milk", "2%", "High", "2024-05-20",
		"1", "Call mom", "", "Low", "someday", "",
		"3", "2",
		"2", "1",
		"4",
		"5",
	))

	assert.Contains(t, out, "User registered successfully.")
	assert.Contains(t, out, `Username "alice" is already taken.`)
	assert.Contains(t, out, "Invalid username or password.")
	assert.Contains(t, out, "Welcome, alice!")
	assert.Equal(t, 2, strings.Count(out, "Task added successfully."))
	assert.Contains(t, out, "invalid date \"someday\"")
	assert.Contains(t, out, "Task marked as completed successfully.")
	assert.Contains(t, out, "Task removed successfully.")
	assert.Contains(t, out, "1. Call mom - Priority: Low - Due Date: None - Completed: true\n")
	assert.NotContains(t, out, "Buy milk - Priority")
	assert.True(t, strings.HasSuffix(out, "Tasks saved successfully. Exiting...\n"))
}

func TestToDoShellIndexesAreScopedToUser(t *testing.T) {
	env := newToDoEnv(t)

	env.run(t, lines(
		"2", "alice", "a",
		"2", "bob", "b",
		"1", "alice", "a",
		"1", "alice task", "", "Medium", "",
		"5",
	))

	out := env.run(t, lines(
		"1", "bob", "b",
		"2",
		"1", "bob task", "", "High", "",
		"3", "2",
		"3", "1",
		"5",
	))
	assert.Contains(t, out, "No tasks yet.")
	assert.Contains(t, out, "Invalid task index.")
	assert.Contains(t, out, "Task marked as completed successfully.")

	out = env.run(t, lines("1", "alice", "a", "4", "5"))
	assert.Contains(t, out, "1. alice task - Priority: Medium - Due Date: None - Completed: false\n")
}

func TestToDoShellAcceptsLongPassword(t *testing.T) {
	long := strings.Repeat("secret", 20)
	out := newToDoEnv(t).run(t, lines("2", "carol", long, "1", "carol", long, "5"))
	assert.Contains(t, out, "User registered successfully.")
	assert.Contains(t, out, "Welcome, carol!")
	assert.NotContains(t, out, "error")
}

func TestToDoShellExit(t *testing.T) {
	out := newToDoEnv(t).run(t, lines("x", "3"))
	assert.Contains(t, out, "Invalid choice. Please try again.")
	assert.True(t, strings.HasSuffix(out, "Exiting...\n"))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, splitTags(" a, ,b c,"))
	assert.Nil(t, splitTags(""))
}
