package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homekeeper/internal/model"
	"homekeeper/internal/repository"
)

type todoFixture struct {
	alice *ToDoList
	bob   *ToDoList
}

func newToDoFixture(t *testing.T) todoFixture {
	t.Helper()
	ctx := context.Background()
	db, err := repository.OpenToDoDB(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close(db) })

	users := repository.NewUserRepository(db)
	alice := model.User{Username: "alice", Password: "hash"}
	bob := model.User{Username: "bob", Password: "hash"}
	require.NoError(t, users.Create(ctx, &alice))
	require.NoError(t, users.Create(ctx, &bob))

	tasks := repository.NewTaskRepository(db)
	return todoFixture{
		alice: NewToDoList(tasks, alice.ID, nil),
		bob:   NewToDoList(tasks, bob.ID, nil),
	}
}

func TestFreshUserHasNoTasks(t *testing.T) {
	f := newToDoFixture(t)
	tasks, err := f.alice.GetTasks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestAddTaskDefaults(t *testing.T) {
	ctx := context.Background()
	f := newToDoFixture(t)

	due := model.NewDate(2024, 7, 4)
	task, err := f.alice.AddTask(ctx, TaskInput{Title: "Buy milk", Priority: model.PriorityHigh, DueDate: &due})
	require.NoError(t, err)
	assert.NotZero(t, task.ID)
	assert.False(t, task.Completed)

	_, err = f.alice.AddTask(ctx, TaskInput{})
	require.NoError(t, err)

	tasks, err := f.alice.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, "2024-07-04", tasks[0].DueDate.String())
	assert.Nil(t, tasks[1].DueDate)
	assert.Empty(t, tasks[1].Title)
}

func TestOtherUsersTasksAreUntouched(t *testing.T) {
	ctx := context.Background()
	f := newToDoFixture(t)

	task, err := f.alice.AddTask(ctx, TaskInput{Title: "Pay rent"})
	require.NoError(t, err)

	done, err := f.bob.MarkTaskCompleted(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, done)

	removed, err := f.bob.RemoveTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	tasks, err := f.alice.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Completed)
}

func TestMarkAndRemoveOwnTask(t *testing.T) {
	ctx := context.Background()
	f := newToDoFixture(t)

	task, err := f.alice.AddTask(ctx, TaskInput{Title: "Walk dog"})
	require.NoError(t, err)

	done, err := f.alice.MarkTaskCompleted(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, done)

	tasks, err := f.alice.GetTasks(ctx)
	require.NoError(t, err)
	assert.True(t, tasks[0].Completed)

	removed, err := f.alice.RemoveTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.alice.RemoveTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTaskIDAtResolvesDisplayIndex(t *testing.T) {
	ctx := context.Background()
	f := newToDoFixture(t)

	// Interleave users so alice's ids are not 1..n.
	_, err := f.bob.AddTask(ctx, TaskInput{Title: "bob 1"})
	require.NoError(t, err)
	first, err := f.alice.AddTask(ctx, TaskInput{Title: "alice 1"})
	require.NoError(t, err)
	_, err = f.bob.AddTask(ctx, TaskInput{Title: "bob 2"})
	require.NoError(t, err)
	second, err := f.alice.AddTask(ctx, TaskInput{Title: "alice 2"})
	require.NoError(t, err)

	id, err := f.alice.TaskIDAt(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)

	id, err = f.alice.TaskIDAt(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, second.ID, id)

	_, err = f.alice.TaskIDAt(ctx, 0)
	assert.ErrorIs(t, err, ErrTaskIndexOutOfRange)
	_, err = f.alice.TaskIDAt(ctx, 3)
	assert.ErrorIs(t, err, ErrTaskIndexOutOfRange)
}
