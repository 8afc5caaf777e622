package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"homekeeper/internal/model"
	"homekeeper/internal/repository"
)

// ErrTaskIndexOutOfRange is returned when a display index does not point at a listed task.
var ErrTaskIndexOutOfRange = errors.New("task index out of range")

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *model.Date
}

// ToDoList wraps task-related business logic for one user.
type ToDoList struct {
	taskRepo *repository.TaskRepository
	userID   uint
	log      *slog.Logger
}

func NewToDoList(taskRepo *repository.TaskRepository, userID uint, logger *slog.Logger) *ToDoList {
	if logger == nil {
		logger = slog.Default()
	}
	return &ToDoList{
		taskRepo: taskRepo,
		userID:   userID,
		log:      logger.With("component", "todo", "user_id", userID),
	}
}

// UserID returns the owner every operation is scoped to.
func (l *ToDoList) UserID() uint {
	return l.userID
}

func (l *ToDoList) AddTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	task := model.Task{
		UserID:      l.userID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}
	if err := l.taskRepo.Create(ctx, &task); err != nil {
		logFailure(ctx, l.log, "add task failed", err)
		return nil, fmt.Errorf("add task: %w", err)
	}
	l.log.Info("task added", "task_id", task.ID)
	return &task, nil
}

// RemoveTask deletes one of the user's tasks. It reports false when nothing matched.
func (l *ToDoList) RemoveTask(ctx context.Context, taskID uint) (bool, error) {
	removed, err := l.taskRepo.Delete(ctx, l.userID, taskID)
	if err != nil {
		l.log.Error("remove task failed", "task_id", taskID, "error", err)
		return false, fmt.Errorf("remove task %d: %w", taskID, err)
	}
	if !removed {
		l.log.Debug("remove matched no task", "task_id", taskID)
	}
	return removed, nil
}

// MarkTaskCompleted flags one of the user's tasks as done. It reports false when nothing matched.
func (l *ToDoList) MarkTaskCompleted(ctx context.Context, taskID uint) (bool, error) {
	done, err := l.taskRepo.MarkCompleted(ctx, l.userID, taskID)
	if err != nil {
		l.log.Error("complete task failed", "task_id", taskID, "error", err)
		return false, fmt.Errorf("complete task %d: %w", taskID, err)
	}
	if !done {
		l.log.Debug("complete matched no task", "task_id", taskID)
	}
	return done, nil
}

func (l *ToDoList) GetTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := l.taskRepo.ListByUser(ctx, l.userID)
	if err != nil {
		l.log.Error("list tasks failed", "error", err)
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// TaskIDAt maps a 1-based position in GetTasks to the task id stored at that position.
func (l *ToDoList) TaskIDAt(ctx context.Context, index int) (uint, error) {
	tasks, err := l.GetTasks(ctx)
	if err != nil {
		return 0, err
	}
	if index < 1 || index > len(tasks) {
		return 0, fmt.Errorf("%w: %d of %d", ErrTaskIndexOutOfRange, index, len(tasks))
	}
	return tasks[index-1].ID, nil
}
