package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"homekeeper/internal/model"
)

// TaskRepository handles CRUD for tasks. Every query is scoped to one user.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task after checking that its owner exists.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		var count int64
		if err := db.Model(&model.User{}).Where("id = ?", task.UserID).Count(&count).Error; err != nil {
			return persistenceError("check user", err)
		}
		if count == 0 {
			return ErrUserNotFound
		}
		if err := db.Create(task).Error; err != nil {
			return persistenceError("create task", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrUserNotFound) && !IsPersistence(err) {
		return persistenceError("create task", err)
	}
	return err
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uint) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, persistenceError("list tasks", err)
	}
	return tasks, nil
}

// MarkCompleted reports whether a task of the user was matched.
func (r *TaskRepository) MarkCompleted(ctx context.Context, userID, taskID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND id = ?", userID, taskID).
		Update("completed", true)
	if res.Error != nil {
		return false, persistenceError("complete task", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a task of the user and reports whether one was matched.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).
		Delete(&model.Task{})
	if res.Error != nil {
		return false, persistenceError("delete task", res.Error)
	}
	return res.RowsAffected > 0, nil
}
