package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Task, error)
	ListByAssignee(ctx context.Context, userID uint) ([]model.Task, error)
	ListByReviewer(ctx context.Context, userID uint) ([]model.Task, error)
	ListForBoard(ctx context.Context, boardID uint) ([]model.Task, error)
	StatsForBoard(ctx context.Context, boardID uint) (*model.TaskStats, error)
	Delete(ctx context.Context, task *model.Task) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Update saves all task fields, including cleared assignee/reviewer refs.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).
		Omit("Board", "Assignee", "Reviewer", "Owner", "Comments").
		Save(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Reviewer").
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListForUser returns the union of tasks owned by, assigned to, or reviewed by
// the user, without duplicates.
func (r *taskRepository) ListForUser(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? OR assignee_id = ? OR reviewer_id = ?", userID, userID, userID).
		Preload("Assignee").
		Preload("Reviewer").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListByAssignee(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("assignee_id = ?", userID).
		Order("due_date ASC").
		Preload("Assignee").
		Preload("Reviewer").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListByReviewer(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("reviewer_id = ?", userID).
		Order("due_date ASC").
		Preload("Assignee").
		Preload("Reviewer").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListForBoard(ctx context.Context, boardID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Preload("Assignee").
		Preload("Reviewer").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// StatsForBoard computes the read-time task counts for a board. Nothing here
// is ever stored back.
func (r *taskRepository) StatsForBoard(ctx context.Context, boardID uint) (*model.TaskStats, error) {
	var stats model.TaskStats
	base := r.db.WithContext(ctx).Model(&model.Task{}).Where("board_id = ?", boardID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TicketCount).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", "to-do").Count(&stats.ToDoCount).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("priority = ?", "high").Count(&stats.HighPrioCount).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// Delete removes the task; its comments go with it via the foreign-key cascade.
func (r *taskRepository) Delete(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Delete(task).Error
}
