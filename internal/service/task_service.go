package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/authz"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/view"
)

// CreateTaskInput carries the fields of a task creation request. Assignee and
// reviewer are optional.
type CreateTaskInput struct {
	Board       uint
	Title       string
	Description string
	Status      string
	Priority    string
	AssigneeID  *uint
	ReviewerID  *uint
	DueDate     time.Time
}

// UpdateTaskInput carries a partial task update. Nil pointer fields stay
// untouched. AssigneeSet/ReviewerSet distinguish an omitted field from an
// explicit null that clears the role. The board is immutable and therefore
// absent here.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
	AssigneeSet bool
	AssigneeID  *uint
	ReviewerSet bool
	ReviewerID  *uint
}

// TaskService handles task operations. The authenticated caller is passed
// explicitly into every call.
type TaskService interface {
	ListForUser(ctx context.Context, userID uint) ([]view.TaskDetail, error)
	ListAssignedTo(ctx context.Context, userID uint) ([]view.TaskDetail, error)
	ListReviewing(ctx context.Context, userID uint) ([]view.TaskDetail, error)
	Create(ctx context.Context, userID uint, in CreateTaskInput) (*view.TaskDetail, error)
	Get(ctx context.Context, userID, taskID uint) (*view.TaskDetail, error)
	Update(ctx context.Context, userID, taskID uint, in UpdateTaskInput) (*view.TaskDetail, error)
	Delete(ctx context.Context, userID, taskID uint) error
}

type taskService struct {
	taskRepo    repository.TaskRepository
	boardRepo   repository.BoardRepository
	commentRepo repository.CommentRepository
}

// NewTaskService creates a new task service.
func NewTaskService(
	taskRepo repository.TaskRepository,
	boardRepo repository.BoardRepository,
	commentRepo repository.CommentRepository,
) TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		boardRepo:   boardRepo,
		commentRepo: commentRepo,
	}
}

// ListForUser returns the union of tasks the user owns, is assigned to, or
// reviews.
func (s *taskService) ListForUser(ctx context.Context, userID uint) ([]view.TaskDetail, error) {
	tasks, err := s.taskRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return s.project(ctx, tasks)
}

// ListAssignedTo returns the user's assigned tasks, soonest due first.
func (s *taskService) ListAssignedTo(ctx context.Context, userID uint) ([]view.TaskDetail, error) {
	tasks, err := s.taskRepo.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list assigned tasks: %w", err)
	}
	return s.project(ctx, tasks)
}

// ListReviewing returns the tasks the user reviews, soonest due first.
func (s *taskService) ListReviewing(ctx context.Context, userID uint) ([]view.TaskDetail, error) {
	tasks, err := s.taskRepo.ListByReviewer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviewing tasks: %w", err)
	}
	return s.project(ctx, tasks)
}

// Create validates board access and role membership, then persists the task
// with the caller as owner. Nothing is written when any check fails.
func (s *taskService) Create(ctx context.Context, userID uint, in CreateTaskInput) (*view.TaskDetail, error) {
	board, err := s.boardRepo.FindByID(ctx, in.Board)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBoardNotFound
		}
		return nil, fmt.Errorf("find board: %w", err)
	}

	if !authz.CanAccessBoard(userID, board) {
		return nil, apperrors.ErrAccessDenied
	}
	if in.AssigneeID != nil && !authz.IsMember(board, *in.AssigneeID) {
		return nil, apperrors.ErrAccessDenied
	}
	if in.ReviewerID != nil && !authz.IsMember(board, *in.ReviewerID) {
		return nil, apperrors.ErrAccessDenied
	}

	task := &model.Task{
		BoardID:     board.ID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		AssigneeID:  in.AssigneeID,
		ReviewerID:  in.ReviewerID,
		OwnerID:     userID,
		DueDate:     in.DueDate,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return s.detail(ctx, task.ID)
}

// Get returns a task if the caller is its owner, assignee, or reviewer.
func (s *taskService) Get(ctx context.Context, userID, taskID uint) (*view.TaskDetail, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessTask(userID, task) {
		return nil, apperrors.ErrAccessDenied
	}
	return s.detail(ctx, task.ID)
}

// Update applies a partial update under the same access rule as Get. Assignee
// and reviewer changes are re-validated against the board's member set.
func (s *taskService) Update(ctx context.Context, userID, taskID uint, in UpdateTaskInput) (*view.TaskDetail, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutateTask(userID, task) {
		return nil, apperrors.ErrAccessDenied
	}

	// Only a role change to a concrete user needs the member set.
	needsBoard := (in.AssigneeSet && in.AssigneeID != nil) || (in.ReviewerSet && in.ReviewerID != nil)
	if needsBoard {
		board, err := s.boardRepo.FindByID(ctx, task.BoardID)
		if err != nil {
			return nil, fmt.Errorf("find board: %w", err)
		}
		if in.AssigneeSet && in.AssigneeID != nil && !authz.IsMember(board, *in.AssigneeID) {
			return nil, apperrors.ErrAccessDenied
		}
		if in.ReviewerSet && in.ReviewerID != nil && !authz.IsMember(board, *in.ReviewerID) {
			return nil, apperrors.ErrAccessDenied
		}
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.DueDate != nil {
		task.DueDate = *in.DueDate
	}
	if in.AssigneeSet {
		task.AssigneeID = in.AssigneeID
		task.Assignee = nil
	}
	if in.ReviewerSet {
		task.ReviewerID = in.ReviewerID
		task.Reviewer = nil
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return s.detail(ctx, task.ID)
}

// Delete removes a task and its comments under the same access rule as Get.
func (s *taskService) Delete(ctx context.Context, userID, taskID uint) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !authz.CanMutateTask(userID, task) {
		return apperrors.ErrAccessDenied
	}
	if err := s.taskRepo.Delete(ctx, task); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *taskService) findTask(ctx context.Context, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (s *taskService) detail(ctx context.Context, taskID uint) (*view.TaskDetail, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	count, err := s.commentRepo.CountByTask(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	detail := view.NewTaskDetail(task, count)
	return &detail, nil
}

func (s *taskService) project(ctx context.Context, tasks []model.Task) ([]view.TaskDetail, error) {
	views := make([]view.TaskDetail, 0, len(tasks))
	for i := range tasks {
		count, err := s.commentRepo.CountByTask(ctx, tasks[i].ID)
		if err != nil {
			return nil, fmt.Errorf("count comments: %w", err)
		}
		views = append(views, view.NewTaskDetail(&tasks[i], count))
	}
	return views, nil
}
