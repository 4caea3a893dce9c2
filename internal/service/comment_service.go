package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"taskboard/internal/authz"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/view"
)

// CommentService handles the append-only comment log of a task.
type CommentService interface {
	List(ctx context.Context, userID, taskID uint) ([]view.Comment, error)
	Create(ctx context.Context, userID, taskID uint, content string) (*view.Comment, error)
	Delete(ctx context.Context, userID, taskID, commentID uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
	}
}

// List returns the task's comments in chronological order, under the task
// access rule.
func (s *commentService) List(ctx context.Context, userID, taskID uint) ([]view.Comment, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessTask(userID, task) {
		return nil, apperrors.ErrAccessDenied
	}

	comments, err := s.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	views := make([]view.Comment, 0, len(comments))
	for i := range comments {
		views = append(views, view.NewComment(&comments[i]))
	}
	return views, nil
}

// Create appends a comment authored by the caller. Whitespace-only content is
// rejected.
func (s *commentService) Create(ctx context.Context, userID, taskID uint, content string) (*view.Comment, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessTask(userID, task) {
		return nil, apperrors.ErrAccessDenied
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.ErrEmptyCommentContent
	}

	comment := &model.Comment{
		TaskID:   taskID,
		AuthorID: userID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// Reload to pick up the author relation for the projection.
	created, err := s.commentRepo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	v := view.NewComment(created)
	return &v, nil
}

// Delete removes a comment when the caller authored it or owns the task. A
// comment addressed under the wrong task reports NotFound.
func (s *commentService) Delete(ctx context.Context, userID, taskID, commentID uint) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("find comment: %w", err)
	}
	if comment.TaskID != taskID {
		return apperrors.ErrCommentNotFound
	}

	if !authz.CanDeleteComment(userID, comment, task) {
		return apperrors.ErrAccessDenied
	}

	if err := s.commentRepo.Delete(ctx, comment); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *commentService) findTask(ctx context.Context, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}
