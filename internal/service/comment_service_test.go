package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
)

func newCommentService(commentRepo *MockCommentRepository, taskRepo *MockTaskRepository) CommentService {
	return NewCommentService(commentRepo, taskRepo)
}

func TestCommentService_List(t *testing.T) {
	task := &model.Task{ID: 7, BoardID: 1, OwnerID: 10, AssigneeID: uintPtr(20)}

	t.Run("assignee lists in order", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
		commentRepo.On("ListByTask", mock.Anything, uint(7)).Return([]model.Comment{
			{ID: 1, TaskID: 7, Content: "first", Author: model.User{Fullname: "A"}},
			{ID: 2, TaskID: 7, Content: "second", Author: model.User{Email: "b@x.com"}},
		}, nil)

		svc := newCommentService(commentRepo, taskRepo)
		comments, err := svc.List(context.Background(), 20, 7)

		assert.NoError(t, err)
		assert.Len(t, comments, 2)
		assert.Equal(t, "A", comments[0].Author)
		// The author falls back to the email when no name is set.
		assert.Equal(t, "b@x.com", comments[1].Author)
	})

	t.Run("stranger denied", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(7)).Return(task, nil)

		svc := newCommentService(commentRepo, taskRepo)
		_, err := svc.List(context.Background(), 99, 7)

		assert.Equal(t, apperrors.ErrAccessDenied, err)
		commentRepo.AssertNotCalled(t, "ListByTask", mock.Anything, mock.Anything)
	})

	t.Run("missing task", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := newCommentService(new(MockCommentRepository), taskRepo)
		_, err := svc.List(context.Background(), 10, 404)

		assert.Equal(t, apperrors.ErrTaskNotFound, err)
	})
}

func TestCommentService_Create(t *testing.T) {
	task := &model.Task{ID: 7, BoardID: 1, OwnerID: 10, AssigneeID: uintPtr(20)}

	tests := []struct {
		name          string
		userID        uint
		content       string
		setupMock     func(*MockCommentRepository, *MockTaskRepository)
		expectedError error
	}{
		{
			name:    "assignee comments",
			userID:  20,
			content: "looks good",
			setupMock: func(mComment *MockCommentRepository, mTask *MockTaskRepository) {
				mTask.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
				mComment.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Comment).ID = 3
				}).Return(nil)
				mComment.On("FindByID", mock.Anything, uint(3)).Return(&model.Comment{
					ID: 3, TaskID: 7, AuthorID: 20, Content: "looks good",
					Author: model.User{ID: 20, Fullname: "B"},
				}, nil)
			},
		},
		{
			name:    "whitespace-only content rejected",
			userID:  20,
			content: "   \n\t",
			setupMock: func(mComment *MockCommentRepository, mTask *MockTaskRepository) {
				mTask.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
			},
			expectedError: apperrors.ErrEmptyCommentContent,
		},
		{
			name:    "stranger denied",
			userID:  99,
			content: "let me in",
			setupMock: func(mComment *MockCommentRepository, mTask *MockTaskRepository) {
				mTask.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
			},
			expectedError: apperrors.ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := new(MockCommentRepository)
			taskRepo := new(MockTaskRepository)
			tt.setupMock(commentRepo, taskRepo)

			svc := newCommentService(commentRepo, taskRepo)
			comment, err := svc.Create(context.Background(), tt.userID, 7, tt.content)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, comment)
				commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(3), comment.ID)
				assert.Equal(t, "B", comment.Author)
				assert.Equal(t, "looks good", comment.Content)
			}

			commentRepo.AssertExpectations(t)
			taskRepo.AssertExpectations(t)
		})
	}
}

func TestCommentService_Delete(t *testing.T) {
	task := &model.Task{ID: 7, BoardID: 1, OwnerID: 10, AssigneeID: uintPtr(20)}
	comment := &model.Comment{ID: 3, TaskID: 7, AuthorID: 20}

	tests := []struct {
		name          string
		userID        uint
		setupMock     func(*MockCommentRepository, *MockTaskRepository)
		expectedError error
	}{
		{
			name:   "author deletes own comment",
			userID: 20,
			setupMock: func(mComment *MockCommentRepository, mTask *MockTaskRepository) {
				mTask.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
				mComment.On("FindByID", mock.Anything, uint(3)).Return(comment, nil)
				mComment.On("Delete", mock.Anything, comment).Return(nil)
			},
		},
		{
			name:   "task owner deletes any comment",
			userID: 10,
			setupMock: func(mComment *MockCommentRepository, mTask *MockTaskRepository) {
				mTask.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
				mComment.On("FindByID", mock.Anything, uint(3)).Return(comment, nil)
				mComment.On("Delete", mock.Anything, comment).Return(nil)
			},
		},
		{
			name:   "other participant denied",
			userID: 21,
			setupMock: func(mComment *MockCommentRepository, mTask *MockTaskRepository) {
				mTask.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
				mComment.On("FindByID", mock.Anything, uint(3)).Return(comment, nil)
			},
			expectedError: apperrors.ErrAccessDenied,
		},
		{
			name:   "comment under a different task",
			userID: 20,
			setupMock: func(mComment *MockCommentRepository, mTask *MockTaskRepository) {
				mTask.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
				mComment.On("FindByID", mock.Anything, uint(3)).Return(&model.Comment{ID: 3, TaskID: 8, AuthorID: 20}, nil)
			},
			expectedError: apperrors.ErrCommentNotFound,
		},
		{
			name:   "missing comment",
			userID: 20,
			setupMock: func(mComment *MockCommentRepository, mTask *MockTaskRepository) {
				mTask.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
				mComment.On("FindByID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrCommentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := new(MockCommentRepository)
			taskRepo := new(MockTaskRepository)
			tt.setupMock(commentRepo, taskRepo)

			svc := newCommentService(commentRepo, taskRepo)
			err := svc.Delete(context.Background(), tt.userID, 7, 3)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				commentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			commentRepo.AssertExpectations(t)
		})
	}
}
