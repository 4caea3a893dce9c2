package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
)

func newTaskService(taskRepo *MockTaskRepository, boardRepo *MockBoardRepository, commentRepo *MockCommentRepository) TaskService {
	return NewTaskService(taskRepo, boardRepo, commentRepo)
}

func TestTaskService_Create(t *testing.T) {
	// Owner 10 is also in the member set; 20 is a plain member.
	board := &model.Board{ID: 1, Title: "Alpha", OwnerID: 10, Members: []model.User{{ID: 10}, {ID: 20}}}
	dueDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		userID        uint
		input         CreateTaskInput
		setupMock     func(*MockTaskRepository, *MockBoardRepository, *MockCommentRepository)
		expectedError error
	}{
		{
			name:   "owner creates with member roles",
			userID: 10,
			input:  CreateTaskInput{Board: 1, Title: "Ship it", Status: "to-do", Priority: "high", AssigneeID: uintPtr(20), ReviewerID: uintPtr(10), DueDate: dueDate},
			setupMock: func(mTask *MockTaskRepository, mBoard *MockBoardRepository, mComment *MockCommentRepository) {
				mBoard.On("FindByID", mock.Anything, uint(1)).Return(board, nil)
				mTask.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Task).ID = 7
				}).Return(nil)
				mTask.On("FindByID", mock.Anything, uint(7)).Return(&model.Task{
					ID: 7, BoardID: 1, Title: "Ship it", Status: "to-do", Priority: "high",
					AssigneeID: uintPtr(20), Assignee: &model.User{ID: 20, Email: "b@x.com"},
					ReviewerID: uintPtr(10), Reviewer: &model.User{ID: 10, Email: "a@x.com"},
					OwnerID: 10, DueDate: dueDate,
				}, nil)
				mComment.On("CountByTask", mock.Anything, uint(7)).Return(int64(0), nil)
			},
		},
		{
			name:   "board missing",
			userID: 10,
			input:  CreateTaskInput{Board: 99, Title: "Ghost", DueDate: dueDate},
			setupMock: func(mTask *MockTaskRepository, mBoard *MockBoardRepository, mComment *MockCommentRepository) {
				mBoard.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrBoardNotFound,
		},
		{
			name:   "stranger cannot create",
			userID: 99,
			input:  CreateTaskInput{Board: 1, Title: "Nope", DueDate: dueDate},
			setupMock: func(mTask *MockTaskRepository, mBoard *MockBoardRepository, mComment *MockCommentRepository) {
				mBoard.On("FindByID", mock.Anything, uint(1)).Return(board, nil)
			},
			expectedError: apperrors.ErrAccessDenied,
		},
		{
			name:   "assignee outside member set",
			userID: 10,
			input:  CreateTaskInput{Board: 1, Title: "Bad assignee", AssigneeID: uintPtr(99), DueDate: dueDate},
			setupMock: func(mTask *MockTaskRepository, mBoard *MockBoardRepository, mComment *MockCommentRepository) {
				mBoard.On("FindByID", mock.Anything, uint(1)).Return(board, nil)
			},
			expectedError: apperrors.ErrAccessDenied,
		},
		{
			name:   "reviewer outside member set",
			userID: 10,
			input:  CreateTaskInput{Board: 1, Title: "Bad reviewer", ReviewerID: uintPtr(99), DueDate: dueDate},
			setupMock: func(mTask *MockTaskRepository, mBoard *MockBoardRepository, mComment *MockCommentRepository) {
				mBoard.On("FindByID", mock.Anything, uint(1)).Return(board, nil)
			},
			expectedError: apperrors.ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taskRepo := new(MockTaskRepository)
			boardRepo := new(MockBoardRepository)
			commentRepo := new(MockCommentRepository)
			tt.setupMock(taskRepo, boardRepo, commentRepo)

			svc := newTaskService(taskRepo, boardRepo, commentRepo)
			detail, err := svc.Create(context.Background(), tt.userID, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, detail)
				// A failed check must not persist anything.
				taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(7), detail.ID)
				assert.Equal(t, uint(1), detail.Board)
				assert.Equal(t, "2026-09-15", detail.DueDate)
				assert.Equal(t, uint(20), detail.Assignee.ID)
				assert.Equal(t, uint(10), detail.Reviewer.ID)
				assert.Equal(t, int64(0), detail.CommentsCount)
			}

			taskRepo.AssertExpectations(t)
			boardRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_Get(t *testing.T) {
	task := &model.Task{ID: 7, BoardID: 1, Title: "Ship it", OwnerID: 10, AssigneeID: uintPtr(20), ReviewerID: uintPtr(21)}

	tests := []struct {
		name          string
		userID        uint
		expectedError error
	}{
		{name: "owner reads", userID: 10},
		{name: "assignee reads", userID: 20},
		{name: "reviewer reads", userID: 21},
		{name: "stranger denied", userID: 99, expectedError: apperrors.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taskRepo := new(MockTaskRepository)
			commentRepo := new(MockCommentRepository)
			taskRepo.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
			if tt.expectedError == nil {
				commentRepo.On("CountByTask", mock.Anything, uint(7)).Return(int64(3), nil)
			}

			svc := newTaskService(taskRepo, new(MockBoardRepository), commentRepo)
			detail, err := svc.Get(context.Background(), tt.userID, 7)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, detail)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(3), detail.CommentsCount)
			}
		})
	}
}

func TestTaskService_Get_NotFound(t *testing.T) {
	taskRepo := new(MockTaskRepository)
	taskRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTaskService(taskRepo, new(MockBoardRepository), new(MockCommentRepository))
	_, err := svc.Get(context.Background(), 10, 404)

	assert.Equal(t, apperrors.ErrTaskNotFound, err)
}

func TestTaskService_Update(t *testing.T) {
	board := &model.Board{ID: 1, OwnerID: 10, Members: []model.User{{ID: 10}, {ID: 20}}}

	t.Run("stranger denied", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.Task{ID: 7, BoardID: 1, OwnerID: 10}, nil)

		svc := newTaskService(taskRepo, new(MockBoardRepository), new(MockCommentRepository))
		title := "Hacked"
		_, err := svc.Update(context.Background(), 99, 7, UpdateTaskInput{Title: &title})

		assert.Equal(t, apperrors.ErrAccessDenied, err)
		taskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("assignee change to non-member denied", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		boardRepo := new(MockBoardRepository)
		taskRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.Task{ID: 7, BoardID: 1, OwnerID: 10}, nil)
		boardRepo.On("FindByID", mock.Anything, uint(1)).Return(board, nil)

		svc := newTaskService(taskRepo, boardRepo, new(MockCommentRepository))
		_, err := svc.Update(context.Background(), 10, 7, UpdateTaskInput{AssigneeSet: true, AssigneeID: uintPtr(99)})

		assert.Equal(t, apperrors.ErrAccessDenied, err)
		taskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("clearing assignee skips the member check", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		boardRepo := new(MockBoardRepository)
		commentRepo := new(MockCommentRepository)
		task := &model.Task{ID: 7, BoardID: 1, OwnerID: 10, AssigneeID: uintPtr(20), Assignee: &model.User{ID: 20}}
		taskRepo.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
		taskRepo.On("Update", mock.Anything, task).Return(nil)
		commentRepo.On("CountByTask", mock.Anything, uint(7)).Return(int64(0), nil)

		svc := newTaskService(taskRepo, boardRepo, commentRepo)
		detail, err := svc.Update(context.Background(), 10, 7, UpdateTaskInput{AssigneeSet: true, AssigneeID: nil})

		assert.NoError(t, err)
		assert.Nil(t, detail.Assignee)
		assert.Nil(t, task.AssigneeID)
		boardRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("assignee updates fields", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		commentRepo := new(MockCommentRepository)
		task := &model.Task{ID: 7, BoardID: 1, OwnerID: 10, AssigneeID: uintPtr(20), Status: "to-do"}
		taskRepo.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
		taskRepo.On("Update", mock.Anything, task).Return(nil)
		commentRepo.On("CountByTask", mock.Anything, uint(7)).Return(int64(0), nil)

		svc := newTaskService(taskRepo, new(MockBoardRepository), commentRepo)
		status := "in-progress"
		detail, err := svc.Update(context.Background(), 20, 7, UpdateTaskInput{Status: &status})

		assert.NoError(t, err)
		assert.Equal(t, "in-progress", detail.Status)
	})
}

func TestTaskService_Delete(t *testing.T) {
	t.Run("reviewer deletes", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		task := &model.Task{ID: 7, BoardID: 1, OwnerID: 10, ReviewerID: uintPtr(21)}
		taskRepo.On("FindByID", mock.Anything, uint(7)).Return(task, nil)
		taskRepo.On("Delete", mock.Anything, task).Return(nil)

		svc := newTaskService(taskRepo, new(MockBoardRepository), new(MockCommentRepository))
		assert.NoError(t, svc.Delete(context.Background(), 21, 7))
		taskRepo.AssertExpectations(t)
	})

	t.Run("stranger denied", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.Task{ID: 7, BoardID: 1, OwnerID: 10}, nil)

		svc := newTaskService(taskRepo, new(MockBoardRepository), new(MockCommentRepository))
		err := svc.Delete(context.Background(), 99, 7)

		assert.Equal(t, apperrors.ErrAccessDenied, err)
		taskRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing task", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := newTaskService(taskRepo, new(MockBoardRepository), new(MockCommentRepository))
		assert.Equal(t, apperrors.ErrTaskNotFound, svc.Delete(context.Background(), 10, 404))
	})
}

func TestTaskService_ListAssignedTo(t *testing.T) {
	taskRepo := new(MockTaskRepository)
	commentRepo := new(MockCommentRepository)
	tasks := []model.Task{
		{ID: 1, BoardID: 1, Title: "First", OwnerID: 10, DueDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, BoardID: 1, Title: "Second", OwnerID: 10, DueDate: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)},
	}
	taskRepo.On("ListByAssignee", mock.Anything, uint(20)).Return(tasks, nil)
	commentRepo.On("CountByTask", mock.Anything, uint(1)).Return(int64(1), nil)
	commentRepo.On("CountByTask", mock.Anything, uint(2)).Return(int64(0), nil)

	svc := newTaskService(taskRepo, new(MockBoardRepository), commentRepo)
	views, err := svc.ListAssignedTo(context.Background(), 20)

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, "2026-09-01", views[0].DueDate)
	assert.Equal(t, int64(1), views[0].CommentsCount)
	taskRepo.AssertExpectations(t)
}
