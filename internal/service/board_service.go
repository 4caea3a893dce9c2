package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskboard/internal/authz"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/view"
)

// CreateBoardInput carries the fields of a board creation request.
type CreateBoardInput struct {
	Title   string
	Members []uint
}

// UpdateBoardInput carries a partial board update. Nil fields stay untouched;
// a non-nil Members slice replaces the full member set.
type UpdateBoardInput struct {
	Title   *string
	Members *[]uint
}

// BoardService handles board operations. The authenticated caller is passed
// explicitly into every call.
type BoardService interface {
	List(ctx context.Context, userID uint) ([]view.BoardSummary, error)
	Create(ctx context.Context, userID uint, in CreateBoardInput) (*view.BoardSummary, error)
	Get(ctx context.Context, userID, boardID uint) (*view.BoardDetail, error)
	Update(ctx context.Context, userID, boardID uint, in UpdateBoardInput) (*view.BoardDetailWithOwner, error)
	Delete(ctx context.Context, userID, boardID uint) error
}

type boardService struct {
	boardRepo   repository.BoardRepository
	taskRepo    repository.TaskRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

// NewBoardService creates a new board service.
func NewBoardService(
	boardRepo repository.BoardRepository,
	taskRepo repository.TaskRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) BoardService {
	return &boardService{
		boardRepo:   boardRepo,
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// List returns every board the user owns or is a member of, with read-time
// counts.
func (s *boardService) List(ctx context.Context, userID uint) ([]view.BoardSummary, error) {
	boards, err := s.boardRepo.ListAccessible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	summaries := make([]view.BoardSummary, 0, len(boards))
	for i := range boards {
		stats, err := s.taskRepo.StatsForBoard(ctx, boards[i].ID)
		if err != nil {
			return nil, fmt.Errorf("board stats: %w", err)
		}
		summaries = append(summaries, view.NewBoardSummary(&boards[i], stats))
	}
	return summaries, nil
}

// Create persists a new board owned by the caller.
func (s *boardService) Create(ctx context.Context, userID uint, in CreateBoardInput) (*view.BoardSummary, error) {
	members, err := s.resolveMembers(ctx, in.Members)
	if err != nil {
		return nil, err
	}

	board := &model.Board{
		Title:   in.Title,
		OwnerID: userID,
		Members: members,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	summary := view.NewBoardSummary(board, &model.TaskStats{})
	return &summary, nil
}

// Get returns the board detail with members and tasks.
func (s *boardService) Get(ctx context.Context, userID, boardID uint) (*view.BoardDetail, error) {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessBoard(userID, board) {
		return nil, apperrors.ErrAccessDenied
	}

	tasks, err := s.taskRepo.ListForBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list board tasks: %w", err)
	}
	taskViews := make([]view.TaskCompact, 0, len(tasks))
	for i := range tasks {
		count, err := s.commentRepo.CountByTask(ctx, tasks[i].ID)
		if err != nil {
			return nil, fmt.Errorf("count comments: %w", err)
		}
		taskViews = append(taskViews, view.NewTaskCompact(&tasks[i], count))
	}

	detail := view.NewBoardDetail(board, taskViews)
	return &detail, nil
}

// Update changes the title and/or replaces the member set, atomically. Only
// the owner may update.
func (s *boardService) Update(ctx context.Context, userID, boardID uint, in UpdateBoardInput) (*view.BoardDetailWithOwner, error) {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutateBoard(userID, board) {
		return nil, apperrors.ErrAccessDenied
	}

	var members []model.User
	if in.Members != nil {
		members, err = s.resolveMembers(ctx, *in.Members)
		if err != nil {
			return nil, err
		}
	}

	err = s.boardRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.BoardRepository) error {
		if in.Title != nil {
			board.Title = *in.Title
			if err := repo.Update(ctx, board); err != nil {
				return fmt.Errorf("update board: %w", err)
			}
		}
		if in.Members != nil {
			if err := repo.ReplaceMembers(ctx, board, members); err != nil {
				return fmt.Errorf("replace members: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail := view.NewBoardDetailWithOwner(board)
	return &detail, nil
}

// Delete removes the board; its tasks and their comments cascade. Only the
// owner may delete, and a second delete reports NotFound.
func (s *boardService) Delete(ctx context.Context, userID, boardID uint) error {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if !authz.CanMutateBoard(userID, board) {
		return apperrors.ErrAccessDenied
	}
	if err := s.boardRepo.Delete(ctx, board); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}

func (s *boardService) findBoard(ctx context.Context, boardID uint) (*model.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBoardNotFound
		}
		return nil, fmt.Errorf("find board: %w", err)
	}
	return board, nil
}

// resolveMembers maps member ids to users, failing when any id is unknown.
func (s *boardService) resolveMembers(ctx context.Context, ids []uint) ([]model.User, error) {
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve members: %w", err)
	}
	if len(users) != len(uniqueIDs(ids)) {
		return nil, apperrors.ErrUserNotFound
	}
	return users, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
