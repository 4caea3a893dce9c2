package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// BoardRepository defines board persistence operations.
type BoardRepository interface {
	Create(ctx context.Context, board *model.Board) error
	Update(ctx context.Context, board *model.Board) error
	FindByID(ctx context.Context, id uint) (*model.Board, error)
	ListAccessible(ctx context.Context, userID uint) ([]model.Board, error)
	ReplaceMembers(ctx context.Context, board *model.Board, members []model.User) error
	Delete(ctx context.Context, board *model.Board) error
	// WithTransaction runs fn against a repository bound to one transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BoardRepository) error) error
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new board repository.
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

// Create persists a board together with its pre-assigned member set.
func (r *boardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// Update persists scalar board fields. Member changes go through ReplaceMembers.
func (r *boardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Omit("Members").Save(board).Error
}

// FindByID loads a board with its owner and member set.
func (r *boardRepository) FindByID(ctx context.Context, id uint) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members").
		First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// ListAccessible returns every board where the user is owner or member,
// without duplicates.
func (r *boardRepository) ListAccessible(ctx context.Context, userID uint) ([]model.Board, error) {
	var boards []model.Board
	if err := r.db.WithContext(ctx).
		Distinct("boards.*").
		Joins("LEFT JOIN board_members bm ON bm.board_id = boards.id").
		Where("boards.owner_id = ? OR bm.user_id = ?", userID, userID).
		Preload("Members").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// ReplaceMembers swaps the full member set (replace semantics, not merge).
func (r *boardRepository) ReplaceMembers(ctx context.Context, board *model.Board, members []model.User) error {
	if err := r.db.WithContext(ctx).Model(board).Association("Members").Replace(members); err != nil {
		return err
	}
	board.Members = members
	return nil
}

// Delete removes the board. Tasks and their comments go with it via the
// foreign-key cascade; the join rows are cleared explicitly.
func (r *boardRepository) Delete(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(board).Association("Members").Clear(); err != nil {
			return err
		}
		return tx.Delete(board).Error
	})
}

// WithTransaction executes a function within a database transaction.
func (r *boardRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BoardRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &boardRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
