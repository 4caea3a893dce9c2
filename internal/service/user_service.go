package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/cache"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/repository"
	"taskboard/internal/view"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes user lookup operations.
type UserService interface {
	EmailCheck(ctx context.Context, email string) (*view.UserCompact, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

// EmailCheck resolves an email to the compact user representation, caching
// hits for a short while.
func (s *userService) EmailCheck(ctx context.Context, email string) (*view.UserCompact, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(email)); data != nil {
		var cached view.UserCompact
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	compact := view.NewUserCompact(user)
	if payload, err := json.Marshal(compact); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(email), payload, userCacheTTL)
	}
	return &compact, nil
}
