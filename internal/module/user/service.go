package user

import (
	"context"
	"log/slog"

	"github.com/simp-lee/userpage/internal/domain"
)

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
}

// NewUserService creates a new UserService with the given repository.
func NewUserService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// GetUsers returns the requested page of users whose name contains name.
func (s *userService) GetUsers(ctx context.Context, name string, page, size int) (*domain.Page[domain.UserProjection], error) {
	slog.InfoContext(ctx, "listing users", "name", name, "page", page, "size", size)

	req, err := domain.NewPageRequest(page, size)
	if err != nil {
		return nil, err
	}

	return s.repo.FindByNameContaining(ctx, name, req)
}
