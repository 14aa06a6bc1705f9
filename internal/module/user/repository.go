package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/simp-lee/userpage/internal/domain"
	"github.com/simp-lee/userpage/internal/pkg"
)

// projectionColumns are the columns read into domain.UserProjection.
var projectionColumns = []string{"name", "email", "status", "address", "phone", "image_url"}

// userRepository implements domain.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by the given GORM database.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// FindByNameContaining returns one window of users whose name contains name,
// ordered by id. The count and the window are read in the same transaction.
func (r *userRepository) FindByNameContaining(ctx context.Context, name string, req domain.PageRequest) (*domain.Page[domain.UserProjection], error) {
	if req.Page < 0 || req.Size < 1 {
		return nil, domain.NewAppError(domain.CodeInvalidArgument, "invalid page window", nil)
	}

	var (
		total int64
		users []domain.UserProjection
	)
	err := pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		base := tx.Model(&domain.User{}).
			Scopes(pkg.Contains("name", name)).
			Session(&gorm.Session{})

		if err := base.Count(&total).Error; err != nil {
			return err
		}
		if req.PastEnd(total) {
			return nil
		}

		return base.Select(projectionColumns).
			Order("id").
			Scopes(pkg.Paginate(req)).
			Scan(&users).Error
	})
	if err != nil {
		return nil, mapError(err)
	}

	return pkg.NewPage(users, total, req), nil
}

// mapError converts GORM and driver errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return domain.NewAppError(domain.CodeStoreUnavailable, "database error", err)
}
