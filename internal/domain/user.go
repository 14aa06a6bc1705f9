package domain

import "context"

// User is a persisted user record. Every column besides the key is nullable.
type User struct {
	BaseModel
	Name     *string `gorm:"size:255" json:"name"`
	Email    *string `gorm:"size:255" json:"email"`
	Status   *string `gorm:"size:50" json:"status"`
	Address  *string `gorm:"size:255" json:"address"`
	Phone    *string `gorm:"size:50" json:"phone"`
	ImageURL *string `gorm:"size:512" json:"imageUrl"`
}

// UserProjection is the read view of a User returned by listings. It has no id.
type UserProjection struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Status   *string `json:"status"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	ImageURL *string `json:"imageUrl"`
}

// UserRepository defines the read-only data access interface for users.
type UserRepository interface {
	// FindByNameContaining returns the window of users whose name contains name.
	FindByNameContaining(ctx context.Context, name string, req PageRequest) (*Page[UserProjection], error)
}

// UserService defines the listing use case for users.
type UserService interface {
	GetUsers(ctx context.Context, name string, page, size int) (*Page[UserProjection], error)
}
