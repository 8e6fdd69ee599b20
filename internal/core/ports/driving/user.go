package driving

import (
	"context"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// CreateUserRequest represents an admin creating an account
type CreateUserRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Name     string      `json:"name" validate:"required,max=120"`
	Role     domain.Role `json:"role" validate:"required,oneof=admin member"`
}

// UpdateUserRequest represents a request to update a user
type UpdateUserRequest struct {
	Name   *string      `json:"name,omitempty" validate:"omitempty,max=120"`
	Role   *domain.Role `json:"role,omitempty" validate:"omitempty,oneof=admin member"`
	Active *bool        `json:"active,omitempty"`
}

// UserService manages user accounts
type UserService interface {
	// Register creates an account through open sign-up.
	// The first account becomes an admin, later ones are members.
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)

	// Create creates a new user (admin only)
	Create(ctx context.Context, req CreateUserRequest) (*domain.User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*domain.User, error)

	// Update updates a user (admin only)
	Update(ctx context.Context, id string, req UpdateUserRequest) (*domain.User, error)

	// Delete deletes a user with their sessions and documents (admin only)
	Delete(ctx context.Context, id string) error
}
