package services

import (
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	userStore     driven.UserStore
	sessionStore  driven.SessionStore
	documentStore driven.DocumentStore
	authAdapter   driven.AuthAdapter
}

// NewUserService creates a new UserService
func NewUserService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
	documentStore driven.DocumentStore,
	authAdapter driven.AuthAdapter,
) driving.UserService {
	return &userService{
		userStore:     userStore,
		sessionStore:  sessionStore,
		documentStore: documentStore,
		authAdapter:   authAdapter,
	}
}

// Register creates an account through open sign-up
func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	count, err := s.userStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	role := domain.RoleMember
	if count == 0 {
		role = domain.RoleAdmin
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name, _, _ = strings.Cut(req.Email, "@")
	}

	return s.create(ctx, req.Email, req.Password, name, role)
}

// Create creates a new user (admin only)
func (s *userService) Create(ctx context.Context, req driving.CreateUserRequest) (*domain.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.create(ctx, req.Email, req.Password, req.Name, req.Role)
}

func (s *userService) create(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, _ := s.userStore.GetByEmail(ctx, email)
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	passwordHash, err := s.authAdapter.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           generateID(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(name),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.userStore.Get(ctx, id)
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}

// Update updates a user (admin only)
func (s *userService) Update(ctx context.Context, id string, req driving.UpdateUserRequest) (*domain.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	user.UpdatedAt = time.Now()

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}

	// Deactivated users lose their sessions immediately
	if req.Active != nil && !*req.Active {
		_ = s.sessionStore.DeleteByUser(ctx, id)
	}

	return user, nil
}

// Delete deletes a user with their sessions and documents (admin only).
// Chats and messages are removed by the store's cascade.
func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	_ = s.sessionStore.DeleteByUser(ctx, user.ID)

	if err := s.documentStore.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}

	return s.userStore.Delete(ctx, id)
}
