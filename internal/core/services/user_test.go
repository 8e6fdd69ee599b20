package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driving"
)

func newTestUserService() (*mocks.MockUserStore, *mocks.MockSessionStore, *mocks.MockDocumentStore, *userService) {
	userStore := mocks.NewMockUserStore()
	sessionStore := mocks.NewMockSessionStore()
	documentStore := mocks.NewMockDocumentStore()
	authAdapter := mocks.NewMockAuthAdapter()
	svc := NewUserService(userStore, sessionStore, documentStore, authAdapter).(*userService)
	return userStore, sessionStore, documentStore, svc
}

func TestUserService_Register_FirstUserIsAdmin(t *testing.T) {
	_, _, _, svc := newTestUserService()
	ctx := context.Background()

	first, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "Author@Example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Role != domain.RoleAdmin {
		t.Errorf("expected first user to be admin, got %s", first.Role)
	}
	if first.Email != "author@example.com" {
		t.Errorf("expected normalised email, got %s", first.Email)
	}
	if first.Name != "Author" {
		t.Errorf("expected name derived from email, got %q", first.Name)
	}

	second, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "editor@example.com",
		Password: "password123",
		Name:     "Editor",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Role != domain.RoleMember {
		t.Errorf("expected second user to be member, got %s", second.Role)
	}
}

func TestUserService_Register_Invalid(t *testing.T) {
	_, _, _, svc := newTestUserService()

	tests := []struct {
		name string
		req  domain.RegisterRequest
	}{
		{"missing email", domain.RegisterRequest{Password: "password123"}},
		{"malformed email", domain.RegisterRequest{Email: "nope", Password: "password123"}},
		{"short password", domain.RegisterRequest{Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestUserService_Create(t *testing.T) {
	_, _, _, svc := newTestUserService()

	tests := []struct {
		name    string
		req     driving.CreateUserRequest
		wantErr error
	}{
		{
			name: "valid user",
			req: driving.CreateUserRequest{
				Email:    "test@example.com",
				Password: "password123",
				Name:     "Test User",
				Role:     domain.RoleMember,
			},
			wantErr: nil,
		},
		{
			name: "missing email",
			req: driving.CreateUserRequest{
				Password: "password123",
				Name:     "Test User",
				Role:     domain.RoleMember,
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "missing password",
			req: driving.CreateUserRequest{
				Email: "test2@example.com",
				Name:  "Test User",
				Role:  domain.RoleMember,
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "missing name",
			req: driving.CreateUserRequest{
				Email:    "test3@example.com",
				Password: "password123",
				Role:     domain.RoleMember,
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "unknown role",
			req: driving.CreateUserRequest{
				Email:    "test4@example.com",
				Password: "password123",
				Name:     "Test User",
				Role:     domain.Role("viewer"),
			},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID == "" {
				t.Error("expected user ID to be set")
			}
			if !user.Active {
				t.Error("expected user to be active")
			}
			if user.PasswordHash == "" {
				t.Error("expected password hash to be set")
			}
		})
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	_, _, _, svc := newTestUserService()

	req := driving.CreateUserRequest{
		Email:    "dup@example.com",
		Password: "password123",
		Name:     "First",
		Role:     domain.RoleMember,
	}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req.Email = " DUP@example.com "
	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserService_Get(t *testing.T) {
	userStore, _, _, svc := newTestUserService()

	_ = userStore.Save(context.Background(), &domain.User{
		ID:    "user-123",
		Email: "test@example.com",
		Role:  domain.RoleMember,
	})

	user, err := svc.Get(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "test@example.com" {
		t.Errorf("expected email test@example.com, got %s", user.Email)
	}

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_List(t *testing.T) {
	userStore, _, _, svc := newTestUserService()
	now := time.Now()

	_ = userStore.Save(context.Background(), &domain.User{ID: "u1", Email: "a@example.com", CreatedAt: now})
	_ = userStore.Save(context.Background(), &domain.User{ID: "u2", Email: "b@example.com", CreatedAt: now.Add(time.Second)})

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != "u1" {
		t.Errorf("expected oldest user first, got %s", users[0].ID)
	}
}

func TestUserService_Update(t *testing.T) {
	userStore, _, _, svc := newTestUserService()

	_ = userStore.Save(context.Background(), &domain.User{
		ID:     "user-123",
		Email:  "test@example.com",
		Name:   "Original",
		Role:   domain.RoleMember,
		Active: true,
	})

	name := "  Updated  "
	role := domain.RoleAdmin
	user, err := svc.Update(context.Background(), "user-123", driving.UpdateUserRequest{
		Name: &name,
		Role: &role,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Updated" {
		t.Errorf("expected name Updated, got %q", user.Name)
	}
	if user.Role != domain.RoleAdmin {
		t.Errorf("expected role admin, got %s", user.Role)
	}

	bad := domain.Role("owner")
	if _, err := svc.Update(context.Background(), "user-123", driving.UpdateUserRequest{Role: &bad}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_Update_DeactivateUser(t *testing.T) {
	userStore, sessionStore, _, svc := newTestUserService()

	_ = userStore.Save(context.Background(), &domain.User{
		ID:     "user-123",
		Email:  "test@example.com",
		Active: true,
	})
	_ = sessionStore.Save(context.Background(), &domain.Session{
		ID:        "session-1",
		UserID:    "user-123",
		Token:     "token-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	active := false
	user, err := svc.Update(context.Background(), "user-123", driving.UpdateUserRequest{Active: &active})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Active {
		t.Error("expected user to be inactive")
	}
	if sessionStore.Count() != 0 {
		t.Errorf("expected sessions to be invalidated, got %d", sessionStore.Count())
	}
}

func TestUserService_Delete(t *testing.T) {
	userStore, sessionStore, documentStore, svc := newTestUserService()
	ctx := context.Background()

	_ = userStore.Save(ctx, &domain.User{ID: "user-123", Email: "test@example.com"})
	_ = sessionStore.Save(ctx, &domain.Session{
		ID:        "session-1",
		UserID:    "user-123",
		Token:     "token-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	_ = documentStore.SaveVersion(ctx, &domain.Document{
		ID:        "doc-1",
		UserID:    "user-123",
		Kind:      domain.KindText,
		CreatedAt: time.Now(),
	})

	if err := svc.Delete(ctx, "user-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := userStore.Get(ctx, "user-123"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected user to be deleted, got %v", err)
	}
	if sessionStore.Count() != 0 {
		t.Errorf("expected sessions to be deleted, got %d", sessionStore.Count())
	}
	if documentStore.VersionCount("doc-1") != 0 {
		t.Errorf("expected documents to be deleted, got %d versions", documentStore.VersionCount("doc-1"))
	}

	if err := svc.Delete(ctx, "user-123"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
