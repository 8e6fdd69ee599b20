package domain

import (
	"testing"
	"time"
)

func TestUserToSummary(t *testing.T) {
	now := time.Now()
	user := &User{
		ID:           "user-123",
		Email:        "writer@example.com",
		PasswordHash: "secret-hash",
		Name:         "Script Writer",
		Role:         RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastLoginAt:  &now,
	}

	summary := user.ToSummary()

	if summary.ID != user.ID {
		t.Errorf("expected ID %s, got %s", user.ID, summary.ID)
	}
	if summary.Email != user.Email {
		t.Errorf("expected Email %s, got %s", user.Email, summary.Email)
	}
	if summary.Role != user.Role {
		t.Errorf("expected Role %s, got %s", user.Role, summary.Role)
	}
	if summary.LastLoginAt == nil {
		t.Error("expected LastLoginAt to be set")
	}
}

func TestUserPermissions(t *testing.T) {
	tests := []struct {
		name        string
		user        User
		admin       bool
		manageUsers bool
		edit        bool
	}{
		{"active admin", User{Role: RoleAdmin, Active: true}, true, true, true},
		{"active member", User{Role: RoleMember, Active: true}, false, false, true},
		{"inactive member", User{Role: RoleMember, Active: false}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.IsAdmin(); got != tt.admin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.admin)
			}
			if got := tt.user.CanManageUsers(); got != tt.manageUsers {
				t.Errorf("CanManageUsers() = %v, want %v", got, tt.manageUsers)
			}
			if got := tt.user.CanEdit(); got != tt.edit {
				t.Errorf("CanEdit() = %v, want %v", got, tt.edit)
			}
		})
	}
}
