package service

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/domain"
)

func TestUserService_CreateUser(t *testing.T) {
	userRepo := newMockUserRepository()
	service := NewUserService(userRepo, zap.NewNop())

	tests := []struct {
		name    string
		req     *domain.RegisterRequest
		role    domain.UserRole
		wantErr error
	}{
		{
			name: "valid admin account",
			req: &domain.RegisterRequest{
				Username: "admin",
				Email:    "admin@example.com",
				Password: "secret123",
			},
			role: domain.UserRoleAdmin,
		},
		{
			name: "duplicate username",
			req: &domain.RegisterRequest{
				Username: "admin",
				Email:    "other@example.com",
				Password: "secret123",
			},
			role:    domain.UserRoleUser,
			wantErr: ErrUserExists,
		},
		{
			name: "duplicate email",
			req: &domain.RegisterRequest{
				Username: "editor",
				Email:    "admin@example.com",
				Password: "secret123",
			},
			role:    domain.UserRoleUser,
			wantErr: ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.CreateUser(tt.req, tt.role)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreateUser() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateUser() error = %v", err)
			}
			if user.Role != tt.role {
				t.Errorf("CreateUser() role = %v, want %v", user.Role, tt.role)
			}
			if !user.IsActive {
				t.Errorf("CreateUser() user not active")
			}
			if user.PasswordHash == tt.req.Password {
				t.Errorf("CreateUser() stored plaintext password")
			}
		})
	}
}

func TestUserService_Login(t *testing.T) {
	userRepo := newMockUserRepository()
	service := NewUserService(userRepo, zap.NewNop())

	if _, err := service.CreateUser(&domain.RegisterRequest{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "secret123",
	}, domain.UserRoleAdmin); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	inactive, err := service.CreateUser(&domain.RegisterRequest{
		Username: "ghost",
		Email:    "ghost@example.com",
		Password: "secret123",
	}, domain.UserRoleUser)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	inactive.IsActive = false

	tests := []struct {
		name    string
		req     *domain.LoginRequest
		wantErr error
	}{
		{
			name: "login with username",
			req:  &domain.LoginRequest{Username: "admin", Password: "secret123"},
		},
		{
			name: "login with email",
			req:  &domain.LoginRequest{Username: "admin@example.com", Password: "secret123"},
		},
		{
			name:    "wrong password",
			req:     &domain.LoginRequest{Username: "admin", Password: "wrong"},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "unknown user",
			req:     &domain.LoginRequest{Username: "nobody", Password: "secret123"},
			wantErr: ErrUserNotFound,
		},
		{
			name:    "inactive user",
			req:     &domain.LoginRequest{Username: "ghost", Password: "secret123"},
			wantErr: ErrUserInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Login(tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if user.Username != "admin" {
				t.Errorf("Login() username = %v, want admin", user.Username)
			}
		})
	}
}

func TestUserService_ListUsers(t *testing.T) {
	userRepo := newMockUserRepository()
	service := NewUserService(userRepo, zap.NewNop())

	for _, u := range []struct{ username, email string }{
		{"admin", "admin@example.com"},
		{"editor", "editor@example.com"},
		{"viewer", "viewer@example.com"},
	} {
		if _, err := service.CreateUser(&domain.RegisterRequest{
			Username: u.username,
			Email:    u.email,
			Password: "secret123",
		}, domain.UserRoleUser); err != nil {
			t.Fatalf("CreateUser(%q) error = %v", u.username, err)
		}
	}

	users, total, err := service.ListUsers(1, 2)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if total != 3 {
		t.Errorf("ListUsers() total = %d, want 3", total)
	}
	if len(users) != 2 {
		t.Errorf("ListUsers() page size = %d, want 2", len(users))
	}
}
