package service

import (
	"context"
	"errors"
	"testing"

	"github.com/portfoliocms/internal/db"
)

func TestUserServiceSignIn(t *testing.T) {
	gdb := setupServiceTestDB(t)
	if err := db.EnsureUser(gdb, "Admin@Example.com ", "s3cret"); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}
	svc := NewUserService(gdb)
	ctx := context.Background()

	user, err := svc.SignIn(ctx, "  admin@example.COM", "s3cret")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Fatalf("unexpected email %q", user.Email)
	}

	cases := []struct {
		email, password string
	}{
		{"admin@example.com", "wrong"},
		{"nobody@example.com", "s3cret"},
		{"", "s3cret"},
		{"admin@example.com", ""},
	}
	for _, tc := range cases {
		if _, err := svc.SignIn(ctx, tc.email, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("SignIn(%q, %q): expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}
}

func TestUserServiceCreate(t *testing.T) {
	svc := NewUserService(setupServiceTestDB(t))
	ctx := context.Background()

	user, err := svc.Create(ctx, "Editor@Example.com", "pw")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID == 0 || user.Password == "pw" {
		t.Fatalf("expected stored user with hashed password, got %+v", user)
	}

	if _, err := svc.Create(ctx, "editor@example.com", "other"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if _, err := svc.Create(ctx, " ", "pw"); !errors.Is(err, ErrUserInputMissing) {
		t.Fatalf("expected ErrUserInputMissing, got %v", err)
	}

	fetched, err := svc.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if fetched.Email != "editor@example.com" {
		t.Fatalf("unexpected email %q", fetched.Email)
	}
}
