package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/simonrowe/mealdex-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "user-1", "chef@example.com")

	got, err := s.GetUserByID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Email != u.Email {
		t.Errorf("Email: got %q, want %q", got.Email, u.Email)
	}
	if got.Name != u.Name {
		t.Errorf("Name: got %q, want %q", got.Name, u.Name)
	}
	if got.PasswordHash != u.PasswordHash {
		t.Errorf("PasswordHash: got %q, want %q", got.PasswordHash, u.PasswordHash)
	}
	if got.CreatedAt.Unix() != u.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, u.CreatedAt)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByID(context.Background(), "user-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "user-case", "Chef@Example.COM")

	got, err := s.GetUserByEmail(ctx, "chef@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != "user-case" {
		t.Errorf("ID: got %q, want %q", got.ID, "user-case")
	}
	// Original casing is preserved in the email column.
	if got.Email != "Chef@Example.COM" {
		t.Errorf("Email: got %q, want %q", got.Email, "Chef@Example.COM")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "user-a", "dup@example.com")

	u := createTestUser(t, s, "user-b", "other@example.com")
	u.ID = "user-c"
	u.Email = "DUP@example.com" // different case, same email_lower
	err := s.CreateUser(ctx, u)
	if !errors.Is(err, store.ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "user-upd", "upd@example.com")
	u.Name = "New Name"
	u.PasswordHash = "$argon2id$new"
	u.Touch()

	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	got, err := s.GetUserByID(ctx, "user-upd")
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("Name: got %q, want %q", got.Name, "New Name")
	}
	if got.PasswordHash != "$argon2id$new" {
		t.Errorf("PasswordHash not updated")
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	u := createTestUser(t, s, "user-x", "x@example.com")
	u.ID = "user-nope"
	err := s.UpdateUser(context.Background(), u)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
