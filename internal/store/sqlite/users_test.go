package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/store"
)

func makeUser(id, username, email string) *domain.User {
	now := time.Now()
	u := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$fake",
		Role:         domain.RoleViewer,
		IsActive:     true,
	}
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return u
}

func TestCreateGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeUser("user-1", "kobi", "kobi@example.com")
	u.FullName = "Kobi Guru"
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Username != "kobi" || got.Email != "kobi@example.com" {
		t.Errorf("got %q/%q", got.Username, got.Email)
	}
	if got.FullName != "Kobi Guru" {
		t.Errorf("FullName = %q", got.FullName)
	}
	if got.Role != domain.RoleViewer {
		t.Errorf("Role = %q", got.Role)
	}
	if !got.IsActive {
		t.Error("IsActive = false")
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetUser(context.Background(), "user-missing"); err != store.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeUser("user-1", "one", "Same@Example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// Email uniqueness is case-insensitive.
	err := s.CreateUser(ctx, makeUser("user-2", "two", "same@example.com"))
	if err != store.ErrAlreadyExists {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeUser("user-1", "Kobi", "a@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	err := s.CreateUser(ctx, makeUser("user-2", "kobi", "b@example.com"))
	if err != store.ErrAlreadyExists {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestGetUserByEmailCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeUser("user-1", "kobi", "Kobi@Example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "kobi@example.COM")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != "user-1" {
		t.Errorf("ID = %q", got.ID)
	}
	// Original casing is preserved.
	if got.Email != "Kobi@Example.com" {
		t.Errorf("Email = %q", got.Email)
	}
}

func TestGetUserByUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeUser("user-1", "Kobi", "a@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUserByUsername(ctx, "kobi")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != "user-1" {
		t.Errorf("ID = %q", got.ID)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeUser("user-1", "kobi", "a@example.com")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u.Role = domain.RoleAdmin
	u.Bio = "writes poems"
	u.Touch()
	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Role != domain.RoleAdmin {
		t.Errorf("Role = %q", got.Role)
	}
	if got.Bio != "writes poems" {
		t.Errorf("Bio = %q", got.Bio)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	s := newTestStore(t)

	u := makeUser("user-missing", "ghost", "ghost@example.com")
	if err := s.UpdateUser(context.Background(), u); err != store.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListAndCountUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, name := range []string{"one", "two", "three"} {
		u := makeUser("user-"+name, name, name+"@example.com")
		u.CreatedAt = u.CreatedAt.Add(time.Duration(i) * time.Second)
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("len = %d, want 3", len(users))
	}

	count, err := s.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}
