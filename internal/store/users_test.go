package store

import (
	"context"
	"testing"

	"github.com/mkovac/armory/internal/db"
	"github.com/mkovac/armory/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	count, err := CountUsers(ctx, database)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty users table, got %d", count)
	}

	u, err := CreateUser(ctx, database, "admin", "hash", model.RoleAdmin)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Username != "admin" || u.Role != model.RoleAdmin {
		t.Errorf("unexpected user: %+v", u)
	}

	byName, err := GetUserByUsername(ctx, database, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if byName == nil || byName.ID != u.ID || byName.PasswordHash != "hash" {
		t.Errorf("expected to find user by username, got %+v", byName)
	}

	missing, err := GetUserByUsername(ctx, database, "ghost")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown username, got %+v", missing)
	}

	count, _ = CountUsers(ctx, database)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "admin", "hash", model.RoleAdmin); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := CreateUser(ctx, database, "admin", "hash2", model.RoleAdmin); err == nil {
		t.Error("expected error for duplicate username")
	}
}
