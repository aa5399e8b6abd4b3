package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mkovac/armory/internal/db"
	"github.com/mkovac/armory/internal/model"
)

func TestOfficerCRUD(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	o, err := CreateOfficer(ctx, database, &model.Officer{
		BadgeNumber: "B-200",
		Name:        "Devi",
		Department:  "K9",
		Phone:       "555-0101",
	})
	if err != nil {
		t.Fatalf("CreateOfficer: %v", err)
	}

	byBadge, err := GetOfficerByBadge(ctx, database, "B-200")
	if err != nil {
		t.Fatalf("GetOfficerByBadge: %v", err)
	}
	if byBadge == nil || byBadge.ID != o.ID {
		t.Fatalf("expected to find officer by badge, got %+v", byBadge)
	}

	o.Department = "Armory"
	updated, err := UpdateOfficer(ctx, database, o.ID, o)
	if err != nil {
		t.Fatalf("UpdateOfficer: %v", err)
	}
	if updated.Department != "Armory" {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := DeleteOfficer(ctx, database, o.ID); err != nil {
		t.Fatalf("DeleteOfficer: %v", err)
	}
	gone, _ := GetOfficer(ctx, database, o.ID)
	if gone != nil {
		t.Error("expected officer to be gone after delete")
	}
}

func TestDuplicateBadgeRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateOfficer(ctx, database, &model.Officer{BadgeNumber: "B-200", Name: "Devi"}); err != nil {
		t.Fatalf("CreateOfficer: %v", err)
	}
	if _, err := CreateOfficer(ctx, database, &model.Officer{BadgeNumber: "B-200", Name: "Other"}); err == nil {
		t.Error("expected error for duplicate badge number")
	}
}

func TestDeleteMissingOfficer(t *testing.T) {
	database := db.NewTestDB(t)

	err := DeleteOfficer(context.Background(), database, 7)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
