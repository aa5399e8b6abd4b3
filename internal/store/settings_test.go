package store

import (
	"context"
	"testing"

	"github.com/mkovac/armory/internal/db"
)

func TestSpreadsheetPathRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	path, err := GetSpreadsheetPath(ctx, database)
	if err != nil {
		t.Fatalf("GetSpreadsheetPath: %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path before configuration, got %q", path)
	}

	if err := SetSpreadsheetPath(ctx, database, "/data/stock.xlsx"); err != nil {
		t.Fatalf("SetSpreadsheetPath: %v", err)
	}

	path, _ = GetSpreadsheetPath(ctx, database)
	if path != "/data/stock.xlsx" {
		t.Errorf("expected configured path, got %q", path)
	}

	// Setting again replaces the old value.
	if err := SetSpreadsheetPath(ctx, database, "/data/stock-v2.xlsx"); err != nil {
		t.Fatalf("SetSpreadsheetPath: %v", err)
	}
	path, _ = GetSpreadsheetPath(ctx, database)
	if path != "/data/stock-v2.xlsx" {
		t.Errorf("expected replaced path, got %q", path)
	}
}
