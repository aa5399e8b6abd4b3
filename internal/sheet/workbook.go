package sheet

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/mkovac/armory/internal/store"
)

// ReadRows loads the first worksheet of the workbook at path as a raw string
// grid. Returns ErrSourceUnavailable when the file cannot be located or
// opened as a workbook.
func ReadRows(path string) ([][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrSourceUnavailable, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", store.ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading worksheet: %w", err)
	}
	return rows, nil
}

// Sync rebuilds the product catalog from the workbook at path: parse the
// grid, then atomically replace the catalog. The transaction history is not
// touched. Returns the number of distinct products inserted.
func Sync(ctx context.Context, db *sql.DB, path string) (int, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return 0, err
	}
	return store.ReplaceProducts(ctx, db, ParseProducts(rows))
}
