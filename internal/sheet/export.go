package sheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkovac/armory/internal/model"
)

const exportSheet = "Inventory"

// exportHeader is the column header row of the exported workbook.
var exportHeader = []any{"Name", "QR Data", "Total Stock", "On Hand", "Status"}

// Export renders the catalog as an xlsx workbook: two title rows merged
// across the data columns, a blank spacer, the header row, then one row per
// product in display order.
func Export(products []model.Product) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("naming worksheet: %w", err)
	}

	rows := [][]any{
		{"Equipment Inventory"},
		{"Exported " + time.Now().Format("2006-01-02")},
		{},
		exportHeader,
	}
	for _, p := range products {
		rows = append(rows, []any{p.Name, p.Barcode, p.TotalQuantity, p.AvailableQuantity, p.Status})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("computing cell name: %w", err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	// Title rows span the data columns.
	if err := f.MergeCell(exportSheet, "A1", "E1"); err != nil {
		return nil, fmt.Errorf("merging title row: %w", err)
	}
	if err := f.MergeCell(exportSheet, "A2", "E2"); err != nil {
		return nil, fmt.Errorf("merging subtitle row: %w", err)
	}

	widths := []float64{35, 20, 12, 22, 10}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("computing column name: %w", err)
		}
		if err := f.SetColWidth(exportSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("setting column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf, nil
}
