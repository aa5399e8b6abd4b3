// Package sheet rebuilds the product catalog from an externally edited
// spreadsheet and renders the catalog back out as a workbook.
//
// The spreadsheet is hand-maintained, so parsing is heuristic: a title and
// header band is skipped, junk rows (transaction-log sentences, numeric-only
// cells) are dropped silently, and missing barcodes are synthesized from the
// product name.
package sheet

import (
	"strconv"
	"strings"

	"github.com/mkovac/armory/internal/model"
)

// Grid positions in the maintained sheet (0-indexed).
const (
	colSerial    = 0
	colBarcode   = 1
	colName      = 2
	colAvailable = 7
	colTotal     = 8
	dataStartRow = 2
)

// denylist marks rows that are transaction-log sentences rather than
// products. Matched against the upper-cased name.
var denylist = []string{
	"EQUIPMENT TRANSACTION",
	"HANDOVER",
	"SENT TO",
	"RETURNED TO",
	"RECEIVED FROM",
}

// ParseProducts extracts the product set from a raw row grid. Rejected rows
// are skipped without error. Duplicates (by derived barcode) keep the first
// occurrence; insertion order becomes the display order.
func ParseProducts(rows [][]string) []model.Product {
	seen := make(map[string]bool)
	var products []model.Product

	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]

		serial := cell(row, colSerial)
		name := cell(row, colName)
		if name == "" {
			name = cell(row, colBarcode)
		}

		if name == "" || len(name) < 3 || isNumeric(name) {
			continue
		}
		if serial == "" {
			continue
		}
		if _, err := strconv.Atoi(serial); err != nil {
			continue
		}
		if isDenylisted(name) {
			continue
		}

		total := firstNumber(cell(row, colTotal))
		available := total
		if n := firstNumber(cell(row, colAvailable)); cell(row, colAvailable) != "" && n != 0 {
			available = n
		}

		barcode := cell(row, colBarcode)
		if barcode == "" || barcode == name || isNumeric(barcode) {
			barcode = synthesizeBarcode(name, serial)
		}

		if seen[barcode] {
			continue
		}
		seen[barcode] = true

		products = append(products, model.Product{
			Name:              name,
			Barcode:           barcode,
			TotalQuantity:     total,
			AvailableQuantity: available,
			Status:            model.ProductStatusActive,
			OrderIndex:        len(products),
		})
	}

	return products
}

// cell returns the trimmed value at index i, or "" when the row is short.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isDenylisted(name string) bool {
	upper := strings.ToUpper(name)
	for _, phrase := range denylist {
		if strings.Contains(upper, phrase) {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// firstNumber parses the first run of digits found anywhere in the cell.
// A cell with no digits yields 0.
func firstNumber(s string) int {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(s[start:])
		return n
	}
	return 0
}

// synthesizeBarcode derives a barcode for rows whose barcode column is
// missing or unusable: the upper-cased name with every character outside
// [A-Z0-9] replaced by '-', suffixed with the serial number for uniqueness.
func synthesizeBarcode(name, serial string) string {
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, strings.ToUpper(name))
	return mapped + "-" + serial
}
