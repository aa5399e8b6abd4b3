package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkovac/armory/internal/model"
)

// IssueRequest carries everything needed to issue equipment. The officer
// fields are upserted by badge number as part of the issue.
type IssueRequest struct {
	Barcode     string `json:"barcode"`
	BadgeNumber string `json:"badgeNumber"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
	Quantity    int    `json:"quantity"`
	Purpose     string `json:"purpose"`
}

// Issue allocates stock of a product to an officer in a single transaction:
// the officer is upserted by badge number, the product's available quantity
// is decremented, and an ISSUED transaction is recorded. On any failure all
// three stores are left untouched.
func Issue(ctx context.Context, db *sql.DB, req IssueRequest) (*model.Transaction, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if req.BadgeNumber == "" {
		return nil, fmt.Errorf("badge number required")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var productID int64
	var available int
	err = tx.QueryRowContext(ctx,
		`SELECT id, available_quantity FROM products WHERE barcode = ?`, req.Barcode,
	).Scan(&productID, &available)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product with barcode %q: %w", req.Barcode, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up product: %w", err)
	}

	if available < req.Quantity {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientStock, available, req.Quantity)
	}

	officerID, err := upsertOfficerByBadge(ctx, tx, req.BadgeNumber, req.Name, req.Department, req.Phone, req.Notes)
	if err != nil {
		return nil, err
	}

	// Guarded decrement: the WHERE clause re-checks availability so the
	// statement either applies fully or not at all under contention.
	result, err := tx.ExecContext(ctx,
		`UPDATE products SET available_quantity = available_quantity - ?
		 WHERE id = ? AND available_quantity >= ?`,
		req.Quantity, productID, req.Quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("decrementing stock: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientStock, available, req.Quantity)
	}

	inserted, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (product_id, officer_id, quantity, purpose, status)
		 VALUES (?, ?, ?, ?, ?)`,
		productID, officerID, req.Quantity, req.Purpose, model.TxStatusIssued,
	)
	if err != nil {
		return nil, fmt.Errorf("recording transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing issue: %w", err)
	}

	txnID, _ := inserted.LastInsertId()
	return GetTransaction(ctx, db, txnID)
}

// Return gives back previously issued quantity. The product's available
// quantity and the transaction's returned quantity move together in one
// transaction, and the status is recomputed from the new balance. Every
// return event overwrites returned_at; only the latest timestamp is kept.
// Returns the transaction's new status.
func Return(ctx context.Context, db *sql.DB, id int64, quantity int) (string, error) {
	if quantity < 1 {
		return "", fmt.Errorf("quantity must be at least 1")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var productID int64
	var issued, returned int
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT product_id, quantity, returned_quantity, status FROM transactions WHERE id = ?`, id,
	).Scan(&productID, &issued, &returned, &status)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("looking up transaction: %w", err)
	}

	if status == model.TxStatusReturned {
		return "", ErrAlreadyReturned
	}
	remaining := issued - returned
	if quantity > remaining {
		return "", fmt.Errorf("%w (%d)", ErrExceedsRemaining, remaining)
	}

	// The product may have been deleted or replaced by reconciliation since
	// the issue; the stock increment is then a no-op on purpose.
	_, err = tx.ExecContext(ctx,
		`UPDATE products SET available_quantity = available_quantity + ? WHERE id = ?`,
		quantity, productID,
	)
	if err != nil {
		return "", fmt.Errorf("incrementing stock: %w", err)
	}

	newReturned := returned + quantity
	newStatus := model.TxStatus(issued, newReturned)
	_, err = tx.ExecContext(ctx,
		`UPDATE transactions SET returned_quantity = ?, status = ?, returned_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		newReturned, newStatus, id,
	)
	if err != nil {
		return "", fmt.Errorf("updating transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing return: %w", err)
	}
	return newStatus, nil
}

// ClearTransactions deletes all transaction records. Stock counts are left
// exactly as they are: the history is an audit trail, and discarding it must
// not re-run or undo any of the movements it records.
func ClearTransactions(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}
	return nil
}

const txnQuery = `
SELECT t.id, t.product_id, t.officer_id, t.quantity, t.returned_quantity,
       t.purpose, t.status, t.issued_at, t.returned_at,
       p.id, p.name, p.barcode, p.total_quantity, p.available_quantity, p.image_url, p.status, p.order_index,
       o.id, o.badge_number, o.name, o.department, o.phone, o.notes, o.image_url
FROM transactions t
JOIN products p ON p.id = t.product_id
JOIN officers o ON o.id = t.officer_id`

func scanTransaction(row interface{ Scan(...any) error }) (*model.Transaction, error) {
	t := &model.Transaction{Product: &model.Product{}, Officer: &model.Officer{}}
	var productImage, officerImage sql.NullString
	err := row.Scan(
		&t.ID, &t.ProductID, &t.OfficerID, &t.Quantity, &t.ReturnedQuantity,
		&t.Purpose, &t.Status, &t.IssuedAt, &t.ReturnedAt,
		&t.Product.ID, &t.Product.Name, &t.Product.Barcode, &t.Product.TotalQuantity,
		&t.Product.AvailableQuantity, &productImage, &t.Product.Status, &t.Product.OrderIndex,
		&t.Officer.ID, &t.Officer.BadgeNumber, &t.Officer.Name, &t.Officer.Department,
		&t.Officer.Phone, &t.Officer.Notes, &officerImage,
	)
	if err != nil {
		return nil, err
	}
	t.Product.ImageURL = productImage.String
	t.Officer.ImageURL = officerImage.String
	return t, nil
}

// GetTransaction returns a transaction by ID with its current product and
// officer joined in.
func GetTransaction(ctx context.Context, db *sql.DB, id int64) (*model.Transaction, error) {
	t, err := scanTransaction(db.QueryRowContext(ctx, txnQuery+` WHERE t.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}
	return t, nil
}

// ListPendingTransactions returns transactions that are not fully returned,
// newest first.
func ListPendingTransactions(ctx context.Context, db *sql.DB) ([]model.Transaction, error) {
	rows, err := db.QueryContext(ctx,
		txnQuery+` WHERE t.status != ? ORDER BY t.issued_at DESC, t.id DESC`,
		model.TxStatusReturned,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListTransactions returns all transactions, newest first. Each entry carries
// the product and officer as they are at query time, so later edits show up
// in the history.
func ListTransactions(ctx context.Context, db *sql.DB) ([]model.Transaction, error) {
	rows, err := db.QueryContext(ctx, txnQuery+` ORDER BY t.issued_at DESC, t.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var txns []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txns = append(txns, *t)
	}
	return txns, rows.Err()
}
