package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkovac/armory/internal/model"
)

const productCols = `id, name, barcode, total_quantity, available_quantity, image_url, status, order_index`

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	p := &model.Product{}
	var imageURL sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Barcode, &p.TotalQuantity, &p.AvailableQuantity,
		&imageURL, &p.Status, &p.OrderIndex)
	if err != nil {
		return nil, err
	}
	p.ImageURL = imageURL.String
	return p, nil
}

// CreateProduct creates a new product. A duplicate barcode fails with the
// database's uniqueness error, surfaced as a generic validation failure.
func CreateProduct(ctx context.Context, db *sql.DB, p *model.Product) (*model.Product, error) {
	if p.Status == "" {
		p.Status = model.ProductStatusActive
	}
	result, err := db.ExecContext(ctx,
		`INSERT INTO products (name, barcode, total_quantity, available_quantity, image_url, status, order_index)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Barcode, p.TotalQuantity, p.AvailableQuantity, nullable(p.ImageURL), p.Status, p.OrderIndex,
	)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting product id: %w", err)
	}

	return GetProduct(ctx, db, id)
}

// GetProduct returns a product by ID.
func GetProduct(ctx context.Context, db *sql.DB, id int64) (*model.Product, error) {
	p, err := scanProduct(db.QueryRowContext(ctx,
		`SELECT `+productCols+` FROM products WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	return p, nil
}

// GetProductByBarcode returns a product by its barcode, the stable external key.
func GetProductByBarcode(ctx context.Context, db *sql.DB, barcode string) (*model.Product, error) {
	p, err := scanProduct(db.QueryRowContext(ctx,
		`SELECT `+productCols+` FROM products WHERE barcode = ?`, barcode,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product by barcode: %w", err)
	}
	return p, nil
}

// ListProducts returns all products in display order.
func ListProducts(ctx context.Context, db *sql.DB) ([]model.Product, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+productCols+` FROM products ORDER BY order_index ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// UpdateProduct overwrites a product's fields. Available quantity is stored
// exactly as given: if the caller changes the total, it is the caller's job
// to pass a correspondingly adjusted available quantity.
func UpdateProduct(ctx context.Context, db *sql.DB, id int64, p *model.Product) (*model.Product, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE products SET name = ?, barcode = ?, total_quantity = ?, available_quantity = ?,
		        image_url = ?, status = ?
		 WHERE id = ?`,
		p.Name, p.Barcode, p.TotalQuantity, p.AvailableQuantity, nullable(p.ImageURL), p.Status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return GetProduct(ctx, db, id)
}

// DeleteProduct deletes a product unconditionally. Transactions referencing
// it are left in place; listings skip entries whose product is gone.
func DeleteProduct(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// ReplaceProducts atomically replaces the whole catalog with the given set,
// assigning sequential display order. Either every row is replaced or none
// is. Returns the number of products inserted.
func ReplaceProducts(ctx context.Context, db *sql.DB, products []model.Product) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return 0, fmt.Errorf("clearing products: %w", err)
	}

	for i, p := range products {
		status := p.Status
		if status == "" {
			status = model.ProductStatusActive
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (name, barcode, total_quantity, available_quantity, status, order_index)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.Name, p.Barcode, p.TotalQuantity, p.AvailableQuantity, status, i,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting product %q: %w", p.Barcode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing catalog replace: %w", err)
	}
	return len(products), nil
}

// nullable converts an empty string to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
