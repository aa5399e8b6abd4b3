package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkovac/armory/internal/model"
)

const officerCols = `id, badge_number, name, department, phone, notes, image_url`

func scanOfficer(row interface{ Scan(...any) error }) (*model.Officer, error) {
	o := &model.Officer{}
	var imageURL sql.NullString
	err := row.Scan(&o.ID, &o.BadgeNumber, &o.Name, &o.Department, &o.Phone, &o.Notes, &imageURL)
	if err != nil {
		return nil, err
	}
	o.ImageURL = imageURL.String
	return o, nil
}

// CreateOfficer creates a new officer. Badge numbers are unique; duplicates
// fail with the database's uniqueness error.
func CreateOfficer(ctx context.Context, db *sql.DB, o *model.Officer) (*model.Officer, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO officers (badge_number, name, department, phone, notes, image_url)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		o.BadgeNumber, o.Name, o.Department, o.Phone, o.Notes, nullable(o.ImageURL),
	)
	if err != nil {
		return nil, fmt.Errorf("creating officer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting officer id: %w", err)
	}

	return GetOfficer(ctx, db, id)
}

// GetOfficer returns an officer by ID.
func GetOfficer(ctx context.Context, db *sql.DB, id int64) (*model.Officer, error) {
	o, err := scanOfficer(db.QueryRowContext(ctx,
		`SELECT `+officerCols+` FROM officers WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting officer: %w", err)
	}
	return o, nil
}

// GetOfficerByBadge returns an officer by badge number.
func GetOfficerByBadge(ctx context.Context, db *sql.DB, badge string) (*model.Officer, error) {
	o, err := scanOfficer(db.QueryRowContext(ctx,
		`SELECT `+officerCols+` FROM officers WHERE badge_number = ?`, badge,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting officer by badge: %w", err)
	}
	return o, nil
}

// ListOfficers returns all officers.
func ListOfficers(ctx context.Context, db *sql.DB) ([]model.Officer, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+officerCols+` FROM officers ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing officers: %w", err)
	}
	defer rows.Close()

	var officers []model.Officer
	for rows.Next() {
		o, err := scanOfficer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning officer: %w", err)
		}
		officers = append(officers, *o)
	}
	return officers, rows.Err()
}

// UpdateOfficer overwrites an officer's fields.
func UpdateOfficer(ctx context.Context, db *sql.DB, id int64, o *model.Officer) (*model.Officer, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE officers SET badge_number = ?, name = ?, department = ?, phone = ?, notes = ?, image_url = ?
		 WHERE id = ?`,
		o.BadgeNumber, o.Name, o.Department, o.Phone, o.Notes, nullable(o.ImageURL), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating officer: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("officer %d: %w", id, ErrNotFound)
	}
	return GetOfficer(ctx, db, id)
}

// DeleteOfficer deletes an officer.
func DeleteOfficer(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM officers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting officer: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("officer %d: %w", id, ErrNotFound)
	}
	return nil
}

// upsertOfficerByBadge inserts an officer keyed by badge number, or overwrites
// the contact fields of the existing record. Runs inside the issue transaction.
// Returns the officer's id.
func upsertOfficerByBadge(ctx context.Context, tx *sql.Tx, badge, name, department, phone, notes string) (int64, error) {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO officers (badge_number, name, department, phone, notes) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (badge_number) DO UPDATE SET
		     name = excluded.name, department = excluded.department,
		     phone = excluded.phone, notes = excluded.notes`,
		badge, name, department, phone, notes,
	)
	if err != nil {
		return 0, fmt.Errorf("upserting officer: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM officers WHERE badge_number = ?`, badge,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("reading upserted officer: %w", err)
	}
	return id, nil
}
