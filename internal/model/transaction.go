package model

import "time"

// Transaction records one issue of equipment to an officer and its return
// progress. Quantity is immutable after creation; ReturnedQuantity only grows.
type Transaction struct {
	ID               int64      `json:"id"`
	ProductID        int64      `json:"-"`
	OfficerID        int64      `json:"-"`
	Quantity         int        `json:"quantity"`
	ReturnedQuantity int        `json:"returnedQuantity"`
	Purpose          string     `json:"purpose,omitempty"`
	Status           string     `json:"status"`
	IssuedAt         time.Time  `json:"issuedAt"`
	ReturnedAt       *time.Time `json:"returnedAt,omitempty"`

	// Joined snapshots, populated by the listing queries. These reflect the
	// product and officer as they are now, not as they were at issue time.
	Product *Product `json:"product,omitempty"`
	Officer *Officer `json:"officer,omitempty"`
}

// Transaction statuses.
const (
	TxStatusIssued            = "ISSUED"
	TxStatusPartiallyReturned = "PARTIALLY_RETURNED"
	TxStatusReturned          = "RETURNED"
)

// TxStatus derives a transaction's status from its quantities.
// Status is a pure function of (quantity, returnedQuantity): zero returned
// means ISSUED, everything returned means RETURNED, anything in between is
// PARTIALLY_RETURNED.
func TxStatus(quantity, returned int) string {
	switch {
	case returned <= 0:
		return TxStatusIssued
	case returned >= quantity:
		return TxStatusReturned
	default:
		return TxStatusPartiallyReturned
	}
}
