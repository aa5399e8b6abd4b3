package model

// Product represents one equipment type tracked by quantity.
// Invariant after any committed operation: 0 <= AvailableQuantity <= TotalQuantity.
type Product struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Barcode           string `json:"barcode"`
	TotalQuantity     int    `json:"totalQuantity"`
	AvailableQuantity int    `json:"availableQuantity"`
	ImageURL          string `json:"imageUrl,omitempty"`
	Status            string `json:"status"`
	OrderIndex        int    `json:"orderIndex"`
}

// Product statuses.
const (
	ProductStatusActive   = "ACTIVE"
	ProductStatusDisabled = "DISABLED"
)
