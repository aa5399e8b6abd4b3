package model

// Officer represents a recipient of issued equipment, keyed externally by
// badge number. Officers are upserted by badge number on every issue and are
// never touched by spreadsheet reconciliation.
type Officer struct {
	ID          int64  `json:"id"`
	BadgeNumber string `json:"badgeNumber"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}
