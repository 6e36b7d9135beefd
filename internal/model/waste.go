package model

import "time"

const (
	WasteExpired  = "expired"
	WasteSpoiled  = "spoiled"
	WasteLeftover = "leftover"
	WasteOther    = "other"
)

// ValidWasteReason reports whether reason is one of the known waste reasons.
func ValidWasteReason(reason string) bool {
	switch reason {
	case WasteExpired, WasteSpoiled, WasteLeftover, WasteOther:
		return true
	}
	return false
}

type WasteEvent struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"household_id"`
	InventoryID string    `json:"inventory_id"`
	ItemID      string    `json:"item_id"`
	Quantity    int64     `json:"quantity"`
	Unit        *string   `json:"unit"`
	Reason      string    `json:"reason"`
	EventDate   time.Time `json:"event_date"`
}
