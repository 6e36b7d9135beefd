package model

import "time"

// ShoppingListEntry is a pending-to-purchase item name. PurchasedAt nil means
// pending; promotion stamps it and is terminal.
type ShoppingListEntry struct {
	ID            string     `json:"id"`
	HouseholdID   string     `json:"household_id"`
	ItemName      string     `json:"item_name"`
	AddedByUserID string     `json:"added_by_user_id"`
	CreatedAt     time.Time  `json:"created_at"`
	PurchasedAt   *time.Time `json:"purchased_at"`
}
