package model

import "time"

// Item is a canonical catalog entry. Inventory records, purchase lines, and
// waste events all reference it; an item stays alive while anything does.
type Item struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"household_id"`
	Name        string    `json:"name"`
	DefaultUnit *string   `json:"default_unit"`
	Perishable  bool      `json:"perishable"`
	CreatedAt   time.Time `json:"created_at"`
}
