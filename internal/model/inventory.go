package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord is the running stock of one item. There is at most one
// record per (household, item); repeated purchases merge into it.
type InventoryRecord struct {
	ID           string              `json:"id"`
	HouseholdID  string              `json:"household_id"`
	ItemID       string              `json:"item_id"`
	Quantity     int64               `json:"quantity"`
	Unit         *string             `json:"unit"`
	Storage      *string             `json:"storage"`
	PurchaseDate *time.Time          `json:"purchase_date"`
	ExpiryDate   *time.Time          `json:"expiry_date"`
	CostTotal    decimal.NullDecimal `json:"cost_total"`
	Notes        *string             `json:"notes"`
	CreatedBy    string              `json:"created_by"`
	UpdatedBy    *string             `json:"updated_by"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

const (
	StoragePantry  = "pantry"
	StorageFridge  = "fridge"
	StorageFreezer = "freezer"
	StorageOther   = "other"
)
