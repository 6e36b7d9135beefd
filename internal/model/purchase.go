package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is one buying event. TotalAmount is whatever the user entered for
// the receipt; it is not required to equal the sum of line totals.
type Purchase struct {
	ID           string          `json:"id"`
	HouseholdID  string          `json:"household_id"`
	Vendor       *string         `json:"vendor"`
	PurchaseDate time.Time       `json:"purchase_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidByUserID string          `json:"paid_by_user_id"`
	Notes        *string         `json:"notes"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

type PurchaseLine struct {
	ID         string          `json:"id"`
	PurchaseID string          `json:"purchase_id"`
	ItemID     string          `json:"item_id"`
	Quantity   int64           `json:"quantity"`
	Unit       *string         `json:"unit"`
	LineTotal  decimal.Decimal `json:"line_total"`
}
