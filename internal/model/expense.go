package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ExpenseSourcePurchase = "purchase"
	ExpenseSourceBill     = "bill"
	ExpenseSourceOther    = "other"
)

// Expense is a derived financial record. Expenses with source "bill" are only
// ever produced by bill settlement, never entered directly.
type Expense struct {
	ID             string          `json:"id"`
	HouseholdID    string          `json:"household_id"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	Category       *string         `json:"category"`
	Description    *string         `json:"description"`
	Source         string          `json:"source"`
	LinkedEntityID *string         `json:"linked_entity_id"`
}
