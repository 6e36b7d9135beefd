package model

import "github.com/shopspring/decimal"

// Budget is a household spending ceiling for one YYYY-MM period. At most one
// budget exists per (household, period).
type Budget struct {
	ID          string          `json:"id"`
	HouseholdID string          `json:"household_id"`
	Period      string          `json:"period"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
}
