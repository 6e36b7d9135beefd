package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BillPending = "pending"
	BillPaid    = "paid"
	BillOverdue = "overdue"
)

type Bill struct {
	ID            string          `json:"id"`
	HouseholdID   string          `json:"household_id"`
	Name          string          `json:"name"`
	Vendor        *string         `json:"vendor"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	RecurringRule *string         `json:"recurring_rule"`
	Category      *string         `json:"category"`
	Notes         *string         `json:"notes"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

type BillPayment struct {
	ID           string          `json:"id"`
	BillID       string          `json:"bill_id"`
	PaidOn       time.Time       `json:"paid_on"`
	Amount       decimal.Decimal `json:"amount"`
	PaidByUserID string          `json:"paid_by_user_id"`
	Method       *string         `json:"method"`
	Notes        *string         `json:"notes"`
}
