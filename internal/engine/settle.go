package engine

import (
	"time"

	"github.com/dukerupert/hearth/internal/auth"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/shopspring/decimal"
)

type SettlementResult struct {
	Bill    *model.Bill        `json:"bill"`
	Payment *model.BillPayment `json:"payment"`
	Expense *model.Expense     `json:"expense"`
}

// SettleBill pays a pending bill: it inserts the payment, flips the bill to
// paid, and derives the expense record, auditing all three writes in one
// transaction.
//
// The settlement amount is the caller's, by policy: it is not checked against
// the bill's amount, so partial and over-payments are representable even
// though any settlement marks the bill fully paid.
func (e *Engine) SettleBill(actor auth.Actor, billID string, amount decimal.Decimal) (*SettlementResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if billID == "" {
		return nil, &ValidationError{Field: "bill_id", Reason: "is required"}
	}
	if !amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Reason: "must be positive"}
	}

	var result SettlementResult
	err := e.inTx(func(s *txStores) error {
		bill, err := s.bills.GetByID(actor.HouseholdID, billID)
		if err != nil {
			return err
		}
		if bill == nil {
			return ErrNotFound
		}
		if bill.Status != model.BillPending {
			return &InvalidStateError{Entity: "bill", State: bill.Status}
		}

		payment, err := s.bills.CreatePayment(bill.ID, amount, actor.UserID, time.Now().UTC(), nil, nil)
		if err != nil {
			return err
		}
		if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "bill_payments", payment.ID, model.Created(payment)); err != nil {
			return err
		}

		paid, err := s.bills.SetStatus(actor.HouseholdID, bill.ID, model.BillPaid)
		if err != nil {
			return err
		}
		if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "bills", paid.ID, model.Updated(bill, paid)); err != nil {
			return err
		}

		d := expenseFromSettlement(paid, payment)
		expense, err := s.expenses.Create(actor.HouseholdID, d.Date, d.Amount, d.Category, d.Description, d.Source, d.LinkedEntityID)
		if err != nil {
			return err
		}
		if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "expenses", expense.ID, model.Created(expense)); err != nil {
			return err
		}

		result = SettlementResult{Bill: paid, Payment: payment, Expense: expense}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
