package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
	"github.com/shopspring/decimal"
)

func createPendingBill(t *testing.T, env *testEnv) *model.Bill {
	t.Helper()
	category := "Utilities"
	bill, err := env.engine.CreateBill(env.actor, store.CreateBillParams{
		Name:     "Electric",
		Amount:   decimal.RequireFromString("80.00"),
		DueDate:  time.Now().AddDate(0, 0, 7),
		Status:   model.BillPending,
		Category: &category,
	})
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	return bill
}

func TestSettleBill(t *testing.T) {
	env := setupEngine(t)
	bill := createPendingBill(t, env)
	before := env.auditCount(t)

	result, err := env.engine.SettleBill(env.actor, bill.ID, decimal.RequireFromString("75.00"))
	if err != nil {
		t.Fatalf("settle: %v", err)
	}

	if result.Bill.Status != model.BillPaid {
		t.Errorf("status = %q, want paid", result.Bill.Status)
	}
	if !result.Payment.Amount.Equal(decimal.RequireFromString("75.00")) {
		t.Errorf("payment amount = %s, want 75.00", result.Payment.Amount)
	}

	// The derived expense carries the payment amount, the bill's category,
	// and a link back to the bill.
	if !result.Expense.Amount.Equal(decimal.RequireFromString("75.00")) {
		t.Errorf("expense amount = %s, want payment amount 75.00", result.Expense.Amount)
	}
	if result.Expense.Source != model.ExpenseSourceBill {
		t.Errorf("expense source = %q, want bill", result.Expense.Source)
	}
	if result.Expense.Category == nil || *result.Expense.Category != "Utilities" {
		t.Errorf("expense category = %v, want Utilities", result.Expense.Category)
	}
	if result.Expense.LinkedEntityID == nil || *result.Expense.LinkedEntityID != bill.ID {
		t.Errorf("expense link = %v, want bill id", result.Expense.LinkedEntityID)
	}
	if result.Expense.Description == nil || *result.Expense.Description != "Bill payment for Electric" {
		t.Errorf("expense description = %v", result.Expense.Description)
	}

	// Payment insert + bill status update + expense insert = 3 audit rows.
	if got := env.auditCount(t) - before; got != 3 {
		t.Errorf("audit rows = %d, want 3", got)
	}
}

func TestSettleBillNotPending(t *testing.T) {
	env := setupEngine(t)
	bill := createPendingBill(t, env)

	if _, err := env.engine.SettleBill(env.actor, bill.ID, decimal.RequireFromString("80.00")); err != nil {
		t.Fatalf("first settle: %v", err)
	}

	before := env.auditCount(t)
	_, err := env.engine.SettleBill(env.actor, bill.ID, decimal.RequireFromString("80.00"))
	var sErr *InvalidStateError
	if !errors.As(err, &sErr) {
		t.Fatalf("err = %v, want InvalidStateError", err)
	}
	if got := env.auditCount(t); got != before {
		t.Errorf("audit rows = %d, want %d (failed settle writes nothing)", got, before)
	}

	payments, err := env.bills.ListPayments(bill.ID)
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 1 {
		t.Errorf("payments = %d, want 1", len(payments))
	}
}

func TestSettleBillNotFound(t *testing.T) {
	env := setupEngine(t)

	_, err := env.engine.SettleBill(env.actor, "missing", decimal.RequireFromString("1.00"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSettleBillAmountValidation(t *testing.T) {
	env := setupEngine(t)
	bill := createPendingBill(t, env)

	var vErr *ValidationError
	_, err := env.engine.SettleBill(env.actor, bill.ID, decimal.Zero)
	if !errors.As(err, &vErr) {
		t.Errorf("zero amount: err = %v, want ValidationError", err)
	}
	_, err = env.engine.SettleBill(env.actor, bill.ID, decimal.RequireFromString("-5.00"))
	if !errors.As(err, &vErr) {
		t.Errorf("negative amount: err = %v, want ValidationError", err)
	}
}
