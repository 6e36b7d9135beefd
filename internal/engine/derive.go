package engine

import (
	"time"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/shopspring/decimal"
)

// Derivation rules: pure mappings from a committed record to the dependent
// record the same transaction must insert.

// promotionUnit is the line unit used when a promoted item has no default.
const promotionUnit = "unit"

type derivedExpense struct {
	Date           time.Time
	Amount         decimal.Decimal
	Category       *string
	Description    *string
	Source         string
	LinkedEntityID *string
}

// expenseFromSettlement maps a bill and its new payment to the expense the
// settlement produces. The amount is the payment's, not the bill's; the link
// points back at the bill.
func expenseFromSettlement(bill *model.Bill, payment *model.BillPayment) derivedExpense {
	description := "Bill payment for " + bill.Name
	billID := bill.ID
	return derivedExpense{
		Date:           payment.PaidOn,
		Amount:         payment.Amount,
		Category:       bill.Category,
		Description:    &description,
		Source:         model.ExpenseSourceBill,
		LinkedEntityID: &billID,
	}
}

type derivedLine struct {
	Quantity  int64
	Unit      *string
	LineTotal decimal.Decimal
}

// promotionLine maps a resolved catalog item to the purchase line a
// shopping-list promotion inserts for it: quantity one, the item's default
// unit when it has one, and a zero line total (promoted entries carry no
// prices).
func promotionLine(item *model.Item) derivedLine {
	unit := promotionUnit
	if item.DefaultUnit != nil {
		unit = *item.DefaultUnit
	}
	return derivedLine{
		Quantity:  1,
		Unit:      &unit,
		LineTotal: decimal.Zero,
	}
}
