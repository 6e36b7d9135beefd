package engine

import (
	"time"

	"github.com/dukerupert/hearth/internal/auth"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/shopspring/decimal"
)

type PurchaseLineInput struct {
	ItemID    string          `json:"item_id"`
	Quantity  int64           `json:"quantity"`
	Unit      *string         `json:"unit"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type PurchaseInput struct {
	Vendor       *string             `json:"vendor"`
	PurchaseDate time.Time           `json:"purchase_date"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Notes        *string             `json:"notes"`
	Lines        []PurchaseLineInput `json:"items"`
}

type PurchaseResult struct {
	Purchase  *model.Purchase         `json:"purchase"`
	Lines     []model.PurchaseLine    `json:"lines"`
	Inventory []model.InventoryRecord `json:"inventory"`
}

// IntakePurchase records one buying event: the purchase header, a line per
// supplied item, and an inventory merge per line, all in one transaction with
// one audit entry per written row.
//
// A purchase with zero lines is accepted: the header alone is a valid record
// of spend. The header total is the user's figure and is not checked against
// the line totals.
func (e *Engine) IntakePurchase(actor auth.Actor, in PurchaseInput) (*PurchaseResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if in.TotalAmount.IsNegative() {
		return nil, &ValidationError{Field: "total_amount", Reason: "must not be negative"}
	}
	for _, line := range in.Lines {
		if line.ItemID == "" {
			return nil, &ValidationError{Field: "item_id", Reason: "is required"}
		}
		if line.Quantity <= 0 {
			return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
		}
	}

	purchaseDate := in.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = time.Now().UTC()
	}

	var result PurchaseResult
	err := e.inTx(func(s *txStores) error {
		purchase, err := s.purchases.Create(actor.HouseholdID, in.Vendor, purchaseDate, in.TotalAmount, actor.UserID, in.Notes, actor.UserID)
		if err != nil {
			return err
		}
		if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "purchases", purchase.ID, model.Created(purchase)); err != nil {
			return err
		}
		result.Purchase = purchase

		for _, li := range in.Lines {
			item, err := s.items.GetByID(actor.HouseholdID, li.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return ErrNotFound
			}

			line, err := s.purchases.CreateLine(purchase.ID, item.ID, li.Quantity, li.Unit, li.LineTotal)
			if err != nil {
				return err
			}
			if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "purchase_items", line.ID, model.Created(line)); err != nil {
				return err
			}
			result.Lines = append(result.Lines, *line)

			rec, err := reconcileInventory(s, actor, item.ID, li.Quantity, li.Unit)
			if err != nil {
				return err
			}
			result.Inventory = append(result.Inventory, *rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
