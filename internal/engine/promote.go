package engine

import (
	"time"

	"github.com/dukerupert/hearth/internal/auth"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/shopspring/decimal"
)

const promotionVendor = "Shopping List Purchase"

type PromotionResult struct {
	Purchase  *model.Purchase           `json:"purchase"`
	Lines     []model.PurchaseLine      `json:"lines"`
	Inventory []model.InventoryRecord   `json:"inventory"`
	Entries   []model.ShoppingListEntry `json:"entries"`
}

// PromoteShoppingList turns pending shopping-list entries into a purchase:
// one batch header, then per entry a purchase line, an inventory merge of +1,
// and the purchased-at stamp. Entries are processed in the order given; each
// entry's sub-steps run sequentially and the whole batch is one transaction.
//
// Entry names are resolved against the item catalog, creating missing items
// on the way. The batch total starts at zero rather than a sum of line
// totals: promoted lines carry no prices.
func (e *Engine) PromoteShoppingList(actor auth.Actor, entryIDs []string) (*PromotionResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var result PromotionResult
	err := e.inTx(func(s *txStores) error {
		entries, err := s.shopping.ListPendingByIDs(actor.HouseholdID, entryIDs)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return ErrNoItemsSelected
		}

		vendor := promotionVendor
		purchase, err := s.purchases.Create(actor.HouseholdID, &vendor, time.Now().UTC(), decimal.Zero, actor.UserID, nil, actor.UserID)
		if err != nil {
			return err
		}
		if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "purchases", purchase.ID, model.Created(purchase)); err != nil {
			return err
		}
		result.Purchase = purchase

		for _, entry := range entries {
			item, err := s.items.GetByName(actor.HouseholdID, entry.ItemName)
			if err != nil {
				return err
			}
			if item == nil {
				item, err = s.items.Create(actor.HouseholdID, entry.ItemName, nil, false)
				if err != nil {
					return err
				}
				if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "items", item.ID, model.Created(item)); err != nil {
					return err
				}
			}

			d := promotionLine(item)
			line, err := s.purchases.CreateLine(purchase.ID, item.ID, d.Quantity, d.Unit, d.LineTotal)
			if err != nil {
				return err
			}
			if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "purchase_items", line.ID, model.Created(line)); err != nil {
				return err
			}
			result.Lines = append(result.Lines, *line)

			rec, err := reconcileInventory(s, actor, item.ID, d.Quantity, d.Unit)
			if err != nil {
				return err
			}
			result.Inventory = append(result.Inventory, *rec)

			marked, err := s.shopping.MarkPurchased(actor.HouseholdID, entry.ID, time.Now().UTC())
			if err != nil {
				return err
			}
			if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "shopping_list", marked.ID, model.Updated(&entry, marked)); err != nil {
				return err
			}
			result.Entries = append(result.Entries, *marked)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
