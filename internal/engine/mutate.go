package engine

import (
	"regexp"
	"time"

	"github.com/dukerupert/hearth/internal/auth"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
	"github.com/shopspring/decimal"
)

// Simple single-table mutations. Each one captures prior state where the
// action needs it, performs the write, and appends the matching audit entry,
// all inside one transaction.

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// --- Items ---

func (e *Engine) CreateItem(actor auth.Actor, name string, defaultUnit *string, perishable bool) (*model.Item, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}

	var item *model.Item
	err := e.inTx(func(s *txStores) error {
		var err error
		item, err = s.items.Create(actor.HouseholdID, name, defaultUnit, perishable)
		if err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "items", item.ID, model.Created(item))
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (e *Engine) UpdateItem(actor auth.Actor, id, name string, defaultUnit *string, perishable bool) (*model.Item, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}

	var item *model.Item
	err := e.inTx(func(s *txStores) error {
		old, err := s.items.GetByID(actor.HouseholdID, id)
		if err != nil {
			return err
		}
		if old == nil {
			return ErrNotFound
		}

		item, err = s.items.Update(actor.HouseholdID, id, name, defaultUnit, perishable)
		if err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "items", item.ID, model.Updated(old, item))
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a catalog item. An item referenced by inventory,
// purchase lines, or waste events must stay; deleting it would orphan them.
func (e *Engine) DeleteItem(actor auth.Actor, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	return e.inTx(func(s *txStores) error {
		old, err := s.items.GetByID(actor.HouseholdID, id)
		if err != nil {
			return err
		}
		if old == nil {
			return ErrNotFound
		}

		refs, err := s.items.CountReferences(id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return &ConflictError{Invariant: "item is referenced"}
		}

		if err := s.items.Delete(actor.HouseholdID, id); err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "items", id, model.Deleted(old))
		return err
	})
}

// --- Bills ---

func validBillStatus(status string) bool {
	switch status {
	case model.BillPending, model.BillPaid, model.BillOverdue:
		return true
	}
	return false
}

func (e *Engine) CreateBill(actor auth.Actor, p store.CreateBillParams) (*model.Bill, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	if p.Status == "" {
		p.Status = model.BillPending
	}
	if !validBillStatus(p.Status) {
		return nil, &ValidationError{Field: "status", Reason: "must be pending, paid, or overdue"}
	}
	if p.DueDate.IsZero() {
		return nil, &ValidationError{Field: "due_date", Reason: "is required"}
	}

	var bill *model.Bill
	err := e.inTx(func(s *txStores) error {
		var err error
		bill, err = s.bills.Create(actor.HouseholdID, actor.UserID, p)
		if err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "bills", bill.ID, model.Created(bill))
		return err
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func (e *Engine) UpdateBill(actor auth.Actor, id string, p store.CreateBillParams) (*model.Bill, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	if !validBillStatus(p.Status) {
		return nil, &ValidationError{Field: "status", Reason: "must be pending, paid, or overdue"}
	}

	var bill *model.Bill
	err := e.inTx(func(s *txStores) error {
		old, err := s.bills.GetByID(actor.HouseholdID, id)
		if err != nil {
			return err
		}
		if old == nil {
			return ErrNotFound
		}

		bill, err = s.bills.Update(actor.HouseholdID, id, p)
		if err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "bills", bill.ID, model.Updated(old, bill))
		return err
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func (e *Engine) DeleteBill(actor auth.Actor, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	return e.inTx(func(s *txStores) error {
		old, err := s.bills.GetByID(actor.HouseholdID, id)
		if err != nil {
			return err
		}
		if old == nil {
			return ErrNotFound
		}

		payments, err := s.bills.ListPayments(id)
		if err != nil {
			return err
		}
		if len(payments) > 0 {
			return &ConflictError{Invariant: "bill has payments"}
		}

		if err := s.bills.Delete(actor.HouseholdID, id); err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "bills", id, model.Deleted(old))
		return err
	})
}

// --- Budgets ---

// CreateBudget enforces the one-budget-per-period invariant itself rather
// than leaning on the schema: an occupied (household, period) pair is a
// ConflictError, never a silent overwrite.
func (e *Engine) CreateBudget(actor auth.Actor, period string, limitAmount decimal.Decimal) (*model.Budget, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !periodPattern.MatchString(period) {
		return nil, &ValidationError{Field: "period", Reason: "must be YYYY-MM"}
	}
	if !limitAmount.IsPositive() {
		return nil, &ValidationError{Field: "limit_amount", Reason: "must be positive"}
	}

	var budget *model.Budget
	err := e.inTx(func(s *txStores) error {
		existing, err := s.budgets.GetByPeriod(actor.HouseholdID, period)
		if err != nil {
			return err
		}
		if existing != nil {
			return &ConflictError{Invariant: "budget period " + period}
		}

		budget, err = s.budgets.Create(actor.HouseholdID, period, limitAmount)
		if err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "budgets", budget.ID, model.Created(budget))
		return err
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

func (e *Engine) UpdateBudget(actor auth.Actor, id, period string, limitAmount decimal.Decimal) (*model.Budget, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !periodPattern.MatchString(period) {
		return nil, &ValidationError{Field: "period", Reason: "must be YYYY-MM"}
	}
	if !limitAmount.IsPositive() {
		return nil, &ValidationError{Field: "limit_amount", Reason: "must be positive"}
	}

	var budget *model.Budget
	err := e.inTx(func(s *txStores) error {
		old, err := s.budgets.GetByID(actor.HouseholdID, id)
		if err != nil {
			return err
		}
		if old == nil {
			return ErrNotFound
		}

		occupant, err := s.budgets.GetByPeriod(actor.HouseholdID, period)
		if err != nil {
			return err
		}
		if occupant != nil && occupant.ID != id {
			return &ConflictError{Invariant: "budget period " + period}
		}

		budget, err = s.budgets.Update(actor.HouseholdID, id, period, limitAmount)
		if err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "budgets", budget.ID, model.Updated(old, budget))
		return err
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

func (e *Engine) DeleteBudget(actor auth.Actor, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	return e.inTx(func(s *txStores) error {
		old, err := s.budgets.GetByID(actor.HouseholdID, id)
		if err != nil {
			return err
		}
		if old == nil {
			return ErrNotFound
		}

		if err := s.budgets.Delete(actor.HouseholdID, id); err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "budgets", id, model.Deleted(old))
		return err
	})
}

// --- Inventory ---

func (e *Engine) CreateInventory(actor auth.Actor, p store.CreateInventoryParams) (*model.InventoryRecord, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if p.ItemID == "" {
		return nil, &ValidationError{Field: "item_id", Reason: "is required"}
	}
	if p.Quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}

	var rec *model.InventoryRecord
	err := e.inTx(func(s *txStores) error {
		item, err := s.items.GetByID(actor.HouseholdID, p.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrNotFound
		}

		existing, err := s.inventory.GetByItem(actor.HouseholdID, p.ItemID)
		if err != nil {
			return err
		}
		if existing != nil {
			return &ConflictError{Invariant: "inventory record for item"}
		}

		rec, err = s.inventory.Create(actor.HouseholdID, actor.UserID, p)
		if err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "inventory", rec.ID, model.Created(rec))
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (e *Engine) UpdateInventory(actor auth.Actor, id string, p store.CreateInventoryParams) (*model.InventoryRecord, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if p.Quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}

	var rec *model.InventoryRecord
	err := e.inTx(func(s *txStores) error {
		old, err := s.inventory.GetByID(actor.HouseholdID, id)
		if err != nil {
			return err
		}
		if old == nil {
			return ErrNotFound
		}

		rec, err = s.inventory.Update(actor.HouseholdID, id, p, actor.UserID)
		if err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "inventory", rec.ID, model.Updated(old, rec))
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (e *Engine) DeleteInventory(actor auth.Actor, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	return e.inTx(func(s *txStores) error {
		old, err := s.inventory.GetByID(actor.HouseholdID, id)
		if err != nil {
			return err
		}
		if old == nil {
			return ErrNotFound
		}

		refs, err := s.waste.CountByInventory(id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return &ConflictError{Invariant: "inventory record has waste events"}
		}

		if err := s.inventory.Delete(actor.HouseholdID, id); err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "inventory", id, model.Deleted(old))
		return err
	})
}

// --- Shopping list ---

func (e *Engine) AddShoppingEntry(actor auth.Actor, itemName string) (*model.ShoppingListEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if itemName == "" {
		return nil, &ValidationError{Field: "item_name", Reason: "is required"}
	}

	var entry *model.ShoppingListEntry
	err := e.inTx(func(s *txStores) error {
		var err error
		entry, err = s.shopping.Create(actor.HouseholdID, itemName, actor.UserID)
		if err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "shopping_list", entry.ID, model.Created(entry))
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// MarkShoppingEntryPurchased stamps a single entry without running the full
// promotion flow. Promotion is terminal: a purchased entry cannot be stamped
// again.
func (e *Engine) MarkShoppingEntryPurchased(actor auth.Actor, id string) (*model.ShoppingListEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var entry *model.ShoppingListEntry
	err := e.inTx(func(s *txStores) error {
		old, err := s.shopping.GetByID(actor.HouseholdID, id)
		if err != nil {
			return err
		}
		if old == nil {
			return ErrNotFound
		}
		if old.PurchasedAt != nil {
			return &InvalidStateError{Entity: "shopping list entry", State: "already purchased"}
		}

		entry, err = s.shopping.MarkPurchased(actor.HouseholdID, id, time.Now().UTC())
		if err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "shopping_list", entry.ID, model.Updated(old, entry))
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveShoppingEntry deletes an entry that has not been promoted. Purchased
// entries stay as history.
func (e *Engine) RemoveShoppingEntry(actor auth.Actor, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	return e.inTx(func(s *txStores) error {
		old, err := s.shopping.GetByID(actor.HouseholdID, id)
		if err != nil {
			return err
		}
		if old == nil {
			return ErrNotFound
		}
		if old.PurchasedAt != nil {
			return &InvalidStateError{Entity: "shopping list entry", State: "already purchased"}
		}

		if err := s.shopping.Delete(actor.HouseholdID, id); err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "shopping_list", id, model.Deleted(old))
		return err
	})
}

// --- Waste ---

// RecordWaste logs discarded stock and decrements the inventory record it
// came from. This is the one decrement path; it refuses to take stock below
// zero.
func (e *Engine) RecordWaste(actor auth.Actor, inventoryID string, quantity int64, reason string) (*model.WasteEvent, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if !model.ValidWasteReason(reason) {
		return nil, &ValidationError{Field: "reason", Reason: "must be expired, spoiled, leftover, or other"}
	}

	var event *model.WasteEvent
	err := e.inTx(func(s *txStores) error {
		rec, err := s.inventory.GetByID(actor.HouseholdID, inventoryID)
		if err != nil {
			return err
		}
		if rec == nil {
			return ErrNotFound
		}
		if quantity > rec.Quantity {
			return &ValidationError{Field: "quantity", Reason: "exceeds stock on hand"}
		}

		event, err = s.waste.Create(actor.HouseholdID, rec.ID, rec.ItemID, quantity, rec.Unit, reason, time.Now().UTC())
		if err != nil {
			return err
		}
		if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "waste_events", event.ID, model.Created(event)); err != nil {
			return err
		}

		updated, err := s.inventory.AddQuantity(actor.HouseholdID, rec.ID, -quantity, actor.UserID)
		if err != nil {
			return err
		}
		_, err = s.audits.Append(actor.HouseholdID, actor.UserID, "inventory", updated.ID, model.Updated(rec, updated))
		return err
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}
