package store

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInventoryStoreCreateAndMerge(t *testing.T) {
	f := setupDB(t)
	items := NewItemStore(f.db)
	inventory := NewInventoryStore(f.db)

	item, err := items.Create(f.householdID, "Rice", nil, false)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	unit := "kg"
	storage := "pantry"
	rec, err := inventory.Create(f.householdID, f.userID, CreateInventoryParams{
		ItemID:    item.ID,
		Quantity:  5,
		Unit:      &unit,
		Storage:   &storage,
		CostTotal: decimal.NewNullDecimal(mustDecimal(t, "9.99")),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Quantity != 5 || rec.CreatedBy != f.userID {
		t.Errorf("rec = %+v", rec)
	}
	if !rec.CostTotal.Valid || !rec.CostTotal.Decimal.Equal(mustDecimal(t, "9.99")) {
		t.Errorf("cost = %+v, want 9.99", rec.CostTotal)
	}

	byItem, err := inventory.GetByItem(f.householdID, item.ID)
	if err != nil {
		t.Fatalf("get by item: %v", err)
	}
	if byItem == nil || byItem.ID != rec.ID {
		t.Errorf("get by item = %+v", byItem)
	}

	updated, err := inventory.AddQuantity(f.householdID, rec.ID, 3, f.userID)
	if err != nil {
		t.Fatalf("add quantity: %v", err)
	}
	if updated.Quantity != 8 {
		t.Errorf("quantity = %d, want 8", updated.Quantity)
	}
	if updated.UpdatedBy == nil || *updated.UpdatedBy != f.userID {
		t.Errorf("updated by = %v, want %q", updated.UpdatedBy, f.userID)
	}

	decremented, err := inventory.AddQuantity(f.householdID, rec.ID, -8, f.userID)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if decremented.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", decremented.Quantity)
	}
}

func TestInventoryStoreUniquePerItem(t *testing.T) {
	f := setupDB(t)
	items := NewItemStore(f.db)
	inventory := NewInventoryStore(f.db)

	item, _ := items.Create(f.householdID, "Rice", nil, false)
	if _, err := inventory.Create(f.householdID, f.userID, CreateInventoryParams{ItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Second record for the same (household, item) violates the unique index.
	if _, err := inventory.Create(f.householdID, f.userID, CreateInventoryParams{ItemID: item.ID, Quantity: 1}); err == nil {
		t.Error("expected unique constraint error")
	}
}

func TestInventoryStoreDelete(t *testing.T) {
	f := setupDB(t)
	items := NewItemStore(f.db)
	inventory := NewInventoryStore(f.db)

	item, _ := items.Create(f.householdID, "Rice", nil, false)
	rec, _ := inventory.Create(f.householdID, f.userID, CreateInventoryParams{ItemID: item.ID, Quantity: 1})

	if err := inventory.Delete(f.householdID, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := inventory.GetByID(f.householdID, rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("record present after delete")
	}
}
