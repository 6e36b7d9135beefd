package store

import (
	"testing"
	"time"
)

func TestItemStoreCRUD(t *testing.T) {
	f := setupDB(t)
	items := NewItemStore(f.db)

	unit := "liter"
	item, err := items.Create(f.householdID, "Milk", &unit, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Name != "Milk" || !item.Perishable {
		t.Errorf("item = %+v", item)
	}
	if item.DefaultUnit == nil || *item.DefaultUnit != "liter" {
		t.Errorf("default unit = %v, want liter", item.DefaultUnit)
	}

	byName, err := items.GetByName(f.householdID, "Milk")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if byName == nil || byName.ID != item.ID {
		t.Errorf("get by name = %+v", byName)
	}

	updated, err := items.Update(f.householdID, item.ID, "Whole Milk", nil, false)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Whole Milk" || updated.Perishable || updated.DefaultUnit != nil {
		t.Errorf("updated = %+v", updated)
	}

	list, err := items.List(f.householdID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("list = %d items, want 1", len(list))
	}

	if err := items.Delete(f.householdID, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := items.GetByID(f.householdID, item.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("item present after delete")
	}
}

func TestItemStoreHouseholdScoping(t *testing.T) {
	f := setupDB(t)
	items := NewItemStore(f.db)

	item, err := items.Create(f.householdID, "Milk", nil, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := items.GetByID("other-household", item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("item visible from another household")
	}
}

func TestItemStoreCountReferences(t *testing.T) {
	f := setupDB(t)
	items := NewItemStore(f.db)
	inventory := NewInventoryStore(f.db)
	purchases := NewPurchaseStore(f.db)

	item, err := items.Create(f.householdID, "Milk", nil, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := items.CountReferences(item.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("refs = %d, want 0", n)
	}

	if _, err := inventory.Create(f.householdID, f.userID, CreateInventoryParams{ItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("create inventory: %v", err)
	}
	p, err := purchases.Create(f.householdID, nil, time.Now(), mustDecimal(t, "1.00"), f.userID, nil, f.userID)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if _, err := purchases.CreateLine(p.ID, item.ID, 1, nil, mustDecimal(t, "1.00")); err != nil {
		t.Fatalf("create line: %v", err)
	}

	n, err = items.CountReferences(item.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("refs = %d, want 2", n)
	}
}
