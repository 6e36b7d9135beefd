package store

import (
	"testing"
	"time"
)

func TestShoppingListPendingByIDs(t *testing.T) {
	f := setupDB(t)
	shopping := NewShoppingListStore(f.db)

	a, _ := shopping.Create(f.householdID, "Milk", f.userID)
	b, _ := shopping.Create(f.householdID, "Eggs", f.userID)
	c, _ := shopping.Create(f.householdID, "Bread", f.userID)

	if _, err := shopping.MarkPurchased(f.householdID, b.ID, time.Now()); err != nil {
		t.Fatalf("mark purchased: %v", err)
	}

	// Purchased, unknown, and repeated ids drop out; input order is preserved.
	entries, err := shopping.ListPendingByIDs(f.householdID, []string{c.ID, "bogus", b.ID, a.ID, c.ID})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].ID != c.ID || entries[1].ID != a.ID {
		t.Errorf("order = [%s %s], want [%s %s]", entries[0].ItemName, entries[1].ItemName, "Bread", "Milk")
	}
}

func TestShoppingListMarkPurchased(t *testing.T) {
	f := setupDB(t)
	shopping := NewShoppingListStore(f.db)

	entry, _ := shopping.Create(f.householdID, "Milk", f.userID)
	if entry.PurchasedAt != nil {
		t.Fatal("new entry already purchased")
	}

	at := time.Now().UTC()
	marked, err := shopping.MarkPurchased(f.householdID, entry.ID, at)
	if err != nil {
		t.Fatalf("mark purchased: %v", err)
	}
	if marked.PurchasedAt == nil {
		t.Fatal("purchased_at not set")
	}
}

func TestShoppingListDelete(t *testing.T) {
	f := setupDB(t)
	shopping := NewShoppingListStore(f.db)

	entry, _ := shopping.Create(f.householdID, "Milk", f.userID)
	if err := shopping.Delete(f.householdID, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := shopping.GetByID(f.householdID, entry.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("entry present after delete")
	}
}
