package store

import (
	"encoding/json"
	"testing"

	"github.com/dukerupert/hearth/internal/model"
)

func TestAuditStoreAppendCreate(t *testing.T) {
	f := setupDB(t)
	audits := NewAuditStore(f.db)

	record := map[string]string{"id": "x1", "name": "Milk"}
	entry, err := audits.Append(f.householdID, f.userID, "items", "x1", model.Created(record))
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if entry.Action != model.ActionCreate {
		t.Errorf("action = %q, want create", entry.Action)
	}
	if entry.EntityTable != "items" || entry.EntityID != "x1" {
		t.Errorf("entry = %+v", entry)
	}

	// Create diffs are the full record.
	var got map[string]string
	if err := json.Unmarshal(entry.Diff, &got); err != nil {
		t.Fatalf("unmarshal diff: %v", err)
	}
	if got["name"] != "Milk" {
		t.Errorf("diff = %s", entry.Diff)
	}
}

func TestAuditStoreAppendUpdate(t *testing.T) {
	f := setupDB(t)
	audits := NewAuditStore(f.db)

	old := map[string]int{"quantity": 2}
	new := map[string]int{"quantity": 5}
	entry, err := audits.Append(f.householdID, f.userID, "inventory", "x1", model.Updated(old, new))
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if entry.Action != model.ActionUpdate {
		t.Errorf("action = %q, want update", entry.Action)
	}

	// Update diffs are an old/new snapshot pair.
	var got struct {
		Old map[string]int `json:"old"`
		New map[string]int `json:"new"`
	}
	if err := json.Unmarshal(entry.Diff, &got); err != nil {
		t.Fatalf("unmarshal diff: %v", err)
	}
	if got.Old["quantity"] != 2 || got.New["quantity"] != 5 {
		t.Errorf("diff = %s", entry.Diff)
	}
}

func TestAuditStoreRejectsMissingAttribution(t *testing.T) {
	f := setupDB(t)
	audits := NewAuditStore(f.db)

	if _, err := audits.Append("", f.userID, "items", "x1", model.Created(nil)); err == nil {
		t.Error("expected error for missing household")
	}
	if _, err := audits.Append(f.householdID, "", "items", "x1", model.Created(nil)); err == nil {
		t.Error("expected error for missing user")
	}
}

func TestAuditStoreListAndCount(t *testing.T) {
	f := setupDB(t)
	audits := NewAuditStore(f.db)

	for i := 0; i < 5; i++ {
		if _, err := audits.Append(f.householdID, f.userID, "items", "x1", model.Created(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	entries, err := audits.List(f.householdID, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("entries = %d, want limit 3", len(entries))
	}

	n, err := audits.Count(f.householdID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 5 {
		t.Errorf("count = %d, want 5", n)
	}

	other, err := audits.List("other-household", 10)
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("entries = %d for foreign household, want 0", len(other))
	}
}
