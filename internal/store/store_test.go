package store

import (
	"database/sql"
	"testing"

	"github.com/dukerupert/hearth/internal/database"
	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

type storeFixture struct {
	db          *sql.DB
	householdID string
	userID      string
}

func setupDB(t *testing.T) *storeFixture {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	u, err := NewUserStore(db).Create("pippin@example.com", nil, "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	h, err := NewHouseholdStore(db).Create("Took", u.ID)
	if err != nil {
		t.Fatalf("create household: %v", err)
	}

	return &storeFixture{db: db, householdID: h.ID, userID: u.ID}
}
