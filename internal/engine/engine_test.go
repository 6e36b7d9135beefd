package engine

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/dukerupert/hearth/internal/auth"
	"github.com/dukerupert/hearth/internal/database"
	"github.com/dukerupert/hearth/internal/store"
)

type testEnv struct {
	db     *sql.DB
	engine *Engine
	actor  auth.Actor

	items     *store.ItemStore
	inventory *store.InventoryStore
	purchases *store.PurchaseStore
	bills     *store.BillStore
	budgets   *store.BudgetStore
	expenses  *store.ExpenseStore
	shopping  *store.ShoppingListStore
	waste     *store.WasteStore
	audits    *store.AuditStore
}

func setupEngine(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := store.NewUserStore(db)
	households := store.NewHouseholdStore(db)

	u, err := users.Create("frodo@example.com", nil, "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	h, err := households.Create("Bag End", u.ID)
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	if _, err := households.AddMember(h.ID, u.ID, "owner"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	return &testEnv{
		db:     db,
		engine: New(db, slog.Default()),
		actor: auth.Actor{
			UserID:      u.ID,
			HouseholdID: h.ID,
			Role:        "owner",
		},
		items:     store.NewItemStore(db),
		inventory: store.NewInventoryStore(db),
		purchases: store.NewPurchaseStore(db),
		bills:     store.NewBillStore(db),
		budgets:   store.NewBudgetStore(db),
		expenses:  store.NewExpenseStore(db),
		shopping:  store.NewShoppingListStore(db),
		waste:     store.NewWasteStore(db),
		audits:    store.NewAuditStore(db),
	}
}

func (env *testEnv) auditCount(t *testing.T) int {
	t.Helper()
	n, err := env.audits.Count(env.actor.HouseholdID)
	if err != nil {
		t.Fatalf("count audits: %v", err)
	}
	return n
}
