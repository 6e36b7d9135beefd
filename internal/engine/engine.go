// Package engine is the transaction and audit core. Every mutating operation
// runs inside one database transaction, writes its data rows and exactly one
// audit entry per row, and either commits whole or leaves no trace.
package engine

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dukerupert/hearth/internal/auth"
	"github.com/dukerupert/hearth/internal/store"
)

type Engine struct {
	db     *sql.DB
	logger *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Engine {
	return &Engine{db: db, logger: logger}
}

// txStores bundles every store bound to one open transaction. All writes a
// compound operation performs go through the same handle, so they commit or
// roll back together.
type txStores struct {
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

func newTxStores(tx *sql.Tx) *txStores {
	return &txStores{
		items:     store.NewItemStore(tx),
		inventory: store.NewInventoryStore(tx),
		purchases: store.NewPurchaseStore(tx),
		bills:     store.NewBillStore(tx),
		budgets:   store.NewBudgetStore(tx),
		expenses:  store.NewExpenseStore(tx),
		shopping:  store.NewShoppingListStore(tx),
		waste:     store.NewWasteStore(tx),
		audits:    store.NewAuditStore(tx),
	}
}

// inTx runs fn inside one transaction. Any error from fn rolls everything
// back, audit rows included.
func (e *Engine) inTx(fn func(s *txStores) error) error {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newTxStores(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

// requireActor gates every operation: no mutation may proceed without a
// resolvable user and household.
func requireActor(actor auth.Actor) error {
	if !actor.Valid() {
		return ErrNotAuthorized
	}
	return nil
}
