package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/dukerupert/hearth/internal/auth"
	"github.com/shopspring/decimal"
)

func TestIntakePurchase(t *testing.T) {
	env := setupEngine(t)

	milk, err := env.engine.CreateItem(env.actor, "Milk", nil, true)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	eggs, err := env.engine.CreateItem(env.actor, "Eggs", nil, true)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	before := env.auditCount(t)

	vendor := "Green Grocer"
	result, err := env.engine.IntakePurchase(env.actor, PurchaseInput{
		Vendor:      &vendor,
		TotalAmount: decimal.RequireFromString("17.50"),
		Lines: []PurchaseLineInput{
			{ItemID: milk.ID, Quantity: 2, LineTotal: decimal.RequireFromString("5.50")},
			{ItemID: eggs.ID, Quantity: 1, LineTotal: decimal.RequireFromString("12.00")},
		},
	})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}

	if !result.Purchase.TotalAmount.Equal(decimal.RequireFromString("17.50")) {
		t.Errorf("total = %s, want 17.50", result.Purchase.TotalAmount)
	}
	if result.Purchase.PaidByUserID != env.actor.UserID {
		t.Errorf("paid by = %q, want actor", result.Purchase.PaidByUserID)
	}
	if len(result.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(result.Lines))
	}
	if len(result.Inventory) != 2 {
		t.Fatalf("inventory records = %d, want 2", len(result.Inventory))
	}

	rec, err := env.inventory.GetByItem(env.actor.HouseholdID, milk.ID)
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	if rec == nil || rec.Quantity != 2 {
		t.Errorf("milk inventory = %+v, want quantity 2", rec)
	}

	// Header + 2 lines + 2 inventory creates = 5 new audit rows.
	if got := env.auditCount(t) - before; got != 5 {
		t.Errorf("audit rows = %d, want 5", got)
	}
}

func TestIntakePurchaseMergesInventory(t *testing.T) {
	env := setupEngine(t)

	milk, _ := env.engine.CreateItem(env.actor, "Milk", nil, true)

	for i := 0; i < 2; i++ {
		_, err := env.engine.IntakePurchase(env.actor, PurchaseInput{
			TotalAmount: decimal.RequireFromString("3.00"),
			Lines:       []PurchaseLineInput{{ItemID: milk.ID, Quantity: 3, LineTotal: decimal.RequireFromString("3.00")}},
		})
		if err != nil {
			t.Fatalf("intake %d: %v", i, err)
		}
	}

	records, err := env.inventory.List(env.actor.HouseholdID)
	if err != nil {
		t.Fatalf("list inventory: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("inventory records = %d, want 1 merged record", len(records))
	}
	if records[0].Quantity != 6 {
		t.Errorf("quantity = %d, want 6", records[0].Quantity)
	}
}

func TestIntakePurchaseZeroLines(t *testing.T) {
	env := setupEngine(t)

	result, err := env.engine.IntakePurchase(env.actor, PurchaseInput{
		TotalAmount: decimal.RequireFromString("42.00"),
	})
	if err != nil {
		t.Fatalf("intake with no lines: %v", err)
	}
	if len(result.Lines) != 0 {
		t.Errorf("lines = %d, want 0", len(result.Lines))
	}

	purchases, err := env.purchases.List(env.actor.HouseholdID)
	if err != nil {
		t.Fatalf("list purchases: %v", err)
	}
	if len(purchases) != 1 {
		t.Errorf("purchases = %d, want 1", len(purchases))
	}
}

func TestIntakePurchaseValidation(t *testing.T) {
	env := setupEngine(t)
	milk, _ := env.engine.CreateItem(env.actor, "Milk", nil, true)

	var vErr *ValidationError

	_, err := env.engine.IntakePurchase(env.actor, PurchaseInput{
		TotalAmount: decimal.RequireFromString("-1.00"),
	})
	if !errors.As(err, &vErr) {
		t.Errorf("negative total: err = %v, want ValidationError", err)
	}

	_, err = env.engine.IntakePurchase(env.actor, PurchaseInput{
		TotalAmount: decimal.Zero,
		Lines:       []PurchaseLineInput{{ItemID: milk.ID, Quantity: 0}},
	})
	if !errors.As(err, &vErr) {
		t.Errorf("zero quantity: err = %v, want ValidationError", err)
	}

	_, err = env.engine.IntakePurchase(env.actor, PurchaseInput{
		TotalAmount: decimal.Zero,
		Lines:       []PurchaseLineInput{{ItemID: "", Quantity: 1}},
	})
	if !errors.As(err, &vErr) {
		t.Errorf("missing item id: err = %v, want ValidationError", err)
	}
}

func TestIntakePurchaseUnknownItemRollsBack(t *testing.T) {
	env := setupEngine(t)

	milk, _ := env.engine.CreateItem(env.actor, "Milk", nil, true)
	before := env.auditCount(t)

	_, err := env.engine.IntakePurchase(env.actor, PurchaseInput{
		TotalAmount: decimal.RequireFromString("5.00"),
		Lines: []PurchaseLineInput{
			{ItemID: milk.ID, Quantity: 1, LineTotal: decimal.RequireFromString("2.00")},
			{ItemID: "nonexistent", Quantity: 1, LineTotal: decimal.RequireFromString("3.00")},
		},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// The whole batch rolls back: no purchase, no inventory, no audit rows.
	purchases, _ := env.purchases.List(env.actor.HouseholdID)
	if len(purchases) != 0 {
		t.Errorf("purchases = %d, want 0 after rollback", len(purchases))
	}
	records, _ := env.inventory.List(env.actor.HouseholdID)
	if len(records) != 0 {
		t.Errorf("inventory records = %d, want 0 after rollback", len(records))
	}
	if got := env.auditCount(t); got != before {
		t.Errorf("audit rows = %d, want %d after rollback", got, before)
	}
}

func TestIntakePurchaseRequiresActor(t *testing.T) {
	env := setupEngine(t)

	_, err := env.engine.IntakePurchase(auth.Actor{}, PurchaseInput{})
	if !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("err = %v, want ErrNotAuthorized", err)
	}
}

func TestConcurrentIntakeSerializes(t *testing.T) {
	env := setupEngine(t)

	milk, _ := env.engine.CreateItem(env.actor, "Milk", nil, true)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.engine.IntakePurchase(env.actor, PurchaseInput{
				TotalAmount: decimal.RequireFromString("1.00"),
				Lines:       []PurchaseLineInput{{ItemID: milk.ID, Quantity: 1, LineTotal: decimal.RequireFromString("1.00")}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent intake: %v", err)
		}
	}

	rec, err := env.inventory.GetByItem(env.actor.HouseholdID, milk.ID)
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	if rec == nil || rec.Quantity != workers {
		t.Errorf("quantity = %+v, want %d (no lost updates)", rec, workers)
	}

	records, _ := env.inventory.List(env.actor.HouseholdID)
	if len(records) != 1 {
		t.Errorf("inventory records = %d, want 1", len(records))
	}
}
