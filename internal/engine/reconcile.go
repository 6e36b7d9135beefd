package engine

import (
	"github.com/dukerupert/hearth/internal/auth"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
)

// reconcileInventory merges delta into the household's stock row for itemID,
// creating the row if none exists. The identity key is (household, item):
// repeated purchases of the same item collapse into one running quantity,
// regardless of storage location or purchase batch. Only increments arrive
// here; decrements go through the waste path, which guards against negative
// stock itself.
//
// The read-then-write below is safe because every engine transaction holds
// the database write lock from BEGIN (see database.Open), so two concurrent
// reconciles on the same key serialize instead of losing an update.
func reconcileInventory(s *txStores, actor auth.Actor, itemID string, delta int64, unit *string) (*model.InventoryRecord, error) {
	existing, err := s.inventory.GetByItem(actor.HouseholdID, itemID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		updated, err := s.inventory.AddQuantity(actor.HouseholdID, existing.ID, delta, actor.UserID)
		if err != nil {
			return nil, err
		}
		if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "inventory", updated.ID, model.Updated(existing, updated)); err != nil {
			return nil, err
		}
		return updated, nil
	}

	created, err := s.inventory.Create(actor.HouseholdID, actor.UserID, store.CreateInventoryParams{
		ItemID:   itemID,
		Quantity: delta,
		Unit:     unit,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.audits.Append(actor.HouseholdID, actor.UserID, "inventory", created.ID, model.Created(created)); err != nil {
		return nil, err
	}
	return created, nil
}
