package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/google/uuid"
)

type ShoppingListStore struct {
	q Querier
}

func NewShoppingListStore(q Querier) *ShoppingListStore {
	return &ShoppingListStore{q: q}
}

func scanShoppingListEntry(scanner interface{ Scan(...any) error }) (*model.ShoppingListEntry, error) {
	var e model.ShoppingListEntry
	var purchasedAt sql.NullTime

	err := scanner.Scan(&e.ID, &e.HouseholdID, &e.ItemName, &e.AddedByUserID, &e.CreatedAt, &purchasedAt)
	if err != nil {
		return nil, err
	}
	if purchasedAt.Valid {
		e.PurchasedAt = &purchasedAt.Time
	}
	return &e, nil
}

const shoppingListCols = `id, household_id, item_name, added_by_user_id, created_at, purchased_at`

func (s *ShoppingListStore) Create(householdID, itemName, addedBy string) (*model.ShoppingListEntry, error) {
	id := uuid.NewString()
	_, err := s.q.Exec(
		`INSERT INTO shopping_list (id, household_id, item_name, added_by_user_id) VALUES (?, ?, ?, ?)`,
		id, householdID, itemName, addedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert shopping list entry: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *ShoppingListStore) GetByID(householdID, id string) (*model.ShoppingListEntry, error) {
	row := s.q.QueryRow(`SELECT `+shoppingListCols+` FROM shopping_list WHERE household_id = ? AND id = ?`, householdID, id)
	e, err := scanShoppingListEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shopping list entry: %w", err)
	}
	return e, nil
}

func (s *ShoppingListStore) List(householdID string) ([]model.ShoppingListEntry, error) {
	rows, err := s.q.Query(
		`SELECT `+shoppingListCols+` FROM shopping_list WHERE household_id = ? ORDER BY purchased_at IS NOT NULL, created_at ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list shopping list: %w", err)
	}
	defer rows.Close()

	var entries []model.ShoppingListEntry
	for rows.Next() {
		e, err := scanShoppingListEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shopping list entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ListPendingByIDs returns the household's unpurchased entries among ids,
// in the order given. Repeated ids yield the entry once.
func (s *ShoppingListStore) ListPendingByIDs(householdID string, ids []string) ([]model.ShoppingListEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids)+1)
	args = append(args, householdID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.q.Query(
		`SELECT `+shoppingListCols+` FROM shopping_list
		 WHERE household_id = ? AND purchased_at IS NULL AND id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending entries: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]model.ShoppingListEntry)
	for rows.Next() {
		e, err := scanShoppingListEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shopping list entry: %w", err)
		}
		byID[e.ID] = *e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var entries []model.ShoppingListEntry
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			entries = append(entries, e)
			// Consume the entry so a repeated id yields it once.
			delete(byID, id)
		}
	}
	return entries, nil
}

func (s *ShoppingListStore) MarkPurchased(householdID, id string, at time.Time) (*model.ShoppingListEntry, error) {
	_, err := s.q.Exec(
		`UPDATE shopping_list SET purchased_at = ? WHERE household_id = ? AND id = ?`,
		at, householdID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("mark entry purchased: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *ShoppingListStore) Delete(householdID, id string) error {
	_, err := s.q.Exec(`DELETE FROM shopping_list WHERE household_id = ? AND id = ?`, householdID, id)
	if err != nil {
		return fmt.Errorf("delete shopping list entry: %w", err)
	}
	return nil
}
