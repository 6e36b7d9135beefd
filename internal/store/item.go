package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/google/uuid"
)

type ItemStore struct {
	q Querier
}

func NewItemStore(q Querier) *ItemStore {
	return &ItemStore{q: q}
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.Item, error) {
	var item model.Item
	var defaultUnit sql.NullString
	var perishable int

	err := scanner.Scan(&item.ID, &item.HouseholdID, &item.Name, &defaultUnit, &perishable, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	if defaultUnit.Valid {
		item.DefaultUnit = &defaultUnit.String
	}
	item.Perishable = perishable != 0
	return &item, nil
}

const itemCols = `id, household_id, name, default_unit, perishable, created_at`

func (s *ItemStore) Create(householdID, name string, defaultUnit *string, perishable bool) (*model.Item, error) {
	id := uuid.NewString()
	_, err := s.q.Exec(
		`INSERT INTO items (id, household_id, name, default_unit, perishable) VALUES (?, ?, ?, ?, ?)`,
		id, householdID, name, nullString(defaultUnit), boolToInt(perishable),
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *ItemStore) GetByID(householdID, id string) (*model.Item, error) {
	row := s.q.QueryRow(`SELECT `+itemCols+` FROM items WHERE household_id = ? AND id = ?`, householdID, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) GetByName(householdID, name string) (*model.Item, error) {
	row := s.q.QueryRow(`SELECT `+itemCols+` FROM items WHERE household_id = ? AND name = ?`, householdID, name)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item by name: %w", err)
	}
	return item, nil
}

func (s *ItemStore) List(householdID string) ([]model.Item, error) {
	rows, err := s.q.Query(`SELECT `+itemCols+` FROM items WHERE household_id = ? ORDER BY name ASC`, householdID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ItemStore) Update(householdID, id, name string, defaultUnit *string, perishable bool) (*model.Item, error) {
	_, err := s.q.Exec(
		`UPDATE items SET name = ?, default_unit = ?, perishable = ? WHERE household_id = ? AND id = ?`,
		name, nullString(defaultUnit), boolToInt(perishable), householdID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *ItemStore) Delete(householdID, id string) error {
	_, err := s.q.Exec(`DELETE FROM items WHERE household_id = ? AND id = ?`, householdID, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// CountReferences counts inventory records, purchase lines, and waste events
// pointing at the item. An item with references must not be deleted.
func (s *ItemStore) CountReferences(id string) (int, error) {
	var count int
	err := s.q.QueryRow(
		`SELECT
			(SELECT COUNT(*) FROM inventory WHERE item_id = ?) +
			(SELECT COUNT(*) FROM purchase_items WHERE item_id = ?) +
			(SELECT COUNT(*) FROM waste_events WHERE item_id = ?)`,
		id, id, id,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count item references: %w", err)
	}
	return count, nil
}
