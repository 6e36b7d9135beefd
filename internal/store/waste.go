package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/google/uuid"
)

type WasteStore struct {
	q Querier
}

func NewWasteStore(q Querier) *WasteStore {
	return &WasteStore{q: q}
}

func scanWasteEvent(scanner interface{ Scan(...any) error }) (*model.WasteEvent, error) {
	var e model.WasteEvent
	var unit sql.NullString

	err := scanner.Scan(&e.ID, &e.HouseholdID, &e.InventoryID, &e.ItemID, &e.Quantity, &unit, &e.Reason, &e.EventDate)
	if err != nil {
		return nil, err
	}
	if unit.Valid {
		e.Unit = &unit.String
	}
	return &e, nil
}

const wasteEventCols = `id, household_id, inventory_id, item_id, quantity, unit, reason, event_date`

func (s *WasteStore) Create(householdID, inventoryID, itemID string, quantity int64, unit *string, reason string, eventDate time.Time) (*model.WasteEvent, error) {
	id := uuid.NewString()
	_, err := s.q.Exec(
		`INSERT INTO waste_events (id, household_id, inventory_id, item_id, quantity, unit, reason, event_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, householdID, inventoryID, itemID, quantity, nullString(unit), reason, eventDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert waste event: %w", err)
	}
	row := s.q.QueryRow(`SELECT `+wasteEventCols+` FROM waste_events WHERE id = ?`, id)
	return scanWasteEvent(row)
}

// CountByInventory returns the number of waste events recorded against one
// inventory record.
func (s *WasteStore) CountByInventory(inventoryID string) (int, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM waste_events WHERE inventory_id = ?`, inventoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count waste events: %w", err)
	}
	return count, nil
}

func (s *WasteStore) List(householdID string) ([]model.WasteEvent, error) {
	rows, err := s.q.Query(`SELECT `+wasteEventCols+` FROM waste_events WHERE household_id = ? ORDER BY event_date DESC`, householdID)
	if err != nil {
		return nil, fmt.Errorf("list waste events: %w", err)
	}
	defer rows.Close()

	var events []model.WasteEvent
	for rows.Next() {
		e, err := scanWasteEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan waste event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
