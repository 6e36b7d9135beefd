package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryStore struct {
	q Querier
}

func NewInventoryStore(q Querier) *InventoryStore {
	return &InventoryStore{q: q}
}

func scanInventory(scanner interface{ Scan(...any) error }) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	var unit, storage, notes, updatedBy, costTotal sql.NullString
	var purchaseDate, expiryDate sql.NullTime

	err := scanner.Scan(
		&rec.ID, &rec.HouseholdID, &rec.ItemID, &rec.Quantity, &unit, &storage,
		&purchaseDate, &expiryDate, &costTotal, &notes, &rec.CreatedBy,
		&updatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if unit.Valid {
		rec.Unit = &unit.String
	}
	if storage.Valid {
		rec.Storage = &storage.String
	}
	if purchaseDate.Valid {
		rec.PurchaseDate = &purchaseDate.Time
	}
	if expiryDate.Valid {
		rec.ExpiryDate = &expiryDate.Time
	}
	if costTotal.Valid {
		d, err := decimal.NewFromString(costTotal.String)
		if err != nil {
			return nil, fmt.Errorf("parse cost_total: %w", err)
		}
		rec.CostTotal = decimal.NewNullDecimal(d)
	}
	if notes.Valid {
		rec.Notes = &notes.String
	}
	if updatedBy.Valid {
		rec.UpdatedBy = &updatedBy.String
	}
	return &rec, nil
}

const inventoryCols = `id, household_id, item_id, quantity, unit, storage, purchase_date, expiry_date, cost_total, notes, created_by, updated_by, created_at, updated_at`

// CreateInventoryParams carries the optional detail fields a direct inventory
// edit can set. Reconciliation only ever supplies item, quantity, and unit.
type CreateInventoryParams struct {
	ItemID       string
	Quantity     int64
	Unit         *string
	Storage      *string
	PurchaseDate *time.Time
	ExpiryDate   *time.Time
	CostTotal    decimal.NullDecimal
	Notes        *string
}

func (s *InventoryStore) Create(householdID, createdBy string, p CreateInventoryParams) (*model.InventoryRecord, error) {
	var cost sql.NullString
	if p.CostTotal.Valid {
		cost = sql.NullString{String: p.CostTotal.Decimal.String(), Valid: true}
	}

	id := uuid.NewString()
	_, err := s.q.Exec(
		`INSERT INTO inventory (id, household_id, item_id, quantity, unit, storage, purchase_date, expiry_date, cost_total, notes, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, householdID, p.ItemID, p.Quantity, nullString(p.Unit), nullString(p.Storage),
		nullTime(p.PurchaseDate), nullTime(p.ExpiryDate), cost, nullString(p.Notes), createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert inventory: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *InventoryStore) GetByID(householdID, id string) (*model.InventoryRecord, error) {
	row := s.q.QueryRow(`SELECT `+inventoryCols+` FROM inventory WHERE household_id = ? AND id = ?`, householdID, id)
	rec, err := scanInventory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return rec, nil
}

// GetByItem looks up the stock record by its reconciliation identity key.
func (s *InventoryStore) GetByItem(householdID, itemID string) (*model.InventoryRecord, error) {
	row := s.q.QueryRow(`SELECT `+inventoryCols+` FROM inventory WHERE household_id = ? AND item_id = ?`, householdID, itemID)
	rec, err := scanInventory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory by item: %w", err)
	}
	return rec, nil
}

func (s *InventoryStore) List(householdID string) ([]model.InventoryRecord, error) {
	rows, err := s.q.Query(`SELECT `+inventoryCols+` FROM inventory WHERE household_id = ? ORDER BY created_at ASC`, householdID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var records []model.InventoryRecord
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// AddQuantity shifts the stock level by delta and stamps the updating user.
func (s *InventoryStore) AddQuantity(householdID, id string, delta int64, updatedBy string) (*model.InventoryRecord, error) {
	_, err := s.q.Exec(
		`UPDATE inventory SET quantity = quantity + ?, updated_by = ?, updated_at = ? WHERE household_id = ? AND id = ?`,
		delta, updatedBy, time.Now().UTC(), householdID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("add inventory quantity: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *InventoryStore) Update(householdID, id string, p CreateInventoryParams, updatedBy string) (*model.InventoryRecord, error) {
	var cost sql.NullString
	if p.CostTotal.Valid {
		cost = sql.NullString{String: p.CostTotal.Decimal.String(), Valid: true}
	}

	_, err := s.q.Exec(
		`UPDATE inventory SET quantity = ?, unit = ?, storage = ?, purchase_date = ?, expiry_date = ?, cost_total = ?, notes = ?, updated_by = ?, updated_at = ?
		 WHERE household_id = ? AND id = ?`,
		p.Quantity, nullString(p.Unit), nullString(p.Storage), nullTime(p.PurchaseDate),
		nullTime(p.ExpiryDate), cost, nullString(p.Notes), updatedBy, time.Now().UTC(),
		householdID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update inventory: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *InventoryStore) Delete(householdID, id string) error {
	_, err := s.q.Exec(`DELETE FROM inventory WHERE household_id = ? AND id = ?`, householdID, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}
