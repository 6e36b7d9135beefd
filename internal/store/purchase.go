package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseStore struct {
	q Querier
}

func NewPurchaseStore(q Querier) *PurchaseStore {
	return &PurchaseStore{q: q}
}

func scanPurchase(scanner interface{ Scan(...any) error }) (*model.Purchase, error) {
	var p model.Purchase
	var vendor, notes sql.NullString
	var total string

	err := scanner.Scan(
		&p.ID, &p.HouseholdID, &vendor, &p.PurchaseDate, &total,
		&p.PaidByUserID, &notes, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.TotalAmount, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse total_amount: %w", err)
	}
	if vendor.Valid {
		p.Vendor = &vendor.String
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
	return &p, nil
}

func scanPurchaseLine(scanner interface{ Scan(...any) error }) (*model.PurchaseLine, error) {
	var l model.PurchaseLine
	var unit sql.NullString
	var lineTotal string

	err := scanner.Scan(&l.ID, &l.PurchaseID, &l.ItemID, &l.Quantity, &unit, &lineTotal)
	if err != nil {
		return nil, err
	}

	l.LineTotal, err = decimal.NewFromString(lineTotal)
	if err != nil {
		return nil, fmt.Errorf("parse line_total: %w", err)
	}
	if unit.Valid {
		l.Unit = &unit.String
	}
	return &l, nil
}

const purchaseCols = `id, household_id, vendor, purchase_date, total_amount, paid_by_user_id, notes, created_by, created_at`
const purchaseLineCols = `id, purchase_id, item_id, quantity, unit, line_total`

func (s *PurchaseStore) Create(householdID string, vendor *string, purchaseDate time.Time, totalAmount decimal.Decimal, paidBy string, notes *string, createdBy string) (*model.Purchase, error) {
	id := uuid.NewString()
	_, err := s.q.Exec(
		`INSERT INTO purchases (id, household_id, vendor, purchase_date, total_amount, paid_by_user_id, notes, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, householdID, nullString(vendor), purchaseDate, totalAmount.String(), paidBy, nullString(notes), createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert purchase: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *PurchaseStore) GetByID(householdID, id string) (*model.Purchase, error) {
	row := s.q.QueryRow(`SELECT `+purchaseCols+` FROM purchases WHERE household_id = ? AND id = ?`, householdID, id)
	p, err := scanPurchase(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func (s *PurchaseStore) List(householdID string) ([]model.Purchase, error) {
	rows, err := s.q.Query(`SELECT `+purchaseCols+` FROM purchases WHERE household_id = ? ORDER BY purchase_date DESC`, householdID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, *p)
	}
	return purchases, rows.Err()
}

func (s *PurchaseStore) CreateLine(purchaseID, itemID string, quantity int64, unit *string, lineTotal decimal.Decimal) (*model.PurchaseLine, error) {
	id := uuid.NewString()
	_, err := s.q.Exec(
		`INSERT INTO purchase_items (id, purchase_id, item_id, quantity, unit, line_total) VALUES (?, ?, ?, ?, ?, ?)`,
		id, purchaseID, itemID, quantity, nullString(unit), lineTotal.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert purchase line: %w", err)
	}
	row := s.q.QueryRow(`SELECT `+purchaseLineCols+` FROM purchase_items WHERE id = ?`, id)
	return scanPurchaseLine(row)
}

func (s *PurchaseStore) ListLines(purchaseID string) ([]model.PurchaseLine, error) {
	rows, err := s.q.Query(`SELECT `+purchaseLineCols+` FROM purchase_items WHERE purchase_id = ?`, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase lines: %w", err)
	}
	defer rows.Close()

	var lines []model.PurchaseLine
	for rows.Next() {
		l, err := scanPurchaseLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		lines = append(lines, *l)
	}
	return lines, rows.Err()
}
