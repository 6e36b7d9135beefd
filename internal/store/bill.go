package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BillStore struct {
	q Querier
}

func NewBillStore(q Querier) *BillStore {
	return &BillStore{q: q}
}

func scanBill(scanner interface{ Scan(...any) error }) (*model.Bill, error) {
	var b model.Bill
	var vendor, recurringRule, category, notes sql.NullString
	var amount string

	err := scanner.Scan(
		&b.ID, &b.HouseholdID, &b.Name, &vendor, &amount, &b.DueDate,
		&b.Status, &recurringRule, &category, &notes, &b.CreatedBy, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	if vendor.Valid {
		b.Vendor = &vendor.String
	}
	if recurringRule.Valid {
		b.RecurringRule = &recurringRule.String
	}
	if category.Valid {
		b.Category = &category.String
	}
	if notes.Valid {
		b.Notes = &notes.String
	}
	return &b, nil
}

func scanBillPayment(scanner interface{ Scan(...any) error }) (*model.BillPayment, error) {
	var p model.BillPayment
	var method, notes sql.NullString
	var amount string

	err := scanner.Scan(&p.ID, &p.BillID, &p.PaidOn, &amount, &p.PaidByUserID, &method, &notes)
	if err != nil {
		return nil, err
	}

	p.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse payment amount: %w", err)
	}
	if method.Valid {
		p.Method = &method.String
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
	return &p, nil
}

const billCols = `id, household_id, name, vendor, amount, due_date, status, recurring_rule, category, notes, created_by, created_at`
const billPaymentCols = `id, bill_id, paid_on, amount, paid_by_user_id, method, notes`

// CreateBillParams carries the user-settable bill fields.
type CreateBillParams struct {
	Name          string
	Vendor        *string
	Amount        decimal.Decimal
	DueDate       time.Time
	Status        string
	RecurringRule *string
	Category      *string
	Notes         *string
}

func (s *BillStore) Create(householdID, createdBy string, p CreateBillParams) (*model.Bill, error) {
	id := uuid.NewString()
	_, err := s.q.Exec(
		`INSERT INTO bills (id, household_id, name, vendor, amount, due_date, status, recurring_rule, category, notes, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, householdID, p.Name, nullString(p.Vendor), p.Amount.String(), p.DueDate,
		p.Status, nullString(p.RecurringRule), nullString(p.Category), nullString(p.Notes), createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert bill: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *BillStore) GetByID(householdID, id string) (*model.Bill, error) {
	row := s.q.QueryRow(`SELECT `+billCols+` FROM bills WHERE household_id = ? AND id = ?`, householdID, id)
	b, err := scanBill(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

func (s *BillStore) List(householdID string) ([]model.Bill, error) {
	rows, err := s.q.Query(`SELECT `+billCols+` FROM bills WHERE household_id = ? ORDER BY due_date ASC`, householdID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var bills []model.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, *b)
	}
	return bills, rows.Err()
}

func (s *BillStore) Update(householdID, id string, p CreateBillParams) (*model.Bill, error) {
	_, err := s.q.Exec(
		`UPDATE bills SET name = ?, vendor = ?, amount = ?, due_date = ?, status = ?, recurring_rule = ?, category = ?, notes = ?
		 WHERE household_id = ? AND id = ?`,
		p.Name, nullString(p.Vendor), p.Amount.String(), p.DueDate, p.Status,
		nullString(p.RecurringRule), nullString(p.Category), nullString(p.Notes),
		householdID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update bill: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *BillStore) SetStatus(householdID, id, status string) (*model.Bill, error) {
	_, err := s.q.Exec(`UPDATE bills SET status = ? WHERE household_id = ? AND id = ?`, status, householdID, id)
	if err != nil {
		return nil, fmt.Errorf("set bill status: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *BillStore) Delete(householdID, id string) error {
	_, err := s.q.Exec(`DELETE FROM bills WHERE household_id = ? AND id = ?`, householdID, id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	return nil
}

func (s *BillStore) CreatePayment(billID string, amount decimal.Decimal, paidBy string, paidOn time.Time, method, notes *string) (*model.BillPayment, error) {
	id := uuid.NewString()
	_, err := s.q.Exec(
		`INSERT INTO bill_payments (id, bill_id, paid_on, amount, paid_by_user_id, method, notes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, billID, paidOn, amount.String(), paidBy, nullString(method), nullString(notes),
	)
	if err != nil {
		return nil, fmt.Errorf("insert bill payment: %w", err)
	}
	row := s.q.QueryRow(`SELECT `+billPaymentCols+` FROM bill_payments WHERE id = ?`, id)
	return scanBillPayment(row)
}

func (s *BillStore) ListPayments(billID string) ([]model.BillPayment, error) {
	rows, err := s.q.Query(`SELECT `+billPaymentCols+` FROM bill_payments WHERE bill_id = ? ORDER BY paid_on ASC`, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill payments: %w", err)
	}
	defer rows.Close()

	var payments []model.BillPayment
	for rows.Next() {
		p, err := scanBillPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
