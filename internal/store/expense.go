package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseStore struct {
	q Querier
}

func NewExpenseStore(q Querier) *ExpenseStore {
	return &ExpenseStore{q: q}
}

func scanExpense(scanner interface{ Scan(...any) error }) (*model.Expense, error) {
	var e model.Expense
	var category, description, linked sql.NullString
	var amount string

	err := scanner.Scan(&e.ID, &e.HouseholdID, &e.Date, &amount, &category, &description, &e.Source, &linked)
	if err != nil {
		return nil, err
	}

	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse expense amount: %w", err)
	}
	if category.Valid {
		e.Category = &category.String
	}
	if description.Valid {
		e.Description = &description.String
	}
	if linked.Valid {
		e.LinkedEntityID = &linked.String
	}
	return &e, nil
}

const expenseCols = `id, household_id, date, amount, category, description, source, linked_entity_id`

func (s *ExpenseStore) Create(householdID string, date time.Time, amount decimal.Decimal, category, description *string, source string, linkedEntityID *string) (*model.Expense, error) {
	id := uuid.NewString()
	_, err := s.q.Exec(
		`INSERT INTO expenses (id, household_id, date, amount, category, description, source, linked_entity_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, householdID, date, amount.String(), nullString(category), nullString(description), source, nullString(linkedEntityID),
	)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *ExpenseStore) GetByID(householdID, id string) (*model.Expense, error) {
	row := s.q.QueryRow(`SELECT `+expenseCols+` FROM expenses WHERE household_id = ? AND id = ?`, householdID, id)
	e, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseStore) List(householdID string) ([]model.Expense, error) {
	rows, err := s.q.Query(`SELECT `+expenseCols+` FROM expenses WHERE household_id = ? ORDER BY date DESC`, householdID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}
