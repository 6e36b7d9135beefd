package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetStore struct {
	q Querier
}

func NewBudgetStore(q Querier) *BudgetStore {
	return &BudgetStore{q: q}
}

func scanBudget(scanner interface{ Scan(...any) error }) (*model.Budget, error) {
	var b model.Budget
	var limit string

	err := scanner.Scan(&b.ID, &b.HouseholdID, &b.Period, &limit)
	if err != nil {
		return nil, err
	}

	b.LimitAmount, err = decimal.NewFromString(limit)
	if err != nil {
		return nil, fmt.Errorf("parse limit_amount: %w", err)
	}
	return &b, nil
}

const budgetCols = `id, household_id, period, limit_amount`

func (s *BudgetStore) Create(householdID, period string, limitAmount decimal.Decimal) (*model.Budget, error) {
	id := uuid.NewString()
	_, err := s.q.Exec(
		`INSERT INTO budgets (id, household_id, period, limit_amount) VALUES (?, ?, ?, ?)`,
		id, householdID, period, limitAmount.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert budget: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *BudgetStore) GetByID(householdID, id string) (*model.Budget, error) {
	row := s.q.QueryRow(`SELECT `+budgetCols+` FROM budgets WHERE household_id = ? AND id = ?`, householdID, id)
	b, err := scanBudget(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (s *BudgetStore) GetByPeriod(householdID, period string) (*model.Budget, error) {
	row := s.q.QueryRow(`SELECT `+budgetCols+` FROM budgets WHERE household_id = ? AND period = ?`, householdID, period)
	b, err := scanBudget(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get budget by period: %w", err)
	}
	return b, nil
}

func (s *BudgetStore) List(householdID string) ([]model.Budget, error) {
	rows, err := s.q.Query(`SELECT `+budgetCols+` FROM budgets WHERE household_id = ? ORDER BY period DESC`, householdID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, *b)
	}
	return budgets, rows.Err()
}

func (s *BudgetStore) Update(householdID, id, period string, limitAmount decimal.Decimal) (*model.Budget, error) {
	_, err := s.q.Exec(
		`UPDATE budgets SET period = ?, limit_amount = ? WHERE household_id = ? AND id = ?`,
		period, limitAmount.String(), householdID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *BudgetStore) Delete(householdID, id string) error {
	_, err := s.q.Exec(`DELETE FROM budgets WHERE household_id = ? AND id = ?`, householdID, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}
