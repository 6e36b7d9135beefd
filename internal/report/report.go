// Package report builds read-only monthly summaries from the expense, waste,
// purchase, and budget tables. All money arithmetic happens in Go on exact
// decimals; SQL only filters and groups rows.
package report

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/dukerupert/hearth/internal/store"
	"github.com/shopspring/decimal"
)

// UncategorizedKey is the bucket for expenses with no category. An expense
// whose category was never set is reported, not dropped.
const UncategorizedKey = "uncategorized"

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// MonthlySummary is one household's financial picture for one YYYY-MM period.
type MonthlySummary struct {
	Period          string                     `json:"period"`
	TotalSpend      decimal.Decimal            `json:"total_spend"`
	SpendByCategory map[string]decimal.Decimal `json:"spend_by_category"`
	WasteByReason   map[string]int64           `json:"waste_by_reason"`
	Contributions   map[string]decimal.Decimal `json:"contributions"`
	BudgetLimit     *decimal.Decimal           `json:"budget_limit"`
	OverBudget      bool                       `json:"over_budget"`
}

type Reporter struct {
	q store.Querier
}

func New(q store.Querier) *Reporter {
	return &Reporter{q: q}
}

// MonthlySummary aggregates expenses, waste events, and purchase
// contributions for the period, and compares total spend against the
// period's budget if one exists.
func (r *Reporter) MonthlySummary(householdID, period string) (*MonthlySummary, error) {
	if !periodPattern.MatchString(period) {
		return nil, fmt.Errorf("invalid period %q", period)
	}

	summary := &MonthlySummary{
		Period:          period,
		TotalSpend:      decimal.Zero,
		SpendByCategory: map[string]decimal.Decimal{},
		WasteByReason:   map[string]int64{},
		Contributions:   map[string]decimal.Decimal{},
	}

	if err := r.sumExpenses(householdID, period, summary); err != nil {
		return nil, err
	}
	if err := r.sumWaste(householdID, period, summary); err != nil {
		return nil, err
	}
	if err := r.sumContributions(householdID, period, summary); err != nil {
		return nil, err
	}

	limit, err := r.budgetLimit(householdID, period)
	if err != nil {
		return nil, err
	}
	summary.BudgetLimit = limit
	summary.OverBudget = limit != nil && summary.TotalSpend.GreaterThan(*limit)

	return summary, nil
}

func (r *Reporter) sumExpenses(householdID, period string, summary *MonthlySummary) error {
	rows, err := r.q.Query(
		`SELECT amount, category FROM expenses WHERE household_id = ? AND substr(date, 1, 7) = ?`,
		householdID, period,
	)
	if err != nil {
		return fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		var category sql.NullString
		if err := rows.Scan(&raw, &category); err != nil {
			return fmt.Errorf("scan expense row: %w", err)
		}

		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("parse expense amount: %w", err)
		}

		key := UncategorizedKey
		if category.Valid {
			key = category.String
		}
		summary.TotalSpend = summary.TotalSpend.Add(amount)
		summary.SpendByCategory[key] = summary.SpendByCategory[key].Add(amount)
	}
	return rows.Err()
}

func (r *Reporter) sumWaste(householdID, period string, summary *MonthlySummary) error {
	rows, err := r.q.Query(
		`SELECT reason, quantity FROM waste_events WHERE household_id = ? AND substr(event_date, 1, 7) = ?`,
		householdID, period,
	)
	if err != nil {
		return fmt.Errorf("query waste events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reason string
		var quantity int64
		if err := rows.Scan(&reason, &quantity); err != nil {
			return fmt.Errorf("scan waste row: %w", err)
		}
		summary.WasteByReason[reason] += quantity
	}
	return rows.Err()
}

// sumContributions groups purchase totals by the member who paid. This is
// purchase spend only; bill payments flow into expenses, not contributions.
func (r *Reporter) sumContributions(householdID, period string, summary *MonthlySummary) error {
	rows, err := r.q.Query(
		`SELECT paid_by_user_id, total_amount FROM purchases WHERE household_id = ? AND substr(purchase_date, 1, 7) = ?`,
		householdID, period,
	)
	if err != nil {
		return fmt.Errorf("query purchases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payer, raw string
		if err := rows.Scan(&payer, &raw); err != nil {
			return fmt.Errorf("scan purchase row: %w", err)
		}

		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("parse purchase total: %w", err)
		}
		summary.Contributions[payer] = summary.Contributions[payer].Add(amount)
	}
	return rows.Err()
}

func (r *Reporter) budgetLimit(householdID, period string) (*decimal.Decimal, error) {
	row := r.q.QueryRow(
		`SELECT limit_amount FROM budgets WHERE household_id = ? AND period = ?`,
		householdID, period,
	)

	var raw string
	err := row.Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query budget: %w", err)
	}

	limit, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse budget limit: %w", err)
	}
	return &limit, nil
}
