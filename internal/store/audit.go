package store

import (
	"encoding/json"
	"fmt"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/google/uuid"
)

// AuditStore appends and reads the immutable audit trail. Entries are only
// ever inserted; there is no update or delete path.
type AuditStore struct {
	q Querier
}

func NewAuditStore(q Querier) *AuditStore {
	return &AuditStore{q: q}
}

func scanAuditLogEntry(scanner interface{ Scan(...any) error }) (*model.AuditLogEntry, error) {
	var e model.AuditLogEntry
	var diff []byte

	err := scanner.Scan(&e.ID, &e.HouseholdID, &e.UserID, &e.EntityTable, &e.EntityID, &e.Action, &diff, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Diff = json.RawMessage(diff)
	return &e, nil
}

const auditLogCols = `id, household_id, user_id, entity_table, entity_id, action, diff_json, created_at`

// Append records one mutation. The diff is serialized to its wire shape here,
// at the storage boundary; a failure to append must fail the enclosing
// transaction, so errors are never swallowed.
func (s *AuditStore) Append(householdID, userID, entityTable, entityID string, diff model.Diff) (*model.AuditLogEntry, error) {
	if householdID == "" || userID == "" {
		return nil, fmt.Errorf("audit append: missing household or user")
	}

	payload, err := json.Marshal(diff)
	if err != nil {
		return nil, fmt.Errorf("marshal audit diff: %w", err)
	}

	id := uuid.NewString()
	_, err = s.q.Exec(
		`INSERT INTO audit_logs (id, household_id, user_id, entity_table, entity_id, action, diff_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, householdID, userID, entityTable, entityID, diff.Action(), string(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("insert audit log: %w", err)
	}

	row := s.q.QueryRow(`SELECT `+auditLogCols+` FROM audit_logs WHERE id = ?`, id)
	return scanAuditLogEntry(row)
}

func (s *AuditStore) List(householdID string, limit int) ([]model.AuditLogEntry, error) {
	rows, err := s.q.Query(
		`SELECT `+auditLogCols+` FROM audit_logs WHERE household_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		householdID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []model.AuditLogEntry
	for rows.Next() {
		e, err := scanAuditLogEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Count returns the number of audit entries for a household.
func (s *AuditStore) Count(householdID string) (int, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM audit_logs WHERE household_id = ?`, householdID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count audit logs: %w", err)
	}
	return count, nil
}
