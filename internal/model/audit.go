package model

import (
	"encoding/json"
	"time"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// AuditLogEntry is the append-only record of one committed mutation. The diff
// payload has a durable external contract: the full record for create/delete,
// an {"old": ..., "new": ...} snapshot pair for update.
type AuditLogEntry struct {
	ID          string          `json:"id"`
	HouseholdID string          `json:"household_id"`
	UserID      string          `json:"user_id"`
	EntityTable string          `json:"entity_table"`
	EntityID    string          `json:"entity_id"`
	Action      string          `json:"action"`
	Diff        json.RawMessage `json:"diff"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Diff is a tagged snapshot of one mutation: Created(record), Updated(old,
// new), or Deleted(record). It stays structured in memory and only collapses
// to the schemaless wire shape when marshaled at the storage boundary.
type Diff struct {
	action string
	record any
	old    any
	new    any
}

func Created(record any) Diff {
	return Diff{action: ActionCreate, record: record}
}

func Updated(old, new any) Diff {
	return Diff{action: ActionUpdate, old: old, new: new}
}

func Deleted(record any) Diff {
	return Diff{action: ActionDelete, record: record}
}

// Action returns the mutation kind the diff was built for.
func (d Diff) Action() string {
	return d.action
}

func (d Diff) MarshalJSON() ([]byte, error) {
	if d.action == ActionUpdate {
		return json.Marshal(struct {
			Old any `json:"old"`
			New any `json:"new"`
		}{Old: d.old, New: d.new})
	}
	return json.Marshal(d.record)
}
