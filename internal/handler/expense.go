package handler

import (
	"net/http"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
)

// ExpenseHandler is read-only. Expenses are derived by bill settlement and
// never created or edited directly.
type ExpenseHandler struct {
	expenseStore *store.ExpenseStore
}

func NewExpenseHandler(es *store.ExpenseStore) *ExpenseHandler {
	return &ExpenseHandler{expenseStore: es}
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	expenses, err := h.expenseStore.List(actor.HouseholdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}
