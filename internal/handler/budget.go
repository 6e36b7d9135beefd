package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/hearth/internal/engine"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
	"github.com/dukerupert/hearth/internal/websocket"
)

type BudgetHandler struct {
	engine      *engine.Engine
	budgetStore *store.BudgetStore
	hub         *websocket.Hub
}

func NewBudgetHandler(e *engine.Engine, bs *store.BudgetStore, hub *websocket.Hub) *BudgetHandler {
	return &BudgetHandler{engine: e, budgetStore: bs, hub: hub}
}

type budgetRequest struct {
	Period      string          `json:"period"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
}

func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	budget, err := h.engine.CreateBudget(actor, req.Period, req.LimitAmount)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("budget", "created", budget.ID, nil))
	writeJSON(w, http.StatusCreated, budget)
}

func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	budgets, err := h.budgetStore.List(actor.HouseholdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list budgets")
		return
	}
	if budgets == nil {
		budgets = []model.Budget{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	budget, err := h.engine.UpdateBudget(actor, r.PathValue("id"), req.Period, req.LimitAmount)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("budget", "updated", budget.ID, nil))
	writeJSON(w, http.StatusOK, budget)
}

func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if err := h.engine.DeleteBudget(actor, id); err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("budget", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
