package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/hearth/internal/engine"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
	"github.com/dukerupert/hearth/internal/websocket"
)

type PurchaseHandler struct {
	engine        *engine.Engine
	purchaseStore *store.PurchaseStore
	hub           *websocket.Hub
}

func NewPurchaseHandler(e *engine.Engine, ps *store.PurchaseStore, hub *websocket.Hub) *PurchaseHandler {
	return &PurchaseHandler{engine: e, purchaseStore: ps, hub: hub}
}

// Intake records a purchase with its line items and restocks inventory in one
// shot.
func (h *PurchaseHandler) Intake(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var in engine.PurchaseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := h.engine.IntakePurchase(actor, in)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("purchase", "created", result.Purchase.ID, nil))
	writeJSON(w, http.StatusCreated, result)
}

func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	purchases, err := h.purchaseStore.List(actor.HouseholdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list purchases")
		return
	}
	if purchases == nil {
		purchases = []model.Purchase{}
	}
	writeJSON(w, http.StatusOK, purchases)
}

func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	purchase, err := h.purchaseStore.GetByID(actor.HouseholdID, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get purchase")
		return
	}
	if purchase == nil {
		writeError(w, http.StatusNotFound, "purchase not found")
		return
	}

	lines, err := h.purchaseStore.ListLines(purchase.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list purchase lines")
		return
	}
	if lines == nil {
		lines = []model.PurchaseLine{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"purchase": purchase,
		"lines":    lines,
	})
}
