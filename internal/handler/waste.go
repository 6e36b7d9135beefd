package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/hearth/internal/engine"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
	"github.com/dukerupert/hearth/internal/websocket"
)

type WasteHandler struct {
	engine     *engine.Engine
	wasteStore *store.WasteStore
	hub        *websocket.Hub
}

func NewWasteHandler(e *engine.Engine, ws *store.WasteStore, hub *websocket.Hub) *WasteHandler {
	return &WasteHandler{engine: e, wasteStore: ws, hub: hub}
}

type wasteRequest struct {
	InventoryID string `json:"inventory_id"`
	Quantity    int64  `json:"quantity"`
	Reason      string `json:"reason"`
}

func (h *WasteHandler) Record(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req wasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	event, err := h.engine.RecordWaste(actor, req.InventoryID, req.Quantity, req.Reason)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("waste_event", "created", event.ID, nil))
	writeJSON(w, http.StatusCreated, event)
}

func (h *WasteHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	events, err := h.wasteStore.List(actor.HouseholdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list waste events")
		return
	}
	if events == nil {
		events = []model.WasteEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
