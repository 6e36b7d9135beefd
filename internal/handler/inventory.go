package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/hearth/internal/engine"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
	"github.com/dukerupert/hearth/internal/websocket"
)

type InventoryHandler struct {
	engine         *engine.Engine
	inventoryStore *store.InventoryStore
	hub            *websocket.Hub
}

func NewInventoryHandler(e *engine.Engine, is *store.InventoryStore, hub *websocket.Hub) *InventoryHandler {
	return &InventoryHandler{engine: e, inventoryStore: is, hub: hub}
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req store.CreateInventoryParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	rec, err := h.engine.CreateInventory(actor, req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("inventory", "created", rec.ID, nil))
	writeJSON(w, http.StatusCreated, rec)
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	records, err := h.inventoryStore.List(actor.HouseholdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list inventory")
		return
	}
	if records == nil {
		records = []model.InventoryRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	rec, err := h.inventoryStore.GetByID(actor.HouseholdID, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get inventory record")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "inventory record not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req store.CreateInventoryParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	rec, err := h.engine.UpdateInventory(actor, r.PathValue("id"), req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("inventory", "updated", rec.ID, nil))
	writeJSON(w, http.StatusOK, rec)
}

func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if err := h.engine.DeleteInventory(actor, id); err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("inventory", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
