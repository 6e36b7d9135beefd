package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/hearth/internal/engine"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
	"github.com/dukerupert/hearth/internal/websocket"
)

type ItemHandler struct {
	engine    *engine.Engine
	itemStore *store.ItemStore
	hub       *websocket.Hub
}

func NewItemHandler(e *engine.Engine, is *store.ItemStore, hub *websocket.Hub) *ItemHandler {
	return &ItemHandler{engine: e, itemStore: is, hub: hub}
}

type itemRequest struct {
	Name        string  `json:"name"`
	DefaultUnit *string `json:"default_unit"`
	Perishable  bool    `json:"perishable"`
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	item, err := h.engine.CreateItem(actor, req.Name, req.DefaultUnit, req.Perishable)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("item", "created", item.ID, nil))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	items, err := h.itemStore.List(actor.HouseholdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	item, err := h.itemStore.GetByID(actor.HouseholdID, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	item, err := h.engine.UpdateItem(actor, r.PathValue("id"), req.Name, req.DefaultUnit, req.Perishable)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("item", "updated", item.ID, nil))
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if err := h.engine.DeleteItem(actor, id); err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("item", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
