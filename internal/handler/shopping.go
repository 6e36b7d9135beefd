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

type ShoppingHandler struct {
	engine        *engine.Engine
	shoppingStore *store.ShoppingListStore
	hub           *websocket.Hub
}

func NewShoppingHandler(e *engine.Engine, ss *store.ShoppingListStore, hub *websocket.Hub) *ShoppingHandler {
	return &ShoppingHandler{engine: e, shoppingStore: ss, hub: hub}
}

type shoppingEntryRequest struct {
	ItemName string `json:"item_name"`
}

func (h *ShoppingHandler) Add(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req shoppingEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.ItemName = strings.TrimSpace(req.ItemName)

	entry, err := h.engine.AddShoppingEntry(actor, req.ItemName)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("shopping_entry", "created", entry.ID, nil))
	writeJSON(w, http.StatusCreated, entry)
}

func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	entries, err := h.shoppingStore.List(actor.HouseholdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list shopping entries")
		return
	}
	if entries == nil {
		entries = []model.ShoppingListEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ShoppingHandler) MarkPurchased(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	entry, err := h.engine.MarkShoppingEntryPurchased(actor, r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("shopping_entry", "updated", entry.ID, nil))
	writeJSON(w, http.StatusOK, entry)
}

func (h *ShoppingHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if err := h.engine.RemoveShoppingEntry(actor, id); err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("shopping_entry", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type promoteRequest struct {
	EntryIDs []string `json:"entry_ids"`
}

// Promote converts selected pending entries into a purchase with inventory
// restock, then marks them purchased.
func (h *ShoppingHandler) Promote(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := h.engine.PromoteShoppingList(actor, req.EntryIDs)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("shopping_list", "promoted", result.Purchase.ID, nil))
	writeJSON(w, http.StatusOK, result)
}
