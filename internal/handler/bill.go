package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/hearth/internal/engine"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
	"github.com/dukerupert/hearth/internal/websocket"
)

type BillHandler struct {
	engine    *engine.Engine
	billStore *store.BillStore
	hub       *websocket.Hub
}

func NewBillHandler(e *engine.Engine, bs *store.BillStore, hub *websocket.Hub) *BillHandler {
	return &BillHandler{engine: e, billStore: bs, hub: hub}
}

func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req store.CreateBillParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	bill, err := h.engine.CreateBill(actor, req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("bill", "created", bill.ID, nil))
	writeJSON(w, http.StatusCreated, bill)
}

func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	bills, err := h.billStore.List(actor.HouseholdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bills")
		return
	}
	if bills == nil {
		bills = []model.Bill{}
	}
	writeJSON(w, http.StatusOK, bills)
}

func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	bill, err := h.billStore.GetByID(actor.HouseholdID, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get bill")
		return
	}
	if bill == nil {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}

	payments, err := h.billStore.ListPayments(bill.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	if payments == nil {
		payments = []model.BillPayment{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bill":     bill,
		"payments": payments,
	})
}

func (h *BillHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req store.CreateBillParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	bill, err := h.engine.UpdateBill(actor, r.PathValue("id"), req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("bill", "updated", bill.ID, nil))
	writeJSON(w, http.StatusOK, bill)
}

func (h *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if err := h.engine.DeleteBill(actor, id); err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("bill", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type settleRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Settle records a payment against a pending bill, marks it paid, and
// derives the matching expense.
func (h *BillHandler) Settle(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := h.engine.SettleBill(actor, r.PathValue("id"), req.Amount)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Broadcast(actor.HouseholdID, websocket.NewMessage("bill", "settled", result.Bill.ID, nil))
	writeJSON(w, http.StatusOK, result)
}
