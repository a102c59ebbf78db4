package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/emilhuseynli/cardpay-backend/internal/api/httpx"
	"github.com/emilhuseynli/cardpay-backend/internal/ledger"
	"github.com/emilhuseynli/cardpay-backend/internal/models"
	"github.com/emilhuseynli/cardpay-backend/internal/services"
	"github.com/emilhuseynli/cardpay-backend/internal/session"
)

type LedgerHandler struct {
	engine *ledger.Engine
	users  *services.UserService
}

func NewLedgerHandler(engine *ledger.Engine, users *services.UserService) *LedgerHandler {
	return &LedgerHandler{engine: engine, users: users}
}

func (h *LedgerHandler) actor(w http.ResponseWriter, r *http.Request) (session.Actor, bool) {
	a, ok := session.FromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "no session", nil)
		return session.Actor{}, false
	}
	return a, true
}

type meResp struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	CardNumber string `json:"card_number"`
	Balance    string `json:"balance"`
}

func (h *LedgerHandler) Me(w http.ResponseWriter, r *http.Request) {
	a, ok := h.actor(w, r)
	if !ok {
		return
	}
	u, err := h.users.Get(r.Context(), a.UserID)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "user not found", nil)
		return
	}
	bal, err := h.engine.Balance(r.Context(), a.Card)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, meResp{
		FullName:   u.FullName,
		Email:      u.Email,
		CardNumber: a.Card,
		Balance:    bal.String(),
	})
}

func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	a, ok := h.actor(w, r)
	if !ok {
		return
	}
	bal, err := h.engine.Balance(r.Context(), a.Card)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"card_number": a.Card,
		"balance":     bal.String(),
	})
}

type transferReq struct {
	DestCard string `json:"dest_card"`
	Amount   string `json:"amount"` // decimal string, e.g. "30.00"
}

func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	a, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req transferReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DestCard == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "dest_card and amount required", nil)
		return
	}
	amount, err := models.ParseMoney(req.Amount)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", err.Error(), nil)
		return
	}
	txn, err := h.engine.Transfer(r.Context(), a, a.Card, req.DestCard, amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, txn)
}

type topUpReq struct {
	Amount string `json:"amount"`
}

func (h *LedgerHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	a, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req topUpReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
		return
	}
	amount, err := models.ParseMoney(req.Amount)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", err.Error(), nil)
		return
	}
	txn, err := h.engine.Deposit(r.Context(), a, a.Card, amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, txn)
}

func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	a, ok := h.actor(w, r)
	if !ok {
		return
	}
	limit, offset := 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	txns, err := h.engine.History(r.Context(), a.UserID, limit, offset)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	httpx.WriteJSON(w, http.StatusOK, txns)
}

func (h *LedgerHandler) Totals(w http.ResponseWriter, r *http.Request) {
	a, ok := h.actor(w, r)
	if !ok {
		return
	}
	t, err := h.engine.Aggregate(r.Context(), a.UserID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"count": t.Count,
		"total": t.Total.String(),
	})
}

// writeLedgerError maps the engine taxonomy onto HTTP. A failed
// operation never carries a success-shaped body.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", err.Error(), nil)
	case errors.Is(err, ledger.ErrSelfTransfer):
		httpx.WriteError(w, http.StatusBadRequest, "self_transfer", err.Error(), nil)
	case errors.Is(err, ledger.ErrInsufficientFunds):
		httpx.WriteError(w, http.StatusUnprocessableEntity, "insufficient_funds", err.Error(), nil)
	case errors.Is(err, ledger.ErrDestinationNotFound):
		httpx.WriteError(w, http.StatusUnprocessableEntity, "destination_not_found", err.Error(), nil)
	case errors.Is(err, ledger.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, ledger.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, ledger.ErrStorageUnavailable):
		httpx.WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "try again later", nil)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
