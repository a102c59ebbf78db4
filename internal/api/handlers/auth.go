package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/emilhuseynli/cardpay-backend/internal/api/httpx"
	"github.com/emilhuseynli/cardpay-backend/internal/api/validate"
	repo "github.com/emilhuseynli/cardpay-backend/internal/repository"
	"github.com/emilhuseynli/cardpay-backend/internal/services"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type signupReq struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResp struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	CardNumber string `json:"card_number"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
		return
	}
	var errs validate.Errs
	for _, e := range []*validate.ErrField{
		validate.Required("full_name", req.FullName),
		validate.Required("email", req.Email),
		validate.Email("email", req.Email),
		validate.MinLen("password", req.Password, 8),
	} {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	if len(errs) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", errs.Error(), errs)
		return
	}

	u, acc, err := h.users.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			httpx.WriteError(w, http.StatusConflict, "email_taken", "email already registered", nil)
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, "registration_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, signupResp{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		CardNumber: acc.CardNumber,
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "email and password required", nil)
		return
	}
	pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", nil)
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "login failed", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "refresh_token required", nil)
		return
	}
	pair, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid refresh token", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}
