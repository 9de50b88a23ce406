package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/veriga/internal/store"
)

// AccountsHandler handles account management endpoints. Account creation
// and listing are restricted to the administrator address.
type AccountsHandler struct {
	DB *sql.DB
}

type createAccountRequest struct {
	Address  string `json:"address"`
	Password string `json:"password"`
}

// Create handles POST /api/accounts.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Address == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "address and password required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	account, err := store.CreateAccount(r.Context(), h.DB, req.Address, string(hash))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "failed to create account (address may already exist)")
		return
	}

	slog.Info("account created", "address", account.Address, "by", callerAddress(r.Context()))
	jsonResponse(w, http.StatusCreated, account)
}

// List handles GET /api/accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	accounts, err := store.ListAccounts(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}
	jsonResponse(w, http.StatusOK, accounts)
}

// requireAdmin checks that the caller is the administrator address.
func (h *AccountsHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	admin, err := store.GetAdminAddress(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return false
	}
	if callerAddress(r.Context()) != admin {
		jsonError(w, http.StatusForbidden, "administrator only")
		return false
	}
	return true
}
