package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/veriga/internal/ledger"
	"github.com/erazemk/veriga/internal/model"
)

// RolesHandler handles participant role registration and membership checks.
// The administrator check lives in the ledger, not here.
type RolesHandler struct {
	DB *sql.DB
}

type registerRoleRequest struct {
	Address string `json:"address"`
}

type roleMembershipResponse struct {
	Address string `json:"address"`
	Role    string `json:"role"`
	Member  bool   `json:"member"`
}

// Register handles POST /api/roles/{role}.
func (h *RolesHandler) Register(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")
	if !model.ValidRole(role) {
		jsonError(w, http.StatusNotFound, "unknown role")
		return
	}

	var req registerRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller := callerAddress(r.Context())
	var err error
	switch role {
	case model.RoleManufacturer:
		err = ledger.RegisterManufacturer(r.Context(), h.DB, caller, req.Address)
	case model.RoleDistributor:
		err = ledger.RegisterDistributor(r.Context(), h.DB, caller, req.Address)
	case model.RoleRetailer:
		err = ledger.RegisterRetailer(r.Context(), h.DB, caller, req.Address)
	}
	if err != nil {
		ledgerError(w, err)
		return
	}

	slog.Info("role registered", "role", role, "address", req.Address, "by", caller)
	jsonResponse(w, http.StatusCreated, map[string]string{"address": req.Address, "role": role})
}

// Check handles GET /api/roles/{role}/{address}.
func (h *RolesHandler) Check(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")
	address := r.PathValue("address")

	var member bool
	var err error
	switch role {
	case model.RoleManufacturer:
		member, err = ledger.IsManufacturer(r.Context(), h.DB, address)
	case model.RoleDistributor:
		member, err = ledger.IsDistributor(r.Context(), h.DB, address)
	case model.RoleRetailer:
		member, err = ledger.IsRetailer(r.Context(), h.DB, address)
	default:
		jsonError(w, http.StatusNotFound, "unknown role")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to check role")
		return
	}

	jsonResponse(w, http.StatusOK, roleMembershipResponse{Address: address, Role: role, Member: member})
}

// List handles GET /api/participants.
func (h *RolesHandler) List(w http.ResponseWriter, r *http.Request) {
	participants, err := ledger.ListParticipants(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list participants")
		return
	}
	if participants == nil {
		participants = []model.Participant{}
	}
	jsonResponse(w, http.StatusOK, participants)
}
