package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/erazemk/veriga/internal/ledger"
	"github.com/erazemk/veriga/internal/model"
)

// EventsHandler handles event query endpoints.
type EventsHandler struct {
	DB *sql.DB
}

// List handles GET /api/events, optionally filtered by product_id.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	var productID int64
	if v := r.URL.Query().Get("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid product_id")
			return
		}
		productID = id
	}

	events, err := ledger.ListEvents(r.Context(), h.DB, productID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	jsonResponse(w, http.StatusOK, events)
}
