package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/veriga/internal/imaging"
	"github.com/erazemk/veriga/internal/ledger"
	"github.com/erazemk/veriga/internal/model"
)

// ProductsHandler handles product creation, lifecycle and query endpoints.
// Authorization (manufacturer role, current ownership) is enforced by the
// ledger against the authenticated caller address.
type ProductsHandler struct {
	DB *sql.DB
}

type createProductRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type createProductResponse struct {
	ID int64 `json:"id"`
}

type shipProductRequest struct {
	To       string `json:"to"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

type updateStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

type sellProductRequest struct {
	Consumer string `json:"consumer"`
	Location string `json:"location"`
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller := callerAddress(r.Context())
	id, err := ledger.CreateProduct(r.Context(), h.DB, caller, req.Name, req.Location)
	if err != nil {
		ledgerError(w, err)
		return
	}

	slog.Info("product created", "id", id, "name", req.Name, "manufacturer", caller)
	jsonResponse(w, http.StatusCreated, createProductResponse{ID: id})
}

// Ship handles POST /api/products/{id}/ship.
func (h *ProductsHandler) Ship(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req shipProductRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller := callerAddress(r.Context())
	if err := ledger.ShipProduct(r.Context(), h.DB, caller, id, req.To, req.Location, req.Status); err != nil {
		ledgerError(w, err)
		return
	}

	slog.Info("product shipped", "id", id, "from", caller, "to", req.To, "status", req.Status)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "product shipped"})
}

// UpdateStatus handles POST /api/products/{id}/status.
func (h *ProductsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller := callerAddress(r.Context())
	if err := ledger.UpdateProductStatus(r.Context(), h.DB, caller, id, req.Status, req.Location); err != nil {
		ledgerError(w, err)
		return
	}

	slog.Info("product status updated", "id", id, "owner", caller, "status", req.Status)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "status updated"})
}

// Sell handles POST /api/products/{id}/sell.
func (h *ProductsHandler) Sell(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req sellProductRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller := callerAddress(r.Context())
	if err := ledger.MarkAsSold(r.Context(), h.DB, caller, id, req.Consumer, req.Location); err != nil {
		ledgerError(w, err)
		return
	}

	slog.Info("product sold", "id", id, "seller", caller, "consumer", req.Consumer)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "product sold"})
}

// Get handles GET /api/products/{id}.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := ledger.GetProduct(r.Context(), h.DB, id)
	if err != nil {
		ledgerError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, product)
}

// GetHistory handles GET /api/products/{id}/history.
func (h *ProductsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	history, err := ledger.GetProductHistory(r.Context(), h.DB, id)
	if err != nil {
		ledgerError(w, err)
		return
	}
	if history == nil {
		history = []model.HistoryEntry{}
	}
	jsonResponse(w, http.StatusOK, history)
}

// List handles GET /api/products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := ledger.ListProducts(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	jsonResponse(w, http.StatusOK, products)
}

// UploadImage handles PUT /api/products/{id}/image.
func (h *ProductsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	photo, err := imaging.Process(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller := callerAddress(r.Context())
	if err := ledger.SetProductImage(r.Context(), h.DB, caller, id, photo.Data, photo.MIME); err != nil {
		ledgerError(w, err)
		return
	}

	slog.Info("product photo updated", "id", id, "by", caller, "bytes", len(photo.Data))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo updated"})
}

// GetImage handles GET /api/products/{id}/image.
func (h *ProductsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	data, mime, err := ledger.GetProductImage(r.Context(), h.DB, id)
	if err != nil {
		ledgerError(w, err)
		return
	}
	if len(data) == 0 {
		jsonError(w, http.StatusNotFound, "product has no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// productID parses the {id} path value, writing a 400 response on failure.
func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}
