package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/mkovac/armory/internal/model"
	"github.com/mkovac/armory/internal/store"
)

// ProductsHandler handles catalog CRUD endpoints.
type ProductsHandler struct {
	DB *sql.DB
}

type productRequest struct {
	Name              string `json:"name"`
	Barcode           string `json:"barcode"`
	TotalQuantity     int    `json:"totalQuantity"`
	AvailableQuantity int    `json:"availableQuantity"`
	ImageURL          string `json:"imageUrl"`
	Status            string `json:"status"`
}

func (req *productRequest) toModel() *model.Product {
	return &model.Product{
		Name:              req.Name,
		Barcode:           req.Barcode,
		TotalQuantity:     req.TotalQuantity,
		AvailableQuantity: req.AvailableQuantity,
		ImageURL:          req.ImageURL,
		Status:            req.Status,
	}
}

// List handles GET /api/inventory/products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := store.ListProducts(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list products")
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	jsonResponse(w, http.StatusOK, products)
}

// Create handles POST /api/inventory/products.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Barcode == "" {
		jsonError(w, http.StatusBadRequest, "name and barcode required")
		return
	}

	product, err := store.CreateProduct(r.Context(), h.DB, req.toModel())
	if err != nil {
		// Duplicate barcodes land here too: a generic validation failure.
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusCreated, product)
}

// Update handles PUT /api/inventory/products/{id}.
//
// The stored available quantity is exactly what the caller sends. When the
// total changes, the client computes the proportional available adjustment
// before calling; the server does not recompute it.
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		req.Status = model.ProductStatusActive
	}
	if req.Status != model.ProductStatusActive && req.Status != model.ProductStatusDisabled {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	product, err := store.UpdateProduct(r.Context(), h.DB, id, req.toModel())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, err.Error())
			return
		}
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, product)
}

// Delete handles DELETE /api/inventory/products/{id}.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := store.DeleteProduct(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete product")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
