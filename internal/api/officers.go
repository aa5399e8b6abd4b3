package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/mkovac/armory/internal/model"
	"github.com/mkovac/armory/internal/store"
)

// OfficersHandler handles registry CRUD endpoints.
type OfficersHandler struct {
	DB *sql.DB
}

type officerRequest struct {
	BadgeNumber string `json:"badgeNumber"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
	ImageURL    string `json:"imageUrl"`
}

func (req *officerRequest) toModel() *model.Officer {
	return &model.Officer{
		BadgeNumber: req.BadgeNumber,
		Name:        req.Name,
		Department:  req.Department,
		Phone:       req.Phone,
		Notes:       req.Notes,
		ImageURL:    req.ImageURL,
	}
}

// List handles GET /api/officers.
func (h *OfficersHandler) List(w http.ResponseWriter, r *http.Request) {
	officers, err := store.ListOfficers(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list officers")
		return
	}
	if officers == nil {
		officers = []model.Officer{}
	}
	jsonResponse(w, http.StatusOK, officers)
}

// Create handles POST /api/officers.
func (h *OfficersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req officerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BadgeNumber == "" {
		jsonError(w, http.StatusBadRequest, "badge number required")
		return
	}

	officer, err := store.CreateOfficer(r.Context(), h.DB, req.toModel())
	if err != nil {
		// Duplicate badge numbers land here too: a generic validation failure.
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusCreated, officer)
}

// Update handles PUT /api/officers/{id}.
func (h *OfficersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid officer id")
		return
	}

	var req officerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	officer, err := store.UpdateOfficer(r.Context(), h.DB, id, req.toModel())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, err.Error())
			return
		}
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, officer)
}

// Delete handles DELETE /api/officers/{id}.
func (h *OfficersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid officer id")
		return
	}

	if err := store.DeleteOfficer(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete officer")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
