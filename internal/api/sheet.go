package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/mkovac/armory/internal/sheet"
	"github.com/mkovac/armory/internal/store"
)

// SheetHandler handles spreadsheet reconciliation and export endpoints.
type SheetHandler struct {
	DB *sql.DB
}

type setPathRequest struct {
	Path string `json:"path"`
}

// Sync handles POST /api/inventory/sync: reconcile the catalog against the
// configured spreadsheet.
func (h *SheetHandler) Sync(w http.ResponseWriter, r *http.Request) {
	path, err := store.GetSpreadsheetPath(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to read spreadsheet path")
		return
	}
	if path == "" {
		jsonError(w, http.StatusBadRequest, "no spreadsheet path configured")
		return
	}

	count, err := sheet.Sync(r.Context(), h.DB, path)
	if err != nil {
		storeError(w, err, "failed to sync spreadsheet")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Successfully synced %d products", count),
	})
}

// SetPath handles POST /api/inventory/set-excel-path.
func (h *SheetHandler) SetPath(w http.ResponseWriter, r *http.Request) {
	var req setPathRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		jsonError(w, http.StatusBadRequest, "path required")
		return
	}
	if _, err := os.Stat(req.Path); err != nil {
		jsonError(w, http.StatusBadRequest, "file not found at: "+req.Path)
		return
	}

	if err := store.SetSpreadsheetPath(r.Context(), h.DB, req.Path); err != nil {
		storeError(w, err, "failed to save spreadsheet path")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "spreadsheet path saved"})
}

// OpenLocal handles GET /api/inventory/open-local: open the configured file
// with the operating system's default application.
func (h *SheetHandler) OpenLocal(w http.ResponseWriter, r *http.Request) {
	path, err := store.GetSpreadsheetPath(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to read spreadsheet path")
		return
	}
	if path == "" {
		jsonError(w, http.StatusNotFound, "no spreadsheet path configured")
		return
	}
	if _, err := os.Stat(path); err != nil {
		jsonError(w, http.StatusNotFound, "spreadsheet not found at: "+path)
		return
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "opening"})
}

// Export handles GET /api/inventory/export: stream the catalog as a workbook.
func (h *SheetHandler) Export(w http.ResponseWriter, r *http.Request) {
	products, err := store.ListProducts(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list products")
		return
	}

	buf, err := sheet.Export(products)
	if err != nil {
		storeError(w, err, "failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory_export.xlsx"`)
	w.Write(buf.Bytes())
}
