package api

import (
	"database/sql"
	"net/http"

	"github.com/mkovac/armory/internal/auth"
)

// NewRouter creates the API router with all endpoints registered.
// uploadsDir is where uploaded files are stored and served from.
func NewRouter(db *sql.DB, gate *auth.Gate, uploadsDir string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, Gate: gate}
	productsHandler := &ProductsHandler{DB: db}
	officersHandler := &OfficersHandler{DB: db}
	txnsHandler := &TransactionsHandler{DB: db}
	sheetHandler := &SheetHandler{DB: db}
	filesHandler := &FilesHandler{Dir: uploadsDir}

	authMW := AuthMiddleware(gate)
	guard := func(h http.HandlerFunc) http.Handler { return authMW(h) }

	// Public: login, export, open-local, uploaded files.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/inventory/export", sheetHandler.Export)
	mux.HandleFunc("GET /api/inventory/open-local", sheetHandler.OpenLocal)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	// Catalog.
	mux.Handle("GET /api/inventory/products", guard(productsHandler.List))
	mux.Handle("POST /api/inventory/products", guard(productsHandler.Create))
	mux.Handle("PUT /api/inventory/products/{id}", guard(productsHandler.Update))
	mux.Handle("DELETE /api/inventory/products/{id}", guard(productsHandler.Delete))

	// Reconciliation.
	mux.Handle("POST /api/inventory/sync", guard(sheetHandler.Sync))
	mux.Handle("POST /api/inventory/set-excel-path", guard(sheetHandler.SetPath))

	// Registry.
	mux.Handle("GET /api/officers", guard(officersHandler.List))
	mux.Handle("POST /api/officers", guard(officersHandler.Create))
	mux.Handle("PUT /api/officers/{id}", guard(officersHandler.Update))
	mux.Handle("DELETE /api/officers/{id}", guard(officersHandler.Delete))

	// Ledger.
	mux.Handle("GET /api/transactions/pending", guard(txnsHandler.Pending))
	mux.Handle("GET /api/transactions/all", guard(txnsHandler.All))
	mux.Handle("POST /api/transactions/issue", guard(txnsHandler.Issue))
	mux.Handle("POST /api/transactions/return/{id}", guard(txnsHandler.Return))
	mux.Handle("DELETE /api/transactions/clear-all", guard(txnsHandler.ClearAll))

	// Files.
	mux.Handle("POST /api/files/upload", guard(filesHandler.Upload))

	return mux
}
