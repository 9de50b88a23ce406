package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	accountsHandler := &AccountsHandler{DB: db}
	rolesHandler := &RolesHandler{DB: db}
	productsHandler := &ProductsHandler{DB: db}
	eventsHandler := &EventsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Accounts (administrator address only, checked in the handler).
	mux.Handle("POST /api/accounts", authMW(http.HandlerFunc(accountsHandler.Create)))
	mux.Handle("GET /api/accounts", authMW(http.HandlerFunc(accountsHandler.List)))

	// Role registry. Registration is administrator-only, enforced by the ledger.
	mux.Handle("POST /api/roles/{role}", authMW(http.HandlerFunc(rolesHandler.Register)))
	mux.Handle("GET /api/roles/{role}/{address}", authMW(http.HandlerFunc(rolesHandler.Check)))
	mux.Handle("GET /api/participants", authMW(http.HandlerFunc(rolesHandler.List)))

	// Products. Role and ownership gates are enforced by the ledger.
	mux.Handle("POST /api/products", authMW(http.HandlerFunc(productsHandler.Create)))
	mux.Handle("GET /api/products", authMW(http.HandlerFunc(productsHandler.List)))
	mux.Handle("GET /api/products/{id}", authMW(http.HandlerFunc(productsHandler.Get)))
	mux.Handle("GET /api/products/{id}/history", authMW(http.HandlerFunc(productsHandler.GetHistory)))
	mux.Handle("POST /api/products/{id}/ship", authMW(http.HandlerFunc(productsHandler.Ship)))
	mux.Handle("POST /api/products/{id}/status", authMW(http.HandlerFunc(productsHandler.UpdateStatus)))
	mux.Handle("POST /api/products/{id}/sell", authMW(http.HandlerFunc(productsHandler.Sell)))
	mux.Handle("PUT /api/products/{id}/image", authMW(http.HandlerFunc(productsHandler.UploadImage)))
	mux.Handle("GET /api/products/{id}/image", authMW(http.HandlerFunc(productsHandler.GetImage)))

	// Events.
	mux.Handle("GET /api/events", authMW(http.HandlerFunc(eventsHandler.List)))

	return mux
}
