package router

import (
	"net/http"

	"docroom/internal/auth"
	"docroom/internal/docmeta"
	"docroom/internal/docmeta/service"
	"docroom/internal/docmeta/store"
	"docroom/internal/ingest"
	"docroom/middleware"
)

// Deps is the application context assembled in main: every long-lived handle
// the handlers need, constructed once at startup and passed down explicitly.
type Deps struct {
	Store      store.Store
	Issuer     *auth.Issuer
	Authorizer auth.Authorizer
	DemoUserID string
	ProtectAPI bool
}

// Setup wires the route table. Handler construction happens here so main
// stays bootstrap-only.
func Setup(deps Deps) http.Handler {
	mux := http.NewServeMux()

	docService := service.NewDocService(deps.Store)
	docHandler := docmeta.NewHandler(docService)
	authHandler := auth.NewHandler(deps.Issuer, deps.Authorizer, deps.DemoUserID)
	ingestHandler := ingest.NewHandler()

	// Relay-facing endpoints
	mux.HandleFunc("POST /basic-ws-callback", ingestHandler.Callback)
	mux.HandleFunc("/ydoc/{room}", ingestHandler.YDoc) // no method: relay versions disagree on PUT vs POST
	mux.HandleFunc("GET /auth/perm/{room}/{userid}", authHandler.Permission)

	// Client-facing endpoints
	mux.HandleFunc("GET /auth/token", authHandler.Token)

	// The docs API is open by default; API_AUTH=true puts it behind the same
	// tokens the relay consumes.
	guard := func(h http.HandlerFunc) http.Handler { return h }
	if deps.ProtectAPI {
		tokenAuth := middleware.TokenAuth(deps.Issuer)
		guard = func(h http.HandlerFunc) http.Handler { return tokenAuth(h) }
	}
	mux.Handle("GET /api/docs", guard(docHandler.List))
	mux.Handle("POST /api/docs", guard(docHandler.Create))
	mux.Handle("PATCH /api/docs/{id}/title", guard(docHandler.UpdateTitle))
	mux.Handle("DELETE /api/docs/{id}", guard(docHandler.Delete))

	return middleware.CORSMiddleware(middleware.RequestLogger(mux))
}
