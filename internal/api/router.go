package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dhcraft/m3gim/internal/archiveservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *archiveservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Records.
	r.Get("/records", h.ListRecords)
	r.Get("/records/*", h.GetRecord)

	// Konvolute.
	r.Get("/konvolute", h.ListKonvolute)
	r.Get("/konvolute/*", h.GetKonvolut)

	// Entity indexes.
	r.Get("/entities/persons", h.ListPersons)
	r.Get("/entities/organizations", h.ListOrganizations)
	r.Get("/entities/locations", h.ListLocations)
	r.Get("/entities/works", h.ListWorks)

	// View aggregates.
	r.Get("/aggregates/matrix", h.Matrix)
	r.Get("/aggregates/kosmos", h.Kosmos)
	r.Get("/aggregates/mobility", h.Mobility)

	// Search and metadata.
	r.Get("/search", h.Search)
	r.Get("/counts", h.Counts)
	r.Get("/stats", h.Stats)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
