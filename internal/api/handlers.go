package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dhcraft/m3gim/internal/apperr"
	"github.com/dhcraft/m3gim/internal/archiveservice"
	"github.com/dhcraft/m3gim/internal/query"
)

// Handler holds API route handlers.
type Handler struct {
	svc *archiveservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *archiveservice.Service) *Handler {
	return &Handler{svc: svc}
}

// wildcardID extracts an entity ID from the URL wildcard. Supports encoded
// colons from strict clients (e.g. m3gim%3ANIM_003_1).
func wildcardID(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// filterSpec builds a query.Spec from request query parameters.
func filterSpec(r *http.Request) query.Spec {
	q := r.URL.Query()
	spec := query.Spec{
		Search:       q.Get("q"),
		DocTypes:     splitMulti(q["doctype"]),
		Bestand:      splitMulti(q["bestand"]),
		AccessStatus: splitMulti(q["access"]),
	}
	if g := q.Get("gruppe"); g != "" {
		spec.Tektonik = &query.Tektonik{Kind: query.TektonikGruppe, Value: g}
	} else if p := q.Get("prefix"); p != "" {
		spec.Tektonik = &query.Tektonik{Kind: query.TektonikPrefix, Value: p}
	}
	return spec
}

// splitMulti accepts both repeated parameters and comma-separated values.
func splitMulti(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ListRecords handles GET /api/records.
//
//	@Summary		List records with optional filters
//	@Tags			records
//	@Produce		json
//	@Param			q		query		string	false	"Substring search over title, scope and signature"
//	@Param			gruppe	query		string	false	"Tektonik group"	Enums(Hauptbestand, Plakate, Fotografien, Tonträger)
//	@Param			prefix	query		string	false	"Signature prefix (ignored when gruppe is set)"
//	@Param			doctype	query		string	false	"Document type filter, repeatable or comma-separated"
//	@Param			bestand	query		string	false	"Bestand filter"	Enums(objekte, fotos)
//	@Param			access	query		string	false	"Access status filter"	Enums(offen, eingeschraenkt, gesperrt)
//	@Success		200		{object}	RecordListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/records [get]
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	spec := filterSpec(r)
	records, err := h.svc.Records(r.Context(), spec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"total":   len(records),
	})
}

// GetRecord handles GET /api/records/*.
//
//	@Summary		Get a single record by ID
//	@Tags			records
//	@Produce		json
//	@Param			id	path		string	true	"Record ID"
//	@Success		200	{object}	archiveservice.RecordDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/records/{id} [get]
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := wildcardID(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	detail, err := h.svc.Record(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
		} else {
			slog.Error("get record failed", slog.String("id", id), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// ListKonvolute handles GET /api/konvolute.
//
//	@Summary		List all Konvolute with derived metadata
//	@Tags			konvolute
//	@Produce		json
//	@Success		200	{object}	KonvolutListResponse
//	@Security		BearerAuth
//	@Router			/konvolute [get]
func (h *Handler) ListKonvolute(w http.ResponseWriter, r *http.Request) {
	ks := h.svc.Konvolute(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"konvolute": ks,
		"total":     len(ks),
	})
}

// GetKonvolut handles GET /api/konvolute/*.
//
//	@Summary		Get a single Konvolut by ID
//	@Tags			konvolute
//	@Produce		json
//	@Param			id	path		string	true	"Konvolut ID"
//	@Success		200	{object}	archiveservice.KonvolutDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/konvolute/{id} [get]
func (h *Handler) GetKonvolut(w http.ResponseWriter, r *http.Request) {
	id := wildcardID(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	detail, err := h.svc.Konvolut(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
		} else {
			slog.Error("get konvolut failed", slog.String("id", id), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// ListPersons handles GET /api/entities/persons.
//
//	@Summary		List the person index
//	@Tags			entities
//	@Produce		json
//	@Success		200	{object}	PersonListResponse
//	@Security		BearerAuth
//	@Router			/entities/persons [get]
func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Persons(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"persons": items, "total": len(items)})
}

// ListOrganizations handles GET /api/entities/organizations.
//
//	@Summary		List the organization index
//	@Tags			entities
//	@Produce		json
//	@Success		200	{object}	OrgListResponse
//	@Security		BearerAuth
//	@Router			/entities/organizations [get]
func (h *Handler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Organizations(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"organizations": items, "total": len(items)})
}

// ListLocations handles GET /api/entities/locations.
//
//	@Summary		List the location index
//	@Tags			entities
//	@Produce		json
//	@Success		200	{object}	LocationListResponse
//	@Security		BearerAuth
//	@Router			/entities/locations [get]
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Locations(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"locations": items, "total": len(items)})
}

// ListWorks handles GET /api/entities/works.
//
//	@Summary		List the musical-work index
//	@Tags			entities
//	@Produce		json
//	@Success		200	{object}	WorkListResponse
//	@Security		BearerAuth
//	@Router			/entities/works [get]
func (h *Handler) ListWorks(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Works(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"works": items, "total": len(items)})
}

// Matrix handles GET /api/aggregates/matrix.
//
//	@Summary		Person×period relationship intensity matrix
//	@Tags			aggregates
//	@Produce		json
//	@Success		200	{object}	aggregate.MatrixData
//	@Security		BearerAuth
//	@Router			/aggregates/matrix [get]
func (h *Handler) Matrix(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Matrix(r.Context()))
}

// Kosmos handles GET /api/aggregates/kosmos.
//
//	@Summary		Composer repertoire graph
//	@Tags			aggregates
//	@Produce		json
//	@Success		200	{object}	aggregate.KosmosData
//	@Security		BearerAuth
//	@Router			/aggregates/kosmos [get]
func (h *Handler) Kosmos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Kosmos(r.Context()))
}

// Mobility handles GET /api/aggregates/mobility.
//
//	@Summary		Geographic mobility timeline
//	@Tags			aggregates
//	@Produce		json
//	@Success		200	{object}	aggregate.MobilityData
//	@Security		BearerAuth
//	@Router			/aggregates/mobility [get]
func (h *Handler) Mobility(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Mobility(r.Context()))
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across records
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}

// Counts handles GET /api/counts.
//
//	@Summary		Record counts per Tektonik group
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	map[string]int
//	@Security		BearerAuth
//	@Router			/counts [get]
func (h *Handler) Counts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Counts(r.Context()))
}

// Stats handles GET /api/stats.
//
//	@Summary		Snapshot summary and coverage
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	archiveservice.Stats
//	@Security		BearerAuth
//	@Router			/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Stats(r.Context()))
}
