package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookreview/internal/httpx"
	"bookreview/internal/platform/openlibrary"
)

// Resolver is the slice of the Open Library service the handlers need.
type Resolver interface {
	ResolveWork(ctx context.Context, workID string) (openlibrary.WorkRecord, error)
	ResolveCover(ctx context.Context, workID string, thumbnail bool) (openlibrary.CoverResult, error)
	SearchByTitle(ctx context.Context, text string) (json.RawMessage, error)
}

type WorkHandler struct {
	resolver Resolver
}

func NewWorkHandler(resolver Resolver) *WorkHandler {
	return &WorkHandler{resolver: resolver}
}

// WorkView is a resolved work with its cover merged in, the shape the book
// detail page consumes.
type WorkView struct {
	openlibrary.WorkRecord
	Cover string `json:"cover"`
}

// Route dispatches /works/{workID} and /works/{workID}/cover.
// Path params are pulled apart by hand, same as the rest of this package's
// use of net/http's ServeMux.
func (h *WorkHandler) Route(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	const prefix = "/works/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	parts := strings.Split(rest, "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		h.view(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "cover":
		h.cover(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *WorkHandler) view(w http.ResponseWriter, r *http.Request, workID string) {
	ctx := r.Context()

	rec, err := h.resolver.ResolveWork(ctx, workID)
	if err != nil {
		writeResolveError(w, r, err)
		return
	}

	// covers never error beyond identifier validation, which ResolveWork
	// already passed
	cover, _ := h.resolver.ResolveCover(ctx, workID, false)

	httpx.JSONSuccessWithRequest(r, w, WorkView{WorkRecord: rec, Cover: cover.URL})
}

func (h *WorkHandler) cover(w http.ResponseWriter, r *http.Request, workID string) {
	thumbnail := r.URL.Query().Get("thumbnail") == "true"

	res, err := h.resolver.ResolveCover(r.Context(), workID, thumbnail)
	if err != nil {
		writeResolveError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, res)
}

// Search proxies the raw Open Library search payload. Operator tooling for
// digging up work ids, not part of the reader-facing surface.
func (h *WorkHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "missing_query", "query parameter q is required", nil)
		return
	}

	raw, err := h.resolver.SearchByTitle(r.Context(), q)
	if err != nil {
		writeResolveError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, raw)
}

func writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *openlibrary.StatusError
	switch {
	case errors.Is(err, openlibrary.ErrInvalidWorkID):
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "invalid_work_id", "work id must look like OL8022414W", nil)
	case errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound:
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "work_not_found", "no such work in the catalog", nil)
	default:
		httpx.JSONErrorWithRequest(r, w, http.StatusBadGateway, "upstream_error", "could not reach the book catalog", nil)
	}
}
