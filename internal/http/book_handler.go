package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"bookreview/internal/entity"
	"bookreview/internal/httpx"
	"bookreview/internal/store"
)

// BookRepository is the persisted-shelf port the handler needs.
type BookRepository interface {
	List(ctx context.Context, genre string) ([]entity.Book, error)
	Create(ctx context.Context, b *entity.Book) error
}

type BookHandler struct {
	repo BookRepository
}

func NewBookHandler(repo BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	books, err := h.repo.List(r.Context(), r.URL.Query().Get("genre"))
	if err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "server_error", "could not list books", nil)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	httpx.JSONSuccessWithRequest(r, w, books)
}

type CreateBookRequest struct {
	WorkID   string `json:"work_id" validate:"required,workid"`
	Title    string `json:"title" validate:"required,max=255"`
	Author   string `json:"author" validate:"required,max=255"`
	Year     *int   `json:"year" validate:"omitempty,gte=0,lte=2100"`
	Genre    string `json:"genre" validate:"max=100"`
	CoverURL string `json:"cover_url" validate:"omitempty,max=500"`
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", nil)
		return
	}

	if details := ValidateStruct(req); details != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusUnprocessableEntity, "validation_failed", "request validation failed", details)
		return
	}

	book := entity.Book{
		WorkID:   req.WorkID,
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		Genre:    req.Genre,
		CoverURL: req.CoverURL,
	}
	if err := h.repo.Create(r.Context(), &book); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			httpx.JSONErrorWithRequest(r, w, http.StatusConflict, "duplicate_work", "a book with this work id already exists", nil)
			return
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "server_error", "could not create book", nil)
		return
	}
	httpx.JSONSuccessCreated(w, book)
}
