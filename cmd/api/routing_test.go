package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookreview/internal/entity"
	apphttp "bookreview/internal/http"
	"bookreview/internal/platform/openlibrary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookRepo struct {
	books []entity.Book
}

func (s *stubBookRepo) List(ctx context.Context, genre string) ([]entity.Book, error) {
	return s.books, nil
}

func (s *stubBookRepo) Create(ctx context.Context, b *entity.Book) error {
	s.books = append(s.books, *b)
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	catalog := http.NewServeMux()
	catalog.HandleFunc("/works/OL8022414W.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title": "Hacker's Delight", "first_publish_date": "2002"}`))
	})
	catalog.HandleFunc("/b/olid/OL8022414W.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"olid": "OL8022414W"}`))
	})
	srv := httptest.NewServer(catalog)
	t.Cleanup(srv.Close)

	client := openlibrary.NewClient("bookreview-test", 1000)
	client.SetBaseURLs(srv.URL, srv.URL)
	resolver := openlibrary.NewService(client)

	workHandler := apphttp.NewWorkHandler(resolver)
	bookHandler := apphttp.NewBookHandler(&stubBookRepo{})
	ready := func(ctx context.Context) error { return nil }

	return newRouter(workHandler, bookHandler, ready, nil)
}

func TestRouting(t *testing.T) {
	router := newTestRouter(t)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	t.Run("health endpoints", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/healthz").Code)
		assert.Equal(t, http.StatusOK, get("/readyz").Code)
	})

	t.Run("work view goes through the full chain", func(t *testing.T) {
		w := get("/works/OL8022414W")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Contains(t, w.Body.String(), "Hacker's Delight")
		assert.Contains(t, w.Body.String(), "OL8022414W-M.jpg")
	})

	t.Run("book list", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/books").Code)
	})

	t.Run("unknown route is a 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/nope").Code)
	})

	t.Run("books rejects unsupported methods", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/books", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
