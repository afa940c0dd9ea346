package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookreview/internal/entity"
	"bookreview/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) List(ctx context.Context, genre string) ([]entity.Book, error) {
	args := m.Called(ctx, genre)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Book), args.Error(1)
}

func (m *mockBookRepo) Create(ctx context.Context, b *entity.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func TestBookHandlerList(t *testing.T) {
	t.Run("lists persisted books", func(t *testing.T) {
		m := new(mockBookRepo)
		m.On("List", mock.Anything, "").Return([]entity.Book{
			{WorkID: "OL8022414W", Title: "Hacker's Delight", Author: "Henry S. Warren"},
		}, nil)

		h := NewBookHandler(m)
		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		data := body["data"].([]interface{})
		assert.Len(t, data, 1)
	})

	t.Run("genre filter is forwarded", func(t *testing.T) {
		m := new(mockBookRepo)
		m.On("List", mock.Anything, "Fiction").Return([]entity.Book{}, nil)

		h := NewBookHandler(m)
		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/books?genre=Fiction", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		m.AssertExpectations(t)
	})

	t.Run("empty shelf is an empty array", func(t *testing.T) {
		m := new(mockBookRepo)
		m.On("List", mock.Anything, "").Return(nil, nil)

		h := NewBookHandler(m)
		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
	})
}

func TestBookHandlerCreate(t *testing.T) {
	newCreateRequest := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		return r
	}

	t.Run("creates a valid book", func(t *testing.T) {
		m := new(mockBookRepo)
		m.On("Create", mock.Anything, mock.MatchedBy(func(b *entity.Book) bool {
			return b.WorkID == "OL8022414W" && b.Title == "Hacker's Delight"
		})).Return(nil)

		h := NewBookHandler(m)
		w := httptest.NewRecorder()
		h.Create(w, newCreateRequest(`{"work_id": "OL8022414W", "title": "Hacker's Delight", "author": "Henry S. Warren", "year": 2002}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		m.AssertExpectations(t)
	})

	t.Run("malformed work id fails validation", func(t *testing.T) {
		m := new(mockBookRepo)

		h := NewBookHandler(m)
		w := httptest.NewRecorder()
		h.Create(w, newCreateRequest(`{"work_id": "OLW", "title": "T", "author": "A"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		h := NewBookHandler(new(mockBookRepo))
		w := httptest.NewRecorder()
		h.Create(w, newCreateRequest(`{"work_id": "OL1W"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("broken JSON is a 400", func(t *testing.T) {
		h := NewBookHandler(new(mockBookRepo))
		w := httptest.NewRecorder()
		h.Create(w, newCreateRequest(`{not json`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate work id is a 409", func(t *testing.T) {
		m := new(mockBookRepo)
		m.On("Create", mock.Anything, mock.Anything).Return(store.ErrDuplicate)

		h := NewBookHandler(m)
		w := httptest.NewRecorder()
		h.Create(w, newCreateRequest(`{"work_id": "OL1W", "title": "T", "author": "A"}`))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
