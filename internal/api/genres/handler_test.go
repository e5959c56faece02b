package genres

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie-app/internal/apperr"
	"movie-app/internal/domain/catalog"
	"movie-app/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	genre   *catalog.Genre
	updated *repository.GenreUpdate
	err     error
}

func (f *fakeStore) List(ctx context.Context, search string) ([]catalog.Genre, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []catalog.Genre{*f.genre}, nil
}

func (f *fakeStore) GetBySlug(ctx context.Context, slug string) (*catalog.Genre, error) {
	if slug != f.genre.Slug {
		return nil, fmt.Errorf("genre: %w", apperr.ErrNotFound)
	}
	return f.genre, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uint) (*catalog.Genre, error) {
	if id != f.genre.ID {
		return nil, fmt.Errorf("genre: %w", apperr.ErrNotFound)
	}
	return f.genre, nil
}

func (f *fakeStore) Create(ctx context.Context) (uint, error) { return 7, nil }

func (f *fakeStore) Update(ctx context.Context, id uint, in repository.GenreUpdate) (*catalog.Genre, error) {
	f.updated = &in
	return &catalog.Genre{ID: id, Name: in.Name, Slug: in.Slug, Description: in.Description, Icon: in.Icon}, nil
}

func (f *fakeStore) Delete(ctx context.Context, id uint) (*catalog.Genre, error) {
	return f.GetByID(ctx, id)
}

func newRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, zap.NewNop())
	r := gin.New()
	r.GET("/genres", h.List)
	r.GET("/genres/by-slug/:slug", h.GetBySlug)
	r.POST("/genres", h.Create)
	r.PUT("/genres/:id", h.Update)
	r.DELETE("/genres/:id", h.Delete)
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenres(t *testing.T) {
	store := &fakeStore{genre: &catalog.Genre{ID: 3, Name: "Drama", Slug: "drama"}}
	r := newRouter(store)

	w := do(r, http.MethodGet, "/genres", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Drama"`)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/genres/by-slug/drama", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/genres/by-slug/comedy", "").Code)

	w = do(r, http.MethodPost, "/genres", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", w.Body.String())

	w = do(r, http.MethodPut, "/genres/3", `{"name":"Science Fiction","description":"space","icon":"MdRocket"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.updated)
	assert.Equal(t, "science-fiction", store.updated.Slug)
	assert.Equal(t, "MdRocket", store.updated.Icon)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/genres/3", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/genres/4", "").Code)
}

func TestGenres_StoreFailureIsHidden(t *testing.T) {
	store := &fakeStore{err: fmt.Errorf("list genres: connection refused")}
	w := do(newRouter(store), http.MethodGet, "/genres", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
