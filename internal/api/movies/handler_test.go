package movies

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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) movies(args mock.Arguments) ([]catalog.Movie, error) {
	out, _ := args.Get(0).([]catalog.Movie)
	return out, args.Error(1)
}

func (m *mockStore) movie(args mock.Arguments) (*catalog.Movie, error) {
	out, _ := args.Get(0).(*catalog.Movie)
	return out, args.Error(1)
}

func (m *mockStore) List(ctx context.Context, search string) ([]catalog.Movie, error) {
	return m.movies(m.Called(search))
}

func (m *mockStore) GetBySlug(ctx context.Context, slug string) (*catalog.Movie, error) {
	return m.movie(m.Called(slug))
}

func (m *mockStore) GetByID(ctx context.Context, id uint) (*catalog.Movie, error) {
	return m.movie(m.Called(id))
}

func (m *mockStore) MostPopular(ctx context.Context) ([]catalog.Movie, error) {
	return m.movies(m.Called())
}

func (m *mockStore) ByActor(ctx context.Context, actorID uint) ([]catalog.Movie, error) {
	return m.movies(m.Called(actorID))
}

func (m *mockStore) ByGenres(ctx context.Context, genreIDs []uint) ([]catalog.Movie, error) {
	return m.movies(m.Called(genreIDs))
}

func (m *mockStore) IncrementViews(ctx context.Context, slug string) (*catalog.Movie, error) {
	return m.movie(m.Called(slug))
}

func (m *mockStore) Create(ctx context.Context) (uint, error) {
	args := m.Called()
	return uint(args.Int(0)), args.Error(1)
}

func (m *mockStore) Update(ctx context.Context, id uint, in repository.MovieUpdate) (*catalog.Movie, error) {
	return m.movie(m.Called(id, in))
}

func (m *mockStore) Delete(ctx context.Context, id uint) (*catalog.Movie, error) {
	return m.movie(m.Called(id))
}

func newRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, zap.NewNop())
	r := gin.New()
	r.GET("/movies/all", h.List)
	r.GET("/movies/get/by-slug/:slug", h.GetBySlug)
	r.GET("/movies/get/by-actor/:id", h.ByActor)
	r.POST("/movies/get/by-genres", h.ByGenres)
	r.POST("/movies/create", h.Create)
	r.PUT("/movies/update/:id", h.Update)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList_ReturnsSearchResults(t *testing.T) {
	store := &mockStore{}
	store.On("List", "matrix").Return([]catalog.Movie{{ID: 1, Title: "The Matrix"}}, nil)

	w := do(newRouter(store), http.MethodGet, "/movies/all?searchTerm=%20matrix%20", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"The Matrix"`)
}

func TestGetBySlug_NotFound(t *testing.T) {
	store := &mockStore{}
	store.On("GetBySlug", "nope").Return(nil, fmt.Errorf("movie: %w", apperr.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, do(newRouter(store), http.MethodGet, "/movies/get/by-slug/nope", "").Code)
}

func TestByActor_EmptyIsNotFound(t *testing.T) {
	store := &mockStore{}
	store.On("ByActor", uint(3)).Return([]catalog.Movie{}, nil)

	assert.Equal(t, http.StatusNotFound, do(newRouter(store), http.MethodGet, "/movies/get/by-actor/3", "").Code)
}

func TestByGenres(t *testing.T) {
	store := &mockStore{}
	store.On("ByGenres", []uint{1, 2}).Return([]catalog.Movie{{ID: 5}}, nil)

	assert.Equal(t, http.StatusOK, do(newRouter(store), http.MethodPost, "/movies/get/by-genres", `{"genresIds":[1,2]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(newRouter(store), http.MethodPost, "/movies/get/by-genres", `{}`).Code)
}

func TestCreate_ReturnsID(t *testing.T) {
	store := &mockStore{}
	store.On("Create").Return(12, nil)

	w := do(newRouter(store), http.MethodPost, "/movies/create", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12", w.Body.String())
}

func TestUpdate_DerivesSlugFromTitle(t *testing.T) {
	store := &mockStore{}
	store.On("Update", uint(4), mock.MatchedBy(func(in repository.MovieUpdate) bool {
		return in.Slug == "brat-2" && in.Title == "Брат 2" &&
			assert.ObjectsAreEqual([]uint{1}, in.GenreIDs) &&
			assert.ObjectsAreEqual([]uint{}, in.ActorIDs)
	})).Return(&catalog.Movie{ID: 4, Slug: "brat-2"}, nil)

	w := do(newRouter(store), http.MethodPut, "/movies/update/4", `{"title":"Брат 2","year":2000,"genres":[1]}`)
	require.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}
