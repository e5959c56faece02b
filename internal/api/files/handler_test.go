package files

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"movie-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile(formField, name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	root := t.TempDir()
	h := NewHandler(storage.NewLocalStorage(root, "/uploads"), zap.NewNop())
	r := gin.New()
	r.POST("/files", h.Upload)

	body, ct := multipartBody(t, map[string]string{"poster.jpg": "jpeg-bytes"})
	req := httptest.NewRequest(http.MethodPost, "/files?folder=movies", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var saved []storage.SavedFile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.Len(t, saved, 1)
	assert.True(t, strings.HasPrefix(saved[0].URL, "/uploads/movies/"))

	data, err := os.ReadFile(filepath.Join(root, "movies", saved[0].Name))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestUpload_Rejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(storage.NewLocalStorage(t.TempDir(), "/uploads"), zap.NewNop())
	r := gin.New()
	r.POST("/files", h.Upload)

	body, ct := multipartBody(t, map[string]string{"x.jpg": "x"})
	req := httptest.NewRequest(http.MethodPost, "/files?folder=../../etc", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/files", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
