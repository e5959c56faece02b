package files

import (
	"io"
	"mime/multipart"
	"net/http"

	"movie-app/internal/api/respond"
	"movie-app/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	formField      = "file"
	maxUploadBytes = 64 << 20
)

type Storage interface {
	Save(folder string, files []storage.Upload) ([]storage.SavedFile, error)
}

type Handler struct {
	storage Storage
	log     *zap.Logger
}

func NewHandler(s Storage, log *zap.Logger) *Handler {
	return &Handler{storage: s, log: log}
}

// POST /files?folder=
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		respond.BadRequest(c, "multipart form expected")
		return
	}
	headers := form.File[formField]
	if len(headers) == 0 {
		respond.BadRequest(c, "no files uploaded")
		return
	}

	uploads := make([]storage.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respond.BadRequest(c, "cannot read "+fh.Filename)
			closeAll(uploads)
			return
		}
		uploads = append(uploads, storage.Upload{Name: fh.Filename, Reader: f})
	}
	defer closeAll(uploads)

	saved, err := h.storage.Save(c.Query("folder"), uploads)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func closeAll(uploads []storage.Upload) {
	for _, u := range uploads {
		if f, ok := u.Reader.(multipart.File); ok {
			f.Close()
		} else if cl, ok := u.Reader.(io.Closer); ok {
			cl.Close()
		}
	}
}
