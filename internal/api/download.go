package api

import (
	"io"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/service"
	"github.com/lalith-99/docuvault/internal/storage"
	"go.uber.org/zap"
)

type DownloadHandler struct {
	downloads *service.DownloadService
	blobs     storage.BlobStore
	logger    *zap.Logger
}

func NewDownloadHandler(downloads *service.DownloadService, blobs storage.BlobStore, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{downloads: downloads, blobs: blobs, logger: logger}
}

// GenerateLink handles POST /v1/documents/:id/download-link
func (h *DownloadHandler) GenerateLink(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	link := h.downloads.GenerateDownloadLink(c.Request.Context(), id, scheme, c.Request.Host)
	if link.IsErr() {
		renderError(c, h.logger, link.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": link.Value()})
}

// Download handles GET /v1/downloads/:id?token=. Unauthenticated; the
// token alone authorizes access. The verified blob-store key is
// streamed back as an attachment.
func (h *DownloadHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	key := h.downloads.Download(c.Request.Context(), id, c.Query("token"))
	if key.IsErr() {
		renderError(c, h.logger, key.Error())
		return
	}

	reader, err := h.blobs.Download(c.Request.Context(), key.Value())
	if err != nil {
		h.logger.Error("blob read failed", zap.String("key", key.Value()), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "attachment; filename=\""+path.Base(key.Value())+"\"")
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Warn("download stream interrupted", zap.Error(err))
	}
}
