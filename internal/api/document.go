package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/middleware"
	"github.com/lalith-99/docuvault/internal/repository"
	"github.com/lalith-99/docuvault/internal/service"
	"github.com/lalith-99/docuvault/internal/storage"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	documents *service.DocumentService
	blobs     storage.BlobStore
	logger    *zap.Logger
}

func NewDocumentHandler(documents *service.DocumentService, blobs storage.BlobStore, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{documents: documents, blobs: blobs, logger: logger}
}

type createDocumentRequest struct {
	FileName string   `json:"fileName" binding:"required"`
	TagNames []string `json:"tagNames" binding:"required,min=1,dive,required"`
}

type updateDocumentRequest struct {
	FileName string `json:"fileName" binding:"required"`
}

// Create handles POST /v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.GetIdentity(c)
	created := h.documents.CreateDocument(c.Request.Context(), service.CreateDocumentInput{
		FileName: req.FileName,
		UserID:   identity.UserID,
		TagNames: req.TagNames,
	})
	if created.IsErr() {
		renderError(c, h.logger, created.Error())
		return
	}
	c.JSON(http.StatusCreated, created.Value())
}

// Get handles GET /v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	doc := h.documents.GetDocument(c.Request.Context(), id)
	if doc.IsErr() {
		renderError(c, h.logger, doc.Error())
		return
	}
	c.JSON(http.StatusOK, doc.Value())
}

// Update handles PUT /v1/documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}
	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.GetIdentity(c)
	updated := h.documents.UpdateDocument(c.Request.Context(), service.UpdateDocumentInput{
		DocumentID:  id,
		RequesterID: identity.UserID,
		FileName:    req.FileName,
	})
	if updated.IsErr() {
		renderError(c, h.logger, updated.Error())
		return
	}
	c.JSON(http.StatusOK, updated.Value())
}

// Delete handles DELETE /v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	identity := middleware.GetIdentity(c)
	deleted := h.documents.DeleteDocument(c.Request.Context(), id, identity.UserID)
	if deleted.IsErr() {
		renderError(c, h.logger, deleted.Error())
		return
	}
	c.JSON(http.StatusOK, deleted.Value())
}

// List handles GET /v1/documents?pageNum=&pageSize=
func (h *DocumentHandler) List(c *gin.Context) {
	opts := paginationFromQuery(c)

	page := h.documents.ListDocuments(c.Request.Context(), opts)
	if page.IsErr() {
		renderError(c, h.logger, page.Error())
		return
	}
	c.JSON(http.StatusOK, page.Value())
}

// UploadContent handles PUT /v1/documents/:id/content. The request
// body is streamed into the blob store under the document's stored
// path. Only the owner may replace content.
func (h *DocumentHandler) UploadContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	doc := h.documents.GetDocument(c.Request.Context(), id)
	if doc.IsErr() {
		renderError(c, h.logger, doc.Error())
		return
	}

	identity := middleware.GetIdentity(c)
	if doc.Value().UserID != identity.UserID.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner may upload content"})
		return
	}

	if err := h.blobs.Upload(c.Request.Context(), doc.Value().FilePath, c.Request.Body, c.Request.ContentLength); err != nil {
		h.logger.Error("content upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"filePath": doc.Value().FilePath})
}

func paginationFromQuery(c *gin.Context) repository.PaginationOptions {
	var opts repository.PaginationOptions
	if v, err := strconv.Atoi(c.Query("pageNum")); err == nil && v > 0 {
		opts.PageNum = v
	}
	if v, err := strconv.Atoi(c.Query("pageSize")); err == nil && v > 0 {
		opts.PageSize = v
	}
	return opts.Normalize()
}
