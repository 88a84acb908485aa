package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/result"
	"github.com/lalith-99/docuvault/internal/service"
	"go.uber.org/zap"
)

type TagHandler struct {
	tags   *service.TagService
	logger *zap.Logger
}

func NewTagHandler(tags *service.TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{tags: tags, logger: logger}
}

type createTagRequest struct {
	Name       string  `json:"name" binding:"required"`
	DocumentID *string `json:"documentId"`
}

type updateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create handles POST /v1/tags
func (h *TagHandler) Create(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	documentID := result.None[uuid.UUID]()
	if req.DocumentID != nil {
		parsed, err := uuid.Parse(*req.DocumentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
			return
		}
		documentID = result.Some(parsed)
	}

	created := h.tags.CreateTag(c.Request.Context(), service.CreateTagInput{
		Name:       req.Name,
		DocumentID: documentID,
	})
	if created.IsErr() {
		renderError(c, h.logger, created.Error())
		return
	}
	c.JSON(http.StatusCreated, created.Value())
}

// Update handles PUT /v1/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}
	var req updateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := h.tags.UpdateTag(c.Request.Context(), id, domain.TagPatch{Name: &req.Name})
	if updated.IsErr() {
		renderError(c, h.logger, updated.Error())
		return
	}
	c.JSON(http.StatusOK, updated.Value())
}

// Delete handles DELETE /v1/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}

	deleted := h.tags.DeleteTag(c.Request.Context(), id)
	if deleted.IsErr() {
		renderError(c, h.logger, deleted.Error())
		return
	}
	c.JSON(http.StatusOK, deleted.Value())
}

// List handles GET /v1/tags?pageNum=&pageSize=
func (h *TagHandler) List(c *gin.Context) {
	page := h.tags.ListTags(c.Request.Context(), paginationFromQuery(c))
	if page.IsErr() {
		renderError(c, h.logger, page.Error())
		return
	}
	c.JSON(http.StatusOK, page.Value())
}
