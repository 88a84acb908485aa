package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/docuvault/internal/service"
	"go.uber.org/zap"
)

type SearchHandler struct {
	search *service.SearchService
	logger *zap.Logger
}

func NewSearchHandler(search *service.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{search: search, logger: logger}
}

type searchRequest struct {
	TagNames []string `json:"tagNames" binding:"required,min=1,dive,required"`
}

// ByTags handles POST /v1/search/documents
func (h *SearchHandler) ByTags(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	found := h.search.SearchDocumentsByTags(c.Request.Context(), req.TagNames)
	if found.IsErr() {
		renderError(c, h.logger, found.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": found.Value()})
}
