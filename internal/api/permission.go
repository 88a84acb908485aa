package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/middleware"
	"github.com/lalith-99/docuvault/internal/service"
	"go.uber.org/zap"
)

type PermissionHandler struct {
	permissions *service.PermissionsService
	logger      *zap.Logger
}

func NewPermissionHandler(permissions *service.PermissionsService, logger *zap.Logger) *PermissionHandler {
	return &PermissionHandler{permissions: permissions, logger: logger}
}

type grantPermissionRequest struct {
	UserID         string `json:"userId" binding:"required,uuid"`
	PermissionType string `json:"permissionType" binding:"required"`
}

// Grant handles POST /v1/documents/:id/permissions
func (h *PermissionHandler) Grant(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}
	var req grantPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	granteeID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	granted := h.permissions.GrantPermission(c.Request.Context(), middleware.GetIdentity(c), service.GrantPermissionInput{
		DocumentID:     documentID,
		GranteeID:      granteeID,
		PermissionType: req.PermissionType,
	})
	if granted.IsErr() {
		renderError(c, h.logger, granted.Error())
		return
	}
	c.JSON(http.StatusCreated, granted.Value())
}

// Revoke handles DELETE /v1/documents/:id/permissions/:userId
func (h *PermissionHandler) Revoke(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}
	granteeID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	revoked := h.permissions.RevokePermission(c.Request.Context(), middleware.GetIdentity(c), documentID, granteeID)
	if revoked.IsErr() {
		renderError(c, h.logger, revoked.Error())
		return
	}
	c.JSON(http.StatusOK, revoked.Value())
}

// List handles GET /v1/documents/:id/permissions
func (h *PermissionHandler) List(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	listed := h.permissions.ListPermissions(c.Request.Context(), middleware.GetIdentity(c), documentID)
	if listed.IsErr() {
		renderError(c, h.logger, listed.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"permissions": listed.Value()})
}
