package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/middleware"
	"github.com/lalith-99/docuvault/internal/service"
	"go.uber.org/zap"
)

type UserHandler struct {
	users  *service.UserService
	logger *zap.Logger
}

func NewUserHandler(users *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Register handles POST /v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	registered := h.users.RegisterUser(c.Request.Context(), service.RegisterUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if registered.IsErr() {
		renderError(c, h.logger, registered.Error())
		return
	}
	c.JSON(http.StatusCreated, registered.Value())
}

// Login handles POST /v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token := h.users.LoginUser(c.Request.Context(), req.Username, req.Password)
	if token.IsErr() {
		renderError(c, h.logger, token.Error())
		return
	}
	c.JSON(http.StatusOK, token.Value())
}

// Update handles PUT /v1/users/:id. Users may edit themselves, admins
// may edit anyone.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	identity := middleware.GetIdentity(c)
	if id != identity.UserID && !identity.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot modify another user"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := service.UpdateUserInput{ID: id, Username: req.Username, Password: req.Password}
	if req.Role != nil {
		if !identity.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "only admins may change roles"})
			return
		}
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	updated := h.users.UpdateUser(c.Request.Context(), in)
	if updated.IsErr() {
		renderError(c, h.logger, updated.Error())
		return
	}
	c.JSON(http.StatusOK, updated.Value())
}

// Delete handles DELETE /v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	identity := middleware.GetIdentity(c)
	if id != identity.UserID && !identity.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot delete another user"})
		return
	}

	deleted := h.users.DeleteUser(c.Request.Context(), id)
	if deleted.IsErr() {
		renderError(c, h.logger, deleted.Error())
		return
	}
	c.JSON(http.StatusOK, deleted.Value())
}

// List handles GET /v1/users?pageNum=&pageSize=. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	if !middleware.GetIdentity(c).IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}

	page := h.users.ListUsers(c.Request.Context(), paginationFromQuery(c))
	if page.IsErr() {
		renderError(c, h.logger, page.Error())
		return
	}
	c.JSON(http.StatusOK, page.Value())
}
