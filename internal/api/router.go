package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/docuvault/internal/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Users       *UserHandler
	Documents   *DocumentHandler
	Tags        *TagHandler
	Permissions *PermissionHandler
	Search      *SearchHandler
	Downloads   *DownloadHandler
}

// NewRouter mounts all routes. Register, login, health, and the
// token-authorized download endpoint are public; everything else sits
// behind the JWT middleware.
func NewRouter(h Handlers, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/v1/users", h.Users.Register)
	r.POST("/v1/users/login", h.Users.Login)
	r.GET("/v1/downloads/:id", h.Downloads.Download)

	v1 := r.Group("/v1")
	v1.Use(middleware.AuthMiddleware(jwtSecret))

	v1.GET("/users", h.Users.List)
	v1.PUT("/users/:id", h.Users.Update)
	v1.DELETE("/users/:id", h.Users.Delete)

	v1.POST("/documents", h.Documents.Create)
	v1.GET("/documents", h.Documents.List)
	v1.GET("/documents/:id", h.Documents.Get)
	v1.PUT("/documents/:id", h.Documents.Update)
	v1.DELETE("/documents/:id", h.Documents.Delete)
	v1.PUT("/documents/:id/content", h.Documents.UploadContent)
	v1.POST("/documents/:id/download-link", h.Downloads.GenerateLink)

	v1.POST("/documents/:id/permissions", h.Permissions.Grant)
	v1.GET("/documents/:id/permissions", h.Permissions.List)
	v1.DELETE("/documents/:id/permissions/:userId", h.Permissions.Revoke)

	v1.POST("/tags", h.Tags.Create)
	v1.GET("/tags", h.Tags.List)
	v1.PUT("/tags/:id", h.Tags.Update)
	v1.DELETE("/tags/:id", h.Tags.Delete)

	v1.POST("/search/documents", h.Search.ByTags)

	return r
}
