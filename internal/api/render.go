// Package api holds the gin handlers. Handlers parse and validate
// request shapes, call one service method, and render the Result; no
// domain logic lives here.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/docuvault/internal/domain"
	"go.uber.org/zap"
)

// renderError translates a domain error kind to a status code. Errors
// with no kind are infrastructure failures: logged in full, rendered as
// an opaque 500.
func renderError(c *gin.Context, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch domain.KindOf(err) {
	case domain.KindGuardViolation:
		status, message = http.StatusBadRequest, err.Error()
	case domain.KindNotFound:
		status, message = http.StatusNotFound, err.Error()
	case domain.KindAlreadyExists, domain.KindUpdateFailed:
		status, message = http.StatusConflict, err.Error()
	case domain.KindForbidden:
		status, message = http.StatusForbidden, err.Error()
	case domain.KindIncorrectCredentials:
		status, message = http.StatusUnauthorized, err.Error()
	default:
		logger.Error("request failed", zap.Error(err))
	}

	c.JSON(status, gin.H{"error": message})
}
