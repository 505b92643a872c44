package handler

import (
	"net/http"

	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/middleware"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError translates a service error into the standard error body. The
// wrapped cause of internal errors is logged, never sent to the client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.KindInternal {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(appErr.Err),
		)
		c.JSON(http.StatusInternalServerError, response.Error("internal server error"))
		return
	}

	if len(appErr.Violations) > 0 {
		c.JSON(appErr.HTTPStatus(), response.ErrorWithDetails(appErr.Message, appErr.Violations))
		return
	}
	c.JSON(appErr.HTTPStatus(), response.Error(appErr.Message))
}

// currentSession pulls the authenticated session stored by the auth
// middleware. A missing session means the route was wired without it.
func currentSession(c *gin.Context) (auth.Session, bool) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Authorization is missing"))
		return auth.Session{}, false
	}
	return session, true
}

// currentScope resolves the tenant scope for the request, honoring the
// optional boutiqueId query parameter for admins.
func currentScope(c *gin.Context, logger *zap.Logger) (auth.Scope, bool) {
	session, ok := currentSession(c)
	if !ok {
		return auth.Scope{}, false
	}
	scope, err := auth.Resolve(session, c.Query("boutiqueId"))
	if err != nil {
		respondError(c, logger, err)
		return auth.Scope{}, false
	}
	return scope, true
}
