package admin

import (
	"errors"
	"net/http"

	"github.com/afubot/afu-assistant/internal/api/middleware"
	"github.com/afubot/afu-assistant/internal/domain"
	"github.com/afubot/afu-assistant/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles the admin back-office API
type Handler struct {
	adminService *service.AdminService
	cookieMaxAge int
	logger       *zap.Logger
}

// NewHandler creates a new admin handler. cookieMaxAge is the lifetime of
// the admin token cookie in seconds.
func NewHandler(adminService *service.AdminService, cookieMaxAge int, logger *zap.Logger) *Handler {
	return &Handler{
		adminService: adminService,
		cookieMaxAge: cookieMaxAge,
		logger:       logger,
	}
}

// RegisterPublicRoutes registers the routes reachable without a session
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth", h.Login)
	r.POST("/logout", h.Logout)
}

// RegisterProtectedRoutes registers the routes behind the auth middleware
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/session", h.SessionStatus)
	r.POST("/session/extend", h.ExtendSession)
	r.GET("/knowledge", h.ListKnowledge)
	r.GET("/knowledge/categories", h.KnowledgeCategories)
	r.GET("/knowledge/:id", h.GetKnowledge)
	r.GET("/stats", h.Stats)
}

// Login verifies admin credentials and issues a session token
func (h *Handler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "帳號或密碼錯誤"})
		return
	}

	resp, err := h.adminService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "帳號或密碼錯誤"})
			return
		}
		h.logger.Error("admin login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected server error occurred"})
		return
	}

	c.SetCookie(middleware.TokenCookie, resp.Token, h.cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, resp)
}

// Logout ends the admin session and clears the token cookie
func (h *Handler) Logout(c *gin.Context) {
	if token := extractToken(c); token != "" {
		h.adminService.Logout(c.Request.Context(), token)
	}
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "登出成功"})
}

// SessionStatus reports how much time the current session has left
func (h *Handler) SessionStatus(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	status, err := h.adminService.SessionStatus(c.Request.Context(), token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":        status.State.String(),
		"minutes_left": status.MinutesLeft,
	})
}

// ExtendSession resets the session timeout to its full window
func (h *Handler) ExtendSession(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	status, err := h.adminService.ExtendSession(c.Request.Context(), token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":        status.State.String(),
		"minutes_left": status.MinutesLeft,
	})
}

// ListKnowledge returns every FAQ entry
func (h *Handler) ListKnowledge(c *gin.Context) {
	entries := h.adminService.ListKnowledge(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
}

// GetKnowledge returns one FAQ entry by id
func (h *Handler) GetKnowledge(c *gin.Context) {
	entry, err := h.adminService.GetKnowledge(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// KnowledgeCategories returns the distinct FAQ categories
func (h *Handler) KnowledgeCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.adminService.KnowledgeCategories(c.Request.Context())})
}

// Stats returns the back-office dashboard aggregates
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("admin request failed", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected server error occurred"})
	}
}

// extractToken looks for the admin token in the cookie first, then the
// Authorization header.
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(middleware.TokenCookie); err == nil && token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
