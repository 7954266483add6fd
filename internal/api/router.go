package api

import (
	"net/http"

	adminapi "github.com/afubot/afu-assistant/internal/api/admin"
	"github.com/afubot/afu-assistant/internal/api/assistant"
	"github.com/afubot/afu-assistant/internal/api/middleware"
	"github.com/afubot/afu-assistant/internal/auth"
	"github.com/afubot/afu-assistant/internal/service"
	"github.com/afubot/afu-assistant/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig carries the HTTP-level knobs the router needs.
type RouterConfig struct {
	// AllowOrigins lists the origins the widget may be embedded on.
	AllowOrigins []string
	// CookieMaxAge is the admin token cookie lifetime in seconds.
	CookieMaxAge int
}

// SetupRouter wires up all HTTP routes
func SetupRouter(
	assistantService *service.AssistantService,
	feedbackService *service.FeedbackService,
	analyticsService *service.AnalyticsService,
	adminService *service.AdminService,
	issuer *auth.TokenIssuer,
	sessions *session.Tiered,
	guard *session.Guard,
	logger *zap.Logger,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	assistantHandler := assistant.NewHandler(assistantService, feedbackService, analyticsService, logger)
	assistantHandler.RegisterRoutes(r.Group("/api/assistant"))

	adminHandler := adminapi.NewHandler(adminService, cfg.CookieMaxAge, logger)
	adminHandler.RegisterPublicRoutes(r.Group("/api/admin"))

	protected := r.Group("/api/admin")
	protected.Use(middleware.Auth(issuer, sessions, guard, logger))
	adminHandler.RegisterProtectedRoutes(protected)

	return r
}
