package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/afubot/afu-assistant/internal/auth"
	"github.com/afubot/afu-assistant/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenCookie is the admin session cookie name.
const TokenCookie = "admin_token"

// Keys stored on the request context by Auth.
const (
	ContextToken    = "admin_token"
	ContextUsername = "admin_username"
)

// Auth guards admin routes. It resolves the session token (cookie first,
// then bearer header), looks the session up across the storage tiers,
// falls back to re-seeding from a still-valid signed token, and enforces
// the timeout state machine. Requests inside the warning window get an
// X-Session-Warning header with the minutes left; authenticated requests
// count as activity and renew the session, debounced, except the
// session-status poll itself.
func Auth(issuer *auth.TokenIssuer, sessions *session.Tiered, guard *session.Guard, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		rec, err := sessions.Lookup(token)
		if err != nil {
			logger.Error("session lookup failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		if rec == nil {
			// The signed token itself is the last storage tier: a valid
			// cookie with no stored session re-opens one, the way the
			// original restored a cookie token into local storage.
			rec = session.NewRecord(token)
			if err := sessions.Put(rec); err != nil {
				logger.Warn("failed to restore session from token", zap.Error(err))
			}
		}

		status := guard.Check(rec)
		if status.State == session.StateExpired {
			_ = sessions.Delete(token)
			clearTokenCookie(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			c.Abort()
			return
		}
		if status.State == session.StateWarning {
			c.Header("X-Session-Warning", strconv.Itoa(status.MinutesLeft))
		}

		if !isSessionPoll(c) && guard.Touch(rec) {
			if err := sessions.Put(rec); err != nil {
				logger.Warn("failed to persist session renewal", zap.Error(err))
			}
		}

		c.Set(ContextToken, token)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// isSessionPoll reports whether the request is the periodic session-status
// poll. The poll observes the session and must not count as activity, or an
// idle admin would never time out.
func isSessionPoll(c *gin.Context) bool {
	return c.Request.Method == http.MethodGet && c.FullPath() == "/api/admin/session"
}

// ExtractToken returns the admin token carried by the request, trying the
// session cookie first and the Authorization header second.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func clearTokenCookie(c *gin.Context) {
	c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
}
