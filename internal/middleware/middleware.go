package middleware

import (
	"net/http"

	"github.com/01moynul/taptosell-storefront/internal/auth"
	"github.com/01moynul/taptosell-storefront/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by this package.
const (
	VisitorIDKey = "visitorID"
	SessionKey   = "session"
)

// VisitorMiddleware identifies the browser. A missing, forged or expired
// cookie gets a fresh visitor id and a new cookie.
func VisitorMiddleware(signer *auth.Signer, cookieName string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Read the visitor cookie ---
		if raw, err := c.Cookie(cookieName); err == nil {
			if visitorID, err := signer.ValidateToken(raw); err == nil {
				c.Set(VisitorIDKey, visitorID)
				c.Next()
				return
			}
		}

		// 2. --- Mint a new visitor ---
		visitorID := uuid.NewString()
		token, err := signer.GenerateToken(visitorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start a session"})
			c.Abort()
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, token, int(signer.TTL().Seconds()), "/", "", secure, true)

		c.Set(VisitorIDKey, visitorID)
		c.Next()
	}
}

// SessionMiddleware resolves the visitor's session. It must run after
// VisitorMiddleware.
func SessionMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		visitorID := c.GetString(VisitorIDKey)
		if visitorID == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Visitor not identified (VisitorMiddleware must run first)"})
			c.Abort()
			return
		}
		c.Set(SessionKey, manager.Load(c.Request.Context(), visitorID))
		c.Next()
	}
}

// SessionFrom returns the session SessionMiddleware stored on c.
func SessionFrom(c *gin.Context) *session.Session {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// AuthRequired rejects anonymous visitors.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SessionFrom(c).IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in first", "redirect": "/sign-in"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly admits administrators. Use after AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFrom(c)
		if !sess.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in first", "redirect": "/sign-in"})
			c.Abort()
			return
		}
		if !sess.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
