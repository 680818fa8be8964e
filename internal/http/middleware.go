package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/DavidRprt/deskflow/internal/domain"
)

const sessionContextKey = "deskflow.session"

// sessionMiddleware resolves the session cookie on every request and stores
// the identity in the request context. It never rejects: an absent or
// invalid cookie simply leaves the request anonymous, and route handlers
// decide what anonymity means for them.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := h.auth.GetSession(c.Request.Context(), token)
		if err != nil {
			h.log.WithError(err).Warn("session lookup failed")
			c.Next()
			return
		}
		if session != nil {
			c.Set(sessionContextKey, session)
		}
		c.Next()
	}
}

// requireSession aborts API requests that carry no valid session.
func (h *Handler) requireSession(c *gin.Context) {
	if currentSession(c) == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.Next()
}

// appPage gates a page-style path: anonymous visitors are sent to the login
// page with the original path preserved in the from parameter.
func (h *Handler) appPage(c *gin.Context) {
	if currentSession(c) == nil {
		target := "/login?from=" + url.QueryEscape(c.Request.URL.Path)
		c.Redirect(http.StatusFound, target)
		return
	}
	c.Status(http.StatusOK)
}

// guestPage is the inverse: authenticated visitors have no business on the
// login or register pages and are sent home.
func (h *Handler) guestPage(c *gin.Context) {
	if currentSession(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.Status(http.StatusOK)
}

func currentSession(c *gin.Context) *domain.Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, ok := value.(*domain.Session)
	if !ok {
		return nil
	}
	return session
}

func (h *Handler) issueCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.cookieMaxAge.Seconds()), "/", "", h.secureCookie, true)
}

func (h *Handler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
}
