package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/joblynk/internal/principal"
	"github.com/yoockh/joblynk/internal/providers/identity"
	"github.com/yoockh/joblynk/internal/utils"
)

// SessionCookie describes the cookie that carries the provider session.
type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

func (s SessionCookie) Set(c *gin.Context, value string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(s.Name, value, int(s.MaxAge.Seconds()), "/", "", s.Secure, true)
}

func (s SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(s.Name, "", -1, "/", "", s.Secure, true)
}

// Read returns the decoded session, or false when the cookie is missing or
// malformed.
func (s SessionCookie) Read(c *gin.Context) (identity.Session, bool) {
	raw, err := c.Cookie(s.Name)
	if err != nil || raw == "" {
		return identity.Session{}, false
	}
	sess, err := identity.DecodeSession(raw)
	if err != nil {
		return identity.Session{}, false
	}
	return sess, true
}

// SessionAuth resolves the caller from the session cookie. An invalid or
// expired session gets one refresh attempt; the refreshed session replaces
// the cookie.
func SessionAuth(p identity.Provider, cookie SessionCookie, redirectTo string, l *logrus.Logger) gin.HandlerFunc {
	unauthorized := func(c *gin.Context) {
		cookie.Clear(c)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"code":       utils.CodeUnauthorized,
			"message":    "Unauthorized",
			"redirectTo": redirectTo,
		})
	}

	return func(c *gin.Context) {
		sess, ok := cookie.Read(c)
		if !ok {
			unauthorized(c)
			return
		}

		ctx := c.Request.Context()
		id, err := p.Authenticate(ctx, sess)
		if err != nil {
			refreshed, rid, rerr := p.Refresh(ctx, sess)
			if rerr != nil {
				l.WithError(rerr).Debug("session refresh failed")
				unauthorized(c)
				return
			}
			value, eerr := identity.EncodeSession(*refreshed)
			if eerr != nil {
				unauthorized(c)
				return
			}
			cookie.Set(c, value)
			id = rid
		}

		if id == nil || id.UserID == "" {
			unauthorized(c)
			return
		}

		setPrincipal(c, principal.Principal{UserID: id.UserID, Email: id.Email})
		c.Next()
	}
}

func setPrincipal(c *gin.Context, p principal.Principal) {
	c.Set("user_id", p.UserID)
	c.Request = c.Request.WithContext(principal.With(c.Request.Context(), p))
}
