package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/joblynk/internal/api/middleware"
	"github.com/yoockh/joblynk/internal/providers/identity"
)

const (
	stateCookie    = "oauth-state"
	stateCookieTTL = 10 * time.Minute
)

type AuthHandler struct {
	provider     identity.Provider
	cookie       middleware.SessionCookie
	frontendHost string
	log          *logrus.Logger
}

func NewAuthHandler(p identity.Provider, cookie middleware.SessionCookie, frontendHost string, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{provider: p, cookie: cookie, frontendHost: frontendHost, log: log}
}

// Login redirects to the provider. The state value is echoed back on the
// callback and must match the state cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int(stateCookieTTL.Seconds()), "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, h.provider.AuthorizationURL(state))
}

func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.String(http.StatusBadRequest, "No code provided")
		return
	}
	expected, _ := c.Cookie(stateCookie)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, "", -1, "/", "", h.cookie.Secure, true)
	if expected == "" || c.Query("state") != expected {
		c.String(http.StatusBadRequest, "Invalid state")
		return
	}

	sess, id, err := h.provider.AuthenticateWithCode(c.Request.Context(), code)
	if err != nil {
		h.log.WithError(err).Warn("code exchange failed")
		c.Redirect(http.StatusFound, h.frontendHost)
		return
	}
	value, err := identity.EncodeSession(*sess)
	if err != nil {
		h.log.WithError(err).Error("encode session")
		c.Redirect(http.StatusFound, h.frontendHost)
		return
	}

	h.cookie.Set(c, value)
	h.log.WithField("user_id", id.UserID).Info("user signed in")
	c.Redirect(http.StatusFound, h.frontendHost+"/redirect")
}

func (h *AuthHandler) IsLoggedIn(c *gin.Context) {
	sess, ok := h.cookie.Read(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}
	id, err := h.provider.Authenticate(c.Request.Context(), sess)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"isLoggedIn": true,
		"data":       gin.H{"userDetails": id},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	target := h.frontendHost
	if sess, ok := h.cookie.Read(c); ok {
		if u := h.provider.LogoutURL(sess); u != "" {
			target = u
		}
	}
	h.cookie.Clear(c)
	c.Redirect(http.StatusFound, target)
}
