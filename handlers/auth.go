package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/contosparadormir/contos/internal/admin"
	"github.com/contosparadormir/contos/pkg/logger"
	"github.com/contosparadormir/contos/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// LoginRequest is the admin login body.
type LoginRequest struct {
	Password string `json:"password"`
}

// CookieConfig describes the session cookie handed to the browser.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	// Secure is enabled for production deployments only.
	Secure bool
}

// AuthHandler holds dependencies
type AuthHandler struct {
	gate   *admin.Gate
	cookie CookieConfig
}

func NewAuthHandler(g *admin.Gate, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{gate: g, cookie: cookie}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/admin", h.Login)
	a.POST("/logout", h.Logout)
	a.GET("/check", h.Check)
}

// Login opens an admin session when the password matches the shared secret.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	cookie, _, err := h.gate.Login(c.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrUnauthorized) {
			metrics.AdminLogins.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
			return
		}
		metrics.AdminLogins.WithLabelValues("error").Inc()
		logger.Errorf("admin login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}
	metrics.AdminLogins.WithLabelValues("success").Inc()
	h.setCookie(c, cookie, int(h.cookie.MaxAge.Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout destroys the current session, if any, and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie, _ := c.Cookie(h.cookie.Name)
	if err := h.gate.Logout(c.Request.Context(), cookie); err != nil {
		logger.Errorf("logout: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Check reports whether the caller holds an admin session. It never fails.
func (h *AuthHandler) Check(c *gin.Context) {
	cookie, _ := c.Cookie(h.cookie.Name)
	c.JSON(http.StatusOK, gin.H{"isAdmin": h.gate.IsAdmin(c.Request.Context(), cookie)})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
