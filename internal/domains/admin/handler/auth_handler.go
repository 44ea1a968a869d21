package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"institute-backend/internal/config"
	"institute-backend/internal/shared/response"
	"institute-backend/pkg/jwt"
	"institute-backend/pkg/logger"
)

// AuthHandler signs the single provisioned admin account in and out.
// The site has no self-service registration: the credential comes from
// the environment (ADMIN_EMAIL + bcrypt ADMIN_PASSWORD_HASH).
type AuthHandler struct {
	cfg        *config.Config
	jwtManager *jwt.Manager
}

func NewAuthHandler(cfg *config.Config, jwtManager *jwt.Manager) *AuthHandler {
	return &AuthHandler{
		cfg:        cfg,
		jwtManager: jwtManager,
	}
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Login handles POST /admin/login. Accepts both the login form and a
// JSON body so API clients can obtain a token the same way.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.loginFailed(c, "Missing credentials")
		return
	}

	if !h.checkCredentials(req.Email, req.Password) {
		h.loginFailed(c, "Invalid email or password")
		return
	}

	token, err := h.jwtManager.GenerateSessionToken(strings.ToLower(req.Email), "admin")
	if err != nil {
		logger.Error("failed to sign session token", err)
		response.InternalServerError(c, "Could not start session")
		return
	}

	maxAge := h.cfg.JWT.SessionExpiryHrs * 3600
	secure := h.cfg.App.Environment == "production"
	c.SetCookie(h.cfg.JWT.SessionCookieName, token, maxAge, "/", "", secure, true)

	if wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// Logout handles POST /admin/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cfg.JWT.SessionCookieName, "", -1, "/", "", false, true)

	if wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, "/admin/login")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

// LoginPage handles GET /admin/login.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"Title": "Sign in",
	})
}

func (h *AuthHandler) checkCredentials(email, password string) bool {
	if h.cfg.Admin.Email == "" || h.cfg.Admin.PasswordHash == "" {
		return false
	}
	if !strings.EqualFold(strings.TrimSpace(email), h.cfg.Admin.Email) {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(h.cfg.Admin.PasswordHash), []byte(password))
	return err == nil
}

func (h *AuthHandler) loginFailed(c *gin.Context, message string) {
	if wantsHTML(c) {
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"Title": "Sign in",
			"Error": message,
		})
		return
	}
	response.Unauthorized(c, message)
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html") ||
		strings.Contains(c.ContentType(), "application/x-www-form-urlencoded")
}
