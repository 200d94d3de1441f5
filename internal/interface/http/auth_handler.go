package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/internal/application"
	"github.com/oksasatya/go-portfolio-cms/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
	"github.com/oksasatya/go-portfolio-cms/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	admin, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			h.Logger.WithFields(logrus.Fields{"ip": clientIP(c)}).Warn("admin login rejected")
			response.Error[any](c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		writeError(c, h.Logger, err, "sign in")
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	h.Logger.WithFields(logrus.Fields{"ip": clientIP(c)}).Info("admin signed in")
	response.Success(c, http.StatusOK, admin, "signed in", nil)
}

// Refresh POST /api/admin/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	tok, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || tok == "" {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), tok)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) || errors.Is(err, application.ErrSessionNotFound) {
			h.Cookies.Clear(c)
			response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		writeError(c, h.Logger, err, "refresh session")
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"refreshed": true}, "session refreshed", nil)
}

// Logout POST /api/admin/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxSessionIDKey)); err != nil {
		h.Logger.WithError(err).Warn("drop session failed")
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"signed_out": true}, "signed out", nil)
}

// Me GET /api/admin/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, h.Svc.Me(), "me", nil)
}
