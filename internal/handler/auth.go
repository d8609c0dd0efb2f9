package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/watchnow/watchnow/internal/config"
	"github.com/watchnow/watchnow/internal/repository"
	"github.com/watchnow/watchnow/internal/utils"
)

// AuthHandler bundles dependencies for the login and password-reset
// endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetReq struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// Login verifies the submitted credentials and, on success, returns a
// user summary plus a signed session token the client presents on
// admin-gated requests.  The response never carries the password hash.
//
// Failure modes and messages follow the public contract of the API:
// 400 when either field is missing, 404 for an unknown email, 401 for a
// wrong password.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = repository.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email y contraseña son requeridos"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Usuario no encontrado. Por favor regístrate."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Contraseña incorrecta"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.SessionTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login exitoso",
		"user":    u, // password excluded via json:"-"
		"token":   tok.Token,
		"expires": tok.Exp.Format(time.RFC3339),
	})
}

// ResetPassword overwrites the stored hash for the given email with a
// hash of the new password.  It is an unauthenticated maintenance
// endpoint: no proof of the old password is required.  It sits behind
// the rate limiter and logs only the target email.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = repository.NormalizeEmail(req.Email)
	if req.Email == "" || strings.TrimSpace(req.NewPassword) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email y nueva contraseña son requeridos"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.UpdatePasswordByEmail(ctx, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Usuario no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	c.Logger().Infof("password reset for %s", u.Email)
	return c.JSON(http.StatusOK, echo.Map{"message": "Contraseña actualizada", "email": u.Email})
}
