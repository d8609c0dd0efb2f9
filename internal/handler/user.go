package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/watchnow/watchnow/internal/config"
	"github.com/watchnow/watchnow/internal/middleware"
	"github.com/watchnow/watchnow/internal/model"
	"github.com/watchnow/watchnow/internal/repository"
	"github.com/watchnow/watchnow/internal/utils"
)

// UserHandler serves the /usuarios routes.  Registration is public by
// design; update and delete run behind the admin gate.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
	Audit AuditPublisher
}

func NewUserHandler(cfg config.Config, users UserStore, audit AuditPublisher) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Audit: audit}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// List handles GET /usuarios.  Password hashes never appear in the
// payload; model.User suppresses the field on serialization.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// Register handles POST /usuarios: public self-registration.  The
// password is hashed before it reaches the store, a duplicate email is a
// conflict that leaves the existing record untouched, and the response
// strips the password.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = repository.NormalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Nombre, email y contraseña son requeridos"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al registrar usuario"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, err := h.Users.NextID(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al registrar usuario"})
	}
	u := model.User{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     model.NormalizeRole(req.Role),
	}
	if err := h.Users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "El usuario ya existe"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al registrar usuario"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Usuario registrado exitosamente", "user": u})
}

// Update handles PUT /usuarios/:id (admin-gated).  An incoming password
// field is re-hashed so the store only ever holds bcrypt hashes, even
// through the partial-update path.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	fields := map[string]any{}
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if raw, ok := fields["password"]; ok {
		plain, ok := raw.(string)
		if !ok || strings.TrimSpace(plain) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be a non-empty string"})
		}
		hash, err := utils.HashPassword(plain, h.Cfg.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
		}
		fields["password"] = hash
	}
	if raw, ok := fields["role"]; ok {
		role, _ := raw.(string)
		fields["role"] = model.NormalizeRole(role)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.UpdateByID(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	publishAudit(h.Audit, "usuarios", "updated", u.ID, u.Name, middleware.ActingUser(c))
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /usuarios/:id (admin-gated), idempotent like the
// catalog deletions.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	existed, err := h.Users.DeleteByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if existed {
		publishAudit(h.Audit, "usuarios", "deleted", id, "", middleware.ActingUser(c))
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Usuario deleted"})
}
