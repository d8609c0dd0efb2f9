package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/watchnow/watchnow/internal/middleware"
	"github.com/watchnow/watchnow/internal/model"
	"github.com/watchnow/watchnow/internal/repository"
)

// MovieHandler serves the /movies routes.  Reads are public; mutations
// run behind the admin gate and emit audit events.
type MovieHandler struct {
	Movies MovieStore
	Audit  AuditPublisher
}

func NewMovieHandler(movies MovieStore, audit AuditPublisher) *MovieHandler {
	return &MovieHandler{Movies: movies, Audit: audit}
}

// List handles GET /movies and returns every movie.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Movies.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /movies.  The identifier is caller-supplied, not
// generated; a reused id is reported as a conflict.
func (h *MovieHandler) Create(c echo.Context) error {
	var m model.Movie
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if m.ID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if strings.TrimSpace(m.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Movies.Create(ctx, &m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie"})
	}

	publishAudit(h.Audit, "movies", "created", m.ID, m.Title, middleware.ActingUser(c))
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /movies/:id with a partial record.  A missing id is
// a 404, never a 200 with an empty body.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	fields := map[string]any{}
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	m, err := h.Movies.UpdateByID(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	publishAudit(h.Audit, "movies", "updated", m.ID, m.Title, middleware.ActingUser(c))
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /movies/:id.  The confirmation message is the
// same whether or not a record existed; deletion is idempotent by
// contract.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	existed, err := h.Movies.DeleteByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if existed {
		publishAudit(h.Audit, "movies", "deleted", id, "", middleware.ActingUser(c))
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Movie deleted"})
}
