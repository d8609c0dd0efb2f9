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

// SeriesHandler serves the /series routes with the same access rules as
// movies: public reads, admin-gated mutations with audit events.
type SeriesHandler struct {
	Series SeriesStore
	Audit  AuditPublisher
}

func NewSeriesHandler(series SeriesStore, audit AuditPublisher) *SeriesHandler {
	return &SeriesHandler{Series: series, Audit: audit}
}

// List handles GET /series.
func (h *SeriesHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Series.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /series.
func (h *SeriesHandler) Create(c echo.Context) error {
	var s model.Series
	if err := c.Bind(&s); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if s.ID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if strings.TrimSpace(s.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Series.Create(ctx, &s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "series id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create series"})
	}

	publishAudit(h.Audit, "series", "created", s.ID, s.Title, middleware.ActingUser(c))
	return c.JSON(http.StatusCreated, s)
}

// Update handles PUT /series/:id with a partial record.
func (h *SeriesHandler) Update(c echo.Context) error {
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

	s, err := h.Series.UpdateByID(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "series not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	publishAudit(h.Audit, "series", "updated", s.ID, s.Title, middleware.ActingUser(c))
	return c.JSON(http.StatusOK, s)
}

// Delete handles DELETE /series/:id, idempotent like movie deletion.
func (h *SeriesHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	existed, err := h.Series.DeleteByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if existed {
		publishAudit(h.Audit, "series", "deleted", id, "", middleware.ActingUser(c))
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Serie deleted"})
}
