package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public symptom list on api and the catalog
// maintenance endpoints on admin, which the caller has already guarded.
func (h *Handler) RegisterRoutes(api *echo.Group, admin *echo.Group) {
	api.GET("/symptoms", h.ListSymptoms)

	admin.GET("/diseases", h.ListDiseases)
	admin.POST("/diseases", h.CreateDisease)
	admin.PUT("/diseases/:id", h.UpdateDisease)
}

func (h *Handler) ListSymptoms(c echo.Context) error {
	items, err := h.svc.Symptoms(c.Request().Context())
	if err != nil {
		return apperr.ToHTTP(err, "Failed to load symptoms.")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListDiseases(c echo.Context) error {
	items, err := h.svc.ListForAdmin(c.Request().Context())
	if err != nil {
		return apperr.ToHTTP(err, "Failed to load diseases.")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateDisease(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperr.Message{Message: msgRequiredFields})
	}
	if _, err := h.svc.Create(c.Request().Context(), &in); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return apperr.ToHTTP(err, "Disease already exists.")
		}
		return apperr.ToHTTP(err, "Failed to add disease.")
	}
	return c.JSON(http.StatusCreated, apperr.Message{Message: "Disease added successfully."})
}

func (h *Handler) UpdateDisease(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, apperr.Message{Message: "Invalid disease id."})
	}
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperr.Message{Message: msgRequiredFields})
	}
	if _, err := h.svc.Update(c.Request().Context(), id, &in); err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			return apperr.ToHTTP(err, "Disease not found.")
		case errors.Is(err, apperr.ErrConflict):
			return apperr.ToHTTP(err, "Another disease already has this name.")
		}
		return apperr.ToHTTP(err, "Failed to update disease.")
	}
	return c.JSON(http.StatusOK, apperr.Message{Message: "Disease updated successfully."})
}
