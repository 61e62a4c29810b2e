package queue

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
	"github.com/mediqueue/mediqueue/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/queue", h.ListQueue)
	api.DELETE("/queue", h.ResetQueue)
	api.GET("/logs", h.ListLogs)
}

func (h *Handler) ListQueue(c echo.Context) error {
	n := h.svc.Limits().Queue
	p := pagination.FromContext(c, pagination.Limits{Default: n, Max: n})
	items, err := h.svc.List(c.Request().Context(), p.Limit)
	if err != nil {
		return apperr.ToHTTP(err, "Failed to load queue.")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ResetQueue(c echo.Context) error {
	res, err := h.svc.Clear(c.Request().Context())
	if err != nil {
		return apperr.ToHTTP(err, "Failed to reset queue.")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) ListLogs(c echo.Context) error {
	n := h.svc.Limits().Log
	p := pagination.FromContext(c, pagination.Limits{Default: n, Max: n})
	items, err := h.svc.Recent(c.Request().Context(), p.Limit)
	if err != nil {
		return apperr.ToHTTP(err, "Failed to load triage logs.")
	}
	return c.JSON(http.StatusOK, items)
}
