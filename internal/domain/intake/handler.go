package intake

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/triage", h.Submit)
}

func (h *Handler) Submit(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	res, err := h.svc.Submit(c.Request().Context(), &req)
	if err != nil {
		return apperr.ToHTTP(err, "Failed to record triage.")
	}
	return c.JSON(http.StatusOK, res)
}

// bindError reports undecodable bodies with the symptoms message. Other
// binder failures, such as an oversized body or an unsupported content
// type, keep their own status.
func bindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code != http.StatusBadRequest {
		return he
	}
	return echo.NewHTTPError(http.StatusBadRequest, apperr.Message{Message: msgNoSymptoms}).SetInternal(err)
}
