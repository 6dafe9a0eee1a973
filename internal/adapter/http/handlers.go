package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler carries the endpoints that belong to no domain in particular.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "nexo-backend",
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
