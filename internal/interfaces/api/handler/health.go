package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness for load balancers and uptime checks.
type HealthHandler struct {
	channels func() []string
}

// NewHealthHandler creates a new HealthHandler. channels lists the active transports.
func NewHealthHandler(channels func() []string) *HealthHandler {
	return &HealthHandler{channels: channels}
}

type healthResponse struct {
	Status   string   `json:"status"`
	Channels []string `json:"channels"`
}

// Check responds 200 with the active transports.
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Channels: h.channels()})
}
