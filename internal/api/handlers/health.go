// Package handlers implements HTTP handlers for the card value backend API.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler provides liveness endpoints. The service holds no state and
// has no backing store, so liveness is simply "the process answers".
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Health is a legacy alias for Healthz with a different body shape, kept
// for callers that probe GET /health.
func (*HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}
