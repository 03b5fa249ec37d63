package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"SignalDash/pkg/cache"
	xhttp "SignalDash/pkg/http"
)

type HealthStatus struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// HealthHandler reports liveness plus reachability of the KV backend.
type HealthHandler struct {
	storage cache.Pinger
}

// NewHealthHandler takes the KV backend when it can be pinged; nil skips
// the check.
func NewHealthHandler(storage cache.Pinger) *HealthHandler {
	return &HealthHandler{storage: storage}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
}

func (h *HealthHandler) Health(c echo.Context) error {
	res := HealthStatus{Status: "ok", Storage: "ok"}
	if h.storage == nil {
		res.Storage = "memory"
		return xhttp.SuccessResponse(c, res)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.storage.Ping(ctx); err != nil {
		res.Status = "degraded"
		res.Storage = err.Error()
		return xhttp.DataResponse(c, http.StatusServiceUnavailable, res)
	}
	return xhttp.SuccessResponse(c, res)
}
