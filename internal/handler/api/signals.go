package api

import (
	"github.com/labstack/echo/v4"

	"SignalDash/internal/domain/models"
	mid "SignalDash/internal/middleware"
	"SignalDash/internal/service/ratelimit"
	"SignalDash/internal/usecase"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
)

// SignalsHandler serves the signal list and the generator.
type SignalsHandler struct {
	signals   *usecase.SignalService
	generator *usecase.Generator
	session   *usecase.SessionStore
	limiter   *ratelimit.Limiter
	l         *applogger.Logger
}

func NewSignalsHandler(signals *usecase.SignalService, generator *usecase.Generator, session *usecase.SessionStore, limiter *ratelimit.Limiter, l *applogger.Logger) *SignalsHandler {
	return &SignalsHandler{signals: signals, generator: generator, session: session, limiter: limiter, l: l}
}

func (h *SignalsHandler) RegisterRoutes(e *echo.Echo) {
	auth := mid.RequireUser(h.session)

	s := e.Group("/api/signals")
	s.GET("", h.List, auth)
	s.GET("/:id", h.Get, auth)

	g := e.Group("/api/generator")
	g.GET("/catalog", h.Catalog, auth)
	g.POST("/generate", h.Generate, auth, mid.RateLimit(h.limiter, "generate"))
}

func (h *SignalsHandler) List(c echo.Context) error {
	req := &models.SignalsQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.signals.Page(req))
}

func (h *SignalsHandler) Get(c echo.Context) error {
	req := &models.SignalIDParam{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	v, err := h.signals.Get(req.ID)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, v)
}

func (h *SignalsHandler) Catalog(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.generator.Catalog())
}

// Generate blocks for the generator delay. A client that disconnects
// cancels the wait.
func (h *SignalsHandler) Generate(c echo.Context) error {
	req := &models.GenerateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	client := mid.ClientID(c)
	sig, err := h.generator.Generate(c.Request().Context(), client, req)
	if err != nil {
		h.l.Warn("generator rejected", applogger.String("client", client), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, sig)
}
