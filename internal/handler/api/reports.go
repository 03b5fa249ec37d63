package api

import (
	"github.com/labstack/echo/v4"

	"SignalDash/internal/domain/models"
	mid "SignalDash/internal/middleware"
	"SignalDash/internal/usecase"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
)

// ReportsHandler serves the dashboard, analytics and plan pages as JSON.
type ReportsHandler struct {
	pages   *usecase.PageBuilder
	subs    *usecase.SubscriptionService
	locale  *usecase.LocaleAdapter
	session *usecase.SessionStore
	l       *applogger.Logger
}

func NewReportsHandler(pages *usecase.PageBuilder, subs *usecase.SubscriptionService, locale *usecase.LocaleAdapter, session *usecase.SessionStore, l *applogger.Logger) *ReportsHandler {
	return &ReportsHandler{pages: pages, subs: subs, locale: locale, session: session, l: l}
}

func (h *ReportsHandler) RegisterRoutes(e *echo.Echo) {
	auth := mid.RequireUser(h.session)
	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard, auth)
	g.GET("/analytics", h.Analytics, auth)
	g.GET("/plans", h.Plans, auth)
	g.GET("/plans/quote", h.Quote, auth)
}

func (h *ReportsHandler) Dashboard(c echo.Context) error {
	loc, err := h.locale.Current(c.Request().Context(), mid.ClientID(c), acceptLanguage(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, h.pages.Dashboard(mid.CurrentUser(c), loc.Language))
}

func (h *ReportsHandler) Analytics(c echo.Context) error {
	req := &models.AnalyticsQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	p, err := h.pages.Analytics(req)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, p)
}

func (h *ReportsHandler) Plans(c echo.Context) error {
	req := &models.PlansQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.subs.Plans(mid.CurrentUser(c), req.Cycle))
}

// Quote prices a plan. Nothing is charged.
func (h *ReportsHandler) Quote(c echo.Context) error {
	req := &models.QuoteQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	q, err := h.subs.Quote(req.Plan, req.Cycle)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, q)
}
