package api

import (
	"github.com/labstack/echo/v4"

	"SignalDash/internal/domain/models"
	mid "SignalDash/internal/middleware"
	icache "SignalDash/internal/service/cache"
	"SignalDash/internal/usecase"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
)

type SettingsHandler struct {
	settings *usecase.SettingsService
	shell    *usecase.ShellService
	session  *usecase.SessionStore
	pages    *icache.PageCache
	l        *applogger.Logger
}

func NewSettingsHandler(settings *usecase.SettingsService, shell *usecase.ShellService, session *usecase.SessionStore, pages *icache.PageCache, l *applogger.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, shell: shell, session: session, pages: pages, l: l}
}

func (h *SettingsHandler) RegisterRoutes(e *echo.Echo) {
	auth := mid.RequireUser(h.session)
	g := e.Group("/api/settings")
	g.GET("", h.Page, auth)
	g.PATCH("/profile", h.UpdateProfile, auth)
	g.PATCH("/notifications", h.UpdateNotifications, auth)
	g.PUT("/preferences", h.UpdatePreferences, auth)
	g.POST("/export", h.RequestExport, auth)
	g.GET("/export/:id", h.Export, auth)
}

func (h *SettingsHandler) Page(c echo.Context) error {
	req := &models.SettingsQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	_, theme, locale, err := h.shell.Document(c.Request().Context(), shellRequest(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, h.settings.Page(mid.CurrentUser(c), req.Tab, theme, locale))
}

func (h *SettingsHandler) UpdateProfile(c echo.Context) error {
	req := &models.ProfileRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ctx := c.Request().Context()
	client := mid.ClientID(c)
	u, err := h.settings.UpdateProfile(ctx, client, req)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	invalidatePages(ctx, h.pages, h.l, client)
	return xhttp.SuccessResponse(c, u)
}

func (h *SettingsHandler) UpdateNotifications(c echo.Context) error {
	req := &models.NotificationPrefsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	u, err := h.settings.UpdateNotifications(c.Request().Context(), mid.ClientID(c), req)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, u)
}

func (h *SettingsHandler) UpdatePreferences(c echo.Context) error {
	req := &models.PreferencesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ctx := c.Request().Context()
	client := mid.ClientID(c)
	res, err := h.settings.UpdatePreferences(ctx, client, req, probe(c), acceptLanguage(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	invalidatePages(ctx, h.pages, h.l, client)
	return xhttp.SuccessResponse(c, res)
}

// RequestExport queues an account export and answers before it runs.
func (h *SettingsHandler) RequestExport(c echo.Context) error {
	job, err := h.settings.RequestExport(c.Request().Context(), mid.ClientID(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, "/api/settings/export/"+job.ID)
	return xhttp.AcceptedResponse(c, job)
}

func (h *SettingsHandler) Export(c echo.Context) error {
	req := &models.ExportIDParam{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	job, err := h.settings.Export(c.Request().Context(), mid.ClientID(c), req.ID)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, job)
}
