package api

import (
	"github.com/labstack/echo/v4"

	"SignalDash/internal/domain/models"
	mid "SignalDash/internal/middleware"
	"SignalDash/internal/usecase"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
)

// ShellHandler serves the layout chrome: shell, theme and locale.
type ShellHandler struct {
	shell   *usecase.ShellService
	theme   *usecase.ThemeStore
	locale  *usecase.LocaleAdapter
	session *usecase.SessionStore
	l       *applogger.Logger
}

func NewShellHandler(shell *usecase.ShellService, theme *usecase.ThemeStore, locale *usecase.LocaleAdapter, session *usecase.SessionStore, l *applogger.Logger) *ShellHandler {
	return &ShellHandler{shell: shell, theme: theme, locale: locale, session: session, l: l}
}

func (h *ShellHandler) RegisterRoutes(e *echo.Echo) {
	s := e.Group("/api/shell")
	s.GET("", h.Shell)
	s.POST("/sidebar/toggle", h.ToggleSidebar)
	s.GET("/search", h.Search, mid.RequireUser(h.session))

	t := e.Group("/api/theme")
	t.GET("", h.Theme)
	t.PUT("", h.SetTheme)
	t.POST("/toggle", h.ToggleTheme)

	lc := e.Group("/api/locale")
	lc.GET("", h.Locale)
	lc.PUT("", h.ChangeLanguage)
	lc.GET("/translate", h.Translate)
}

func (h *ShellHandler) Shell(c echo.Context) error {
	sh, err := h.shell.Build(c.Request().Context(), shellRequest(c))
	if err != nil {
		h.l.Error("shell build failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, sh)
}

func (h *ShellHandler) ToggleSidebar(c echo.Context) error {
	st, err := h.shell.ToggleSidebar(c.Request().Context(), mid.ClientID(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, st)
}

func (h *ShellHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	rows := h.shell.Search(req.Q)
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *ShellHandler) Theme(c echo.Context) error {
	res, err := h.theme.Current(c.Request().Context(), mid.ClientID(c), probe(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ShellHandler) SetTheme(c echo.Context) error {
	req := &models.ThemeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.theme.SetTheme(c.Request().Context(), mid.ClientID(c), req.Theme, probe(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ShellHandler) ToggleTheme(c echo.Context) error {
	res, err := h.theme.ToggleTheme(c.Request().Context(), mid.ClientID(c), probe(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ShellHandler) Locale(c echo.Context) error {
	res, err := h.locale.Current(c.Request().Context(), mid.ClientID(c), acceptLanguage(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ShellHandler) ChangeLanguage(c echo.Context) error {
	req := &models.LocaleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.locale.ChangeLanguage(c.Request().Context(), mid.ClientID(c), req.Language)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ShellHandler) Translate(c echo.Context) error {
	req := &models.TranslateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	loc, err := h.locale.Current(c.Request().Context(), mid.ClientID(c), acceptLanguage(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, models.Translation{
		Key:      req.Key,
		Value:    h.locale.T(loc.Language, req.Key),
		Language: loc.Language,
	})
}
