package api

import (
	"github.com/labstack/echo/v4"

	"SignalDash/internal/domain/models"
	mid "SignalDash/internal/middleware"
	icache "SignalDash/internal/service/cache"
	"SignalDash/internal/service/ratelimit"
	"SignalDash/internal/usecase"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
)

type AuthHandler struct {
	session *usecase.SessionStore
	locale  *usecase.LocaleAdapter
	pages   *icache.PageCache
	limiter *ratelimit.Limiter
	l       *applogger.Logger
}

func NewAuthHandler(session *usecase.SessionStore, locale *usecase.LocaleAdapter, pages *icache.PageCache, limiter *ratelimit.Limiter, l *applogger.Logger) *AuthHandler {
	return &AuthHandler{session: session, locale: locale, pages: pages, limiter: limiter, l: l}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/auth")
	g.POST("/login", h.Login, mid.RateLimitByIP(h.limiter, "login"))
	g.POST("/register", h.Register, mid.RateLimitByIP(h.limiter, "register"))
	g.POST("/logout", h.Logout)
	g.GET("/session", h.Session)
}

func (h *AuthHandler) message(c echo.Context, key string) string {
	loc, err := h.locale.Current(c.Request().Context(), mid.ClientID(c), acceptLanguage(c))
	if err != nil {
		loc.Language = models.LangAR
	}
	return h.locale.T(loc.Language, key)
}

// Login signs the client in. Any email and password are accepted.
func (h *AuthHandler) Login(c echo.Context) error {
	req := &models.LoginRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ctx := c.Request().Context()
	client := mid.ClientID(c)

	u, err := h.session.Login(ctx, client, req.Email, req.Password)
	if err != nil {
		h.l.Error("auth.login failed", applogger.String("client", client), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	invalidatePages(ctx, h.pages, h.l, client)
	return xhttp.SuccessResponse(c, models.AuthResponse{
		AuthState: models.AuthState{User: u, IsAuthenticated: true},
		Message:   h.message(c, "auth.login.success"),
		Redirect:  usecase.PathDashboard,
	})
}

// Register checks the form before anything is stored.
func (h *AuthHandler) Register(c echo.Context) error {
	req := &models.RegisterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := usecase.ValidateRegistration(req.Password, req.ConfirmPassword, req.AgreeToTerms); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	ctx := c.Request().Context()
	client := mid.ClientID(c)

	u, err := h.session.Register(ctx, client, req)
	if err != nil {
		h.l.Error("auth.register failed", applogger.String("client", client), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	invalidatePages(ctx, h.pages, h.l, client)
	return xhttp.CreatedResponse(c, models.AuthResponse{
		AuthState: models.AuthState{User: u, IsAuthenticated: true},
		Message:   h.message(c, "auth.register.success"),
		Redirect:  usecase.PathDashboard,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	client := mid.ClientID(c)
	if err := h.session.Logout(ctx, client); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	invalidatePages(ctx, h.pages, h.l, client)
	return xhttp.SuccessResponse(c, models.AuthResponse{Redirect: usecase.PathLogin})
}

func (h *AuthHandler) Session(c echo.Context) error {
	st, err := h.session.State(c.Request().Context(), mid.ClientID(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, st)
}
