package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/service/tokens"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
)

// HeaderClientToken echoes a freshly issued client token for callers that
// do not keep cookies.
const HeaderClientToken = "X-Client-Token"

type ctxKey string

const (
	clientKey ctxKey = "client"
	userKey   ctxKey = "user"
)

// ClientConfig configures the client session middleware.
type ClientConfig struct {
	Tokens     *tokens.Manager
	CookieName string
	Secure     bool
	Logger     *applogger.Logger
}

// ClientSession identifies the browser behind a request. The client id
// comes from the signed cookie or a Bearer token; a missing or invalid
// token gets a new client id and cookie.
func ClientSession(cfg ClientConfig) echo.MiddlewareFunc {
	if cfg.Logger == nil {
		cfg.Logger = applogger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c.Request(), cfg.CookieName)
			var client string
			if raw != "" {
				id, err := cfg.Tokens.Parse(raw)
				if err != nil {
					cfg.Logger.Debug("client token rejected", applogger.Error(err))
				}
				client = id
			}
			if client == "" {
				id, token, err := cfg.Tokens.Issue()
				if err != nil {
					cfg.Logger.Error("client token issue failed", applogger.Error(err))
					return xhttp.AppErrorResponse(c, xhttp.InternalError("session unavailable").WithError(err))
				}
				client = id
				c.SetCookie(&http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cfg.Tokens.TTL().Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
				c.Response().Header().Set(HeaderClientToken, token)
			}

			c.Set(string(clientKey), client)
			c.SetRequest(c.Request().WithContext(ContextWithClient(c.Request().Context(), client)))
			return next(c)
		}
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if ck, err := r.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	parts := strings.SplitN(r.Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// ClientID returns the client id set by ClientSession.
func ClientID(c echo.Context) string {
	if v, ok := c.Get(string(clientKey)).(string); ok {
		return v
	}
	return ""
}

func ContextWithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, clientKey, client)
}

func ClientFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(clientKey).(string); ok {
		return v
	}
	return ""
}

// UserSource loads the signed-in user of a client, nil when signed out.
type UserSource interface {
	User(ctx context.Context, client string) (*models.User, error)
}

// RequireUser rejects requests from signed-out clients with 401 and stores
// the user for handlers.
func RequireUser(users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, err := users.User(c.Request().Context(), ClientID(c))
			if err != nil {
				return xhttp.AppErrorResponse(c, err)
			}
			if u == nil {
				return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("authentication required"))
			}
			c.Set(string(userKey), u)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by RequireUser.
func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(string(userKey)).(*models.User)
	return u
}
