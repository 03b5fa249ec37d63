package api

import (
	"context"

	"github.com/labstack/echo/v4"

	mid "SignalDash/internal/middleware"
	icache "SignalDash/internal/service/cache"
	"SignalDash/internal/usecase"
	applogger "SignalDash/pkg/logger"
)

// HeaderColorScheme is the client hint carrying the OS color scheme.
const HeaderColorScheme = "Sec-CH-Prefers-Color-Scheme"

func probe(c echo.Context) usecase.ColorSchemeProbe {
	return usecase.ProbeFromHeader(c.Request().Header.Get(HeaderColorScheme))
}

func acceptLanguage(c echo.Context) string {
	return c.Request().Header.Get("Accept-Language")
}

func shellRequest(c echo.Context) usecase.ShellRequest {
	return usecase.ShellRequest{
		Client:         mid.ClientID(c),
		Probe:          probe(c),
		AcceptLanguage: acceptLanguage(c),
	}
}

// invalidatePages drops cached page payloads after a change to what the
// client's pages show. Failures only cost a stale page.
func invalidatePages(ctx context.Context, pages *icache.PageCache, l *applogger.Logger, client string) {
	if pages == nil {
		return
	}
	if err := pages.Invalidate(ctx, client); err != nil {
		l.Warn("page cache invalidate failed", applogger.String("client", client), applogger.Error(err))
	}
}
