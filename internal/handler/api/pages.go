package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"SignalDash/internal/domain/models"
	mid "SignalDash/internal/middleware"
	icache "SignalDash/internal/service/cache"
	"SignalDash/internal/service/metrics"
	"SignalDash/internal/usecase"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
)

// PagesHandler serves one payload per page route, behind the auth gate.
type PagesHandler struct {
	session   *usecase.SessionStore
	shell     *usecase.ShellService
	locale    *usecase.LocaleAdapter
	builder   *usecase.PageBuilder
	signals   *usecase.SignalService
	generator *usecase.Generator
	subs      *usecase.SubscriptionService
	settings  *usecase.SettingsService
	cache     *icache.PageCache
	l         *applogger.Logger
}

func NewPagesHandler(
	session *usecase.SessionStore,
	shell *usecase.ShellService,
	locale *usecase.LocaleAdapter,
	builder *usecase.PageBuilder,
	signals *usecase.SignalService,
	generator *usecase.Generator,
	subs *usecase.SubscriptionService,
	settings *usecase.SettingsService,
	cache *icache.PageCache,
	l *applogger.Logger,
) *PagesHandler {
	metrics.Register()
	return &PagesHandler{
		session:   session,
		shell:     shell,
		locale:    locale,
		builder:   builder,
		signals:   signals,
		generator: generator,
		subs:      subs,
		settings:  settings,
		cache:     cache,
		l:         l,
	}
}

func (h *PagesHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Serve)
	for _, p := range usecase.PagePaths() {
		e.GET(p, h.Serve)
	}
	e.GET("/*", h.Serve)
}

// badQuery carries validation details out of a page builder.
type badQuery struct {
	details interface{}
}

func (b *badQuery) Error() string { return "invalid page query" }

func bind(c echo.Context, req interface{}) error {
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return &badQuery{details: verr}
	}
	return nil
}

func (h *PagesHandler) Serve(c echo.Context) error {
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/api/") {
		return xhttp.NotFoundResponse(c, []*xhttp.AppError{xhttp.NotFoundError("route not found")})
	}
	ctx := c.Request().Context()

	u, err := h.session.User(ctx, mid.ClientID(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	dec := usecase.ResolveRoute(path, u != nil)
	switch {
	case dec.Redirect != "":
		return c.Redirect(http.StatusFound, dec.Redirect)
	case dec.NotFound:
		return xhttp.NotFoundResponse(c, []*xhttp.AppError{xhttp.NotFoundErrorf("page %s not found", path)})
	}

	start := time.Now()
	defer func() {
		metrics.PageLatency.WithLabelValues(dec.Page).Observe(time.Since(start).Seconds())
	}()

	req := shellRequest(c)
	doc, theme, loc, err := h.shell.Document(ctx, req)
	if err != nil {
		metrics.PageErrors.WithLabelValues(dec.Page).Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	page := models.Page{Path: path, Document: doc}

	if dec.Public {
		page.Data = models.AuthPage{Title: h.locale.T(loc.Language, "app.title"), Form: dec.Page}
		return xhttp.SuccessResponse(c, page)
	}

	if page.Shell, err = h.shell.Build(ctx, req); err != nil {
		metrics.PageErrors.WithLabelValues(dec.Page).Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	if page.Data, err = h.build(c, dec.Page, u, theme, loc); err != nil {
		metrics.PageErrors.WithLabelValues(dec.Page).Inc()
		var bq *badQuery
		if errors.As(err, &bq) {
			return xhttp.BadRequestResponse(c, bq.details)
		}
		h.l.Error("page build failed", applogger.String("page", dec.Page), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, page)
}

func (h *PagesHandler) build(c echo.Context, page string, u *models.User, theme usecase.ThemeResult, loc usecase.LocaleResult) (interface{}, error) {
	key := page + "?" + c.QueryString() + "#" + string(loc.Language)
	switch page {
	case usecase.PageDashboard:
		return remember(c, h.cache, page, key, func() (models.DashboardPage, error) {
			return h.builder.Dashboard(u, loc.Language), nil
		})
	case usecase.PageSignals:
		q := &models.SignalsQuery{}
		if err := bind(c, q); err != nil {
			return nil, err
		}
		return remember(c, h.cache, page, key, func() (models.SignalsPage, error) {
			return h.signals.Page(q), nil
		})
	case usecase.PageGenerate:
		return remember(c, h.cache, page, key, func() (models.GeneratorCatalog, error) {
			return h.generator.Catalog(), nil
		})
	case usecase.PageAnalytics:
		q := &models.AnalyticsQuery{}
		if err := bind(c, q); err != nil {
			return nil, err
		}
		return remember(c, h.cache, page, key, func() (models.AnalyticsPage, error) {
			return h.builder.Analytics(q)
		})
	case usecase.PageSubscriptions:
		q := &models.PlansQuery{}
		if err := bind(c, q); err != nil {
			return nil, err
		}
		return remember(c, h.cache, page, key, func() (models.PlansPage, error) {
			return h.subs.Plans(u, q.Cycle), nil
		})
	case usecase.PageSettings:
		q := &models.SettingsQuery{}
		if err := bind(c, q); err != nil {
			return nil, err
		}
		return h.settings.Page(u, q.Tab, theme, loc), nil
	}
	return nil, xhttp.NotFoundErrorf("page %s not found", page)
}

func remember[T any](c echo.Context, pc *icache.PageCache, page, key string, build func() (T, error)) (interface{}, error) {
	v, hit, err := icache.Remember(c.Request().Context(), pc, mid.ClientID(c), key, build)
	if err != nil {
		return nil, err
	}
	if hit {
		metrics.PageCacheHits.WithLabelValues(page).Inc()
	}
	return v, nil
}
