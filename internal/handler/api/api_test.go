package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	mid "SignalDash/internal/middleware"
	"SignalDash/internal/repository"
	icache "SignalDash/internal/service/cache"
	"SignalDash/internal/service/i18n"
	"SignalDash/internal/service/ratelimit"
	"SignalDash/internal/service/tokens"
	"SignalDash/internal/usecase"
	"SignalDash/pkg/cache"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
	"SignalDash/pkg/metrics"
	"SignalDash/pkg/queue"
)

type testEnv struct {
	srv   *xhttp.Server
	token string
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	l := applogger.Nop()
	kv := cache.NewMemoryCache()
	t.Cleanup(func() { _ = kv.Close() })

	store := repository.NewKVStateStore(kv)
	events := repository.NewMemoryPublisher(100)
	tr, err := i18n.New()
	if err != nil {
		t.Fatalf("i18n: %v", err)
	}
	rec := metrics.Noop{}

	session := usecase.NewSessionStore(store, events, rec, l, 0)
	theme := usecase.NewThemeStore(store, l)
	locale := usecase.NewLocaleAdapter(store, tr, l)
	feed := usecase.NewNotificationFeed("signaldash.activity", rec, l)
	events.Subscribe(feed.Handle)
	signals := usecase.NewSignalService()
	shell := usecase.NewShellService(session, theme, locale, feed, signals, store, l)
	generator := usecase.NewGenerator(kv, events, rec, l, 0)
	builder := usecase.NewPageBuilder(locale)
	subs := usecase.NewSubscriptionService()

	exports := repository.NewKVExportStore(kv, time.Hour)
	q := queue.NewMemoryQueue(l, &queue.QueueConfig{Workers: 1})
	q.RegisterJob(usecase.NewExportJob(session, exports, l))
	if err := q.Start(); err != nil {
		t.Fatalf("queue: %v", err)
	}
	t.Cleanup(func() { _ = q.Stop(context.Background()) })
	settings := usecase.NewSettingsService(session, theme, locale, exports, q, l, 0)

	pages := icache.NewPageCache(kv, time.Minute)
	limiter := ratelimit.New(100, 100)
	tm := tokens.NewManager("test-secret", "signaldash", time.Hour)

	srv := xhttp.NewServer([]xhttp.Handler{
		NewHealthHandler(nil),
		NewAuthHandler(session, locale, pages, limiter, l),
		NewShellHandler(shell, theme, locale, session, l),
		NewSignalsHandler(signals, generator, session, limiter, l),
		NewReportsHandler(builder, subs, locale, session, l),
		NewSettingsHandler(settings, shell, session, pages, l),
		NewNotificationsHandler(feed, session, nil, l),
		NewPagesHandler(session, shell, locale, builder, signals, generator, subs, settings, pages, l),
	},
		xhttp.WithMetricsPath(""),
		xhttp.WithMiddleware(mid.ClientSession(mid.ClientConfig{Tokens: tm, CookieName: "sd_client"})),
	)
	return &testEnv{srv: srv}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if e.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.srv.Echo().ServeHTTP(rec, req)
	if e.token == "" {
		e.token = rec.Header().Get(mid.HeaderClientToken)
	}
	return rec
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if dest != nil {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			t.Fatalf("decode data %s: %v", env.Data, err)
		}
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var errs []struct {
		Code string `json:"code"`
	}
	decode(t, rec, &errs)
	if len(errs) == 0 {
		t.Fatalf("expected error list, got %s", rec.Body.String())
	}
	return errs[0].Code
}

func login(t *testing.T, e *testEnv) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/login", `{"email":"admin@example.com","password":"x"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
}

func TestPages_AuthGate(t *testing.T) {
	e := newEnv(t)

	cases := []struct {
		path     string
		code     int
		location string
	}{
		{"/dashboard", http.StatusFound, "/login"},
		{"/settings", http.StatusFound, "/login"},
		{"/", http.StatusFound, "/login"},
		{"/login", http.StatusOK, ""},
		{"/register", http.StatusOK, ""},
	}
	for _, c := range cases {
		rec := e.do(t, http.MethodGet, c.path, "")
		if rec.Code != c.code || rec.Header().Get(echo.HeaderLocation) != c.location {
			t.Fatalf("%s: got %d %q", c.path, rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	}

	if rec := e.do(t, http.MethodGet, "/api/dashboard", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("api without session: %d", rec.Code)
	}

	login(t, e)
	after := []struct {
		path     string
		code     int
		location string
	}{
		{"/login", http.StatusFound, "/dashboard"},
		{"/", http.StatusFound, "/dashboard"},
		{"/dashboard", http.StatusOK, ""},
		{"/analytics?range=30d", http.StatusOK, ""},
		{"/users", http.StatusNotFound, ""},
		{"/analytics?range=2w", http.StatusBadRequest, ""},
	}
	for _, c := range after {
		rec := e.do(t, http.MethodGet, c.path, "")
		if rec.Code != c.code || rec.Header().Get(echo.HeaderLocation) != c.location {
			t.Fatalf("%s: got %d %q", c.path, rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	}

	e.do(t, http.MethodPost, "/api/auth/logout", "")
	if rec := e.do(t, http.MethodGet, "/dashboard", ""); rec.Code != http.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", rec.Code)
	}
}

func TestPages_DashboardPayload(t *testing.T) {
	e := newEnv(t)
	login(t, e)

	var page struct {
		Document struct {
			Dir  string `json:"dir"`
			Lang string `json:"lang"`
		} `json:"document"`
		Shell struct {
			Navigation []struct {
				Href string `json:"href"`
			} `json:"navigation"`
		} `json:"shell"`
		Data struct {
			Greeting string `json:"greeting"`
		} `json:"data"`
	}
	rec := e.do(t, http.MethodGet, "/dashboard", "")
	decode(t, rec, &page)
	if page.Document.Dir != "rtl" || page.Document.Lang != "ar" {
		t.Fatalf("unexpected document %+v", page.Document)
	}
	if len(page.Shell.Navigation) != 8 {
		t.Fatalf("admin should see every item, got %d", len(page.Shell.Navigation))
	}
	if page.Data.Greeting != "مرحباً أحمد!" {
		t.Fatalf("unexpected greeting %q", page.Data.Greeting)
	}
}

func TestAuth_RegisterMismatchDoesNotSignIn(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/api/auth/register",
		`{"firstName":"A","lastName":"B","email":"a@b.co","password":"one","confirmPassword":"two","agreeToTerms":true}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != usecase.CodePasswordMismatch {
		t.Fatalf("expected mismatch, got %d %s", rec.Code, rec.Body.String())
	}

	var st struct {
		IsAuthenticated bool `json:"isAuthenticated"`
	}
	decode(t, e.do(t, http.MethodGet, "/api/auth/session", ""), &st)
	if st.IsAuthenticated {
		t.Fatalf("rejected registration must not create a session")
	}

	rec = e.do(t, http.MethodPost, "/api/auth/register",
		`{"firstName":"A","lastName":"B","email":"a@b.co","password":"one","confirmPassword":"one","agreeToTerms":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	var sh struct {
		Navigation []struct {
			Href string `json:"href"`
		} `json:"navigation"`
	}
	decode(t, e.do(t, http.MethodGet, "/api/shell", ""), &sh)
	for _, n := range sh.Navigation {
		if n.Href == "/subscriptions" {
			t.Fatalf("a user role must not see subscriptions")
		}
	}
}

func TestGenerator_Endpoints(t *testing.T) {
	e := newEnv(t)
	login(t, e)

	rec := e.do(t, http.MethodPost, "/api/generator/generate", `{"symbol":"EUR/USD","timeframe":"15M","models":[],"threshold":75}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != usecase.CodeNoModels {
		t.Fatalf("expected ERR_NO_MODELS, got %d %s", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodPost, "/api/generator/generate", `{"models":["rsi"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate: %d %s", rec.Code, rec.Body.String())
	}
	var sig struct {
		Symbol     string `json:"symbol"`
		Timeframe  string `json:"timeframe"`
		Confidence int    `json:"confidence"`
	}
	decode(t, rec, &sig)
	if sig.Symbol != "EUR/USD" || sig.Timeframe != "15M" || sig.Confidence < 75 || sig.Confidence > 95 {
		t.Fatalf("unexpected signal %+v", sig)
	}

	var list struct {
		Rows []struct {
			Message string `json:"message"`
		} `json:"rows"`
	}
	decode(t, e.do(t, http.MethodGet, "/api/notifications", ""), &list)
	if len(list.Rows) != 4 || !strings.HasPrefix(list.Rows[0].Message, "EUR/USD") {
		t.Fatalf("generated signal should reach the feed, got %+v", list.Rows)
	}
}

func TestSignals_FilterWon(t *testing.T) {
	e := newEnv(t)
	login(t, e)

	var page struct {
		Signals []struct {
			Status string `json:"status"`
		} `json:"signals"`
	}
	decode(t, e.do(t, http.MethodGet, "/api/signals?status=won", ""), &page)
	if len(page.Signals) != 1 || page.Signals[0].Status != "won" {
		t.Fatalf("unexpected won subset %+v", page.Signals)
	}
	if rec := e.do(t, http.MethodGet, "/api/signals?status=pending", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown status must be rejected, got %d", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/api/signals/99", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: %d", rec.Code)
	}
}

func TestThemeAndLocale(t *testing.T) {
	e := newEnv(t)

	var th struct {
		Theme string `json:"theme"`
		Class string `json:"class"`
	}
	req := httptest.NewRequest(http.MethodGet, "/api/theme", nil)
	req.Header.Set(HeaderColorScheme, "dark")
	rec := httptest.NewRecorder()
	e.srv.Echo().ServeHTTP(rec, req)
	decode(t, rec, &th)
	if th.Theme != "system" || th.Class != "dark" {
		t.Fatalf("system theme should follow the hint, got %+v", th)
	}

	decode(t, e.do(t, http.MethodPut, "/api/theme", `{"theme":"dark"}`), &th)
	decode(t, e.do(t, http.MethodPut, "/api/theme", `{"theme":"light"}`), &th)
	if th.Class != "light" {
		t.Fatalf("expected light class, got %+v", th)
	}
	if rec := e.do(t, http.MethodPut, "/api/theme", `{"theme":"blue"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid theme: %d", rec.Code)
	}

	var loc struct {
		Language string `json:"language"`
		Dir      string `json:"dir"`
	}
	decode(t, e.do(t, http.MethodPut, "/api/locale", `{"language":"en"}`), &loc)
	if loc.Language != "en" || loc.Dir != "ltr" {
		t.Fatalf("unexpected locale %+v", loc)
	}
	var tr struct {
		Value string `json:"value"`
	}
	decode(t, e.do(t, http.MethodGet, "/api/locale/translate?key=nav.dashboard", ""), &tr)
	if tr.Value != "Dashboard" {
		t.Fatalf("unexpected translation %q", tr.Value)
	}
}

func TestSettings_Export(t *testing.T) {
	e := newEnv(t)
	login(t, e)

	rec := e.do(t, http.MethodPatch, "/api/settings/profile", `{"firstName":"Omar"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: %d %s", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodPost, "/api/settings/export", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("export: %d %s", rec.Code, rec.Body.String())
	}
	var job struct {
		ID      string `json:"id"`
		Status  string `json:"status"`
		Payload *struct {
			FirstName string `json:"firstName"`
		} `json:"payload"`
	}
	decode(t, rec, &job)

	deadline := time.Now().Add(2 * time.Second)
	for job.Status != "done" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
		decode(t, e.do(t, http.MethodGet, "/api/settings/export/"+job.ID, ""), &job)
	}
	if job.Status != "done" || job.Payload == nil || job.Payload.FirstName != "Omar" {
		t.Fatalf("export did not finish with the profile, got %+v", job)
	}
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	if rec := e.do(t, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/api/nothing", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown api route: %d", rec.Code)
	}
}
