package usecase

import "strings"

const (
	PageLogin         = "login"
	PageRegister      = "register"
	PageDashboard     = "dashboard"
	PageSignals       = "signals"
	PageGenerate      = "generate"
	PageAnalytics     = "analytics"
	PageSubscriptions = "subscriptions"
	PageSettings      = "settings"

	PathLogin     = "/login"
	PathDashboard = "/dashboard"
)

var publicPages = map[string]string{
	"/login":    PageLogin,
	"/register": PageRegister,
}

var protectedPages = map[string]string{
	"/dashboard":     PageDashboard,
	"/signals":       PageSignals,
	"/generate":      PageGenerate,
	"/analytics":     PageAnalytics,
	"/subscriptions": PageSubscriptions,
	"/settings":      PageSettings,
}

// RouteDecision says what to serve for a page path.
type RouteDecision struct {
	Page     string
	Public   bool
	Redirect string
	NotFound bool
}

// ResolveRoute applies the auth gate. Signed-out clients only ever see the
// public pages; everything else sends them to login.
func ResolveRoute(path string, authenticated bool) RouteDecision {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	if page, ok := publicPages[path]; ok {
		if authenticated {
			return RouteDecision{Redirect: PathDashboard}
		}
		return RouteDecision{Page: page, Public: true}
	}
	if !authenticated {
		return RouteDecision{Redirect: PathLogin}
	}
	if path == "/" || path == "" {
		return RouteDecision{Redirect: PathDashboard}
	}
	if page, ok := protectedPages[path]; ok {
		return RouteDecision{Page: page}
	}
	return RouteDecision{NotFound: true}
}

// PagePaths lists every page path that has a payload.
func PagePaths() []string {
	out := make([]string, 0, len(publicPages)+len(protectedPages))
	for p := range publicPages {
		out = append(out, p)
	}
	for p := range protectedPages {
		out = append(out, p)
	}
	return out
}

// ValidateRegistration runs the form checks that must pass before the
// session store is called.
func ValidateRegistration(password, confirm string, agreed bool) error {
	if password != confirm {
		return errPasswordMismatch()
	}
	if !agreed {
		return errTermsRequired()
	}
	return nil
}
