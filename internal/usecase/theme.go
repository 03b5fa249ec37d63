package usecase

import (
	"context"
	"errors"
	"strings"

	"SignalDash/internal/domain/models"
	domrepo "SignalDash/internal/domain/repository"
	applogger "SignalDash/pkg/logger"
)

const ThemeNamespace = "theme-storage"

// ColorSchemeProbe is the platform preference consulted when the theme is
// "system". It reports whether the client prefers dark.
type ColorSchemeProbe func() bool

// ProbeFromHeader reads Sec-CH-Prefers-Color-Scheme. Anything but "dark"
// is light.
func ProbeFromHeader(v string) ColorSchemeProbe {
	return func() bool { return strings.EqualFold(strings.TrimSpace(strings.Trim(v, `"`)), "dark") }
}

// ThemeResult is the stored choice and the class applied to the document.
type ThemeResult struct {
	Theme models.Theme `json:"theme"`
	Class string       `json:"class"`
}

// ThemeStore holds each client's light/dark/system preference.
type ThemeStore struct {
	store domrepo.StateStore
	l     *applogger.Logger
}

func NewThemeStore(store domrepo.StateStore, l *applogger.Logger) *ThemeStore {
	return &ThemeStore{store: store, l: l}
}

// ResolveClass computes the document class. "system" consults probe once.
func ResolveClass(t models.Theme, probe ColorSchemeProbe) string {
	if t == models.ThemeSystem {
		if probe != nil && probe() {
			return string(models.ThemeDark)
		}
		return string(models.ThemeLight)
	}
	if t == models.ThemeDark {
		return string(models.ThemeDark)
	}
	return string(models.ThemeLight)
}

// Current rehydrates the stored theme (default system) and re-applies it.
func (t *ThemeStore) Current(ctx context.Context, client string, probe ColorSchemeProbe) (ThemeResult, error) {
	var st models.ThemeState
	err := t.store.Load(ctx, ThemeNamespace, client, &st)
	switch {
	case err == nil && st.Theme.IsValid():
	case err == nil || errors.Is(err, domrepo.ErrNotFound):
		st.Theme = models.ThemeSystem
	case isDecodeError(err):
		t.l.Warn("theme.rehydrate corrupt record", applogger.String("client", client), applogger.Error(err))
		st.Theme = models.ThemeSystem
	default:
		return ThemeResult{}, errStorage(err)
	}
	return ThemeResult{Theme: st.Theme, Class: ResolveClass(st.Theme, probe)}, nil
}

func (t *ThemeStore) SetTheme(ctx context.Context, client string, theme models.Theme, probe ColorSchemeProbe) (ThemeResult, error) {
	if !theme.IsValid() {
		return ThemeResult{}, errOneOf("theme", string(theme))
	}
	if err := t.store.Save(ctx, ThemeNamespace, client, models.ThemeState{Theme: theme}); err != nil {
		return ThemeResult{}, errStorage(err)
	}
	return ThemeResult{Theme: theme, Class: ResolveClass(theme, probe)}, nil
}

// ToggleTheme flips light to dark; dark and system both go to light.
func (t *ThemeStore) ToggleTheme(ctx context.Context, client string, probe ColorSchemeProbe) (ThemeResult, error) {
	cur, err := t.Current(ctx, client, probe)
	if err != nil {
		return ThemeResult{}, err
	}
	next := models.ThemeLight
	if cur.Theme == models.ThemeLight {
		next = models.ThemeDark
	}
	return t.SetTheme(ctx, client, next, probe)
}
