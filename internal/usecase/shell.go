package usecase

import (
	"context"
	"errors"

	"SignalDash/internal/domain/models"
	domrepo "SignalDash/internal/domain/repository"
	applogger "SignalDash/pkg/logger"
)

const LayoutNamespace = "layout-storage"

var allRoles = []models.Role{models.RoleAdmin, models.RoleUser, models.RoleModerator}

type navEntry struct {
	key   string
	href  string
	roles []models.Role
}

var navigation = []navEntry{
	{"nav.dashboard", "/dashboard", allRoles},
	{"nav.signals", "/signals", allRoles},
	{"nav.analytics", "/analytics", []models.Role{models.RoleAdmin, models.RoleModerator}},
	{"nav.subscriptions", "/subscriptions", []models.Role{models.RoleAdmin}},
	{"users.title", "/users", []models.Role{models.RoleAdmin, models.RoleModerator}},
	{"notifications.title", "/notifications", []models.Role{models.RoleAdmin, models.RoleModerator}},
	{"nav.roles", "/roles", []models.Role{models.RoleAdmin}},
	{"nav.admin", "/admin", []models.Role{models.RoleAdmin}},
}

// ShellRequest carries the per-request inputs the shell depends on.
type ShellRequest struct {
	Client         string
	Probe          ColorSchemeProbe
	AcceptLanguage string
}

// ShellService builds the layout around protected pages.
type ShellService struct {
	session *SessionStore
	theme   *ThemeStore
	locale  *LocaleAdapter
	feed    *NotificationFeed
	signals *SignalService
	store   domrepo.StateStore
	l       *applogger.Logger
}

func NewShellService(session *SessionStore, theme *ThemeStore, locale *LocaleAdapter, feed *NotificationFeed, signals *SignalService, store domrepo.StateStore, l *applogger.Logger) *ShellService {
	return &ShellService{session: session, theme: theme, locale: locale, feed: feed, signals: signals, store: store, l: l}
}

// Navigation lists the items role may see. No user, no items.
func (s *ShellService) Navigation(u *models.User, lang models.Language) []models.NavItem {
	out := make([]models.NavItem, 0, len(navigation))
	if u == nil {
		return out
	}
	for _, e := range navigation {
		item := models.NavItem{Key: e.key, Name: s.locale.T(lang, e.key), Href: e.href, Roles: e.roles}
		if item.Allows(u.Role) {
			out = append(out, item)
		}
	}
	return out
}

// Document resolves the root element state for a request.
func (s *ShellService) Document(ctx context.Context, req ShellRequest) (models.Document, ThemeResult, LocaleResult, error) {
	theme, err := s.theme.Current(ctx, req.Client, req.Probe)
	if err != nil {
		return models.Document{}, ThemeResult{}, LocaleResult{}, err
	}
	locale, err := s.locale.Current(ctx, req.Client, req.AcceptLanguage)
	if err != nil {
		return models.Document{}, ThemeResult{}, LocaleResult{}, err
	}
	return Document(theme, locale), theme, locale, nil
}

func (s *ShellService) Build(ctx context.Context, req ShellRequest) (*models.Shell, error) {
	u, err := s.session.User(ctx, req.Client)
	if err != nil {
		return nil, err
	}
	doc, theme, locale, err := s.Document(ctx, req)
	if err != nil {
		return nil, err
	}
	layout, err := s.layout(ctx, req.Client)
	if err != nil {
		return nil, err
	}
	return &models.Shell{
		Document:      doc,
		User:          u,
		Navigation:    s.Navigation(u, locale.Language),
		Settings:      models.NavItem{Key: "nav.settings", Name: s.locale.T(locale.Language, "nav.settings"), Href: "/settings"},
		Collapsed:     layout.Collapsed,
		Notifications: s.feed.Menu(req.Client),
		ThemeMenu:     markActive(themeOptions, string(theme.Theme)),
		LanguageMenu:  markActive(languageOptions, string(locale.Language)),
		SearchLabel:   s.locale.T(locale.Language, "common.search"),
	}, nil
}

func (s *ShellService) layout(ctx context.Context, client string) (models.LayoutState, error) {
	var st models.LayoutState
	err := s.store.Load(ctx, LayoutNamespace, client, &st)
	switch {
	case err == nil, errors.Is(err, domrepo.ErrNotFound):
		return st, nil
	case isDecodeError(err):
		s.l.Warn("layout.rehydrate corrupt record", applogger.String("client", client), applogger.Error(err))
		return models.LayoutState{}, nil
	default:
		return st, errStorage(err)
	}
}

// ToggleSidebar flips the collapsed flag.
func (s *ShellService) ToggleSidebar(ctx context.Context, client string) (models.LayoutState, error) {
	st, err := s.layout(ctx, client)
	if err != nil {
		return st, err
	}
	st.Collapsed = !st.Collapsed
	if err := s.store.Save(ctx, LayoutNamespace, client, st); err != nil {
		return st, errStorage(err)
	}
	return st, nil
}

// Search is the header search box over the signal catalog.
func (s *ShellService) Search(q string) []models.Signal {
	return s.signals.SearchSymbols(q)
}
