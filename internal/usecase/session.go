package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"SignalDash/internal/domain/models"
	domrepo "SignalDash/internal/domain/repository"
	applogger "SignalDash/pkg/logger"
)

const AuthNamespace = "auth-storage"

const demoAvatar = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100&h=100&fit=crop&crop=face"

// SessionStore owns the user record of each client. Login and register
// simulate a remote call and always succeed; credentials are not checked.
type SessionStore struct {
	store   domrepo.StateStore
	events  domrepo.EventPublisher
	metrics domrepo.Metrics
	l       *applogger.Logger
	latency time.Duration

	sleep Sleeper
	now   func() time.Time
	newID func() string
}

func NewSessionStore(store domrepo.StateStore, events domrepo.EventPublisher, metrics domrepo.Metrics, l *applogger.Logger, latency time.Duration) *SessionStore {
	return &SessionStore{
		store:   store,
		events:  events,
		metrics: metrics,
		l:       l,
		latency: latency,
		sleep:   Wait,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// State rehydrates the client's session. A corrupt record is logged and
// read as signed out.
func (s *SessionStore) State(ctx context.Context, client string) (models.AuthState, error) {
	var st models.AuthState
	err := s.store.Load(ctx, AuthNamespace, client, &st)
	switch {
	case err == nil:
		if st.User == nil {
			st.IsAuthenticated = false
		}
		return st, nil
	case errors.Is(err, domrepo.ErrNotFound):
		return models.AuthState{}, nil
	case isDecodeError(err):
		s.l.Warn("session.rehydrate corrupt record", applogger.String("client", client), applogger.Error(err))
		s.metrics.RecordError("session_corrupt")
		return models.AuthState{}, nil
	default:
		return models.AuthState{}, errStorage(err)
	}
}

// User returns the signed-in user or nil.
func (s *SessionStore) User(ctx context.Context, client string) (*models.User, error) {
	st, err := s.State(ctx, client)
	if err != nil {
		return nil, err
	}
	if !st.IsAuthenticated {
		return nil, nil
	}
	return st.User, nil
}

func (s *SessionStore) Login(ctx context.Context, client, email, password string) (*models.User, error) {
	start := s.now()
	if err := s.sleep(ctx, s.latency); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	now := s.now().UTC()
	u := &models.User{
		ID:          "1",
		Email:       email,
		FirstName:   "أحمد",
		LastName:    "محمد",
		Role:        models.RoleAdmin,
		Avatar:      demoAvatar,
		PhoneNumber: "+966501234567",
		Preferences: models.Preferences{
			Language: models.LangAR,
			Theme:    models.ThemeSystem,
			Notifications: models.NotificationChannels{
				Email: true,
				SMS:   true,
				Push:  true,
				InApp: true,
			},
		},
		Subscription: models.Subscription{
			Plan:      models.TierPremium,
			Status:    models.SubActive,
			ExpiresAt: "2024-12-31",
		},
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LastLoginAt: &now,
	}
	if err := s.save(ctx, client, u); err != nil {
		return nil, err
	}
	s.metrics.RecordLatency("session_login", s.now().Sub(start).Seconds())
	s.emit(ctx, models.EventLogin, client, u.ID)
	return u, nil
}

// Register creates an account from the submitted fields. Password checks
// belong to the caller.
func (s *SessionStore) Register(ctx context.Context, client string, req *models.RegisterRequest) (*models.User, error) {
	start := s.now()
	if err := s.sleep(ctx, s.latency); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	u := &models.User{
		ID:          s.newID(),
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        models.RoleUser,
		PhoneNumber: req.PhoneNumber,
		Preferences: models.Preferences{
			Language: models.LangAR,
			Theme:    models.ThemeSystem,
			Notifications: models.NotificationChannels{
				Email: true,
				Push:  true,
				InApp: true,
			},
		},
		Subscription: models.Subscription{
			Plan:   models.TierFree,
			Status: models.SubActive,
		},
		CreatedAt: s.now().UTC(),
	}
	if err := s.save(ctx, client, u); err != nil {
		return nil, err
	}
	s.metrics.RecordLatency("session_register", s.now().Sub(start).Seconds())
	s.emit(ctx, models.EventRegister, client, u.ID)
	return u, nil
}

// Logout clears the session even when the current record cannot be read.
// The read failure is logged and the logout event carries no user id.
func (s *SessionStore) Logout(ctx context.Context, client string) error {
	st, err := s.State(ctx, client)
	if err != nil {
		s.l.Warn("session.logout load failed", applogger.String("client", client), applogger.Error(err))
		s.metrics.RecordError("session_logout_load")
	}
	if err := s.store.Save(ctx, AuthNamespace, client, models.AuthState{}); err != nil {
		return errStorage(err)
	}
	var uid string
	if st.User != nil {
		uid = st.User.ID
	}
	s.emit(ctx, models.EventLogout, client, uid)
	return nil
}

// UpdateUser merges patch into the current user. Without a user it does
// nothing and returns nil.
func (s *SessionStore) UpdateUser(ctx context.Context, client string, patch models.UserPatch) (*models.User, error) {
	return s.mutate(ctx, client, func(u *models.User) { patch.Apply(u) })
}

func (s *SessionStore) UpdatePreferences(ctx context.Context, client string, patch models.PreferencesPatch) (*models.User, error) {
	return s.mutate(ctx, client, func(u *models.User) { patch.Apply(&u.Preferences) })
}

func (s *SessionStore) mutate(ctx context.Context, client string, fn func(u *models.User)) (*models.User, error) {
	st, err := s.State(ctx, client)
	if err != nil {
		return nil, err
	}
	if st.User == nil {
		return nil, nil
	}
	fn(st.User)
	if err := s.store.Save(ctx, AuthNamespace, client, st); err != nil {
		return nil, errStorage(err)
	}
	return st.User, nil
}

func (s *SessionStore) save(ctx context.Context, client string, u *models.User) error {
	if err := s.store.Save(ctx, AuthNamespace, client, models.AuthState{User: u, IsAuthenticated: true}); err != nil {
		return errStorage(err)
	}
	return nil
}

func (s *SessionStore) emit(ctx context.Context, typ, client, userID string) {
	s.metrics.RecordSessionEvent(typ)
	publish(ctx, s.events, s.l, &models.ActivityEvent{
		Type:   typ,
		Client: client,
		UserID: userID,
		At:     s.now().UTC(),
	})
}

// publish is best-effort; failures are logged and never reach the caller.
func publish(ctx context.Context, events domrepo.EventPublisher, l *applogger.Logger, ev *models.ActivityEvent) {
	if events == nil {
		return
	}
	if err := events.Publish(context.WithoutCancel(ctx), ev); err != nil {
		l.Warn("activity publish failed", applogger.String("type", ev.Type), applogger.Error(err))
	}
}

func isDecodeError(err error) bool {
	var se *json.SyntaxError
	var te *json.UnmarshalTypeError
	return errors.As(err, &se) || errors.As(err, &te)
}
