package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"SignalDash/internal/domain/models"
	domrepo "SignalDash/internal/domain/repository"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
	"SignalDash/pkg/queue"
)

var settingsTabs = []models.SettingsTab{
	{ID: "profile", Name: "الملف الشخصي"},
	{ID: "notifications", Name: "الإشعارات"},
	{ID: "security", Name: "الأمان"},
	{ID: "preferences", Name: "التفضيلات"},
	{ID: "subscription", Name: "الاشتراك"},
	{ID: "api", Name: "API"},
}

var deviceSessions = []models.DeviceSession{
	{Device: "Chrome على Windows", Location: "الرياض، السعودية", Current: true},
	{Device: "Safari على iPhone", Location: "جدة، السعودية"},
	{Device: "Firefox على Mac", Location: "دبي، الإمارات"},
}

var apiKeys = []models.APIKey{
	{Name: "مفتاح الإنتاج", Masked: "sk_live_••••••••••••••••••••••••••••", LastUsed: "منذ ساعتين"},
	{Name: "مفتاح التطوير", Masked: "sk_test_••••••••••••••••••••••••••••", LastUsed: "منذ يوم"},
}

var usage = []models.UsageStat{
	{Title: "الإشارات المستخدمة", Used: "347", Limit: "غير محدود"},
	{Title: "استدعاءات API", Used: "1,247", Limit: "10,000"},
	{Title: "نماذج الذكاء الاصطناعي", Used: "4", Limit: "4"},
}

var themeOptions = []models.MenuOption{
	{Value: string(models.ThemeLight), Label: "فاتح"},
	{Value: string(models.ThemeDark), Label: "مظلم"},
	{Value: string(models.ThemeSystem), Label: "تلقائي"},
}

var languageOptions = []models.MenuOption{
	{Value: string(models.LangAR), Label: "🇸🇦 العربية"},
	{Value: string(models.LangEN), Label: "🇺🇸 English"},
}

func markActive(opts []models.MenuOption, active string) []models.MenuOption {
	out := make([]models.MenuOption, len(opts))
	for i, o := range opts {
		o.Active = o.Value == active
		out[i] = o
	}
	return out
}

// ExportMessageType is the queue message type for account exports.
const ExportMessageType = "account.export"

type exportMessage struct {
	JobID  string `json:"jobId"`
	Client string `json:"client"`
}

// PreferencesResult is what a preferences save applied.
type PreferencesResult struct {
	Theme    ThemeResult     `json:"theme"`
	Locale   LocaleResult    `json:"locale"`
	Document models.Document `json:"document"`
	User     *models.User    `json:"user"`
}

// SettingsService backs the account settings page.
type SettingsService struct {
	session *SessionStore
	theme   *ThemeStore
	locale  *LocaleAdapter
	exports domrepo.ExportStore
	queue   queue.QueueService
	l       *applogger.Logger
	latency time.Duration

	sleep Sleeper
	now   func() time.Time
}

func NewSettingsService(session *SessionStore, theme *ThemeStore, locale *LocaleAdapter, exports domrepo.ExportStore, q queue.QueueService, l *applogger.Logger, latency time.Duration) *SettingsService {
	return &SettingsService{
		session: session,
		theme:   theme,
		locale:  locale,
		exports: exports,
		queue:   q,
		l:       l,
		latency: latency,
		sleep:   Wait,
		now:     time.Now,
	}
}

func (s *SettingsService) Page(u *models.User, tab string, theme ThemeResult, locale LocaleResult) models.SettingsPage {
	return models.SettingsPage{
		Tab:      tab,
		Tabs:     settingsTabs,
		User:     u,
		Sessions: deviceSessions,
		APIKeys:  apiKeys,
		Usage:    usage,
		Theme:    markActive(themeOptions, string(theme.Theme)),
		Language: markActive(languageOptions, string(locale.Language)),
	}
}

// UpdateProfile saves name, email and phone after the simulated latency.
func (s *SettingsService) UpdateProfile(ctx context.Context, client string, req *models.ProfileRequest) (*models.User, error) {
	if err := s.sleep(ctx, s.latency); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	u, err := s.session.UpdateUser(ctx, client, models.UserPatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, xhttp.UnauthorizedError("authentication required")
	}
	return u, nil
}

// UpdateNotifications flips individual channels; omitted channels keep
// their value.
func (s *SettingsService) UpdateNotifications(ctx context.Context, client string, req *models.NotificationPrefsRequest) (*models.User, error) {
	cur, err := s.session.User(ctx, client)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, xhttp.UnauthorizedError("authentication required")
	}
	ch := cur.Preferences.Notifications
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&ch.Email, req.Email)
	set(&ch.SMS, req.SMS)
	set(&ch.Push, req.Push)
	set(&ch.InApp, req.InApp)
	return s.session.UpdatePreferences(ctx, client, models.PreferencesPatch{Notifications: &ch})
}

// UpdatePreferences applies theme and language through their stores and
// mirrors them onto the user record.
func (s *SettingsService) UpdatePreferences(ctx context.Context, client string, req *models.PreferencesRequest, probe ColorSchemeProbe, acceptLanguage string) (PreferencesResult, error) {
	var res PreferencesResult
	var patch models.PreferencesPatch
	var err error

	if req.Theme != "" {
		if res.Theme, err = s.theme.SetTheme(ctx, client, req.Theme, probe); err != nil {
			return res, err
		}
		patch.Theme = &req.Theme
	} else if res.Theme, err = s.theme.Current(ctx, client, probe); err != nil {
		return res, err
	}

	if req.Language != "" {
		if res.Locale, err = s.locale.ChangeLanguage(ctx, client, req.Language); err != nil {
			return res, err
		}
		patch.Language = &req.Language
	} else if res.Locale, err = s.locale.Current(ctx, client, acceptLanguage); err != nil {
		return res, err
	}

	if res.User, err = s.session.UpdatePreferences(ctx, client, patch); err != nil {
		return res, err
	}
	res.Document = Document(res.Theme, res.Locale)
	return res, nil
}

// RequestExport records a pending export and hands it to the queue.
func (s *SettingsService) RequestExport(ctx context.Context, client string) (*models.ExportJob, error) {
	job := &models.ExportJob{
		ID:        uuid.NewString(),
		Client:    client,
		Status:    models.ExportPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.exports.Save(ctx, job); err != nil {
		return nil, errStorage(err)
	}
	if err := s.queue.PublishMessage(ctx, ExportMessageType, exportMessage{JobID: job.ID, Client: client}); err != nil {
		s.l.Error("export enqueue failed", applogger.String("job", job.ID), applogger.Error(err))
		job.Status = models.ExportFailed
		job.Error = "enqueue failed"
		_ = s.exports.Save(ctx, job)
		return nil, xhttp.InternalError("export could not be queued").WithError(err)
	}
	return job, nil
}

// Export returns a job owned by client.
func (s *SettingsService) Export(ctx context.Context, client, id string) (*models.ExportJob, error) {
	job, err := s.exports.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			return nil, xhttp.NotFoundErrorf("export %s not found", id)
		}
		return nil, errStorage(err)
	}
	if job.Client != client {
		return nil, xhttp.NotFoundErrorf("export %s not found", id)
	}
	return job, nil
}
