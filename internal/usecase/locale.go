package usecase

import (
	"context"
	"errors"

	"SignalDash/internal/domain/models"
	domrepo "SignalDash/internal/domain/repository"
	"SignalDash/internal/service/i18n"
	applogger "SignalDash/pkg/logger"
)

const LocaleNamespace = "locale-storage"

type LocaleResult struct {
	Language models.Language `json:"language"`
	IsRTL    bool            `json:"isRTL"`
	Dir      string          `json:"dir"`
}

func localeResult(lang models.Language) LocaleResult {
	return LocaleResult{Language: lang, IsRTL: i18n.IsRTL(lang), Dir: i18n.Dir(lang)}
}

// LocaleAdapter tracks each client's language and translates message keys.
type LocaleAdapter struct {
	store domrepo.StateStore
	tr    *i18n.Translator
	l     *applogger.Logger
}

func NewLocaleAdapter(store domrepo.StateStore, tr *i18n.Translator, l *applogger.Logger) *LocaleAdapter {
	return &LocaleAdapter{store: store, tr: tr, l: l}
}

// Current returns the stored language, or the best match for
// acceptLanguage on a first visit.
func (a *LocaleAdapter) Current(ctx context.Context, client, acceptLanguage string) (LocaleResult, error) {
	var st models.LocaleState
	err := a.store.Load(ctx, LocaleNamespace, client, &st)
	switch {
	case err == nil && i18n.Supported(st.Language):
		return localeResult(st.Language), nil
	case err == nil || errors.Is(err, domrepo.ErrNotFound):
	case isDecodeError(err):
		a.l.Warn("locale.rehydrate corrupt record", applogger.String("client", client), applogger.Error(err))
	default:
		return LocaleResult{}, errStorage(err)
	}
	return localeResult(i18n.Match(acceptLanguage)), nil
}

func (a *LocaleAdapter) ChangeLanguage(ctx context.Context, client string, lang models.Language) (LocaleResult, error) {
	if !i18n.Supported(lang) {
		return LocaleResult{}, errOneOf("language", string(lang))
	}
	if err := a.store.Save(ctx, LocaleNamespace, client, models.LocaleState{Language: lang}); err != nil {
		return LocaleResult{}, errStorage(err)
	}
	return localeResult(lang), nil
}

// T translates key; unknown keys are returned as is.
func (a *LocaleAdapter) T(lang models.Language, key string, args ...interface{}) string {
	return a.tr.T(lang, key, args...)
}

// Document combines the theme class and locale into the root element state.
func Document(theme ThemeResult, locale LocaleResult) models.Document {
	return models.Document{Class: theme.Class, Dir: locale.Dir, Lang: locale.Language}
}
