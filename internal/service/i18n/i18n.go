package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"SignalDash/internal/domain/models"
)

// Fallback is used when nothing in Accept-Language matches.
const Fallback = models.LangAR

var (
	tags    = []language.Tag{language.Arabic, language.English}
	matcher = language.NewMatcher(tags)
)

var messages = map[string][2]string{
	// key: {ar, en}
	"app.title":              {"لوحة تحكم الإشارات الذكية", "Smart Signals Dashboard"},
	"nav.dashboard":          {"لوحة التحكم", "Dashboard"},
	"nav.signals":            {"الإشارات", "Signals"},
	"nav.generate":           {"مولد الإشارات", "Signal Generator"},
	"nav.analytics":          {"التحليلات", "Analytics"},
	"nav.subscriptions":      {"الاشتراكات", "Subscriptions"},
	"nav.settings":           {"الإعدادات", "Settings"},
	"nav.admin":              {"الإدارة", "Admin"},
	"nav.roles":              {"الأدوار والصلاحيات", "Roles & Permissions"},
	"users.title":            {"المستخدمين", "Users"},
	"notifications.title":    {"الإشعارات", "Notifications"},
	"common.search":          {"البحث", "Search"},
	"common.logout":          {"تسجيل الخروج", "Log out"},
	"theme.light":            {"فاتح", "Light"},
	"theme.dark":             {"مظلم", "Dark"},
	"theme.system":           {"تلقائي", "System"},
	"auth.login.success":     {"تم تسجيل الدخول بنجاح!", "Signed in successfully!"},
	"auth.login.error":       {"خطأ في البريد الإلكتروني أو كلمة المرور", "Invalid email or password"},
	"auth.register.success":  {"تم إنشاء الحساب بنجاح!", "Account created successfully!"},
	"auth.register.mismatch": {"كلمات المرور غير متطابقة", "Passwords do not match"},
	"auth.register.terms":    {"يجب الموافقة على الشروط والأحكام", "You must accept the terms and conditions"},
	"generator.no_models":    {"يجب اختيار نموذج واحد على الأقل", "Select at least one model"},
	"generator.busy":         {"جاري توليد إشارة بالفعل", "A signal is already being generated"},
	"dashboard.greeting":     {"مرحباً %s!", "Welcome %s!"},
}

// Translator resolves message keys for the two supported languages.
type Translator struct {
	printers map[models.Language]*message.Printer
}

func New() (*Translator, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.Arabic))
	for key, msgs := range messages {
		if err := b.SetString(language.Arabic, key, msgs[0]); err != nil {
			return nil, err
		}
		if err := b.SetString(language.English, key, msgs[1]); err != nil {
			return nil, err
		}
	}
	return &Translator{
		printers: map[models.Language]*message.Printer{
			models.LangAR: message.NewPrinter(language.Arabic, message.Catalog(b)),
			models.LangEN: message.NewPrinter(language.English, message.Catalog(b)),
		},
	}, nil
}

// T translates key. Unknown keys come back unchanged.
func (t *Translator) T(lang models.Language, key string, args ...interface{}) string {
	if _, ok := messages[key]; !ok {
		return key
	}
	p, ok := t.printers[lang]
	if !ok {
		p = t.printers[Fallback]
	}
	return p.Sprintf(key, args...)
}

// Match picks the supported language closest to an Accept-Language header.
func Match(acceptLanguage string) models.Language {
	if acceptLanguage == "" {
		return Fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return Fallback
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Fallback
	}
	if tags[idx] == language.English {
		return models.LangEN
	}
	return models.LangAR
}

// IsRTL reports whether lang is written right to left.
func IsRTL(lang models.Language) bool { return lang == models.LangAR }

// Dir is the document direction for lang.
func Dir(lang models.Language) string {
	if IsRTL(lang) {
		return "rtl"
	}
	return "ltr"
}

// Supported reports whether lang has a catalog.
func Supported(lang models.Language) bool {
	return lang == models.LangAR || lang == models.LangEN
}
