package models

// Request payloads bound by handlers through ReadAndValidateRequest.

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	AgreeToTerms    bool   `json:"agreeToTerms"`
}

type ThemeRequest struct {
	Theme Theme `json:"theme" validate:"required,oneof=light dark system"`
}

type LocaleRequest struct {
	Language Language `json:"language" validate:"required,oneof=ar en"`
}

type TranslateRequest struct {
	Key string `query:"key" validate:"required"`
}

type SearchRequest struct {
	Q string `query:"q"`
}

type SignalsQuery struct {
	Status string `query:"status" default:"all" validate:"oneof=all active won lost expired"`
	Search string `query:"search"`
}

type SignalIDParam struct {
	ID string `param:"id" validate:"required"`
}

type GenerateRequest struct {
	Symbol    string   `json:"symbol" default:"EUR/USD" validate:"required"`
	Timeframe string   `json:"timeframe" default:"15M" validate:"required"`
	Models    []string `json:"models"`
	Threshold int      `json:"threshold" default:"75"`
}

type AnalyticsQuery struct {
	Range  string `query:"range" default:"7d" validate:"oneof=1d 7d 30d 90d 1y"`
	Market string `query:"market" default:"all"`
}

type PlansQuery struct {
	Cycle BillingCycle `query:"cycle" default:"monthly" validate:"oneof=monthly yearly"`
}

type QuoteQuery struct {
	Plan  string       `query:"plan" validate:"required,oneof=free premium professional"`
	Cycle BillingCycle `query:"cycle" default:"monthly" validate:"oneof=monthly yearly"`
}

type ProfileRequest struct {
	FirstName   *string `json:"firstName" validate:"omitempty,min=1"`
	LastName    *string `json:"lastName" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber"`
}

type NotificationPrefsRequest struct {
	Email *bool `json:"email"`
	SMS   *bool `json:"sms"`
	Push  *bool `json:"push"`
	InApp *bool `json:"inApp"`
}

type PreferencesRequest struct {
	Theme    Theme    `json:"theme" validate:"omitempty,oneof=light dark system"`
	Language Language `json:"language" validate:"omitempty,oneof=ar en"`
}

type SettingsQuery struct {
	Tab string `query:"tab" default:"profile" validate:"oneof=profile notifications security preferences subscription api"`
}

type ExportIDParam struct {
	ID string `param:"id" validate:"required,uuid"`
}

type NotificationsQuery struct {
	Since string `query:"since"`
	Limit int    `query:"limit" default:"20" validate:"gte=1,lte=100"`
}
