package models

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
)

type Language string

const (
	LangAR Language = "ar"
	LangEN Language = "en"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// IsValid reports whether t is one of the three theme choices.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

type PlanTier string

const (
	TierFree       PlanTier = "free"
	TierBasic      PlanTier = "basic"
	TierPremium    PlanTier = "premium"
	TierEnterprise PlanTier = "enterprise"
)

type SubscriptionStatus string

const (
	SubActive    SubscriptionStatus = "active"
	SubInactive  SubscriptionStatus = "inactive"
	SubExpired   SubscriptionStatus = "expired"
	SubCancelled SubscriptionStatus = "cancelled"
)

type NotificationChannels struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	Push  bool `json:"push"`
	InApp bool `json:"inApp"`
}

type Preferences struct {
	Language      Language             `json:"language"`
	Theme         Theme                `json:"theme"`
	Notifications NotificationChannels `json:"notifications"`
}

type Subscription struct {
	Plan      PlanTier           `json:"plan"`
	Status    SubscriptionStatus `json:"status"`
	ExpiresAt string             `json:"expiresAt,omitempty"`
}

// User is the account record held by the session store.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Role         Role         `json:"role"`
	Avatar       string       `json:"avatar,omitempty"`
	PhoneNumber  string       `json:"phoneNumber,omitempty"`
	Preferences  Preferences  `json:"preferences"`
	Subscription Subscription `json:"subscription"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastLoginAt  *time.Time   `json:"lastLoginAt,omitempty"`
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Email        *string       `json:"email,omitempty"`
	FirstName    *string       `json:"firstName,omitempty"`
	LastName     *string       `json:"lastName,omitempty"`
	Avatar       *string       `json:"avatar,omitempty"`
	PhoneNumber  *string       `json:"phoneNumber,omitempty"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.Subscription != nil {
		u.Subscription = *p.Subscription
	}
}

// PreferencesPatch carries a partial preferences update.
type PreferencesPatch struct {
	Language      *Language             `json:"language,omitempty"`
	Theme         *Theme                `json:"theme,omitempty"`
	Notifications *NotificationChannels `json:"notifications,omitempty"`
}

// Apply merges the patch into p. Notification channels are replaced as a whole.
func (pp PreferencesPatch) Apply(p *Preferences) {
	if pp.Language != nil {
		p.Language = *pp.Language
	}
	if pp.Theme != nil {
		p.Theme = *pp.Theme
	}
	if pp.Notifications != nil {
		p.Notifications = *pp.Notifications
	}
}

// AuthState is the persisted session record.
type AuthState struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

// Role returns the user's role or "" when signed out.
func (s AuthState) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// AuthResponse answers the auth endpoints with the new session state and
// where the client should go next.
type AuthResponse struct {
	AuthState
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}
