package models

// Document is the root element state the client applies: theme class,
// text direction and language.
type Document struct {
	Class string   `json:"class"`
	Dir   string   `json:"dir"`
	Lang  Language `json:"lang"`
}

type NavItem struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Href  string `json:"href"`
	Roles []Role `json:"roles,omitempty"`
}

// Allows reports whether role may see the item. Items without an
// allow-list are always shown.
func (n NavItem) Allows(role Role) bool {
	if len(n.Roles) == 0 {
		return true
	}
	for _, r := range n.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type MenuOption struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Shell is the layout around every protected page.
type Shell struct {
	Document      Document         `json:"document"`
	User          *User            `json:"user"`
	Navigation    []NavItem        `json:"navigation"`
	Settings      NavItem          `json:"settings"`
	Collapsed     bool             `json:"collapsed"`
	Notifications NotificationMenu `json:"notifications"`
	ThemeMenu     []MenuOption     `json:"themeMenu"`
	LanguageMenu  []MenuOption     `json:"languageMenu"`
	SearchLabel   string           `json:"searchLabel"`
}

// LayoutState is the persisted sidebar state.
type LayoutState struct {
	Collapsed bool `json:"collapsed"`
}

// ThemeState is the persisted theme choice.
type ThemeState struct {
	Theme Theme `json:"theme"`
}

// LocaleState is the persisted language choice.
type LocaleState struct {
	Language Language `json:"language"`
}

type Translation struct {
	Key      string   `json:"key"`
	Value    string   `json:"value"`
	Language Language `json:"language"`
}
