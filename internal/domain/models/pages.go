package models

type ChangeType string

const (
	ChangePositive ChangeType = "positive"
	ChangeNegative ChangeType = "negative"
)

type StatCard struct {
	Title      string     `json:"title"`
	Value      string     `json:"value"`
	Change     string     `json:"change,omitempty"`
	ChangeType ChangeType `json:"changeType,omitempty"`
	Color      string     `json:"color,omitempty"`
}

type PerformancePoint struct {
	Time     string `json:"time"`
	Accuracy int    `json:"accuracy"`
	Signals  int    `json:"signals"`
}

type DailyPerformance struct {
	Date     string  `json:"date"`
	Accuracy int     `json:"accuracy"`
	Signals  int     `json:"signals"`
	Profit   float64 `json:"profit"`
}

type MarketSlice struct {
	Name     string  `json:"name"`
	Value    int     `json:"value,omitempty"`
	Signals  int     `json:"signals,omitempty"`
	Accuracy int     `json:"accuracy,omitempty"`
	Profit   float64 `json:"profit,omitempty"`
	Color    string  `json:"color"`
}

type ModelPerformance struct {
	Model    string  `json:"model"`
	Accuracy int     `json:"accuracy"`
	Signals  int     `json:"signals"`
	Profit   float64 `json:"profit,omitempty"`
	WinRate  int     `json:"winRate,omitempty"`
}

type RecentSignal struct {
	ID         int          `json:"id"`
	Symbol     string       `json:"symbol"`
	Direction  Direction    `json:"direction"`
	Confidence int          `json:"confidence"`
	Entry      float64      `json:"entry"`
	Target     float64      `json:"target"`
	StopLoss   float64      `json:"stopLoss"`
	Status     SignalStatus `json:"status"`
	Badge      Badge        `json:"badge"`
	AIModel    string       `json:"aiModel"`
	Time       string       `json:"time"`
}

type DashboardPage struct {
	Greeting           string             `json:"greeting"`
	Stats              []StatCard         `json:"stats"`
	SignalPerformance  []PerformancePoint `json:"signalPerformance"`
	MarketDistribution []MarketSlice      `json:"marketDistribution"`
	ModelPerformance   []ModelPerformance `json:"modelPerformance"`
	RecentSignals      []RecentSignal     `json:"recentSignals"`
}

type RangeOption struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

type AnalyticsPage struct {
	Range              string             `json:"range"`
	Market             string             `json:"market"`
	Ranges             []RangeOption      `json:"ranges"`
	Stats              []StatCard         `json:"stats"`
	Performance        []DailyPerformance `json:"performance"`
	MarketDistribution []MarketSlice      `json:"marketDistribution"`
	ModelComparison    []ModelPerformance `json:"modelComparison"`
	HourlyPerformance  []PerformancePoint `json:"hourlyPerformance"`
}

type SignalsPage struct {
	Status  string       `json:"status"`
	Search  string       `json:"search"`
	Stats   []StatCard   `json:"stats"`
	Summary SignalStats  `json:"summary"`
	Signals []SignalView `json:"signals"`
}

type SettingsTab struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DeviceSession struct {
	Device   string `json:"device"`
	Location string `json:"location"`
	Current  bool   `json:"current"`
}

type APIKey struct {
	Name     string `json:"name"`
	Masked   string `json:"masked"`
	LastUsed string `json:"lastUsed"`
}

type UsageStat struct {
	Title string `json:"title"`
	Used  string `json:"used"`
	Limit string `json:"limit"`
}

type SettingsPage struct {
	Tab      string          `json:"tab"`
	Tabs     []SettingsTab   `json:"tabs"`
	User     *User           `json:"user"`
	Sessions []DeviceSession `json:"sessions"`
	APIKeys  []APIKey        `json:"apiKeys"`
	Usage    []UsageStat     `json:"usage"`
	Theme    []MenuOption    `json:"theme"`
	Language []MenuOption    `json:"language"`
}

// AuthPage is the payload of the public login and register pages.
type AuthPage struct {
	Title string `json:"title"`
	Form  string `json:"form"`
}

// Page wraps a route payload with the document state and, for protected
// pages, the shell around it.
type Page struct {
	Path     string      `json:"path"`
	Document Document    `json:"document"`
	Shell    *Shell      `json:"shell,omitempty"`
	Data     interface{} `json:"data"`
}
