package models

import (
	"math"
	"time"
)

type Direction string

const (
	DirectionCall Direction = "CALL"
	DirectionPut  Direction = "PUT"
)

type SignalStatus string

const (
	StatusActive  SignalStatus = "active"
	StatusWon     SignalStatus = "won"
	StatusLost    SignalStatus = "lost"
	StatusExpired SignalStatus = "expired"
)

type MarketType string

const (
	MarketForex  MarketType = "forex"
	MarketCrypto MarketType = "crypto"
	MarketStock  MarketType = "stock"
)

type BadgeVariant string

const (
	BadgeDefault BadgeVariant = "default"
	BadgeSuccess BadgeVariant = "success"
	BadgeWarning BadgeVariant = "warning"
	BadgeError   BadgeVariant = "error"
	BadgeInfo    BadgeVariant = "info"
)

// Badge is a small status label.
type Badge struct {
	Label   string       `json:"label"`
	Variant BadgeVariant `json:"variant"`
	Size    string       `json:"size,omitempty"`
}

// Variant maps a signal status to its badge colour.
func (s SignalStatus) Variant() BadgeVariant {
	switch s {
	case StatusWon:
		return BadgeSuccess
	case StatusLost:
		return BadgeError
	case StatusExpired:
		return BadgeWarning
	default:
		return BadgeInfo
	}
}

// Signal is a catalogued trading signal.
type Signal struct {
	ID              string       `json:"id"`
	Symbol          string       `json:"symbol"`
	Type            MarketType   `json:"type"`
	Direction       Direction    `json:"direction"`
	Confidence      int          `json:"confidence"`
	EntryPrice      float64      `json:"entryPrice"`
	CurrentPrice    float64      `json:"currentPrice"`
	TargetPrice     float64      `json:"targetPrice"`
	StopLoss        float64      `json:"stopLoss"`
	Status          SignalStatus `json:"status"`
	AIModel         string       `json:"aiModel"`
	Indicators      []string     `json:"indicators"`
	MarketCondition string       `json:"marketCondition"`
	Timeframe       string       `json:"timeframe"`
	CreatedAt       time.Time    `json:"createdAt"`
	ExpiryTime      time.Time    `json:"expiryTime"`
	ProfitLoss      float64      `json:"profitLoss"`
	RiskReward      string       `json:"riskReward"`
}

// Progress is how far the price has travelled from entry toward target,
// in percent, clamped to [0, 100].
func (s Signal) Progress() float64 {
	var p float64
	if s.Direction == DirectionCall {
		p = (s.CurrentPrice - s.EntryPrice) / (s.TargetPrice - s.EntryPrice) * 100
	} else {
		p = (s.EntryPrice - s.CurrentPrice) / (s.EntryPrice - s.TargetPrice) * 100
	}
	if math.IsNaN(p) {
		return 0
	}
	return math.Max(0, math.Min(100, p))
}

// SignalView is a signal decorated for display.
type SignalView struct {
	Signal
	Progress float64 `json:"progress"`
	Badge    Badge   `json:"badge"`
}

// SignalStats summarises a signal list.
type SignalStats struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	WinRate       int `json:"winRate"`
	AvgConfidence int `json:"avgConfidence"`
}

type Analysis struct {
	Trend      string  `json:"trend"`
	Momentum   string  `json:"momentum"`
	Volatility string  `json:"volatility"`
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
}

// GeneratedSignal is the generator's output.
type GeneratedSignal struct {
	ID                  string    `json:"id"`
	Symbol              string    `json:"symbol"`
	Direction           Direction `json:"direction"`
	Confidence          int       `json:"confidence"`
	EntryPrice          float64   `json:"entryPrice"`
	TargetPrice         float64   `json:"targetPrice"`
	StopLoss            float64   `json:"stopLoss"`
	Timeframe           string    `json:"timeframe"`
	Models              []string  `json:"models"`
	Analysis            Analysis  `json:"analysis"`
	RiskReward          string    `json:"riskReward"`
	RecommendedPosition string    `json:"recommendedPosition"`
	GeneratedAt         time.Time `json:"generatedAt"`
}
