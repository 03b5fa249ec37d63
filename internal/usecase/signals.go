package usecase

import (
	"math"
	"strconv"
	"strings"
	"time"

	"SignalDash/internal/domain/models"
	xhttp "SignalDash/pkg/http"
	"SignalDash/pkg/util"
)

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

var signalCatalog = []models.Signal{
	{
		ID: "1", Symbol: "EUR/USD", Type: models.MarketForex, Direction: models.DirectionCall, Confidence: 89,
		EntryPrice: 1.0850, CurrentPrice: 1.0865, TargetPrice: 1.0920, StopLoss: 1.0800,
		Status: models.StatusActive, AIModel: "نموذج RSI المتقدم",
		Indicators:      []string{"RSI", "MACD", "Bollinger Bands"},
		MarketCondition: "صاعد", Timeframe: "15M",
		CreatedAt: ts("2024-01-15T10:30:00Z"), ExpiryTime: ts("2024-01-15T11:30:00Z"),
		ProfitLoss: 0, RiskReward: "1:2",
	},
	{
		ID: "2", Symbol: "BTC/USD", Type: models.MarketCrypto, Direction: models.DirectionPut, Confidence: 92,
		EntryPrice: 43250, CurrentPrice: 42890, TargetPrice: 42500, StopLoss: 43600,
		Status: models.StatusWon, AIModel: "MACD الذكي",
		Indicators:      []string{"MACD", "EMA", "Volume"},
		MarketCondition: "هابط", Timeframe: "5M",
		CreatedAt: ts("2024-01-15T09:15:00Z"), ExpiryTime: ts("2024-01-15T09:35:00Z"),
		ProfitLoss: 83.2, RiskReward: "1:1.8",
	},
	{
		ID: "3", Symbol: "GBP/USD", Type: models.MarketForex, Direction: models.DirectionCall, Confidence: 85,
		EntryPrice: 1.2680, CurrentPrice: 1.2695, TargetPrice: 1.2750, StopLoss: 1.2620,
		Status: models.StatusActive, AIModel: "Bollinger Bands AI",
		Indicators:      []string{"Bollinger Bands", "RSI", "Stochastic"},
		MarketCondition: "محايد", Timeframe: "30M",
		CreatedAt: ts("2024-01-15T10:45:00Z"), ExpiryTime: ts("2024-01-15T11:45:00Z"),
		ProfitLoss: 0, RiskReward: "1:2.3",
	},
	{
		ID: "4", Symbol: "ETH/USD", Type: models.MarketCrypto, Direction: models.DirectionPut, Confidence: 78,
		EntryPrice: 2640, CurrentPrice: 2590, TargetPrice: 2580, StopLoss: 2680,
		Status: models.StatusLost, AIModel: "تحليل الشموع الذكي",
		Indicators:      []string{"Candlestick Patterns", "Support/Resistance"},
		MarketCondition: "متقلب", Timeframe: "1H",
		CreatedAt: ts("2024-01-15T08:00:00Z"), ExpiryTime: ts("2024-01-15T09:00:00Z"),
		ProfitLoss: -40, RiskReward: "1:1.5",
	},
	{
		ID: "5", Symbol: "USD/JPY", Type: models.MarketForex, Direction: models.DirectionCall, Confidence: 91,
		EntryPrice: 148.25, CurrentPrice: 148.45, TargetPrice: 149.00, StopLoss: 147.80,
		Status: models.StatusActive, AIModel: "نموذج التحليل الفني المختلط",
		Indicators:      []string{"Fibonacci", "Trend Lines", "Moving Averages"},
		MarketCondition: "صاعد قوي", Timeframe: "4H",
		CreatedAt: ts("2024-01-15T06:00:00Z"), ExpiryTime: ts("2024-01-15T12:00:00Z"),
		ProfitLoss: 0, RiskReward: "1:1.7",
	},
}

var statusLabels = map[models.SignalStatus]string{
	models.StatusActive:  "نشط",
	models.StatusWon:     "فائز",
	models.StatusLost:    "خاسر",
	models.StatusExpired: "منتهي",
}

// StatusBadge renders a signal status as a badge.
func StatusBadge(s models.SignalStatus) models.Badge {
	label, ok := statusLabels[s]
	if !ok {
		label = string(s)
	}
	return models.Badge{Label: label, Variant: s.Variant(), Size: "sm"}
}

// SignalService serves the static signal catalog.
type SignalService struct {
	signals []models.Signal
}

func NewSignalService() *SignalService {
	return &SignalService{signals: signalCatalog}
}

// Filter applies the status and search filters. Symbols match
// case-insensitively; model names match as a plain substring.
func (s *SignalService) Filter(status, search string) []models.Signal {
	out := make([]models.Signal, 0, len(s.signals))
	for _, sig := range s.signals {
		if status != "" && status != "all" && string(sig.Status) != status {
			continue
		}
		if search != "" && !util.ContainsFold(sig.Symbol, search) && !strings.Contains(sig.AIModel, search) {
			continue
		}
		out = append(out, sig)
	}
	return out
}

// SearchSymbols is the header search: symbol matches only.
func (s *SignalService) SearchSymbols(q string) []models.Signal {
	out := make([]models.Signal, 0)
	if q == "" {
		return out
	}
	for _, sig := range s.signals {
		if util.ContainsFold(sig.Symbol, q) {
			out = append(out, sig)
		}
	}
	return out
}

func (s *SignalService) Get(id string) (models.SignalView, error) {
	for _, sig := range s.signals {
		if sig.ID == id {
			return view(sig), nil
		}
	}
	return models.SignalView{}, xhttp.NotFoundErrorf("signal %s not found", id)
}

// Stats summarises signals. Win rate counts only settled signals.
func Stats(signals []models.Signal) models.SignalStats {
	var st models.SignalStats
	st.Total = len(signals)
	var won, settled, conf int
	for _, sig := range signals {
		conf += sig.Confidence
		switch sig.Status {
		case models.StatusActive:
			st.Active++
		case models.StatusWon:
			won++
			settled++
		default:
			settled++
		}
	}
	if settled > 0 {
		st.WinRate = int(math.Round(float64(won) / float64(settled) * 100))
	}
	if st.Total > 0 {
		st.AvgConfidence = int(math.Round(float64(conf) / float64(st.Total)))
	}
	return st
}

// Page builds the signals page. Stat cards always cover the full catalog.
func (s *SignalService) Page(q *models.SignalsQuery) models.SignalsPage {
	st := Stats(s.signals)
	filtered := s.Filter(q.Status, q.Search)
	views := make([]models.SignalView, len(filtered))
	for i, sig := range filtered {
		views[i] = view(sig)
	}
	return models.SignalsPage{
		Status:  q.Status,
		Search:  q.Search,
		Summary: st,
		Stats: []models.StatCard{
			{Title: "إجمالي الإشارات", Value: strconv.Itoa(st.Total), Color: "blue"},
			{Title: "الإشارات النشطة", Value: strconv.Itoa(st.Active), Color: "green"},
			{Title: "معدل النجاح", Value: strconv.Itoa(st.WinRate) + "%", Color: "purple"},
			{Title: "متوسط الثقة", Value: strconv.Itoa(st.AvgConfidence) + "%", Color: "orange"},
		},
		Signals: views,
	}
}

func view(sig models.Signal) models.SignalView {
	return models.SignalView{Signal: sig, Progress: sig.Progress(), Badge: StatusBadge(sig.Status)}
}
