package usecase

import (
	"SignalDash/internal/domain/models"
)

var dashboardStats = []models.StatCard{
	{Title: "دقة الإشارات اليوم", Value: "89.2%", Change: "+2.3%", ChangeType: models.ChangePositive, Color: "blue"},
	{Title: "إشارات مولدة", Value: "347", Change: "+15.7%", ChangeType: models.ChangePositive, Color: "green"},
	{Title: "متوسط الربح", Value: "73.4%", Change: "+5.1%", ChangeType: models.ChangePositive, Color: "purple"},
	{Title: "نماذج الذكاء الاصطناعي", Value: "12", Change: "+2", ChangeType: models.ChangePositive, Color: "orange"},
}

var dashboardSeries = []models.PerformancePoint{
	{Time: "00:00", Accuracy: 85, Signals: 12},
	{Time: "04:00", Accuracy: 88, Signals: 15},
	{Time: "08:00", Accuracy: 92, Signals: 23},
	{Time: "12:00", Accuracy: 89, Signals: 28},
	{Time: "16:00", Accuracy: 91, Signals: 31},
	{Time: "20:00", Accuracy: 87, Signals: 26},
}

var dashboardMarkets = []models.MarketSlice{
	{Name: "الفوركس", Value: 45, Color: "#3b82f6"},
	{Name: "العملات الرقمية", Value: 30, Color: "#10b981"},
	{Name: "الأسهم", Value: 25, Color: "#f59e0b"},
}

var dashboardModels = []models.ModelPerformance{
	{Model: "نموذج RSI المتقدم", Accuracy: 89, Signals: 145},
	{Model: "MACD الذكي", Accuracy: 86, Signals: 132},
	{Model: "Bollinger Bands AI", Accuracy: 91, Signals: 98},
	{Model: "تحليل الشموع", Accuracy: 83, Signals: 167},
}

var recentSignals = []models.RecentSignal{
	{ID: 1, Symbol: "EUR/USD", Direction: models.DirectionCall, Confidence: 92, Entry: 1.0850, Target: 1.0920, StopLoss: 1.0800, Status: models.StatusActive, AIModel: "نموذج RSI المتقدم", Time: "2 دقائق"},
	{ID: 2, Symbol: "BTC/USD", Direction: models.DirectionPut, Confidence: 88, Entry: 43250, Target: 42800, StopLoss: 43500, Status: models.StatusWon, AIModel: "MACD الذكي", Time: "15 دقيقة"},
	{ID: 3, Symbol: "GBP/USD", Direction: models.DirectionCall, Confidence: 85, Entry: 1.2680, Target: 1.2750, StopLoss: 1.2620, Status: models.StatusActive, AIModel: "Bollinger Bands AI", Time: "8 دقائق"},
}

var analyticsStats = []models.StatCard{
	{Title: "دقة الإشارات العامة", Value: "87.6%", Change: "+2.4%", ChangeType: models.ChangePositive, Color: "blue"},
	{Title: "إجمالي الإشارات", Value: "1,247", Change: "+156", ChangeType: models.ChangePositive, Color: "green"},
	{Title: "الربح الإجمالي", Value: "+342.8%", Change: "+45.2%", ChangeType: models.ChangePositive, Color: "purple"},
	{Title: "نماذج نشطة", Value: "12", Change: "+2", ChangeType: models.ChangePositive, Color: "orange"},
}

var analyticsDaily = []models.DailyPerformance{
	{Date: "2024-01-08", Accuracy: 85, Signals: 45, Profit: 12.3},
	{Date: "2024-01-09", Accuracy: 89, Signals: 52, Profit: 15.7},
	{Date: "2024-01-10", Accuracy: 87, Signals: 48, Profit: 14.2},
	{Date: "2024-01-11", Accuracy: 91, Signals: 55, Profit: 18.9},
	{Date: "2024-01-12", Accuracy: 84, Signals: 41, Profit: 10.5},
	{Date: "2024-01-13", Accuracy: 88, Signals: 49, Profit: 16.1},
	{Date: "2024-01-14", Accuracy: 92, Signals: 58, Profit: 21.4},
}

// analyticsMarkets is keyed by the market filter value.
var analyticsMarkets = []struct {
	key   string
	slice models.MarketSlice
}{
	{"forex", models.MarketSlice{Name: "الفوركس", Signals: 245, Accuracy: 87, Profit: 156.7, Color: "#3b82f6"}},
	{"crypto", models.MarketSlice{Name: "العملات الرقمية", Signals: 189, Accuracy: 84, Profit: 134.2, Color: "#10b981"}},
	{"stocks", models.MarketSlice{Name: "الأسهم", Signals: 132, Accuracy: 91, Profit: 98.5, Color: "#f59e0b"}},
	{"indices", models.MarketSlice{Name: "المؤشرات", Signals: 87, Accuracy: 88, Profit: 67.3, Color: "#ef4444"}},
}

var analyticsModels = []models.ModelPerformance{
	{Model: "RSI المتقدم", Accuracy: 89, Signals: 156, Profit: 123.4, WinRate: 87},
	{Model: "MACD الذكي", Accuracy: 86, Signals: 142, Profit: 109.8, WinRate: 84},
	{Model: "Bollinger Bands AI", Accuracy: 91, Signals: 98, Profit: 89.6, WinRate: 89},
	{Model: "تحليل الشموع", Accuracy: 83, Signals: 178, Profit: 134.7, WinRate: 81},
}

var analyticsHourly = []models.PerformancePoint{
	{Time: "00:00", Signals: 12, Accuracy: 85},
	{Time: "02:00", Signals: 8, Accuracy: 88},
	{Time: "04:00", Signals: 15, Accuracy: 84},
	{Time: "06:00", Signals: 23, Accuracy: 91},
	{Time: "08:00", Signals: 45, Accuracy: 89},
	{Time: "10:00", Signals: 52, Accuracy: 87},
	{Time: "12:00", Signals: 48, Accuracy: 92},
	{Time: "14:00", Signals: 55, Accuracy: 86},
	{Time: "16:00", Signals: 41, Accuracy: 88},
	{Time: "18:00", Signals: 38, Accuracy: 90},
	{Time: "20:00", Signals: 29, Accuracy: 85},
	{Time: "22:00", Signals: 18, Accuracy: 87},
}

var analyticsRanges = []models.RangeOption{
	{Value: "1d", Label: "اليوم"},
	{Value: "7d", Label: "7 أيام"},
	{Value: "30d", Label: "30 يوم"},
	{Value: "90d", Label: "3 أشهر"},
	{Value: "1y", Label: "سنة"},
}

// PageBuilder assembles the dashboard and analytics reports.
type PageBuilder struct {
	locale *LocaleAdapter
}

func NewPageBuilder(locale *LocaleAdapter) *PageBuilder {
	return &PageBuilder{locale: locale}
}

func (b *PageBuilder) Dashboard(u *models.User, lang models.Language) models.DashboardPage {
	var name string
	if u != nil {
		name = u.FirstName
	}
	recent := make([]models.RecentSignal, len(recentSignals))
	for i, r := range recentSignals {
		r.Badge = StatusBadge(r.Status)
		recent[i] = r
	}
	return models.DashboardPage{
		Greeting:           b.locale.T(lang, "dashboard.greeting", name),
		Stats:              dashboardStats,
		SignalPerformance:  dashboardSeries,
		MarketDistribution: dashboardMarkets,
		ModelPerformance:   dashboardModels,
		RecentSignals:      recent,
	}
}

// Analytics builds the report for a range and market filter. The market
// filter narrows the distribution; "all" keeps every market.
func (b *PageBuilder) Analytics(q *models.AnalyticsQuery) (models.AnalyticsPage, error) {
	markets := make([]models.MarketSlice, 0, len(analyticsMarkets))
	for _, m := range analyticsMarkets {
		if q.Market == "all" || q.Market == m.key {
			markets = append(markets, m.slice)
		}
	}
	if len(markets) == 0 {
		return models.AnalyticsPage{}, errOneOf("market", q.Market)
	}

	ranges := make([]models.RangeOption, len(analyticsRanges))
	for i, r := range analyticsRanges {
		r.Active = r.Value == q.Range
		ranges[i] = r
	}
	return models.AnalyticsPage{
		Range:              q.Range,
		Market:             q.Market,
		Ranges:             ranges,
		Stats:              analyticsStats,
		Performance:        analyticsDaily,
		MarketDistribution: markets,
		ModelComparison:    analyticsModels,
		HourlyPerformance:  analyticsHourly,
	}, nil
}
