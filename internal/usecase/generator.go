package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"SignalDash/internal/domain/models"
	domrepo "SignalDash/internal/domain/repository"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
)

const (
	ThresholdMin = 60
	ThresholdMax = 95

	CodeRange = "ERR_RANGE"
)

var generatorSymbols = []models.SymbolInfo{
	{Code: "EUR/USD", Name: "يورو/دولار", Type: models.MarketForex, Volatility: "منخفض"},
	{Code: "GBP/USD", Name: "جنيه/دولار", Type: models.MarketForex, Volatility: "متوسط"},
	{Code: "USD/JPY", Name: "دولار/ين", Type: models.MarketForex, Volatility: "منخفض"},
	{Code: "BTC/USD", Name: "بيتكوين/دولار", Type: models.MarketCrypto, Volatility: "عالي"},
	{Code: "ETH/USD", Name: "إيثريوم/دولار", Type: models.MarketCrypto, Volatility: "عالي"},
	{Code: "AAPL", Name: "آبل", Type: models.MarketStock, Volatility: "متوسط"},
}

var generatorTimeframes = map[domrepo.Timeframe]models.TimeframeInfo{
	domrepo.TF5M:  {Code: "5M", Name: "5 دقائق", Description: "تداول سريع"},
	domrepo.TF15M: {Code: "15M", Name: "15 دقيقة", Description: "تداول متوسط المدى"},
	domrepo.TF30M: {Code: "30M", Name: "30 دقيقة", Description: "تداول متوسط المدى"},
	domrepo.TF1H:  {Code: "1H", Name: "ساعة واحدة", Description: "تداول طويل المدى"},
	domrepo.TF4H:  {Code: "4H", Name: "4 ساعات", Description: "تداول طويل المدى"},
}

var generatorModels = []models.AIModel{
	{ID: "rsi", Name: "نموذج RSI المتقدم", Description: "تحليل مؤشر القوة النسبية مع الذكاء الاصطناعي", Accuracy: 89, Specialty: "اكتشاف مناطق التشبع"},
	{ID: "macd", Name: "MACD الذكي", Description: "تحليل متوسطات الحركة مع التعلم الآلي", Accuracy: 86, Specialty: "تحديد اتجاهات السوق"},
	{ID: "bollinger", Name: "Bollinger Bands AI", Description: "نطاقات بولينجر مع الذكاء الاصطناعي", Accuracy: 91, Specialty: "قياس التقلبات والانعكاسات"},
	{ID: "candlestick", Name: "تحليل الشموع الذكي", Description: "تحليل أنماط الشموع بالذكاء الاصطناعي", Accuracy: 83, Specialty: "اكتشاف أنماط الانعكاس"},
}

// Generator fabricates one signal per request after a fixed delay. A
// client may have at most one generation outstanding.
type Generator struct {
	locks   domrepo.Locker
	events  domrepo.EventPublisher
	metrics domrepo.Metrics
	l       *applogger.Logger
	delay   time.Duration

	sleep Sleeper
	rnd   func() float64
	now   func() time.Time
	newID func() string
}

func NewGenerator(locks domrepo.Locker, events domrepo.EventPublisher, metrics domrepo.Metrics, l *applogger.Logger, delay time.Duration) *Generator {
	return &Generator{
		locks:   locks,
		events:  events,
		metrics: metrics,
		l:       l,
		delay:   delay,
		sleep:   Wait,
		rnd:     rand.Float64,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Catalog lists the form options and defaults.
func (g *Generator) Catalog() models.GeneratorCatalog {
	c := models.GeneratorCatalog{
		Symbols: generatorSymbols,
		Models:  generatorModels,
		Defaults: models.GenerateRequest{
			Symbol:    "EUR/USD",
			Timeframe: string(domrepo.DefaultTimeframe()),
			Models:    []string{"rsi", "macd"},
			Threshold: 75,
		},
	}
	for _, tf := range domrepo.Timeframes {
		c.Timeframes = append(c.Timeframes, generatorTimeframes[tf])
	}
	c.Threshold.Min = ThresholdMin
	c.Threshold.Max = ThresholdMax
	return c
}

func (g *Generator) validate(req *models.GenerateRequest) error {
	if len(req.Models) == 0 {
		return errNoModels()
	}
	if !knownSymbol(req.Symbol) {
		return errOneOf("symbol", req.Symbol)
	}
	if !domrepo.IsValidTimeframe(domrepo.Timeframe(req.Timeframe)) {
		return errOneOf("timeframe", req.Timeframe)
	}
	for _, m := range req.Models {
		if !knownModel(m) {
			return errOneOf("models", m)
		}
	}
	if req.Threshold < ThresholdMin || req.Threshold > ThresholdMax {
		return xhttp.FieldError(CodeRange, "threshold", "threshold out of range").
			WithParam("min", ThresholdMin).
			WithParam("max", ThresholdMax)
	}
	return nil
}

func lockKey(client string) string { return "generate-lock:" + client }

// Generate validates req, waits the configured delay and returns a
// randomised signal.
func (g *Generator) Generate(ctx context.Context, client string, req *models.GenerateRequest) (*models.GeneratedSignal, error) {
	if err := g.validate(req); err != nil {
		return nil, err
	}

	ok, err := g.locks.TryLock(ctx, lockKey(client), g.delay+5*time.Second)
	if err != nil {
		return nil, errStorage(err)
	}
	if !ok {
		return nil, errGenerationBusy()
	}
	defer func() {
		if err := g.locks.Unlock(context.WithoutCancel(ctx), lockKey(client)); err != nil {
			g.l.Warn("generator unlock failed", applogger.String("client", client), applogger.Error(err))
		}
	}()

	start := g.now()
	if err := g.sleep(ctx, g.delay); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	sig := &models.GeneratedSignal{
		ID:         g.newID(),
		Symbol:     req.Symbol,
		Direction:  models.DirectionPut,
		Timeframe:  req.Timeframe,
		Models:     append([]string(nil), req.Models...),
		RiskReward: "1:2.3",
		Analysis: models.Analysis{
			Trend:      "صاعد",
			Momentum:   "قوي",
			Volatility: "متوسط",
			Support:    1.0820,
			Resistance: 1.0950,
		},
		RecommendedPosition: "2%",
		GeneratedAt:         g.now().UTC(),
	}
	if g.rnd() > 0.5 {
		sig.Direction = models.DirectionCall
	}
	t := float64(req.Threshold)
	sig.Confidence = int(math.Floor(g.rnd()*(ThresholdMax-t) + t))
	sig.EntryPrice = 1.0850 + (g.rnd()-0.5)*0.01
	sig.TargetPrice = 1.0920 + (g.rnd()-0.5)*0.01
	sig.StopLoss = 1.0800 + (g.rnd()-0.5)*0.01

	g.metrics.RecordSignalGenerated(sig.Symbol, string(sig.Direction))
	g.metrics.RecordLatency("generate_signal", g.now().Sub(start).Seconds())

	data, _ := json.Marshal(sig)
	publish(ctx, g.events, g.l, &models.ActivityEvent{
		Type:   models.EventSignalGenerated,
		Client: client,
		At:     sig.GeneratedAt,
		Data:   data,
	})
	return sig, nil
}

func knownSymbol(code string) bool {
	for _, s := range generatorSymbols {
		if s.Code == code {
			return true
		}
	}
	return false
}

func knownModel(id string) bool {
	for _, m := range generatorModels {
		if m.ID == id {
			return true
		}
	}
	return false
}
