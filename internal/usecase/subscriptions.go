package usecase

import (
	"SignalDash/internal/domain/models"
	xhttp "SignalDash/pkg/http"
)

// YearlyDiscount is the advertised percentage saved by paying yearly.
const YearlyDiscount = 17

var plans = []models.Plan{
	{
		ID:          "free",
		Name:        "المجاني",
		Description: "للمبتدئين في عالم التداول",
		Price:       models.Price{Monthly: 0, Yearly: 0},
		Features: []string{
			"حتى 5 إشارات يومياً",
			"نموذج واحد للذكاء الاصطناعي",
			"تحليل أساسي للسوق",
			"إشعارات عبر التطبيق",
			"دعم المجتمع",
		},
		Limitations: []string{
			"لا يتضمن إشارات الفوركس المتقدمة",
			"بدون دعم العملات الرقمية",
			"لا يتضمن تحليلات مخصصة",
		},
		Color: "gray",
	},
	{
		ID:          "premium",
		Name:        "المميز",
		Description: "الأفضل للمتداولين النشطين",
		Price:       models.Price{Monthly: 49, Yearly: 490},
		Features: []string{
			"إشارات غير محدودة",
			"4 نماذج للذكاء الاصطناعي",
			"جميع أسواق التداول",
			"تحليلات متقدمة",
			"إشعارات فورية متعددة القنوات",
			"تقارير أداء مفصلة",
			"دعم فني أولوية",
			"تطبيق الهاتف المحمول",
		},
		Limitations: []string{},
		Recommended: true,
		Color:       "blue",
	},
	{
		ID:          "professional",
		Name:        "الاحترافي",
		Description: "للمتداولين المحترفين والمؤسسات",
		Price:       models.Price{Monthly: 99, Yearly: 990},
		Features: []string{
			"جميع مميزات الخطة المميزة",
			"12 نموذج للذكاء الاصطناعي",
			"API للتكامل المخصص",
			"تحليل مخاطر متقدم",
			"استراتيجيات تداول مخصصة",
			"تقارير مؤسسية",
			"مدير حساب مخصص",
			"تدريب ومشاورات",
			"نسخة العلامة التجارية الخاصة",
		},
		Limitations: []string{},
		Color:       "purple",
	},
}

// SubscriptionService prices the plan catalog. Nothing is ever charged.
type SubscriptionService struct{}

func NewSubscriptionService() *SubscriptionService { return &SubscriptionService{} }

func findPlan(id string) (models.Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return models.Plan{}, false
}

// CurrentPlan maps the user's tier onto the catalog, falling back to premium.
func CurrentPlan(u *models.User) models.Plan {
	if u != nil {
		if p, ok := findPlan(string(u.Subscription.Plan)); ok {
			return p
		}
	}
	p, _ := findPlan("premium")
	return p
}

// Discount is the percentage shown for a cycle.
func Discount(c models.BillingCycle) int {
	if c == models.CycleYearly {
		return YearlyDiscount
	}
	return 0
}

func (s *SubscriptionService) Plans(u *models.User, cycle models.BillingCycle) models.PlansPage {
	cur := CurrentPlan(u)
	out := models.PlansPage{
		Cycle:       cycle,
		Discount:    Discount(cycle),
		CurrentPlan: &cur,
		Plans:       make([]models.PlanView, len(plans)),
	}
	for i, p := range plans {
		v := models.PlanView{Plan: p, Amount: p.Price.For(cycle), Current: p.ID == cur.ID}
		if cycle == models.CycleYearly && p.Price.Yearly > 0 {
			v.Savings = p.Price.YearlySavings()
		}
		out.Plans[i] = v
	}
	return out
}

func (s *SubscriptionService) Quote(planID string, cycle models.BillingCycle) (models.Quote, error) {
	p, ok := findPlan(planID)
	if !ok {
		return models.Quote{}, xhttp.NotFoundErrorf("plan %s not found", planID)
	}
	q := models.Quote{
		Plan:     p.ID,
		Cycle:    cycle,
		Amount:   p.Price.For(cycle),
		Discount: Discount(cycle),
		Currency: "USD",
	}
	if cycle == models.CycleYearly {
		q.Savings = p.Price.YearlySavings()
	}
	return q, nil
}
