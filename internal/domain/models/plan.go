package models

type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

type Price struct {
	Monthly int `json:"monthly"`
	Yearly  int `json:"yearly"`
}

// For returns the price for a billing cycle.
func (p Price) For(c BillingCycle) int {
	if c == CycleYearly {
		return p.Yearly
	}
	return p.Monthly
}

// YearlySavings is what paying yearly saves over twelve monthly payments.
func (p Price) YearlySavings() int {
	return p.Monthly*12 - p.Yearly
}

type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       Price    `json:"price"`
	Features    []string `json:"features"`
	Limitations []string `json:"limitations"`
	Recommended bool     `json:"recommended"`
	Color       string   `json:"color"`
}

// PlanView is a plan priced for the selected cycle.
type PlanView struct {
	Plan
	Amount  int  `json:"amount"`
	Savings int  `json:"savings,omitempty"`
	Current bool `json:"current"`
}

type PlansPage struct {
	Cycle       BillingCycle `json:"cycle"`
	Discount    int          `json:"discount"`
	CurrentPlan *Plan        `json:"currentPlan"`
	Plans       []PlanView   `json:"plans"`
}

// Quote prices a plan for a cycle. Nothing is charged.
type Quote struct {
	Plan     string       `json:"plan"`
	Cycle    BillingCycle `json:"cycle"`
	Amount   int          `json:"amount"`
	Discount int          `json:"discount"`
	Savings  int          `json:"savings"`
	Currency string       `json:"currency"`
}
