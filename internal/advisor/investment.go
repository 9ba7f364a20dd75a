package advisor

import "fmt"

// RiskProfile selects a base asset allocation.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskModerate     RiskProfile = "moderate"
	RiskAggressive   RiskProfile = "aggressive"
)

// Allocation is a percentage split across asset classes plus guidance notes.
// Percentages always sum to 100.
type Allocation struct {
	Stocks int
	Bonds  int
	Gold   int
	Cash   int
	Notes  []string
}

// InvestmentAdvisor maps a risk profile and investment horizon to an asset
// allocation.
type InvestmentAdvisor struct{}

// NewInvestmentAdvisor returns an InvestmentAdvisor.
func NewInvestmentAdvisor() *InvestmentAdvisor {
	return &InvestmentAdvisor{}
}

var baseAllocations = map[RiskProfile]Allocation{
	RiskConservative: {
		Stocks: 30, Bonds: 50, Gold: 15, Cash: 5,
		Notes: []string{"Focus on capital preservation", "Recommend: Index funds + government bonds"},
	},
	RiskModerate: {
		Stocks: 50, Bonds: 35, Gold: 10, Cash: 5,
		Notes: []string{"Balance growth and stability", "Recommend: Balanced mutual funds"},
	},
	RiskAggressive: {
		Stocks: 70, Bonds: 20, Gold: 5, Cash: 5,
		Notes: []string{"Long-term growth focus", "Recommend: Growth stocks + sector ETFs"},
	},
}

// Strategy returns the allocation for the profile, tilted by horizon: more
// than ten years shifts bonds into stocks, under three years shifts stocks
// into cash.
func (a *InvestmentAdvisor) Strategy(profile RiskProfile, horizonYears int) (Allocation, error) {
	if horizonYears <= 0 {
		return Allocation{}, fmt.Errorf("investment horizon must be positive")
	}
	base, ok := baseAllocations[profile]
	if !ok {
		return Allocation{}, fmt.Errorf("risk profile must be %q, %q or %q", RiskConservative, RiskModerate, RiskAggressive)
	}

	alloc := base
	alloc.Notes = append([]string(nil), base.Notes...)
	switch {
	case horizonYears > 10:
		shift := minInt(10, alloc.Bonds)
		alloc.Stocks = minInt(alloc.Stocks+shift, 100)
		alloc.Bonds -= shift
	case horizonYears < 3:
		shift := minInt(20, alloc.Stocks)
		alloc.Stocks -= shift
		alloc.Cash = minInt(alloc.Cash+shift, 100)
	}

	log.WithField("profile", profile).Debug("Investment strategy computed")
	return alloc, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
