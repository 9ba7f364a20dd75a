package advisor

import (
	"fmt"
	"math"

	"fintrack/internal/models"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Default emergency fund coverage bounds in months of expenses.
const (
	DefaultMinMonths = 3
	DefaultMaxMonths = 6
)

// IncomeStability describes how predictable the household income is.
type IncomeStability string

const (
	StabilityStable   IncomeStability = "stable"
	StabilityVariable IncomeStability = "variable"
)

// EmergencyFundAdvisor sizes an emergency fund from expense history.
type EmergencyFundAdvisor struct {
	MinMonths int
	MaxMonths int
}

// EmergencyFund is the report produced by Recommend.
type EmergencyFund struct {
	RecommendedMin        float64
	RecommendedMax        float64
	AvgMonthlyExpense     float64
	ProbabilitySufficient float64
	IncomeStability       IncomeStability
	Dependents            int
}

// NewEmergencyFundAdvisor returns an advisor covering the default three to
// six months of expenses.
func NewEmergencyFundAdvisor() *EmergencyFundAdvisor {
	return &EmergencyFundAdvisor{MinMonths: DefaultMinMonths, MaxMonths: DefaultMaxMonths}
}

// Recommend computes mean and deviation of monthly expense totals and scales
// the coverage range for variable income and dependents. The sufficiency
// probability is a normal approximation around a three-month buffer.
func (a *EmergencyFundAdvisor) Recommend(expenses []models.Transaction, stability IncomeStability, dependents int) (EmergencyFund, error) {
	if stability != StabilityStable && stability != StabilityVariable {
		return EmergencyFund{}, fmt.Errorf("income stability must be %q or %q", StabilityStable, StabilityVariable)
	}
	if dependents < 0 {
		return EmergencyFund{}, fmt.Errorf("dependents must be non-negative")
	}
	totals, err := monthlyTotals(expenses)
	if err != nil {
		return EmergencyFund{}, fmt.Errorf("emergency fund: %w", err)
	}

	mean := stat.Mean(totals, nil)
	std := stat.StdDev(totals, nil)
	if math.IsNaN(std) || std == 0 {
		// Single month or no variation: assume 10% of the mean.
		std = mean * 0.1
	}

	adjustment := 1.0
	if stability == StabilityVariable {
		adjustment += 0.2
	}
	adjustment += 0.1 * float64(dependents)

	recommendedMin := mean * float64(a.MinMonths) * adjustment
	recommendedMax := mean * float64(a.MaxMonths) * adjustment

	buffer := mean + 2*std
	sufficiency := distuv.Normal{Mu: buffer * 3, Sigma: std * math.Sqrt(3)}.CDF(recommendedMax)
	if math.IsNaN(sufficiency) {
		sufficiency = 0.5
	}

	fund := EmergencyFund{
		RecommendedMin:        round2(recommendedMin),
		RecommendedMax:        round2(recommendedMax),
		AvgMonthlyExpense:     round2(mean),
		ProbabilitySufficient: round2(sufficiency),
		IncomeStability:       stability,
		Dependents:            dependents,
	}
	log.WithFields(logrus.Fields{
		"min": fund.RecommendedMin,
		"max": fund.RecommendedMax,
		"avg": fund.AvgMonthlyExpense,
	}).Debug("Emergency fund recommended")
	return fund, nil
}
