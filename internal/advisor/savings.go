package advisor

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Default savings simulation parameters. Returns and volatility are
// annualized; the cap bounds the recommended contribution at a share of
// monthly income.
const (
	DefaultAnnualReturnMean = 0.07
	DefaultAnnualVolatility = 0.15
	DefaultTrials           = 1000
	DefaultIncomeCapRatio   = 0.3

	successProbabilityFloor = 0.7
)

// SavingsOptimizer sizes a monthly contribution toward a savings goal and
// estimates the probability of reaching it under market returns via
// Monte-Carlo simulation.
type SavingsOptimizer struct {
	AnnualReturnMean float64
	AnnualVolatility float64
	Trials           int
	IncomeCapRatio   float64
	// Src seeds the simulation; nil uses the global source.
	Src rand.Source
}

// SavingsPlan is the report produced by CalculatePlan.
type SavingsPlan struct {
	RequiredMonthly    float64
	RecommendedMonthly float64
	SuccessProbability float64
	ReconsiderPlan     bool
}

// NewSavingsOptimizer returns a SavingsOptimizer with default market
// assumptions.
func NewSavingsOptimizer() *SavingsOptimizer {
	return &SavingsOptimizer{
		AnnualReturnMean: DefaultAnnualReturnMean,
		AnnualVolatility: DefaultAnnualVolatility,
		Trials:           DefaultTrials,
		IncomeCapRatio:   DefaultIncomeCapRatio,
	}
}

// CalculatePlan computes the linear monthly amount required to close the gap
// to the goal, caps the recommendation at a share of monthly income, and
// simulates monthly compounding with normal returns to estimate the chance
// of reaching the goal within the timeframe.
func (s *SavingsOptimizer) CalculatePlan(currentSavings, goalAmount float64, timeframeMonths int, monthlyIncome float64) (SavingsPlan, error) {
	if currentSavings < 0 || goalAmount < 0 || monthlyIncome < 0 {
		return SavingsPlan{}, fmt.Errorf("savings, goal and income must be non-negative")
	}
	if timeframeMonths <= 0 {
		return SavingsPlan{}, fmt.Errorf("timeframe must be positive")
	}
	if currentSavings >= goalAmount {
		return SavingsPlan{SuccessProbability: 1}, nil
	}

	required := (goalAmount - currentSavings) / float64(timeframeMonths)
	recommended := math.Min(required, monthlyIncome*s.IncomeCapRatio)

	trials := s.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}
	returns := distuv.Normal{
		Mu:    s.AnnualReturnMean / 12,
		Sigma: s.AnnualVolatility / math.Sqrt(12),
		Src:   s.Src,
	}

	successes := 0
	for trial := 0; trial < trials; trial++ {
		balance := currentSavings
		for month := 0; month < timeframeMonths; month++ {
			balance = balance*(1+returns.Rand()) + recommended
		}
		if balance >= goalAmount {
			successes++
		}
	}
	probability := float64(successes) / float64(trials)

	plan := SavingsPlan{
		RequiredMonthly:    round2(required),
		RecommendedMonthly: round2(recommended),
		SuccessProbability: round2(probability),
		ReconsiderPlan:     probability < successProbabilityFloor,
	}
	log.WithFields(logrus.Fields{
		"required":    plan.RequiredMonthly,
		"recommended": plan.RecommendedMonthly,
		"probability": plan.SuccessProbability,
	}).Debug("Savings plan computed")
	return plan, nil
}
