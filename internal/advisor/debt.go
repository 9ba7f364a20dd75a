package advisor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// ErrPayoffInfeasible is returned when a debt configuration cannot be paid
// off within the simulation safety bound.
var ErrPayoffInfeasible = errors.New("debt payoff exceeds 1000 months")

// maxPayoffMonths bounds the repayment simulation.
const maxPayoffMonths = 1000

// PayoffMethod selects the repayment ordering.
type PayoffMethod string

const (
	// MethodAvalanche pays highest annual rate first.
	MethodAvalanche PayoffMethod = "avalanche"
	// MethodSnowball pays lowest balance first.
	MethodSnowball PayoffMethod = "snowball"
)

// Debt describes one outstanding liability.
type Debt struct {
	Name       string
	Balance    float64
	AnnualRate float64
	MinPayment float64
}

// PayoffPlan is the result of a repayment simulation.
type PayoffPlan struct {
	TotalMonths   int
	TotalInterest float64
	Method        string
}

// DebtOptimizer simulates month-by-month repayment of a set of debts under
// the avalanche or snowball ordering.
type DebtOptimizer struct{}

// NewDebtOptimizer returns a DebtOptimizer.
func NewDebtOptimizer() *DebtOptimizer {
	return &DebtOptimizer{}
}

// Optimize orders the debts once, then simulates monthly interest accrual,
// minimum payments from a shared pool sized at the sum of minimums, and a
// single surplus payment to the highest-priority open debt. An empty debt
// list is a trivial plan, not an error.
func (o *DebtOptimizer) Optimize(debts []Debt, method PayoffMethod) (PayoffPlan, error) {
	if len(debts) == 0 {
		return PayoffPlan{Method: "No debts provided"}, nil
	}
	for _, d := range debts {
		if d.Balance < 0 || d.AnnualRate < 0 || d.MinPayment < 0 {
			return PayoffPlan{}, fmt.Errorf("debt %q has a negative balance, rate or minimum payment", d.Name)
		}
	}

	ordered := make([]Debt, len(debts))
	copy(ordered, debts)
	var methodName string
	if method == MethodSnowball {
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Balance < ordered[j].Balance })
		methodName = "Snowball (Lowest Balance First)"
	} else {
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].AnnualRate > ordered[j].AnnualRate })
		methodName = "Avalanche (Highest Interest First)"
	}

	pool := 0.0
	for _, d := range ordered {
		pool += d.MinPayment
	}

	totalInterest := 0.0
	months := 0
	for anyOpen(ordered) {
		months++
		if months > maxPayoffMonths {
			return PayoffPlan{}, ErrPayoffInfeasible
		}

		available := pool
		for i := range ordered {
			if ordered[i].Balance <= 0 {
				continue
			}
			interest := ordered[i].Balance * ordered[i].AnnualRate / 12
			ordered[i].Balance += interest
			totalInterest += interest
		}
		for i := range ordered {
			if ordered[i].Balance <= 0 {
				continue
			}
			payment := math3Min(ordered[i].MinPayment, available, ordered[i].Balance)
			ordered[i].Balance -= payment
			available -= payment
		}
		for i := range ordered {
			if ordered[i].Balance > 0 && available > 0 {
				payment := ordered[i].Balance
				if available < payment {
					payment = available
				}
				ordered[i].Balance -= payment
				available -= payment
				break
			}
		}
	}

	plan := PayoffPlan{
		TotalMonths:   months,
		TotalInterest: round2(totalInterest),
		Method:        methodName,
	}
	log.WithFields(logrus.Fields{
		"months":   plan.TotalMonths,
		"interest": plan.TotalInterest,
		"method":   plan.Method,
	}).Debug("Debt payoff simulated")
	return plan, nil
}

func anyOpen(debts []Debt) bool {
	for _, d := range debts {
		if d.Balance > 0 {
			return true
		}
	}
	return false
}

func math3Min(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
