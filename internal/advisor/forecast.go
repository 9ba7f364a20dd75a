package advisor

import (
	"fmt"

	"fintrack/internal/models"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Default forecaster parameters.
const (
	DefaultWindowSize      = 3
	DefaultConfidenceLevel = 0.95
)

// Forecaster predicts next-month spending from a trailing moving average
// over calendar-month totals.
type Forecaster struct {
	windowSize      int
	confidenceLevel float64
}

// Forecast is the report produced by Forecaster.Forecast. When Degraded is
// true there were fewer months of history than the window and the interval
// bounds are not populated.
type Forecast struct {
	Prediction      float64
	IntervalLow     float64
	IntervalHigh    float64
	ConfidenceLevel float64
	Method          string
	Degraded        bool
}

// NewForecaster returns a Forecaster. Non-positive windowSize and
// out-of-range confidenceLevel fall back to the defaults.
func NewForecaster(windowSize int, confidenceLevel float64) *Forecaster {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		confidenceLevel = DefaultConfidenceLevel
	}
	return &Forecaster{windowSize: windowSize, confidenceLevel: confidenceLevel}
}

// Forecast aggregates history into monthly totals and projects the next
// month. With fewer months than the window it degrades to the plain mean of
// all months and reports no interval.
func (f *Forecaster) Forecast(history []models.Transaction) (Forecast, error) {
	totals, err := monthlyTotals(history)
	if err != nil {
		return Forecast{}, fmt.Errorf("forecast: %w", err)
	}
	log.WithField("months", len(totals)).Debug("Forecasting monthly spending")

	if len(totals) < f.windowSize {
		return Forecast{
			Prediction:      round2(stat.Mean(totals, nil)),
			ConfidenceLevel: f.confidenceLevel,
			Method:          fmt.Sprintf("%d-month moving average (insufficient data)", f.windowSize),
			Degraded:        true,
		}, nil
	}

	window := totals[len(totals)-f.windowSize:]
	mean := stat.Mean(window, nil)
	std := stat.StdDev(window, nil)
	if f.windowSize == 1 {
		// Sample deviation of one value is undefined.
		std = 0
	}

	z := distuv.UnitNormal.Quantile(1 - (1-f.confidenceLevel)/2)
	return Forecast{
		Prediction:      round2(mean),
		IntervalLow:     round2(mean - z*std),
		IntervalHigh:    round2(mean + z*std),
		ConfidenceLevel: f.confidenceLevel,
		Method:          fmt.Sprintf("%d-month moving average", f.windowSize),
	}, nil
}
