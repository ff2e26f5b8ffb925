package diagnosis

import (
	"fmt"

	"github.com/ftcdoctor/logdoctor/internal/config"
	"github.com/ftcdoctor/logdoctor/internal/parser"
	pkgerrors "github.com/ftcdoctor/logdoctor/pkg/errors"
)

// fitBatteryModel fits voltage ≈ intercept + slope·elapsed_seconds by ordinary
// least squares and evaluates it at the prediction horizon. The model is
// retrained from scratch on every invocation; nothing persists.
//
// Returns ErrInsufficientData below 2 readings and ErrDegenerateModel when all
// readings share one instant (zero variance in x).
func fitBatteryModel(battery []parser.LogRecord, cfg config.AnalysisConfig) (*BatteryPrediction, error) {
	if len(battery) < 2 {
		return nil, pkgerrors.ErrInsufficientData
	}

	start := battery[0].Timestamp
	xs := make([]float64, len(battery))
	ys := make([]float64, len(battery))
	for i, r := range battery {
		xs[i] = r.Timestamp.Sub(start).Seconds()
		ys[i] = *r.BatteryVoltage
	}

	xMean := mean(xs)
	yMean := mean(ys)
	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - xMean
		sxx += dx * dx
		sxy += dx * (ys[i] - yMean)
	}
	if sxx == 0 {
		return nil, pkgerrors.ErrDegenerateModel
	}

	slope := sxy / sxx
	intercept := yMean - slope*xMean

	// R² against the observed readings. With zero total variance the fit is
	// either exact (1) or meaningless (0).
	var ssRes, ssTot float64
	for i := range xs {
		fit := intercept + slope*xs[i]
		ssRes += (ys[i] - fit) * (ys[i] - fit)
		ssTot += (ys[i] - yMean) * (ys[i] - yMean)
	}
	confidence := 1.0
	if ssTot > 0 {
		confidence = 1 - ssRes/ssTot
	} else if ssRes > 0 {
		confidence = 0
	}

	predicted := intercept + slope*cfg.PredictionHorizonSeconds
	drain := slope
	if drain < 0 {
		drain = -drain
	}

	return &BatteryPrediction{
		PredictedVoltage:   predicted,
		WillSurvive:        predicted > cfg.SurvivalCutoffVolts,
		Confidence:         confidence,
		Slope:              slope,
		Intercept:          intercept,
		DrainRatePerSecond: drain,
		CurrentVoltage:     ys[len(ys)-1],
		ElapsedSeconds:     xs[len(xs)-1],
	}, nil
}

// predictBatteryLife attaches the survival forecast and its issue messages.
// Insufficient or degenerate data leaves the prediction absent, never zeroed.
func predictBatteryLife(records []parser.LogRecord, cfg config.AnalysisConfig, result *DiagnosticResult) {
	pred, err := fitBatteryModel(parser.BatteryReadings(records), cfg)
	if err != nil {
		return
	}
	result.BatteryPrediction = pred

	switch {
	case !pred.WillSurvive:
		result.CriticalIssues = append(result.CriticalIssues, fmt.Sprintf(
			"CRITICAL: Battery predicted to reach %.2fV at 2:30 mark (below %.1fV cutoff). Robot may not complete match!",
			pred.PredictedVoltage, cfg.SurvivalCutoffVolts))
	case pred.PredictedVoltage < cfg.MarginalVolts:
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Battery will be low at match end: ~%.2fV predicted at 2:30", pred.PredictedVoltage))
	}
}
