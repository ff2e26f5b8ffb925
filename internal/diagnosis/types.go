package diagnosis

import "time"

// SeverityCritical is the fixed severity of a correlated high-current event.
// Isolated drops and isolated timeouts are ambiguous; the conjunction is not.
const SeverityCritical = "CRITICAL"

// HighCurrentEvent is a battery voltage drop co-occurring with motor trouble
// inside the correlation window: the signature of a stall / mechanical bind.
type HighCurrentEvent struct {
	Timestamp     time.Time `json:"timestamp"`
	VoltageDrop   float64   `json:"voltage_drop"`
	VoltageBefore float64   `json:"voltage_before"`
	VoltageAfter  float64   `json:"voltage_after"`
	MotorIssues   []string  `json:"motor_issues"`
	Severity      string    `json:"severity"`
}

// LoopStats summarizes control-loop timing stability.
type LoopStats struct {
	Count              int     `json:"count"`
	Mean               float64 `json:"mean"`
	StdDev             float64 `json:"std_dev"`
	Median             float64 `json:"median"`
	Max                float64 `json:"max"`
	P95                float64 `json:"p95"`
	CV                 float64 `json:"coefficient_of_variation"`
	BlockingSpikeCount int     `json:"blocking_spike_count"`
	SpikePercent       float64 `json:"spike_percent"`
	MaxSpike           float64 `json:"max_spike"`
	HighJitter         bool    `json:"high_jitter"`
	PeriodicLatency    bool    `json:"periodic_latency"`
}

// BatteryPrediction is the linear battery survival forecast. Confidence is the
// model's R² against the observed readings; a low value is a signal to the
// consumer, never a suppression condition.
type BatteryPrediction struct {
	PredictedVoltage   float64 `json:"predicted_voltage_at_150s"`
	WillSurvive        bool    `json:"will_survive"`
	Confidence         float64 `json:"confidence"`
	Slope              float64 `json:"slope"`
	Intercept          float64 `json:"intercept"`
	DrainRatePerSecond float64 `json:"drain_rate_per_second"`
	CurrentVoltage     float64 `json:"current_voltage"`
	ElapsedSeconds     float64 `json:"elapsed_seconds"`
}

// DiagnosticResult is the single immutable verdict of one engine invocation.
type DiagnosticResult struct {
	HealthScore       int                `json:"health_score"`
	HighCurrentEvents []HighCurrentEvent `json:"high_current_events"`
	LoopStats         *LoopStats         `json:"loop_stats,omitempty"`
	BatteryPrediction *BatteryPrediction `json:"battery_prediction,omitempty"`
	CriticalIssues    []string           `json:"critical_issues"`
	Warnings          []string           `json:"warnings"`
	Recommendations   []string           `json:"recommendations"`
}

func newResult() *DiagnosticResult {
	return &DiagnosticResult{
		HealthScore:       100,
		HighCurrentEvents: []HighCurrentEvent{},
		CriticalIssues:    []string{},
		Warnings:          []string{},
		Recommendations:   []string{},
	}
}
