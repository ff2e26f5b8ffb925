package diagnosis

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ftcdoctor/logdoctor/internal/config"
	pkgerrors "github.com/ftcdoctor/logdoctor/pkg/errors"
)

// Facts is the environment advice-rule expressions are evaluated against.
// Threshold comparisons are pre-resolved into booleans so rule text stays
// free of magic numbers.
type Facts struct {
	HighCurrentEvents int

	HasPrediction      bool
	WillSurvive        bool
	PredictedVoltage   float64
	Confidence         float64
	PredictionMarginal bool

	HasLoopStats    bool
	HighJitter      bool
	PeriodicLatency bool
	MeanLoopTime    float64
	SlowLoop        bool
	BlockingSpikes  int

	Disconnects         int
	DisconnectMentions  int
	PerformanceMentions int

	CriticalIssues int
	Warnings       int
	HealthScore    int
}

// buildFacts derives the rule environment from a scored result.
func buildFacts(result *DiagnosticResult, cfg config.AnalysisConfig) Facts {
	f := Facts{
		HighCurrentEvents: len(result.HighCurrentEvents),
		CriticalIssues:    len(result.CriticalIssues),
		Warnings:          len(result.Warnings),
		HealthScore:       result.HealthScore,
	}

	if p := result.BatteryPrediction; p != nil {
		f.HasPrediction = true
		f.WillSurvive = p.WillSurvive
		f.PredictedVoltage = p.PredictedVoltage
		f.Confidence = p.Confidence
		f.PredictionMarginal = p.WillSurvive && p.PredictedVoltage < cfg.MarginalVolts
	}

	if s := result.LoopStats; s != nil {
		f.HasLoopStats = true
		f.HighJitter = s.HighJitter
		f.PeriodicLatency = s.PeriodicLatency
		f.MeanLoopTime = s.Mean
		f.SlowLoop = s.Mean > cfg.MeanLoopWarnMS
	}

	for _, msg := range append(append([]string{}, result.CriticalIssues...), result.Warnings...) {
		if strings.Contains(strings.ToLower(msg), "disconnect") {
			f.DisconnectMentions++
		}
	}
	for _, w := range result.Warnings {
		lower := strings.ToLower(w)
		if strings.Contains(lower, "loop time") || strings.Contains(lower, "performance") {
			f.PerformanceMentions++
		}
	}
	return f
}

// DefaultAdviceRules is the built-in pit-crew advice, in evaluation order.
// Each rule fires at most once; appended order follows rule order, not
// severity. Config may append custom rules after these.
func DefaultAdviceRules() []config.AdviceRule {
	return []config.AdviceRule{
		{
			ID:         "battery-replace",
			Expression: "HasPrediction && !WillSurvive",
			Advice:     "Replace battery immediately - current battery will not last full match",
		},
		{
			ID:         "battery-marginal",
			Expression: "PredictionMarginal",
			Advice:     "Use a fresh battery for next match - current battery is marginal",
		},
		{
			ID:         "mechanical-binding",
			Expression: "HighCurrentEvents > 0",
			Advice: "Investigate motor stalls or mechanical binding - high current draws detected. " +
				"Check for: 1) Wheels binding on frame, 2) Gear mesh issues, 3) Motors under excessive load",
		},
		{
			ID:         "usb-connections",
			Expression: "DisconnectMentions > 0",
			Advice: "Secure all USB connections with cable strain relief. " +
				"Consider replacing suspect USB cables. Ensure proper wire management.",
		},
		{
			ID:         "loop-performance",
			Expression: "PerformanceMentions > 0",
			Advice: "Optimize code for performance - consider: 1) Reducing sensor polling frequency, " +
				"2) Moving heavy calculations outside main loop, 3) Checking for blocking operations",
		},
		{
			ID:         "control-loop-review",
			Expression: "HasLoopStats && HighJitter",
			Advice:     "Review control loops for expensive calculations or synchronous I/O operations",
		},
		{
			ID:         "gc-investigation",
			Expression: "HasLoopStats && PeriodicLatency",
			Advice:     "Investigate Java Garbage Collection or background telemetry overhead",
		},
		{
			ID:         "opmode-frequency",
			Expression: "HasLoopStats && SlowLoop",
			Advice:     "Optimize OpMode logic to increase control frequency",
		},
	}
}

// healthyAdvice is appended when no rule fired and the score is still good.
const healthyAdvice = "Robot is operating within normal parameters - no critical issues detected"

type compiledRule struct {
	id      string
	advice  string
	program *vm.Program
}

// compileRules compiles rule expressions against the Facts environment once,
// at engine construction.
func compileRules(rules []config.AdviceRule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		program, err := expr.Compile(r.Expression, expr.Env(Facts{}), expr.AsBool())
		if err != nil {
			return nil, pkgerrors.NewRuleError(r.ID, err)
		}
		compiled = append(compiled, compiledRule{id: r.ID, advice: r.Advice, program: program})
	}
	return compiled, nil
}

// recommend runs the rule list over the facts. A rule that fails at runtime is
// skipped; advice generation never fails a diagnosis.
func recommend(rules []compiledRule, facts Facts, result *DiagnosticResult) {
	for _, rule := range rules {
		output, err := expr.Run(rule.program, facts)
		if err != nil {
			continue
		}
		if matched, ok := output.(bool); ok && matched {
			result.Recommendations = append(result.Recommendations, rule.advice)
		}
	}

	if len(result.Recommendations) == 0 && result.HealthScore > 80 {
		result.Recommendations = append(result.Recommendations, healthyAdvice)
	}
}
