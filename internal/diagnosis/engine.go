// Package diagnosis correlates parsed robot log records into a single
// diagnostic verdict: high-current events, loop stability, battery survival,
// health score, and pit-crew recommendations.
package diagnosis

import (
	"github.com/ftcdoctor/logdoctor/internal/config"
	"github.com/ftcdoctor/logdoctor/internal/parser"
)

// Engine holds the analysis thresholds and the compiled advice rules. It is
// stateless across invocations; Diagnose is a pure function of its input and
// safe for concurrent use.
type Engine struct {
	cfg   config.AnalysisConfig
	rules []compiledRule
}

// NewEngine builds an engine from the thresholds plus any custom advice rules,
// which are evaluated after the built-in ones.
func NewEngine(cfg config.AnalysisConfig, customRules []config.AdviceRule) (*Engine, error) {
	rules, err := compileRules(append(DefaultAdviceRules(), customRules...))
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, rules: rules}, nil
}

// NewDefaultEngine builds an engine on the contract thresholds. The default
// rule set always compiles; a failure here is a programming error.
func NewDefaultEngine() *Engine {
	e, err := NewEngine(config.DefaultAnalysisConfig(), nil)
	if err != nil {
		panic(err)
	}
	return e
}

// Diagnose runs every sub-analysis over the record sequence and returns the
// immutable result. Sub-analyses lacking data degrade to absent sub-results;
// an empty record sequence yields an empty, healthy result rather than an
// error (the parser already signals empty extraction to its caller).
func (e *Engine) Diagnose(records []parser.LogRecord) *DiagnosticResult {
	result := newResult()
	if len(records) == 0 {
		return result
	}

	correlateBatteryMotor(records, e.cfg, result)
	predictBatteryLife(records, e.cfg, result)
	analyzeDegradation(records, e.cfg, result)
	analyzeLoopStability(records, e.cfg, result)
	analyzeDisconnects(records, e.cfg, result)

	result.HealthScore = calculateHealthScore(result)
	recommend(e.rules, buildFacts(result, e.cfg), result)
	return result
}
