// Package tournament runs the diagnostic pipeline independently over a set of
// match logs and aggregates the verdicts into a longitudinal view. The engine
// itself stays session-free; all cross-match state lives here.
package tournament

import (
	"fmt"
	"sort"
	"time"

	"github.com/ftcdoctor/logdoctor/internal/diagnosis"
	"github.com/ftcdoctor/logdoctor/internal/parser"
	pkgerrors "github.com/ftcdoctor/logdoctor/pkg/errors"
)

// Score trend labels across the tournament.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendSteady    = "steady"

	// trendMargin is the half-to-half mean score difference below which the
	// tournament counts as steady.
	trendMargin = 5.0

	problemScoreCeiling = 50
)

// Log is one raw match log to analyze.
type Log struct {
	Name    string
	Content string
}

// MatchReport is the verdict for one match, plus the per-match facts the
// aggregate view is built from.
type MatchReport struct {
	MatchNumber     int                         `json:"match_number"`
	Name            string                      `json:"name"`
	StartTime       time.Time                   `json:"start_time"`
	RecordCount     int                         `json:"record_count"`
	HealthScore     int                         `json:"health_score"`
	StartingBattery *float64                    `json:"starting_battery,omitempty"`
	AvgLoopTime     *float64                    `json:"avg_loop_time,omitempty"`
	CriticalIssues  int                         `json:"critical_issues"`
	Result          *diagnosis.DiagnosticResult `json:"result"`
}

// SkippedLog names an input that produced no usable records.
type SkippedLog struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Report aggregates every analyzed match, ordered by match start time.
type Report struct {
	Matches                []MatchReport `json:"matches"`
	Skipped                []SkippedLog  `json:"skipped,omitempty"`
	AverageHealth          float64       `json:"average_health"`
	BestMatch              string        `json:"best_match"`
	WorstMatch             string        `json:"worst_match"`
	Trend                  string        `json:"trend"`
	TotalCriticalIssues    int           `json:"total_critical_issues"`
	TotalHighCurrentEvents int           `json:"total_high_current_events"`
	ProblemMatches         []string      `json:"problem_matches,omitempty"`
}

// Analyze parses and diagnoses each log independently, then aggregates.
// Unparsable logs are skipped and reported, not fatal; an input set that
// yields no analyzable match at all is an error.
func Analyze(engine *diagnosis.Engine, logs []Log) (*Report, error) {
	report := &Report{Trend: TrendSteady}

	for _, l := range logs {
		records, err := parser.Parse(l.Content)
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedLog{Name: l.Name, Reason: err.Error()})
			continue
		}
		result := engine.Diagnose(records)
		report.Matches = append(report.Matches, MatchReport{
			Name:            l.Name,
			StartTime:       records[0].Timestamp,
			RecordCount:     len(records),
			HealthScore:     result.HealthScore,
			StartingBattery: firstBattery(records),
			AvgLoopTime:     avgLoopTime(result),
			CriticalIssues:  len(result.CriticalIssues),
			Result:          result,
		})
	}

	if len(report.Matches) == 0 {
		return nil, fmt.Errorf("%w: no analyzable match logs", pkgerrors.ErrNoRecords)
	}

	sort.SliceStable(report.Matches, func(i, j int) bool {
		return report.Matches[i].StartTime.Before(report.Matches[j].StartTime)
	})
	aggregate(report)
	return report, nil
}

func aggregate(r *Report) {
	var total int
	best, worst := 0, 0
	for i := range r.Matches {
		m := &r.Matches[i]
		m.MatchNumber = i + 1
		total += m.HealthScore
		r.TotalCriticalIssues += m.CriticalIssues
		r.TotalHighCurrentEvents += len(m.Result.HighCurrentEvents)
		if m.HealthScore > r.Matches[best].HealthScore {
			best = i
		}
		if m.HealthScore < r.Matches[worst].HealthScore {
			worst = i
		}
		if m.HealthScore < problemScoreCeiling {
			r.ProblemMatches = append(r.ProblemMatches, m.Name)
		}
	}
	r.AverageHealth = float64(total) / float64(len(r.Matches))
	r.BestMatch = r.Matches[best].Name
	r.WorstMatch = r.Matches[worst].Name
	r.Trend = scoreTrend(r.Matches)
}

// scoreTrend compares mean health of the chronological second half against
// the first. A single match has no trend.
func scoreTrend(matches []MatchReport) string {
	if len(matches) < 2 {
		return TrendSteady
	}
	half := len(matches) / 2
	first := meanScore(matches[:half])
	second := meanScore(matches[len(matches)-half:])
	switch {
	case second-first > trendMargin:
		return TrendImproving
	case first-second > trendMargin:
		return TrendDeclining
	default:
		return TrendSteady
	}
}

func meanScore(matches []MatchReport) float64 {
	var total int
	for _, m := range matches {
		total += m.HealthScore
	}
	return float64(total) / float64(len(matches))
}

func firstBattery(records []parser.LogRecord) *float64 {
	for _, r := range records {
		if r.BatteryVoltage != nil {
			v := *r.BatteryVoltage
			return &v
		}
	}
	return nil
}

func avgLoopTime(result *diagnosis.DiagnosticResult) *float64 {
	if result.LoopStats == nil {
		return nil
	}
	v := result.LoopStats.Mean
	return &v
}
