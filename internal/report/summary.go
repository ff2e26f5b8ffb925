// Package report renders a diagnostic result for humans and for tooling:
// a markdown summary for the pit crew, CSV for spreadsheets, JSON for bots.
package report

import (
	"fmt"
	"strings"

	"github.com/ftcdoctor/logdoctor/internal/diagnosis"
)

// Health banners by score band.
const (
	bannerHealthy  = "HEALTHY"
	bannerCaution  = "CAUTION"
	bannerCritical = "CRITICAL"

	healthyFloor = 80
	cautionFloor = 60
)

// Banner maps a health score to its display band.
func Banner(score int) string {
	switch {
	case score >= healthyFloor:
		return bannerHealthy
	case score >= cautionFloor:
		return bannerCaution
	default:
		return bannerCritical
	}
}

// Summary renders the markdown diagnostic report: health banner, top critical
// findings, action items, then the optional forecast and stability sections.
func Summary(result *diagnosis.DiagnosticResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Diagnostic Report\n\n")
	fmt.Fprintf(&b, "**Robot Health Score: %d/100** - %s\n\n---\n\n", result.HealthScore, Banner(result.HealthScore))

	b.WriteString("### Critical Findings\n\n")
	if len(result.CriticalIssues) > 0 {
		for _, issue := range topN(result.CriticalIssues, 3) {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	} else {
		b.WriteString("- No critical issues detected\n")
	}

	b.WriteString("\n### Pit Crew Action Items\n\n")
	actions := topN(result.Recommendations, 3)
	if len(actions) == 0 {
		actions = []string{"No action required - robot is healthy"}
	}
	for i, action := range actions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, action)
	}

	if pred := result.BatteryPrediction; pred != nil {
		b.WriteString("\n### Battery Forecast\n\n")
		fmt.Fprintf(&b, "- **Current Status:** %.2fV at %.0fs into operation\n", pred.CurrentVoltage, pred.ElapsedSeconds)
		fmt.Fprintf(&b, "- **Match End Prediction:** %.2fV at 2:30 mark\n", pred.PredictedVoltage)
		if pred.WillSurvive {
			fmt.Fprintf(&b, "- **Verdict:** Battery will survive full match (confidence: %.0f%%)\n", pred.Confidence*100)
		} else {
			b.WriteString("- **Verdict:** Battery may fail before match end - REPLACE NOW\n")
		}
	}

	if n := len(result.HighCurrentEvents); n > 0 {
		fmt.Fprintf(&b, "\n### High Current Draw Events Detected: %d\n\n", n)
		for _, ev := range result.HighCurrentEvents[:minInt(n, 2)] {
			fmt.Fprintf(&b, "- **%s:** %.2fV drop (%.2fV → %.2fV) correlated with motor issue\n",
				ev.Timestamp.Format("15:04:05"), ev.VoltageDrop, ev.VoltageBefore, ev.VoltageAfter)
		}
	}

	if s := result.LoopStats; s != nil {
		b.WriteString("\n### Control Loop Stability\n\n")
		fmt.Fprintf(&b, "- **Loop Time Stats:** %.1fms avg (σ=%.1fms)\n", s.Mean, s.StdDev)
		jitter := "Stable"
		if s.HighJitter {
			jitter = "High Jitter"
		}
		fmt.Fprintf(&b, "- **Coefficient of Variation:** %.3f (%s)\n", s.CV, jitter)
		fmt.Fprintf(&b, "- **Blocking Spikes:** %d events (%.1f%% of loops)\n", s.BlockingSpikeCount, s.SpikePercent)
		if s.PeriodicLatency {
			b.WriteString("- **Periodic Latency:** Yes (likely GC or background task)\n")
		}
	}

	b.WriteString("\n---\n*Analysis powered by the diagnostic intelligence engine*\n")
	return b.String()
}

func topN(items []string, n int) []string {
	return items[:minInt(len(items), n)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
