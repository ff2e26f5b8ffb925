package diagnosis

import (
	"fmt"
	"strings"

	"github.com/ftcdoctor/logdoctor/internal/config"
	"github.com/ftcdoctor/logdoctor/internal/parser"
)

// analyzeDisconnects classifies disconnect events: rapid clusters point at a
// loose connection or failing hardware, spread-out events at general USB
// flakiness. Specific device mentions get targeted critical issues.
func analyzeDisconnects(records []parser.LogRecord, cfg config.AnalysisConfig, result *DiagnosticResult) {
	disconnects := parser.DisconnectEvents(records)
	if len(disconnects) == 0 {
		return
	}

	if len(disconnects) > 1 {
		rapid := 0
		for i := 1; i < len(disconnects); i++ {
			gap := disconnects[i].Timestamp.Sub(disconnects[i-1].Timestamp).Seconds()
			if gap < cfg.RapidDisconnectSeconds {
				rapid++
			}
		}
		if rapid > 0 {
			result.CriticalIssues = append(result.CriticalIssues, fmt.Sprintf(
				"CRITICAL: %d disconnect events detected, %d occurring in rapid succession (<%.0fs apart). Indicates loose connection or failing hardware.",
				len(disconnects), rapid, cfg.RapidDisconnectSeconds))
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%d disconnect events detected. Check USB connections.", len(disconnects)))
		}
	} else {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Single disconnect event detected at %s", disconnects[0].Timestamp.Format("15:04:05")))
	}

	for _, d := range disconnects {
		lower := strings.ToLower(d.Message)
		if strings.Contains(lower, "expansion hub") {
			result.CriticalIssues = append(result.CriticalIssues,
				"Expansion Hub disconnect - check REV Hub connection and cable quality")
		} else if strings.Contains(lower, "motor controller") {
			result.CriticalIssues = append(result.CriticalIssues,
				"Motor Controller disconnect - inspect USB connection and controller power")
		}
	}
}
