package diagnosis

// Health score penalties. The formula is part of the external contract:
// 100 - 20·critical - 5·warning - 15·event, minus a flat 25 when a battery
// prediction exists and fails, clamped to [0,100].
const (
	penaltyCriticalIssue    = 20
	penaltyWarning          = 5
	penaltyHighCurrentEvent = 15
	penaltyFailedSurvival   = 25
)

// calculateHealthScore aggregates every finding into the 0-100 verdict.
func calculateHealthScore(result *DiagnosticResult) int {
	score := 100
	score -= len(result.CriticalIssues) * penaltyCriticalIssue
	score -= len(result.Warnings) * penaltyWarning
	score -= len(result.HighCurrentEvents) * penaltyHighCurrentEvent

	if result.BatteryPrediction != nil && !result.BatteryPrediction.WillSurvive {
		score -= penaltyFailedSurvival
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
