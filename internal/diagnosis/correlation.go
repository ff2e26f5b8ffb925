package diagnosis

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ftcdoctor/logdoctor/internal/config"
	"github.com/ftcdoctor/logdoctor/internal/parser"
)

// motorIssuePattern matches the motor-trouble vocabulary anywhere in a message.
var motorIssuePattern = regexp.MustCompile(`(?i)timeout|motor|comm timeout|could not read`)

// correlateBatteryMotor flags voltage drops that co-occur with motor issues
// inside the correlation window. An isolated drop could be a weak cell and an
// isolated timeout could be comms noise; the pair within ±window is the
// signature of a real high-current draw. One event per drop, at most, carrying
// every motor message that fell inside its window; events are chronological
// because battery readings already are.
func correlateBatteryMotor(records []parser.LogRecord, cfg config.AnalysisConfig, result *DiagnosticResult) {
	battery := parser.BatteryReadings(records)
	if len(battery) < 2 {
		return
	}

	var motorIssues []parser.LogRecord
	for _, r := range records {
		if motorIssuePattern.MatchString(r.Message) {
			motorIssues = append(motorIssues, r)
		}
	}

	window := time.Duration(cfg.CorrelationWindowMS) * time.Millisecond
	for i := 1; i < len(battery); i++ {
		drop := *battery[i-1].BatteryVoltage - *battery[i].BatteryVoltage
		magnitude := drop
		if magnitude < 0 {
			magnitude = -magnitude
		}
		if magnitude <= cfg.VoltageDropVolts {
			continue
		}

		dropTime := battery[i].Timestamp
		windowStart := dropTime.Add(-window)
		windowEnd := dropTime.Add(window)

		var nearby []string
		for _, issue := range motorIssues {
			// Closed interval on both ends.
			if !issue.Timestamp.Before(windowStart) && !issue.Timestamp.After(windowEnd) {
				nearby = append(nearby, issue.Message)
			}
		}
		if len(nearby) == 0 {
			continue
		}

		after := *battery[i].BatteryVoltage
		result.HighCurrentEvents = append(result.HighCurrentEvents, HighCurrentEvent{
			Timestamp:     dropTime,
			VoltageDrop:   magnitude,
			VoltageBefore: after + magnitude,
			VoltageAfter:  after,
			MotorIssues:   nearby,
			Severity:      SeverityCritical,
		})
		result.CriticalIssues = append(result.CriticalIssues, fmt.Sprintf(
			"High current draw detected at %s: %.2fV drop correlated with motor timeout",
			dropTime.Format("15:04:05"), magnitude))
	}

	analyzeDrainRate(battery, cfg, result)
}

// analyzeDrainRate warns when the session-average drain is abnormally steep.
func analyzeDrainRate(battery []parser.LogRecord, cfg config.AnalysisConfig, result *DiagnosticResult) {
	first, last := battery[0], battery[len(battery)-1]
	span := last.Timestamp.Sub(first.Timestamp).Seconds()
	if span <= 0 {
		return
	}

	totalDrop := *first.BatteryVoltage - *last.BatteryVoltage
	rate := totalDrop / span * 60 // volts per minute
	if rate > cfg.DrainRateWarnVoltsPerMin {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"High battery drain rate: %.2fV/min (expected: ~0.2-0.3V/min for normal operation)", rate))
	}
}
