package diagnosis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftcdoctor/logdoctor/internal/config"
	"github.com/ftcdoctor/logdoctor/internal/parser"
)

func runCorrelation(records []parser.LogRecord) *DiagnosticResult {
	result := newResult()
	correlateBatteryMotor(records, config.DefaultAnalysisConfig(), result)
	return result
}

func TestCorrelatedDropEmitsOneEvent(t *testing.T) {
	records := []parser.LogRecord{
		batteryRecord(0, 13.0),
		messageRecord(10*time.Second+300*time.Millisecond, "Motor 2: comm timeout"),
		batteryRecord(10*time.Second, 11.8), // 1.2V drop
	}

	result := runCorrelation(records)
	require.Len(t, result.HighCurrentEvents, 1)

	ev := result.HighCurrentEvents[0]
	assert.InDelta(t, 1.2, ev.VoltageDrop, 1e-9)
	assert.InDelta(t, 13.0, ev.VoltageBefore, 1e-9)
	assert.InDelta(t, 11.8, ev.VoltageAfter, 1e-9)
	assert.Equal(t, SeverityCritical, ev.Severity)
	require.Len(t, ev.MotorIssues, 1)
	assert.Contains(t, ev.MotorIssues[0], "comm timeout")

	require.Len(t, result.CriticalIssues, 1)
	assert.Contains(t, result.CriticalIssues[0], "High current draw detected")
}

func TestUncorrelatedDropEmitsNothing(t *testing.T) {
	records := []parser.LogRecord{
		batteryRecord(0, 13.0),
		batteryRecord(10*time.Second, 11.8),
		// Motor issue 700ms after the drop: outside the ±500ms window.
		messageRecord(10*time.Second+700*time.Millisecond, "Motor 2: comm timeout"),
	}

	result := runCorrelation(records)
	assert.Empty(t, result.HighCurrentEvents)
	assert.Empty(t, result.CriticalIssues)
}

func TestWindowBoundaryIsClosed(t *testing.T) {
	records := []parser.LogRecord{
		batteryRecord(0, 13.0),
		batteryRecord(10*time.Second, 11.8),
		messageRecord(10*time.Second+500*time.Millisecond, "comm timeout on port 1"),
		messageRecord(9*time.Second+500*time.Millisecond, "Motor stall timeout"),
	}

	result := runCorrelation(records)
	require.Len(t, result.HighCurrentEvents, 1)
	// Both boundary issues belong to the single event.
	assert.Len(t, result.HighCurrentEvents[0].MotorIssues, 2)
}

func TestSmallDropIgnored(t *testing.T) {
	records := []parser.LogRecord{
		batteryRecord(0, 13.0),
		// Exactly at the threshold: not strictly greater, not significant.
		batteryRecord(10*time.Second, 12.0),
		messageRecord(10*time.Second, "Motor timeout"),
	}

	result := runCorrelation(records)
	assert.Empty(t, result.HighCurrentEvents)
}

func TestVoltageRecoveryAlsoCounts(t *testing.T) {
	// The delta magnitude is what matters; a >1V rebound next to a motor
	// issue is the tail end of the same stall.
	records := []parser.LogRecord{
		batteryRecord(0, 11.5),
		batteryRecord(10*time.Second, 12.8),
		messageRecord(10*time.Second, "Motor controller comm timeout"),
	}

	result := runCorrelation(records)
	assert.Len(t, result.HighCurrentEvents, 1)
}

func TestEventsChronological(t *testing.T) {
	records := []parser.LogRecord{
		batteryRecord(0, 13.0),
		batteryRecord(10*time.Second, 11.8),
		messageRecord(10*time.Second, "Motor timeout A"),
		batteryRecord(20*time.Second, 13.0),
		batteryRecord(30*time.Second, 11.7),
		messageRecord(30*time.Second, "Motor timeout B"),
	}

	result := runCorrelation(records)
	require.Len(t, result.HighCurrentEvents, 2)
	assert.True(t, result.HighCurrentEvents[0].Timestamp.Before(result.HighCurrentEvents[1].Timestamp))
}

func TestDrainRateWarning(t *testing.T) {
	records := []parser.LogRecord{
		batteryRecord(0, 13.0),
		batteryRecord(2*time.Minute, 11.0), // 1.0 V/min
	}

	result := runCorrelation(records)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "High battery drain rate")
}

func TestNoDrainWarningAtNormalRate(t *testing.T) {
	records := []parser.LogRecord{
		batteryRecord(0, 13.0),
		batteryRecord(2*time.Minute, 12.5), // 0.25 V/min
	}

	result := runCorrelation(records)
	assert.Empty(t, result.Warnings)
}

func TestCorrelationNeedsTwoReadings(t *testing.T) {
	result := runCorrelation([]parser.LogRecord{
		batteryRecord(0, 13.0),
		messageRecord(0, "Motor timeout"),
	})
	assert.Empty(t, result.HighCurrentEvents)
	assert.Empty(t, result.Warnings)
}
