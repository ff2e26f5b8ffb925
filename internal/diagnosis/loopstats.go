package diagnosis

import (
	"fmt"

	"github.com/ftcdoctor/logdoctor/internal/config"
	"github.com/ftcdoctor/logdoctor/internal/parser"
)

// analyzeLoopStability computes the jitter metrics over every loop-time
// sample: descriptive stats, blocking spikes past mean+Nσ, and the periodic
// latency signature (spikes recurring at a near-fixed cadence, the shape of a
// GC pause or a background task rather than random noise). All three signals
// are reported; none suppresses the others.
func analyzeLoopStability(records []parser.LogRecord, cfg config.AnalysisConfig, result *DiagnosticResult) {
	readings := parser.LoopTimeReadings(records)
	if len(readings) < 2 {
		return
	}

	loops := make([]float64, len(readings))
	for i, r := range readings {
		loops[i] = *r.LoopTimeMS
	}

	m := mean(loops)
	sd := stdDev(loops)
	cv := 0.0
	if m > 0 {
		cv = sd / m
	}

	threshold := m + cfg.SpikeSigma*sd
	var spikes []float64
	var spikeIndices []int
	for i, v := range loops {
		if v > threshold {
			spikes = append(spikes, v)
			spikeIndices = append(spikeIndices, i)
		}
	}
	spikePercent := float64(len(spikes)) / float64(len(loops)) * 100

	stats := &LoopStats{
		Count:              len(loops),
		Mean:               m,
		StdDev:             sd,
		Median:             median(loops),
		Max:                maxOf(loops),
		P95:                percentile(loops, 95),
		CV:                 cv,
		BlockingSpikeCount: len(spikes),
		SpikePercent:       spikePercent,
		MaxSpike:           maxOf(spikes),
		HighJitter:         cv > cfg.JitterCVMax,
		PeriodicLatency:    detectPeriodicLatency(spikeIndices, cfg),
	}
	result.LoopStats = stats

	if stats.HighJitter {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"High algorithmic jitter detected (CV: %.2f). Loop times vary significantly from %.1fms to %.1fms",
			cv, minOf(loops), stats.Max))
	}
	if stats.BlockingSpikeCount > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"%d blocking spikes detected (%.1f%% of loops above mean+%.0fσ). Max spike: %.1fms",
			stats.BlockingSpikeCount, spikePercent, cfg.SpikeSigma, stats.MaxSpike))
	}
	if stats.PeriodicLatency {
		result.CriticalIssues = append(result.CriticalIssues,
			"Periodic latency pattern detected - suggests Java GC or background task interference")
	}
	if m > cfg.MeanLoopWarnMS {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Average loop time is high (%.1fms). Target <20ms for responsive control", m))
	}
}

// detectPeriodicLatency looks at the record-count intervals between successive
// blocking spikes. Low interval variance with a mean interval past the minimum
// means the spikes recur on a roughly fixed cadence. Needs more than 3 spikes
// to call a cadence at all.
func detectPeriodicLatency(spikeIndices []int, cfg config.AnalysisConfig) bool {
	if len(spikeIndices) <= 3 {
		return false
	}
	intervals := make([]float64, 0, len(spikeIndices)-1)
	for i := 1; i < len(spikeIndices); i++ {
		intervals = append(intervals, float64(spikeIndices[i]-spikeIndices[i-1]))
	}

	meanInterval := mean(intervals)
	if meanInterval <= 0 {
		return false
	}
	intervalCV := stdDev(intervals) / meanInterval
	return intervalCV < cfg.PeriodicIntervalCVMax && meanInterval > cfg.PeriodicMinMeanInterval
}

// analyzeDegradation compares smoothed loop times between the first and second
// half of the session to catch slow performance decay.
func analyzeDegradation(records []parser.LogRecord, cfg config.AnalysisConfig, result *DiagnosticResult) {
	readings := parser.LoopTimeReadings(records)
	if len(readings) < 5 {
		return
	}

	loops := make([]float64, len(readings))
	for i, r := range readings {
		loops[i] = *r.LoopTimeMS
	}

	// 3-sample trailing moving average to smooth out single-loop noise.
	smoothed := make([]float64, len(loops))
	for i := range loops {
		start := i - 2
		if start < 0 {
			start = 0
		}
		smoothed[i] = mean(loops[start : i+1])
	}

	half := len(smoothed) / 2
	firstHalf := mean(smoothed[:half])
	secondHalf := mean(smoothed[half:])
	degradation := secondHalf - firstHalf
	if degradation > cfg.DegradationWarnMS {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Performance degradation detected: Loop times increased by %.1fms over session (from %.1fms to %.1fms avg)",
			degradation, firstHalf, secondHalf))
	}

	var severe []float64
	for _, v := range loops {
		if v > cfg.SevereSpikeMS {
			severe = append(severe, v)
		}
	}
	if len(severe) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"%d severe loop time spikes detected (>%.0fms). Max: %.1fms",
			len(severe), cfg.SevereSpikeMS, maxOf(loops)))
	}
}
