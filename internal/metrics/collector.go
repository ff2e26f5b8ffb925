package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Parser metrics
	RecordsParsedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logdoctor_records_parsed_total",
			Help: "Total log records successfully parsed",
		},
	)
	EmptyExtractionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logdoctor_empty_extractions_total",
			Help: "Total inputs that yielded no parsable records",
		},
	)

	// Analysis metrics
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logdoctor_analyses_total",
			Help: "Total diagnostic runs by outcome",
		},
		[]string{"outcome"},
	)
	HighCurrentEventsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logdoctor_high_current_events_total",
			Help: "Total correlated high-current events detected",
		},
	)

	// Last-verdict gauges
	LastHealthScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "logdoctor_last_health_score",
			Help: "Health score of the most recent analysis",
		},
	)
	LastRecordCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "logdoctor_last_record_count",
			Help: "Record count of the most recent analysis",
		},
	)
)

// Analysis outcomes for AnalysesTotal.
const (
	OutcomeOK       = "ok"
	OutcomeNoRecord = "no_records"
	OutcomeRejected = "rejected"
)

// ObserveAnalysis records the verdict of one completed diagnostic run.
func ObserveAnalysis(recordCount, healthScore, highCurrentEvents int) {
	AnalysesTotal.WithLabelValues(OutcomeOK).Inc()
	RecordsParsedTotal.Add(float64(recordCount))
	HighCurrentEventsTotal.Add(float64(highCurrentEvents))
	LastHealthScore.Set(float64(healthScore))
	LastRecordCount.Set(float64(recordCount))
}
