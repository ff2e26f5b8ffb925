package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigTemplate is written when initializing a fresh config file. It keeps
// the threshold contract documented next to the knobs that override it.
// DefaultConfigTemplate 初始化新配置文件时写入，阈值说明与配置项放在一起。
const DefaultConfigTemplate = `# logdoctor configuration file

# Diagnostic thresholds. The defaults are the published contract; override with care.
analysis:
  # A battery voltage delta above this magnitude (volts) is a significant drop.
  voltage_drop_volts: 1.0

  # Half-width (ms) of the window used to correlate drops with motor issues.
  correlation_window_ms: 500

  # Loop-time coefficient of variation above this flags high jitter.
  jitter_cv_max: 0.2

  # Loop samples above mean + spike_sigma * stddev count as blocking spikes.
  spike_sigma: 3.0

  # Inter-spike interval shape that marks a periodic background pause.
  periodic_interval_cv_max: 0.3
  periodic_min_mean_interval: 5

  # Where the fitted battery line is evaluated (seconds; FTC match length).
  prediction_horizon_seconds: 150

  # Predicted voltage must stay above this to survive a match.
  survival_cutoff_volts: 11.5

  # Predictions below this (but above the cutoff) are marginal.
  marginal_volts: 12.0

  # Average drain above this rate (V/min) draws a warning.
  drain_rate_warn_volts_per_min: 0.5

  # Loop-time growth (ms) between session halves that draws a warning.
  degradation_warn_ms: 10

  # Absolute loop time (ms) counted as a severe spike.
  severe_spike_ms: 100

  # Disconnects closer than this (seconds) form a rapid cluster.
  rapid_disconnect_seconds: 5

  # Average loop time (ms) above this draws a warning.
  mean_loop_warn_ms: 50

# Extra advice rules appended after the built-in ones. Expressions are evaluated
# against the diagnosis facts (see internal/diagnosis).
# Example:
#   - id: brownout-check
#     expression: 'HighCurrentEvents > 2'
#     advice: 'Inspect the main power switch wiring for brownout damage'
rules: []

# Diagnosis HTTP service (POST /api/v1/analyze, GET /metrics).
web:
  enabled: false
  port: 11833
  # Optional bearer token required on API requests when set.
  token: ""

limits:
  # Largest accepted log upload, in MB (decompressed size for .gz inputs).
  max_log_size_mb: 64

logging:
  enabled: true
  level: "info"
  # Empty path logs to stderr only; set a file to enable rotation.
  path: ""
  max_size: 100
  max_backups: 3
  max_age: 28
  compress: true
`

// EnsureConfig writes the default template to path when no file exists yet.
func EnsureConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(DefaultConfigTemplate), 0o644)
}
