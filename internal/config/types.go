package config

import (
	"fmt"
	"os"

	"github.com/ftcdoctor/logdoctor/internal/utils/logger"
	pkgerrors "github.com/ftcdoctor/logdoctor/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AnalysisConfig carries every numeric threshold of the diagnostic contract.
// Defaults are the published contract values; a config file may override them
// without touching algorithmic code.
type AnalysisConfig struct {
	// VoltageDropVolts: a battery delta above this magnitude is a significant drop.
	VoltageDropVolts float64 `yaml:"voltage_drop_volts"`
	// CorrelationWindowMS: half-width of the drop/motor-issue correlation window.
	CorrelationWindowMS int64 `yaml:"correlation_window_ms"`
	// JitterCVMax: coefficient of variation above this flags high jitter.
	JitterCVMax float64 `yaml:"jitter_cv_max"`
	// SpikeSigma: loop samples above mean + SpikeSigma*stddev are blocking spikes.
	SpikeSigma float64 `yaml:"spike_sigma"`
	// PeriodicIntervalCVMax / PeriodicMinMeanInterval: inter-spike interval shape
	// that distinguishes a recurring background pause from random noise.
	PeriodicIntervalCVMax   float64 `yaml:"periodic_interval_cv_max"`
	PeriodicMinMeanInterval float64 `yaml:"periodic_min_mean_interval"`
	// PredictionHorizonSeconds: where the fitted battery line is evaluated (match end).
	PredictionHorizonSeconds float64 `yaml:"prediction_horizon_seconds"`
	// SurvivalCutoffVolts: predicted voltage must stay above this to survive a match.
	SurvivalCutoffVolts float64 `yaml:"survival_cutoff_volts"`
	// MarginalVolts: predictions below this (but above cutoff) are flagged marginal.
	MarginalVolts float64 `yaml:"marginal_volts"`
	// DrainRateWarnVoltsPerMin: average drain above this rate draws a warning.
	DrainRateWarnVoltsPerMin float64 `yaml:"drain_rate_warn_volts_per_min"`
	// DegradationWarnMS: loop-time growth between session halves that draws a warning.
	DegradationWarnMS float64 `yaml:"degradation_warn_ms"`
	// SevereSpikeMS: absolute loop-time level counted as a severe spike.
	SevereSpikeMS float64 `yaml:"severe_spike_ms"`
	// RapidDisconnectSeconds: disconnects closer than this are a rapid cluster.
	RapidDisconnectSeconds float64 `yaml:"rapid_disconnect_seconds"`
	// MeanLoopWarnMS: average loop time above this draws a warning.
	MeanLoopWarnMS float64 `yaml:"mean_loop_warn_ms"`
}

// AdviceRule is one entry of the recommendation rule list. Expression is an
// expr-lang condition over the diagnosis facts; Advice is appended verbatim
// when the condition holds. Rules fire at most once, in declared order.
type AdviceRule struct {
	ID         string `yaml:"id"`
	Expression string `yaml:"expression"`
	Advice     string `yaml:"advice"`
}

// WebConfig configures the diagnosis HTTP service.
type WebConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Token   string `yaml:"token"`
}

// LimitsConfig bounds input handling.
type LimitsConfig struct {
	MaxLogSizeMB int64 `yaml:"max_log_size_mb"`
}

// GlobalConfig is the root configuration document.
type GlobalConfig struct {
	Analysis AnalysisConfig       `yaml:"analysis"`
	Rules    []AdviceRule         `yaml:"rules"`
	Web      WebConfig            `yaml:"web"`
	Limits   LimitsConfig         `yaml:"limits"`
	Logging  logger.LoggingConfig `yaml:"logging"`
}

// DefaultAnalysisConfig returns the contract thresholds.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		VoltageDropVolts:         1.0,
		CorrelationWindowMS:      500,
		JitterCVMax:              0.2,
		SpikeSigma:               3.0,
		PeriodicIntervalCVMax:    0.3,
		PeriodicMinMeanInterval:  5,
		PredictionHorizonSeconds: 150,
		SurvivalCutoffVolts:      11.5,
		MarginalVolts:            12.0,
		DrainRateWarnVoltsPerMin: 0.5,
		DegradationWarnMS:        10,
		SevereSpikeMS:            100,
		RapidDisconnectSeconds:   5,
		MeanLoopWarnMS:           50,
	}
}

// DefaultGlobalConfig returns a fully populated configuration.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Analysis: DefaultAnalysisConfig(),
		Web: WebConfig{
			Enabled: false,
			Port:    DefaultWebPort,
		},
		Limits: LimitsConfig{
			MaxLogSizeMB: DefaultMaxLogSizeMB,
		},
		Logging: logger.LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// LoadGlobalConfig reads and merges a configuration file over the defaults.
// LoadGlobalConfig 读取配置文件并与默认值合并。
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", pkgerrors.ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg := DefaultGlobalConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pkgerrors.ErrConfigInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveGlobalConfig writes the configuration to disk.
func SaveGlobalConfig(path string, cfg *GlobalConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects configurations that would corrupt the analysis contract.
func (c *GlobalConfig) Validate() error {
	a := c.Analysis
	if a.VoltageDropVolts <= 0 {
		return pkgerrors.NewConfigError("analysis.voltage_drop_volts", a.VoltageDropVolts)
	}
	if a.CorrelationWindowMS <= 0 {
		return pkgerrors.NewConfigError("analysis.correlation_window_ms", a.CorrelationWindowMS)
	}
	if a.SpikeSigma <= 0 {
		return pkgerrors.NewConfigError("analysis.spike_sigma", a.SpikeSigma)
	}
	if a.PredictionHorizonSeconds <= 0 {
		return pkgerrors.NewConfigError("analysis.prediction_horizon_seconds", a.PredictionHorizonSeconds)
	}
	if c.Web.Enabled && (c.Web.Port <= 0 || c.Web.Port > 65535) {
		return pkgerrors.NewConfigError("web.port", c.Web.Port)
	}
	if c.Limits.MaxLogSizeMB <= 0 {
		return pkgerrors.NewConfigError("limits.max_log_size_mb", c.Limits.MaxLogSizeMB)
	}
	for _, r := range c.Rules {
		if r.ID == "" || r.Expression == "" || r.Advice == "" {
			return pkgerrors.NewConfigError("rules", r.ID)
		}
	}
	return nil
}
