package config

import (
	"sync"

	"github.com/ftcdoctor/logdoctor/internal/runtime"
)

// ConfigManager handles all configuration-related operations in a centralized manner.
// ConfigManager 以集中方式处理所有配置相关操作。
type ConfigManager struct {
	configPath string
	mutex      sync.RWMutex
	config     *GlobalConfig
}

// NewConfigManager creates a new configuration manager instance.
func NewConfigManager(configPath string) *ConfigManager {
	return &ConfigManager{configPath: configPath}
}

// LoadConfig loads the configuration from the manager's path.
func (cm *ConfigManager) LoadConfig() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cfg, err := LoadGlobalConfig(cm.configPath)
	if err != nil {
		return err
	}
	cm.config = cfg
	return nil
}

// SaveConfig saves the current configuration to the manager's path.
func (cm *ConfigManager) SaveConfig() error {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}
	return SaveGlobalConfig(cm.configPath, cm.config)
}

// GetConfig returns a copy of the current configuration.
func (cm *ConfigManager) GetConfig() *GlobalConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}
	cfgCopy := *cm.config
	return &cfgCopy
}

// UpdateConfig replaces the current configuration.
func (cm *ConfigManager) UpdateConfig(newConfig *GlobalConfig) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.config = newConfig
}

// GetAnalysisConfig returns the analysis thresholds, defaulting when unset.
func (cm *ConfigManager) GetAnalysisConfig() AnalysisConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return DefaultAnalysisConfig()
	}
	return cm.config.Analysis
}

// GetWebConfig returns the web section.
func (cm *ConfigManager) GetWebConfig() WebConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return DefaultGlobalConfig().Web
	}
	return cm.config.Web
}

// GetConfigPath returns the configuration file path in use.
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}

// GetConfigPath returns the effective configuration file path.
// A path set via CLI flag (runtime.ConfigPath) takes precedence.
func GetConfigPath() string {
	if runtime.ConfigPath != "" {
		return runtime.ConfigPath
	}
	return DefaultConfigPath
}
