package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ftcdoctor/logdoctor/internal/config"
	"github.com/ftcdoctor/logdoctor/internal/runtime"
	"github.com/ftcdoctor/logdoctor/internal/utils/logger"
)

var RootCmd = &cobra.Command{
	Use:   "logdoctor",
	Short: "Diagnose FTC robot health from logcat captures",
	Long: `logdoctor parses Android logcat captures from FTC robot controllers and
produces a hardware health verdict: correlated high-current events, control
loop stability, battery survival prediction and pit crew recommendations.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load configuration to get logging settings
		// 加载配置以获取日志设置
		logCfg := logger.LoggingConfig{Enabled: true, Level: "info"}
		if globalCfg, err := config.LoadGlobalConfig(config.GetConfigPath()); err == nil {
			logCfg = globalCfg.Logging
		}
		// Config missing or broken: default console logging still works
		// 配置缺失或损坏时仍使用默认控制台日志
		if runtime.Quiet {
			logCfg.Level = "error"
		}
		logger.Init(logCfg)

		// Inject logger into context
		// 将 Logger 注入 Context
		ctx := logger.WithContext(cmd.Context(), logger.Get(nil))
		cmd.SetContext(ctx)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&runtime.ConfigPath, "config", "c", "",
		fmt.Sprintf("Path to configuration file (default: %s)", config.DefaultConfigPath))
	RootCmd.PersistentFlags().BoolVarP(&runtime.Quiet, "quiet", "q", false,
		"Suppress non-essential output")

	RootCmd.CompletionOptions.DisableDescriptions = true
}

// loadConfig returns the merged configuration through the config manager,
// falling back to defaults when no config file is present.
func loadConfig() *config.GlobalConfig {
	cm := config.NewConfigManager(config.GetConfigPath())
	if err := cm.LoadConfig(); err != nil {
		return config.DefaultGlobalConfig()
	}
	return cm.GetConfig()
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
