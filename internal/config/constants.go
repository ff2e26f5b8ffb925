package config

const (
	// DefaultConfigPath is the standard location for the logdoctor configuration file.
	// DefaultConfigPath 是 logdoctor 配置文件的标准位置。
	DefaultConfigPath = "/etc/logdoctor/config.yaml"

	// DefaultWebPort is the port the diagnosis HTTP service binds when enabled.
	DefaultWebPort = 11833

	// DefaultMaxLogSizeMB bounds how large a single uploaded log may be.
	DefaultMaxLogSizeMB = 64
)
