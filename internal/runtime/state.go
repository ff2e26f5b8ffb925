package runtime

// ConfigPath stores the path to the configuration file provided via CLI flags.
// ConfigPath 存储通过 CLI 标志提供的配置文件路径。
var ConfigPath string

// Quiet suppresses operator-facing output on stdout (machine-readable modes).
// Quiet 抑制 stdout 上的操作员输出（机器可读模式）。
var Quiet bool
