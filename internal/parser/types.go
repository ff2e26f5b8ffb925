package parser

import "time"

// Level is a logcat priority letter.
type Level string

const (
	LevelVerbose Level = "V"
	LevelDebug   Level = "D"
	LevelInfo    Level = "I"
	LevelWarning Level = "W"
	LevelError   Level = "E"
	LevelFatal   Level = "F"
)

// ParseLevel normalizes a captured priority letter. Unrecognized letters
// reject the whole line (treated as a structural mismatch).
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelVerbose, LevelDebug, LevelInfo, LevelWarning, LevelError, LevelFatal:
		return Level(s), true
	}
	return "", false
}

// String returns the long-form name used in reports.
func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "Verbose"
	case LevelDebug:
		return "Debug"
	case LevelInfo:
		return "Info"
	case LevelWarning:
		return "Warning"
	case LevelError:
		return "Error"
	case LevelFatal:
		return "Fatal"
	}
	return string(l)
}

// LogRecord is one successfully parsed logcat line. BatteryVoltage and
// LoopTimeMS are pointers so "absent" never masquerades as a zero reading.
type LogRecord struct {
	// EntryID is the 1-based position after the chronological sort,
	// not the original line number.
	EntryID   int       `json:"entry_id"`
	Timestamp time.Time `json:"timestamp"`
	PID       int       `json:"pid"`
	TID       int       `json:"tid"`
	Level     Level     `json:"level"`
	Tag       string    `json:"tag"`
	Message   string    `json:"message"`

	// Independent extractions from Message; any combination may be present.
	BatteryVoltage *float64 `json:"battery_voltage,omitempty"`
	LoopTimeMS     *float64 `json:"loop_time_ms,omitempty"`
	IsDisconnect   bool     `json:"is_disconnect"`
}
