package diagnosis

import (
	"time"

	"github.com/ftcdoctor/logdoctor/internal/parser"
)

var baseTime = time.Date(2026, time.January, 16, 10, 0, 0, 0, time.Local)

// batteryRecord builds a record carrying a voltage reading at an offset from baseTime.
func batteryRecord(offset time.Duration, volts float64) parser.LogRecord {
	v := volts
	return parser.LogRecord{
		Timestamp:      baseTime.Add(offset),
		Level:          parser.LevelInfo,
		Tag:            "RobotCore",
		Message:        "Battery voltage reading",
		BatteryVoltage: &v,
	}
}

// loopRecord builds a record carrying a loop-time sample.
func loopRecord(offset time.Duration, ms float64) parser.LogRecord {
	v := ms
	return parser.LogRecord{
		Timestamp:  baseTime.Add(offset),
		Level:      parser.LevelDebug,
		Tag:        "OpMode",
		Message:    "loop time sample",
		LoopTimeMS: &v,
	}
}

// messageRecord builds a plain record with the given message.
func messageRecord(offset time.Duration, msg string) parser.LogRecord {
	return parser.LogRecord{
		Timestamp: baseTime.Add(offset),
		Level:     parser.LevelWarning,
		Tag:       "RobotCore",
		Message:   msg,
	}
}

// disconnectRecord builds a record flagged as a disconnect.
func disconnectRecord(offset time.Duration, msg string) parser.LogRecord {
	rec := messageRecord(offset, msg)
	rec.IsDisconnect = true
	return rec
}
