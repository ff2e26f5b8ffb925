// Package parser converts raw Android logcat text (the only format FTC robot
// controllers emit) into an ordered stream of typed LogRecord values.
package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/ftcdoctor/logdoctor/pkg/errors"
)

var (
	// logcatPattern captures timestamp, pid, tid, level, tag, message.
	logcatPattern = regexp.MustCompile(`^(\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}\.\d{3})\s+(\d+)[-\s](\d+)(?:/\?)?\s+([VDIWEF])[/\s]+([^:]+):\s+(.*)`)

	// Secondary extractions. Numbers must anchor on a unit suffix so stray
	// numbers elsewhere in the message never match.
	batteryPattern    = regexp.MustCompile(`(?i)battery.*?(\d+\.?\d*)\s*v`)
	loopTimePattern   = regexp.MustCompile(`(?i)loop.*?(\d+\.?\d*)\s*ms`)
	disconnectPattern = regexp.MustCompile(`(?i)disconnect|connection\s+lost|device\s+not\s+found`)
)

// timestampLayout parses the year-prefixed, whitespace-normalized logcat timestamp.
const timestampLayout = "2006-01-02 15:04:05.000"

// Parse converts raw log text into records sorted by timestamp. Lines that do
// not match the logcat structure are dropped silently; only a fully empty
// extraction is an error (ErrNoRecords).
//
// Logcat timestamps carry no year, so the current calendar year is assumed.
// A log spanning a December→January rollover will be mis-ordered; accepted
// limitation.
func Parse(raw string) ([]LogRecord, error) {
	return ParseAt(raw, time.Now())
}

// ParseAt is Parse with an explicit reference time for the assumed year.
func ParseAt(raw string, now time.Time) ([]LogRecord, error) {
	var records []LogRecord
	for _, line := range strings.Split(raw, "\n") {
		if rec, ok := parseLine(line, now.Year()); ok {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil, pkgerrors.ErrNoRecords
	}

	// Stable: equal timestamps keep original input order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	for i := range records {
		records[i].EntryID = i + 1
	}
	return records, nil
}

func parseLine(line string, year int) (LogRecord, bool) {
	m := logcatPattern.FindStringSubmatch(line)
	if m == nil {
		return LogRecord{}, false
	}

	level, ok := ParseLevel(m[4])
	if !ok {
		return LogRecord{}, false
	}

	ts, err := parseTimestamp(m[1], year)
	if err != nil {
		// Structurally shaped but not a real instant (e.g. month 13).
		return LogRecord{}, false
	}

	pid, err := strconv.Atoi(m[2])
	if err != nil {
		return LogRecord{}, false
	}
	tid, err := strconv.Atoi(m[3])
	if err != nil {
		return LogRecord{}, false
	}

	message := strings.TrimSpace(m[6])
	rec := LogRecord{
		Timestamp:    ts,
		PID:          pid,
		TID:          tid,
		Level:        level,
		Tag:          strings.TrimSpace(m[5]),
		Message:      message,
		IsDisconnect: disconnectPattern.MatchString(message),
	}

	if bm := batteryPattern.FindStringSubmatch(message); bm != nil {
		if v, err := strconv.ParseFloat(bm[1], 64); err == nil {
			rec.BatteryVoltage = &v
		}
	}
	if lm := loopTimePattern.FindStringSubmatch(message); lm != nil {
		if v, err := strconv.ParseFloat(lm[1], 64); err == nil {
			rec.LoopTimeMS = &v
		}
	}
	return rec, true
}

// parseTimestamp prefixes the assumed year onto the captured MM-DD HH:MM:SS.mmm
// string and parses it in local time.
func parseTimestamp(captured string, year int) (time.Time, error) {
	normalized := strings.Join(strings.Fields(captured), " ")
	full := strconv.Itoa(year) + "-" + normalized
	return time.ParseInLocation(timestampLayout, full, time.Local)
}

// BatteryReadings returns the subsequence of records carrying a voltage, in
// timestamp order.
func BatteryReadings(records []LogRecord) []LogRecord {
	var out []LogRecord
	for _, r := range records {
		if r.BatteryVoltage != nil {
			out = append(out, r)
		}
	}
	return out
}

// LoopTimeReadings returns the subsequence of records carrying a loop time.
func LoopTimeReadings(records []LogRecord) []LogRecord {
	var out []LogRecord
	for _, r := range records {
		if r.LoopTimeMS != nil {
			out = append(out, r)
		}
	}
	return out
}

// DisconnectEvents returns the subsequence of records flagged as disconnects.
func DisconnectEvents(records []LogRecord) []LogRecord {
	var out []LogRecord
	for _, r := range records {
		if r.IsDisconnect {
			out = append(out, r)
		}
	}
	return out
}
