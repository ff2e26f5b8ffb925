package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ftcdoctor/logdoctor/internal/parser"
)

var csvHeader = []string{
	"entry_id", "timestamp", "pid", "tid", "level", "tag", "message",
	"battery_voltage", "loop_time_ms", "is_disconnect",
}

// WriteCSV streams the parsed record set as CSV, one row per record plus a
// header row. Absent extractions render as empty cells.
func WriteCSV(w io.Writer, records []parser.LogRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.EntryID),
			r.Timestamp.Format("2006-01-02 15:04:05.000"),
			strconv.Itoa(r.PID),
			strconv.Itoa(r.TID),
			string(r.Level),
			r.Tag,
			r.Message,
			formatOptional(r.BatteryVoltage),
			formatOptional(r.LoopTimeMS),
			strconv.FormatBool(r.IsDisconnect),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
