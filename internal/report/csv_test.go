package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftcdoctor/logdoctor/internal/diagnosis"
	"github.com/ftcdoctor/logdoctor/internal/parser"
)

func sampleRecords() []parser.LogRecord {
	voltage := 12.8
	loop := 15.5
	at := time.Date(2026, 1, 16, 10, 0, 0, 0, time.Local)
	return []parser.LogRecord{
		{
			EntryID: 1, Timestamp: at, PID: 1234, TID: 5678,
			Level: parser.LevelInfo, Tag: "RobotCore",
			Message:        "Battery voltage: 12.8V",
			BatteryVoltage: &voltage,
		},
		{
			EntryID: 2, Timestamp: at.Add(time.Second), PID: 1234, TID: 5678,
			Level: parser.LevelDebug, Tag: "OpMode",
			Message: "loop took 15.5ms", LoopTimeMS: &loop,
		},
		{
			EntryID: 3, Timestamp: at.Add(2 * time.Second), PID: 1234, TID: 5678,
			Level: parser.LevelError, Tag: "Hub",
			Message: "connection lost", IsDisconnect: true,
		},
	}
}

func TestWriteCSVRowPerRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 records

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "12.8", rows[1][7])
	assert.Equal(t, "", rows[1][8])
	assert.Equal(t, "15.5", rows[2][8])
	assert.Equal(t, "", rows[2][7])
	assert.Equal(t, "true", rows[3][9])
}

func TestWriteCSVEmptyStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAnalysisJSONRoundTrip(t *testing.T) {
	records := sampleRecords()
	result := &diagnosis.DiagnosticResult{HealthScore: 85, Warnings: []string{"w"}}

	var buf bytes.Buffer
	require.NoError(t, NewAnalysis("match3.txt", records, result).WriteJSON(&buf))

	var decoded Analysis
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "match3.txt", decoded.Name)
	assert.Equal(t, 3, decoded.RecordCount)
	require.NotNil(t, decoded.Result)
	assert.Equal(t, 85, decoded.Result.HealthScore)
}

func TestWriteRecordsJSONOmitsAbsentExtractions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecordsJSON(&buf, sampleRecords()[2:]))
	assert.NotContains(t, buf.String(), "battery_voltage")
	assert.NotContains(t, buf.String(), "loop_time_ms")
	assert.Contains(t, buf.String(), `"is_disconnect": true`)
}
