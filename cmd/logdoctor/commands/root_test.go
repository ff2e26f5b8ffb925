package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftcdoctor/logdoctor/internal/report"
	"github.com/ftcdoctor/logdoctor/internal/runtime"
)

const sampleLog = "01-16 10:00:00.000  1234  5678 I RobotCore: Battery voltage: 13.20V\n" +
	"01-16 10:00:30.000  1234  5678 I RobotCore: Battery voltage: 13.10V\n" +
	"01-16 10:01:00.000  1234  5678 I RobotCore: Battery voltage: 13.00V\n"

// executeCommand executes the root command and returns combined output.
// executeCommand 执行根命令并返回输出。
func executeCommand(args ...string) (string, error) {
	analyzeJSON, analyzeCSV, analyzeName = false, false, ""
	analyzeRecordsJSON = false
	tournamentJSON = false
	runtime.ConfigPath = ""

	buf := new(bytes.Buffer)
	RootCmd.SetOut(buf)
	RootCmd.SetErr(buf)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return buf.String(), err
}

func writeTempLog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommandHelp(t *testing.T) {
	output, err := executeCommand("--help")
	assert.NoError(t, err)
	assert.Contains(t, output, "logdoctor")
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "analyze")
	assert.Contains(t, output, "tournament")
	assert.Contains(t, output, "serve")
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand("version")
	assert.NoError(t, err)
	assert.Contains(t, output, "logdoctor")
}

func TestAnalyzeSummaryOutput(t *testing.T) {
	path := writeTempLog(t, "match1.txt", sampleLog)

	output, err := executeCommand("analyze", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Diagnostic Report")
	assert.Contains(t, output, "Robot Health Score: 100/100")
}

func TestAnalyzeJSONOutput(t *testing.T) {
	path := writeTempLog(t, "match1.txt", sampleLog)

	output, err := executeCommand("analyze", "--json", path)
	require.NoError(t, err)

	var analysis report.Analysis
	require.NoError(t, json.Unmarshal([]byte(output), &analysis))
	assert.Equal(t, "match1.txt", analysis.Name)
	assert.Equal(t, 3, analysis.RecordCount)
	require.NotNil(t, analysis.Result)
	assert.Equal(t, 100, analysis.Result.HealthScore)
}

func TestAnalyzeCSVOutput(t *testing.T) {
	path := writeTempLog(t, "match1.txt", sampleLog)

	output, err := executeCommand("analyze", "--csv", path)
	require.NoError(t, err)
	assert.Contains(t, output, "entry_id,timestamp")
	assert.Contains(t, output, "Battery voltage: 13.20V")
}

func TestAnalyzeRecordsJSONOutput(t *testing.T) {
	path := writeTempLog(t, "match1.txt", sampleLog)

	output, err := executeCommand("analyze", "--records-json", path)
	require.NoError(t, err)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &records))
	require.Len(t, records, 3)
	assert.Equal(t, float64(1), records[0]["entry_id"])
	assert.Equal(t, 13.2, records[0]["battery_voltage"])
}

func TestAnalyzeRejectsNonLogcat(t *testing.T) {
	path := writeTempLog(t, "notes.txt", "match strategy notes\nnothing useful\n")

	_, err := executeCommand("analyze", path)
	assert.Error(t, err)
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := executeCommand("analyze", filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestAnalyzeHonorsConfigOverrides(t *testing.T) {
	// A config file tightening the mean-loop threshold must flow through the
	// config manager into the verdict.
	loopLog := "01-16 10:00:00.000  1234  5678 D OpMode: loop took 10ms\n" +
		"01-16 10:00:00.050  1234  5678 D OpMode: loop took 10ms\n" +
		"01-16 10:00:00.100  1234  5678 D OpMode: loop took 10ms\n"
	logPath := writeTempLog(t, "loops.txt", loopLog)
	cfgPath := writeTempLog(t, "config.yaml", "analysis:\n  mean_loop_warn_ms: 5\n")

	output, err := executeCommand("analyze", "--config", cfgPath, logPath)
	require.NoError(t, err)
	assert.Contains(t, output, "Robot Health Score: 95/100")

	// Same log under the defaults stays clean.
	output, err = executeCommand("analyze", logPath)
	require.NoError(t, err)
	assert.Contains(t, output, "Robot Health Score: 100/100")
}

func TestTournamentCommand(t *testing.T) {
	first := writeTempLog(t, "quals1.txt", sampleLog)
	second := writeTempLog(t, "quals2.txt", sampleLog)

	output, err := executeCommand("tournament", first, second)
	require.NoError(t, err)
	assert.Contains(t, output, "Tournament Analysis")
	assert.Contains(t, output, "Matches analyzed:** 2")
	assert.Contains(t, output, "quals1.txt")
}
