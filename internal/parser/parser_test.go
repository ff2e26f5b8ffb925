package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/ftcdoctor/logdoctor/pkg/errors"
)

var refTime = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.Local)

func TestParseValidLogcatLine(t *testing.T) {
	line := "01-16 10:30:45.123  1234  5678 I RobotCore: Battery voltage: 13.2V"

	records, err := ParseAt(line, refTime)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 1, rec.EntryID)
	assert.Equal(t, 1234, rec.PID)
	assert.Equal(t, 5678, rec.TID)
	assert.Equal(t, LevelInfo, rec.Level)
	assert.Equal(t, "RobotCore", rec.Tag)
	assert.Contains(t, rec.Message, "Battery voltage")

	require.NotNil(t, rec.BatteryVoltage)
	assert.Equal(t, 13.2, *rec.BatteryVoltage)
	assert.Nil(t, rec.LoopTimeMS)
	assert.False(t, rec.IsDisconnect)

	// Year comes from the reference time; month/day/time from the line.
	want := time.Date(2026, time.January, 16, 10, 30, 45, 123_000_000, time.Local)
	assert.True(t, rec.Timestamp.Equal(want))
}

func TestParseLoopTime(t *testing.T) {
	records, err := ParseAt("01-16 10:30:45.123  1234  5678 D OpMode: Loop time: 25.5 ms", refTime)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].LoopTimeMS)
	assert.Equal(t, 25.5, *records[0].LoopTimeMS)
	assert.Equal(t, LevelDebug, records[0].Level)
}

func TestParseDisconnectEvent(t *testing.T) {
	for _, msg := range []string{
		"Connection lost to motor controller",
		"Device disconnect detected",
		"device not found on bus",
	} {
		records, err := ParseAt("01-16 10:30:45.123  1234  5678 E Device: "+msg, refTime)
		require.NoError(t, err, msg)
		assert.True(t, records[0].IsDisconnect, msg)
	}
}

func TestParseIndependentExtractions(t *testing.T) {
	// One message may contribute a battery reading, a loop time and a
	// disconnect flag at the same time.
	line := "01-16 10:30:45.123  1234  5678 W Robot: disconnect after battery 11.9V, loop 45ms"
	records, err := ParseAt(line, refTime)
	require.NoError(t, err)

	rec := records[0]
	require.NotNil(t, rec.BatteryVoltage)
	require.NotNil(t, rec.LoopTimeMS)
	assert.Equal(t, 11.9, *rec.BatteryVoltage)
	assert.Equal(t, 45.0, *rec.LoopTimeMS)
	assert.True(t, rec.IsDisconnect)
}

func TestNumbersRequireUnitSuffix(t *testing.T) {
	// Numbers without a trailing unit must not be picked up.
	records, err := ParseAt("01-16 10:30:45.123  1234  5678 I Robot: battery check 3 of 12 done", refTime)
	require.NoError(t, err)
	assert.Nil(t, records[0].BatteryVoltage)

	records, err = ParseAt("01-16 10:30:45.123  1234  5678 I Robot: loop count 500 reached", refTime)
	require.NoError(t, err)
	assert.Nil(t, records[0].LoopTimeMS)

	// Lower- and upper-case unit suffixes both anchor.
	records, err = ParseAt("01-16 10:30:45.123  1234  5678 I Robot: Battery at 12.5v", refTime)
	require.NoError(t, err)
	require.NotNil(t, records[0].BatteryVoltage)
	assert.Equal(t, 12.5, *records[0].BatteryVoltage)
}

func TestParseMultipleLinesWithNoise(t *testing.T) {
	content := "01-16 10:30:45.123  1234  5678 I RobotCore: Battery voltage: 13.2V\n" +
		"some foreign line interleaved by another tool\n" +
		"01-16 10:30:45.150  1234  5678 D OpMode: Loop time: 25.5 ms\n" +
		"01-16 10:30:45.200  1234  5678 E Device: Connection lost\n"

	records, err := ParseAt(content, refTime)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	assert.NotNil(t, records[0].BatteryVoltage)
	assert.NotNil(t, records[1].LoopTimeMS)
	assert.True(t, records[2].IsDisconnect)
}

func TestParseSortsAndAssignsDenseEntryIDs(t *testing.T) {
	// Lines out of chronological order in the input.
	content := "01-16 10:30:47.000  1234  5678 I A: third\n" +
		"01-16 10:30:45.000  1234  5678 I A: first\n" +
		"01-16 10:30:46.000  1234  5678 I A: second\n"

	records, err := ParseAt(content, refTime)
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i, wantMsg := range []string{"first", "second", "third"} {
		assert.Equal(t, i+1, records[i].EntryID)
		assert.Equal(t, wantMsg, records[i].Message)
	}
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].Timestamp.Before(records[i-1].Timestamp))
	}
}

func TestParseStableSortOnEqualTimestamps(t *testing.T) {
	content := "01-16 10:30:45.000  1234  5678 I A: one\n" +
		"01-16 10:30:45.000  1234  5678 I A: two\n" +
		"01-16 10:30:45.000  1234  5678 I A: three\n"

	records, err := ParseAt(content, refTime)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "one", records[0].Message)
	assert.Equal(t, "two", records[1].Message)
	assert.Equal(t, "three", records[2].Message)
}

func TestParseIdempotent(t *testing.T) {
	content := "01-16 10:30:45.123  1234  5678 I RobotCore: Battery voltage: 13.2V\n" +
		"01-16 10:30:45.150  1234  5678 D OpMode: Loop time: 25.5 ms\n"

	first, err := ParseAt(content, refTime)
	require.NoError(t, err)
	second, err := ParseAt(content, refTime)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseEmptyContent(t *testing.T) {
	_, err := ParseAt("", refTime)
	assert.True(t, errors.Is(err, pkgerrors.ErrNoRecords))
}

func TestParseInvalidFormat(t *testing.T) {
	_, err := ParseAt("This is not a valid logcat format", refTime)
	assert.True(t, errors.Is(err, pkgerrors.ErrNoRecords))
}

func TestParseRejectsImpossibleDate(t *testing.T) {
	// Structurally shaped but month 13 does not exist.
	_, err := ParseAt("13-45 10:30:45.123  1234  5678 I A: message", refTime)
	assert.True(t, errors.Is(err, pkgerrors.ErrNoRecords))
}

func TestSubsequenceHelpers(t *testing.T) {
	content := "01-16 10:30:45.100  1234  5678 I RobotCore: Battery voltage: 13.2V\n" +
		"01-16 10:30:45.200  1234  5678 D OpMode: Loop time: 25.5 ms\n" +
		"01-16 10:30:45.300  1234  5678 E Device: Connection lost\n" +
		"01-16 10:30:45.400  1234  5678 I RobotCore: Battery voltage: 12.1V\n"

	records, err := ParseAt(content, refTime)
	require.NoError(t, err)

	assert.Len(t, BatteryReadings(records), 2)
	assert.Len(t, LoopTimeReadings(records), 1)
	assert.Len(t, DisconnectEvents(records), 1)
}

func TestParseLevelNormalization(t *testing.T) {
	for letter, want := range map[string]Level{
		"V": LevelVerbose, "D": LevelDebug, "I": LevelInfo,
		"W": LevelWarning, "E": LevelError, "F": LevelFatal,
	} {
		got, ok := ParseLevel(letter)
		require.True(t, ok, letter)
		assert.Equal(t, want, got)
	}

	_, ok := ParseLevel("X")
	assert.False(t, ok)
	assert.Equal(t, "Warning", LevelWarning.String())
}
