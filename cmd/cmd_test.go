package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		feeBreakdown = false
		feeVehicle = "car"
		holidaysOutput = "text"
	}()
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFeeCommand(t *testing.T) {
	out, err := execute(t, "fee", "--vehicle", "car", "2025-03-07T06:15", "2025-03-07T06:30", "2025-03-07T07:14")
	require.NoError(t, err)
	assert.Equal(t, "18\n", out)
}

func TestFeeCommandBreakdown(t *testing.T) {
	out, err := execute(t, "fee", "--breakdown",
		"2025-03-07 06:00", "2025-03-07 07:00", "2025-03-07 08:00", "2025-03-07 09:30", "2025-03-07 11:30",
		"2025-03-07 12:30", "2025-03-07 15:30", "2025-03-07 16:30", "2025-03-07 17:30")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "06:00-07:00  passes=2  fee=18", lines[0])
	assert.Equal(t, "capped from 78 to 60", lines[6])
	assert.Equal(t, "60", lines[7])
}

func TestFeeCommandExemptVehicle(t *testing.T) {
	out, err := execute(t, "fee", "-v", "diplomat", "2025-03-07T07:00")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestFeeCommandErrors(t *testing.T) {
	_, err := execute(t, "fee", "-v", "boat", "2025-03-07T07:00")
	assert.Error(t, err)
	_, err = execute(t, "fee", "2025-03-07T07:00", "2025-03-08T07:00")
	assert.ErrorContains(t, err, "multiple days")
	_, err = execute(t, "fee", "not-a-time")
	assert.Error(t, err)
}

func TestHolidaysCommandYAML(t *testing.T) {
	out, err := execute(t, "holidays", "--year", "2025", "--output", "yaml")
	require.NoError(t, err)
	var l holidayListing
	require.NoError(t, yaml.Unmarshal([]byte(out), &l))
	assert.Equal(t, 2025, l.Year)
	assert.Equal(t, "2025-04-20", l.Easter)
	assert.Len(t, l.Holidays, 15)
	assert.Contains(t, l.DaysBefore, "2025-12-30")
}

func TestHolidaysCommandJSON(t *testing.T) {
	out, err := execute(t, "holidays", "-y", "2028", "-o", "json")
	require.NoError(t, err)
	var l holidayListing
	require.NoError(t, json.Unmarshal([]byte(out), &l))
	assert.Equal(t, "2028-04-16", l.Easter)
	assert.Contains(t, l.Holidays, holidayEntry{Date: "2028-05-25", Name: "Ascension Day"})
}

func TestHolidaysCommandText(t *testing.T) {
	out, err := execute(t, "holidays", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-06-20  Midsummer Eve\n")
	_, err = execute(t, "holidays", "--year", "2025", "--output", "xml")
	assert.Error(t, err)
	_, err = execute(t, "holidays", "--year", "10000")
	assert.ErrorContains(t, err, "between 1583 and 9999")
	_, err = execute(t, "holidays", "--year", "1582")
	assert.Error(t, err)
}

func TestScheduleCommand(t *testing.T) {
	out, err := execute(t, "schedule")
	require.NoError(t, err)
	assert.Contains(t, out, "06:00-06:29  8\n")
	assert.Contains(t, out, "07:00-07:59  18\n")
	assert.Contains(t, out, "18:30-23:59  0\n")
}
