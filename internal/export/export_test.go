package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"github.com/velotools/gearrange-cli/internal/drivetrain"
)

func speedTable(t *testing.T, cadence ...int) []drivetrain.SpeedEntry {
	t.Helper()
	d, err := drivetrain.FromNumbers([]int{40}, []int{11, 13}, 700, 20)
	if err != nil {
		t.Fatalf("FromNumbers: %v", err)
	}
	c, err := drivetrain.NewCadence(cadence...)
	if err != nil {
		t.Fatalf("NewCadence(%v): %v", cadence, err)
	}
	return d.Speed(c)
}

func parseCSV(t *testing.T, data string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return records
}

func TestWriteCSV_EmptySession_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records := parseCSV(t, buf.String())
	if len(records) != 1 {
		t.Fatalf("expected header-only document, got %d records", len(records))
	}
	if records[0][0] != "configuration" || records[0][len(records[0])-1] != "tyre_diameter" {
		t.Fatalf("unexpected header: %v", records[0])
	}
}

func TestWriteCSV_RangeCadence(t *testing.T) {
	var buf bytes.Buffer
	tables := []Table{{Configuration: "Commuter", Rows: speedTable(t, 85, 95)}}
	if err := WriteCSV(&buf, tables); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records := parseCSV(t, buf.String())
	if len(records) != 3 { // header + 2 gears
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	head := records[0]
	col := func(name string) int {
		for i, h := range head {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %q missing from header %v", name, head)
		return -1
	}

	row := records[1]
	if row[col("configuration")] != "Commuter" {
		t.Fatalf("configuration cell = %q", row[col("configuration")])
	}
	if row[col("chain_cog")] != "40" || row[col("cassette_cog")] != "11" {
		t.Fatalf("unexpected cog cells: %v", row)
	}
	if rpm := row[col("rpm_middle")]; rpm != "90" {
		t.Fatalf("rpm_middle = %q, want 90", rpm)
	}

	speed, err := strconv.ParseFloat(row[col("speed_middle")], 64)
	if err != nil {
		t.Fatalf("speed_middle not numeric: %v", err)
	}
	if speed < 45 || speed > 46 {
		t.Fatalf("speed_middle = %g, want ≈45.66", speed)
	}
}

func TestWriteCSV_SingleCadence_LeavesOuterBandsEmpty(t *testing.T) {
	var buf bytes.Buffer
	tables := []Table{{Configuration: "one", Rows: speedTable(t, 90)}}
	if err := WriteCSV(&buf, tables); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records := parseCSV(t, buf.String())
	row := records[1]
	head := records[0]
	cells := map[string]string{}
	for i, h := range head {
		cells[h] = row[i]
	}

	if cells["rpm_lower"] != "" || cells["speed_upper"] != "" {
		t.Fatalf("single-cadence export filled outer bands: %v", cells)
	}
	if cells["rpm_middle"] == "" || cells["speed_middle"] == "" {
		t.Fatalf("single-cadence export missing middle band: %v", cells)
	}
}

func TestWriteCSV_MultipleConfigurations(t *testing.T) {
	var buf bytes.Buffer
	tables := []Table{
		{Configuration: "a", Rows: speedTable(t, 90)},
		{Configuration: "b", Rows: speedTable(t, 85, 95)},
	}
	if err := WriteCSV(&buf, tables); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records := parseCSV(t, buf.String())
	if len(records) != 5 { // header + 2 + 2
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	if records[1][0] != "a" || records[3][0] != "b" {
		t.Fatalf("configuration ordering lost: %v / %v", records[1][0], records[3][0])
	}
}
