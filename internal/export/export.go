// Package export serializes speed tables to delimited text. It is the
// download/export collaborator of the calculator: presentation code hands
// it named tables, it writes CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/velotools/gearrange-cli/internal/drivetrain"
)

// Table is one named configuration's speed table.
type Table struct {
	Configuration string
	Rows          []drivetrain.SpeedEntry
}

// header lists the CSV columns. The rpm/speed columns always cover all
// three bands; a single-cadence table leaves the lower/upper cells empty.
var header = []string{
	"configuration",
	"chain_cog",
	"cassette_cog",
	"ratio",
	"unfolding_m",
	"rpm_lower",
	"rpm_middle",
	"rpm_upper",
	"speed_lower",
	"speed_middle",
	"speed_upper",
	"tyre_diameter",
}

// WriteCSV writes all tables as one CSV document. An empty table list
// produces a header-only document rather than an error, matching the
// download behavior when no drivetrain is configured yet.
func WriteCSV(w io.Writer, tables []Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, table := range tables {
		for _, row := range table.Rows {
			if err := cw.Write(record(table.Configuration, row)); err != nil {
				return fmt.Errorf("write csv row for %q: %w", table.Configuration, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the tables to a CSV file, creating or truncating it.
func WriteFile(path string, tables []Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, tables); err != nil {
		return err
	}
	return f.Close()
}

func record(configuration string, row drivetrain.SpeedEntry) []string {
	bandCells := func(label drivetrain.BandLabel) (rpm, speed string) {
		b, ok := row.BandAt(label)
		if !ok {
			return "", ""
		}
		return formatFloat(b.RPM), formatFloat(b.SpeedKMH)
	}

	rpmLower, speedLower := bandCells(drivetrain.BandLower)
	rpmMiddle, speedMiddle := bandCells(drivetrain.BandMiddle)
	rpmUpper, speedUpper := bandCells(drivetrain.BandUpper)

	return []string{
		configuration,
		strconv.Itoa(row.ChainCog),
		strconv.Itoa(row.CassetteCog),
		formatFloat(row.Ratio),
		formatFloat(row.UnfoldingM),
		rpmLower,
		rpmMiddle,
		rpmUpper,
		speedLower,
		speedMiddle,
		speedUpper,
		formatFloat(row.TyreDiameterMM),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
