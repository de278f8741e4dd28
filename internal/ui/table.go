package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/velotools/gearrange-cli/internal/drivetrain"
)

// SpeedTableUI renders speed tables for the calc command.
type SpeedTableUI struct {
	writer io.Writer
	quiet  bool
}

// NewSpeedTableUI creates a new table renderer. When quiet is true nothing
// is printed.
func NewSpeedTableUI(w io.Writer, quiet bool) *SpeedTableUI {
	return &SpeedTableUI{writer: w, quiet: quiet}
}

// PrintTable renders the speed table with one row per gear combination.
// The rpm/speed columns follow the cadence input: one column pair for a
// single cadence, three for a range.
func (u *SpeedTableUI) PrintTable(title string, rows []drivetrain.SpeedEntry) {
	if u.quiet || len(rows) == 0 {
		return
	}

	var out strings.Builder

	if title != "" {
		out.WriteString(SectionHeader.Render(title))
		out.WriteString("\n")
	}
	out.WriteString(Dim.Render(fmt.Sprintf("Effective wheel diameter: %.0f mm", rows[0].TyreDiameterMM)))
	out.WriteString("\n\n")

	labels := presentBands(rows[0])

	head := fmt.Sprintf("%-8s %7s %11s", "Gear", "Ratio", "Unfold [m]")
	for _, label := range labels {
		head += fmt.Sprintf(" %15s", fmt.Sprintf("km/h @%s", label))
	}
	out.WriteString(Bold.Render(head))
	out.WriteString("\n")
	out.WriteString(Muted.Render(strings.Repeat("─", len(head))))
	out.WriteString("\n")

	for _, row := range rows {
		line := fmt.Sprintf("%-8s %7.3f %11.3f",
			fmt.Sprintf("%d×%d", row.ChainCog, row.CassetteCog),
			row.Ratio,
			row.UnfoldingM,
		)
		for _, label := range labels {
			band, _ := row.BandAt(label)
			line += fmt.Sprintf(" %15s", fmt.Sprintf("%.2f @%.0frpm", band.SpeedKMH, band.RPM))
		}
		out.WriteString(line)
		out.WriteString("\n")
	}

	fmt.Fprint(u.writer, out.String())
}

// PrintSummary prints a one-line recap after a table or export.
func (u *SpeedTableUI) PrintSummary(gears int, target string) {
	if u.quiet {
		return
	}
	fmt.Fprintf(u.writer, "\n%s %s %s\n",
		GetCheckMark(),
		Highlight.Render(fmt.Sprintf("%d gear(s)", gears)),
		Dim.Render("→ "+target),
	)
}

func presentBands(row drivetrain.SpeedEntry) []drivetrain.BandLabel {
	all := []drivetrain.BandLabel{drivetrain.BandLower, drivetrain.BandMiddle, drivetrain.BandUpper}
	var labels []drivetrain.BandLabel
	for _, l := range all {
		if _, ok := row.BandAt(l); ok {
			labels = append(labels, l)
		}
	}
	return labels
}
