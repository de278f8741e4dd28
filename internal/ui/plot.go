package ui

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/velotools/gearrange-cli/internal/drivetrain"
)

// Plot trace styles, alternated per gear row like the reference plot.
var plotStyles = [2]lipgloss.Style{
	lipgloss.NewStyle().Foreground(ColorPrimary),
	lipgloss.NewStyle().Foreground(ColorHighlight),
}

// RenderRangePlot draws one horizontal bar per gear combination, spanning
// the speed band from the lower to the upper cadence with a marker at the
// middle. Rows keep the table order: chainring-major, cassette-minor.
//
// width is the character width of the bar area; values below 20 fall back
// to 60.
func RenderRangePlot(rows []drivetrain.SpeedEntry, width int) string {
	if len(rows) == 0 {
		return Dim.Render("nothing to plot")
	}
	if width < 20 {
		width = 60
	}

	minSpeed, maxSpeed := speedExtent(rows)
	span := maxSpeed - minSpeed
	if span <= 0 {
		span = 1
	}
	pos := func(v float64) int {
		p := int(math.Round((v - minSpeed) / span * float64(width-1)))
		if p < 0 {
			p = 0
		}
		if p > width-1 {
			p = width - 1
		}
		return p
	}

	var out strings.Builder
	for i, row := range rows {
		style := plotStyles[i%2]

		middle, _ := row.BandAt(drivetrain.BandMiddle)
		lower, hasLower := row.BandAt(drivetrain.BandLower)
		upper, hasUpper := row.BandAt(drivetrain.BandUpper)

		bar := make([]rune, width)
		for j := range bar {
			bar[j] = ' '
		}

		if hasLower && hasUpper {
			start, end := pos(lower.SpeedKMH), pos(upper.SpeedKMH)
			for j := start; j <= end; j++ {
				bar[j] = '─'
			}
			bar[start] = '├'
			bar[end] = '┤'
			bar[pos(middle.SpeedKMH)] = '┼'
		} else {
			bar[pos(middle.SpeedKMH)] = '●'
		}

		label := fmt.Sprintf("%3d×%-3d", row.ChainCog, row.CassetteCog)
		detail := fmt.Sprintf("%.1f km/h", middle.SpeedKMH)
		if hasLower && hasUpper {
			detail = fmt.Sprintf("%.1f‒%.1f km/h", lower.SpeedKMH, upper.SpeedKMH)
		}

		out.WriteString(Dim.Render(label))
		out.WriteString(" ")
		out.WriteString(style.Render(string(bar)))
		out.WriteString(" ")
		out.WriteString(Dim.Render(detail))
		out.WriteString("\n")
	}

	// Speed axis underneath the bars.
	axisLabelLeft := fmt.Sprintf("%.0f", minSpeed)
	axisLabelRight := fmt.Sprintf("%.0f km/h", maxSpeed)
	gap := width - len(axisLabelLeft) - len(axisLabelRight)
	if gap < 1 {
		gap = 1
	}
	out.WriteString(strings.Repeat(" ", 8))
	out.WriteString(Muted.Render(axisLabelLeft + strings.Repeat(" ", gap) + axisLabelRight))
	out.WriteString("\n")

	return out.String()
}

// RenderConfigDetail renders the header and range plot for one named
// configuration, mirroring the per-configuration section of the frontend.
func RenderConfigDetail(name string, d *drivetrain.Drivetrain, cadence drivetrain.Cadence, width int) string {
	var out strings.Builder

	out.WriteString(SectionHeader.Render("Gear Range for " + name))
	out.WriteString("\n")

	meta := fmt.Sprintf("RPM Range [%.0f, %.0f] | Wheel Diameter: %.0f mm | Chainring: [%s] | Cassette: [%s]",
		cadence.Lower(), cadence.Upper(),
		d.Wheel().DiameterMM(),
		d.Chainring().String(),
		d.Cassette().String(),
	)
	out.WriteString(Dim.Render(meta))
	out.WriteString("\n\n")

	out.WriteString(RenderRangePlot(d.Speed(cadence), width))
	return out.String()
}

func speedExtent(rows []drivetrain.SpeedEntry) (minSpeed, maxSpeed float64) {
	minSpeed = math.Inf(1)
	maxSpeed = math.Inf(-1)
	for _, row := range rows {
		for _, b := range row.Bands {
			minSpeed = math.Min(minSpeed, b.SpeedKMH)
			maxSpeed = math.Max(maxSpeed, b.SpeedKMH)
		}
	}
	return minSpeed, maxSpeed
}
