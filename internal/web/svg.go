package web

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/velotools/gearrange-cli/internal/drivetrain"
)

// Plot geometry. One horizontal bar per gear, slowest gear on top, with a
// shared km/h axis underneath.
const (
	svgWidth    = 700
	svgLeft     = 90
	svgRight    = 30
	svgRowH     = 26
	svgTop      = 12
	svgAxisArea = 40
)

var svgColors = [2]string{"#006699", "#CC6699"}

// RenderSVGPlot draws the speed range of every gear as an inline SVG.
// Ranged cadences become bars from the lower to the upper band with a dot
// at the middle; a single cadence becomes just the dot.
func RenderSVGPlot(rows []drivetrain.SpeedEntry) template.HTML {
	if len(rows) == 0 {
		return ""
	}

	minKMH, maxKMH := speedBounds(rows)
	span := maxKMH - minKMH
	if span <= 0 {
		span = 1
	}
	plotW := float64(svgWidth - svgLeft - svgRight)
	x := func(kmh float64) float64 {
		return float64(svgLeft) + (kmh-minKMH)/span*plotW
	}

	height := svgTop + len(rows)*svgRowH + svgAxisArea
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" role="img">`,
		svgWidth, height, svgWidth, height)
	b.WriteString("\n")

	for i, row := range rows {
		color := svgColors[i%2]
		cy := float64(svgTop + i*svgRowH + svgRowH/2)

		fmt.Fprintf(&b, `<text x="%d" y="%.0f" font-size="13" dominant-baseline="middle">%d&#215;%d</text>`,
			8, cy, row.ChainCog, row.CassetteCog)
		b.WriteString("\n")

		middle, _ := row.BandAt(drivetrain.BandMiddle)
		lower, hasLower := row.BandAt(drivetrain.BandLower)
		upper, hasUpper := row.BandAt(drivetrain.BandUpper)

		if hasLower && hasUpper {
			x1, x2 := x(lower.SpeedKMH), x(upper.SpeedKMH)
			fmt.Fprintf(&b, `<line x1="%.1f" y1="%.0f" x2="%.1f" y2="%.0f" stroke="%s" stroke-width="6" stroke-opacity="0.6"/>`,
				x1, cy, x2, cy, color)
			b.WriteString("\n")
			for _, end := range []float64{x1, x2} {
				fmt.Fprintf(&b, `<line x1="%.1f" y1="%.0f" x2="%.1f" y2="%.0f" stroke="%s" stroke-width="2"/>`,
					end, cy-7, end, cy+7, color)
				b.WriteString("\n")
			}
		}

		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.0f" r="4" fill="%s"><title>%d&#215;%d: %.2f km/h at %.0f rpm</title></circle>`,
			x(middle.SpeedKMH), cy, color, row.ChainCog, row.CassetteCog, middle.SpeedKMH, middle.RPM)
		b.WriteString("\n")
	}

	axisY := float64(svgTop + len(rows)*svgRowH + 10)
	fmt.Fprintf(&b, `<line x1="%d" y1="%.0f" x2="%d" y2="%.0f" stroke="#999"/>`,
		svgLeft, axisY, svgWidth-svgRight, axisY)
	b.WriteString("\n")

	for _, tick := range axisTicks(minKMH, maxKMH) {
		tx := x(tick)
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.0f" x2="%.1f" y2="%.0f" stroke="#999"/>`,
			tx, axisY, tx, axisY+5)
		b.WriteString("\n")
		fmt.Fprintf(&b, `<text x="%.1f" y="%.0f" font-size="11" fill="#666" text-anchor="middle">%.0f</text>`,
			tx, axisY+18, tick)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, `<text x="%d" y="%.0f" font-size="11" fill="#666" text-anchor="end">km/h</text>`,
		svgWidth-svgRight, axisY+32)
	b.WriteString("\n</svg>")

	return template.HTML(b.String())
}

// speedBounds returns the slowest and fastest speed across all bands,
// padded a little so the extreme markers do not touch the plot edge.
func speedBounds(rows []drivetrain.SpeedEntry) (minKMH, maxKMH float64) {
	minKMH, maxKMH = math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		for _, band := range row.Bands {
			minKMH = math.Min(minKMH, band.SpeedKMH)
			maxKMH = math.Max(maxKMH, band.SpeedKMH)
		}
	}
	pad := (maxKMH - minKMH) * 0.04
	if pad < 0.5 {
		pad = 0.5
	}
	return minKMH - pad, maxKMH + pad
}

// axisTicks picks round tick values covering the speed extent.
func axisTicks(minKMH, maxKMH float64) []float64 {
	step := 5.0
	if maxKMH-minKMH < 10 {
		step = 2
	}
	var ticks []float64
	for t := math.Ceil(minKMH/step) * step; t <= maxKMH; t += step {
		ticks = append(ticks, t)
	}
	return ticks
}
