package ui

import (
	"strconv"
	"strings"

	"github.com/velotools/gearrange-cli/internal/apperr"
)

// ParseCogs parses a comma- or space-separated list of tooth counts,
// e.g. "11,13,15" or "11 13 15". Range validation is left to the
// drivetrain constructors.
func ParseCogs(s string) ([]int, error) {
	fields := splitList(s)
	if len(fields) == 0 {
		return nil, apperr.Invalid("expected a list of tooth counts, e.g. 11,13,15")
	}

	cogs := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, apperr.Invalidf("invalid tooth count %q", f)
		}
		cogs = append(cogs, v)
	}
	return cogs, nil
}

// ParseCadence parses a cadence argument: a single rpm value ("90") or a
// lower,upper pair ("85,95").
func ParseCadence(s string) ([]int, error) {
	fields := splitList(s)
	if len(fields) == 0 || len(fields) > 2 {
		return nil, apperr.Invalidf("cadence needs one rpm value or a lower,upper pair, got %q", s)
	}

	rpm := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, apperr.Invalidf("invalid cadence %q", f)
		}
		rpm = append(rpm, v)
	}
	return rpm, nil
}

// ParseMillimeters parses a positive millimeter value from form input.
func ParseMillimeters(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, apperr.Invalidf("invalid length %q, expected millimeters", s)
	}
	return v, nil
}

func splitList(s string) []string {
	var fields []string
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
