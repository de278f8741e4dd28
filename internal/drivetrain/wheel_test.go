package drivetrain

import (
	"math"
	"testing"

	"github.com/velotools/gearrange-cli/internal/apperr"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestNewWheel_Geometry(t *testing.T) {
	w, err := NewWheel(700, 20)
	if err != nil {
		t.Fatalf("NewWheel: %v", err)
	}

	if got := w.DiameterMM(); !almostEqual(got, 740) {
		t.Fatalf("DiameterMM() = %g, want 740", got)
	}
	if got, want := w.PerimeterMM(), 740*math.Pi; !almostEqual(got, want) {
		t.Fatalf("PerimeterMM() = %g, want %g", got, want)
	}
	if got := w.NominalMM(); got != 700 {
		t.Fatalf("NominalMM() = %g, want 700", got)
	}
	if got := w.TyreOffsetMM(); got != 20 {
		t.Fatalf("TyreOffsetMM() = %g, want 20", got)
	}
}

func TestNewWheel_ZeroOffset(t *testing.T) {
	w, err := NewWheel(600, 0)
	if err != nil {
		t.Fatalf("NewWheel: %v", err)
	}
	if got := w.DiameterMM(); !almostEqual(got, 600) {
		t.Fatalf("DiameterMM() = %g, want 600", got)
	}
}

func TestNewWheel_RejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name     string
		diameter float64
		offset   float64
	}{
		{"zero diameter", 0, 20},
		{"negative diameter", -700, 20},
		{"negative offset", 700, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWheel(tc.diameter, tc.offset)
			if err == nil {
				t.Fatalf("NewWheel(%g, %g): expected error", tc.diameter, tc.offset)
			}
			if !apperr.IsInvalidInput(err) {
				t.Fatalf("error %v is not InvalidInput", err)
			}
		})
	}
}

// Perimeter must grow with both diameter and tyre offset.
func TestWheel_PerimeterMonotonic(t *testing.T) {
	base, _ := NewWheel(700, 20)
	bigger, _ := NewWheel(710, 20)
	fatter, _ := NewWheel(700, 25)

	if bigger.PerimeterMM() <= base.PerimeterMM() {
		t.Fatalf("perimeter did not grow with diameter: %g <= %g", bigger.PerimeterMM(), base.PerimeterMM())
	}
	if fatter.PerimeterMM() <= base.PerimeterMM() {
		t.Fatalf("perimeter did not grow with tyre offset: %g <= %g", fatter.PerimeterMM(), base.PerimeterMM())
	}
}
