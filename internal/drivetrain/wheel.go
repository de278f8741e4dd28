package drivetrain

import (
	"math"

	"github.com/velotools/gearrange-cli/internal/apperr"
)

// DefaultTyreOffset is the tyre offset in millimeters assumed when the
// caller does not provide one. The tyre makes the actual rolling diameter
// of the wheel bigger than the rim diameter; 20 mm is a common road tyre.
const DefaultTyreOffset = 20.0

// Wheel holds wheel geometry. The effective rolling diameter and the
// perimeter are computed once at construction and never change.
type Wheel struct {
	nominal    float64
	tyreOffset float64
	diameter   float64
	perimeter  float64
}

// NewWheel builds a Wheel from a nominal rim diameter and a tyre offset,
// both in millimeters. The diameter must be positive and the offset must
// not be negative.
func NewWheel(diameterMM, tyreOffsetMM float64) (Wheel, error) {
	if diameterMM <= 0 {
		return Wheel{}, apperr.Invalidf("wheel diameter must be positive, got %g mm", diameterMM)
	}
	if tyreOffsetMM < 0 {
		return Wheel{}, apperr.Invalidf("tyre offset must not be negative, got %g mm", tyreOffsetMM)
	}

	effective := diameterMM + 2*tyreOffsetMM
	return Wheel{
		nominal:    diameterMM,
		tyreOffset: tyreOffsetMM,
		diameter:   effective,
		perimeter:  effective * math.Pi,
	}, nil
}

// NominalMM returns the rim diameter as given at construction.
func (w Wheel) NominalMM() float64 { return w.nominal }

// TyreOffsetMM returns the tyre offset as given at construction.
func (w Wheel) TyreOffsetMM() float64 { return w.tyreOffset }

// DiameterMM returns the effective rolling diameter: nominal + 2×offset.
func (w Wheel) DiameterMM() float64 { return w.diameter }

// PerimeterMM returns the rolling perimeter: effective diameter × π.
func (w Wheel) PerimeterMM() float64 { return w.perimeter }
