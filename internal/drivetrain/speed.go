package drivetrain

import (
	"sort"

	"github.com/velotools/gearrange-cli/internal/apperr"
)

// BandLabel identifies a cadence point within a speed band.
type BandLabel string

const (
	BandLower  BandLabel = "lower"
	BandMiddle BandLabel = "middle"
	BandUpper  BandLabel = "upper"
)

// Band is one evaluated cadence point: the pedaling rate and the
// resulting speed for a particular gear.
type Band struct {
	Label    BandLabel
	RPM      float64
	SpeedKMH float64
}

// Cadence is a normalized cadence input: either a single rpm value or a
// lower/upper range. A range is expanded to three evaluation points, the
// middle being the arithmetic mean of the bounds.
type Cadence struct {
	points []Band
}

// NewCadence builds a Cadence from one or two rpm values.
// Two values are sorted ascending before the middle point is derived.
func NewCadence(rpm ...int) (Cadence, error) {
	for _, r := range rpm {
		if r <= 0 {
			return Cadence{}, apperr.Invalidf("cadence must be positive, got %d rpm", r)
		}
	}

	switch len(rpm) {
	case 1:
		return Cadence{points: []Band{
			{Label: BandMiddle, RPM: float64(rpm[0])},
		}}, nil
	case 2:
		vals := []int{rpm[0], rpm[1]}
		sort.Ints(vals)
		lower, upper := float64(vals[0]), float64(vals[1])
		middle := lower + (upper-lower)/2
		return Cadence{points: []Band{
			{Label: BandLower, RPM: lower},
			{Label: BandMiddle, RPM: middle},
			{Label: BandUpper, RPM: upper},
		}}, nil
	default:
		return Cadence{}, apperr.Invalidf("cadence needs one rpm value or a lower/upper pair, got %d values", len(rpm))
	}
}

// Points returns the cadence evaluation points in lower→upper order.
// Speeds are not filled in; see Speeds.
func (c Cadence) Points() []Band {
	out := make([]Band, len(c.points))
	copy(out, c.points)
	return out
}

// IsRange reports whether the cadence was given as a lower/upper pair.
func (c Cadence) IsRange() bool { return len(c.points) == 3 }

// Lower returns the lowest evaluated rpm.
func (c Cadence) Lower() float64 { return c.points[0].RPM }

// Upper returns the highest evaluated rpm.
func (c Cadence) Upper() float64 { return c.points[len(c.points)-1].RPM }

// SpeedEntry extends an UnfoldingEntry with the speeds reached at each
// cadence point, plus the effective tyre diameter the speeds were
// computed for (broadcast to every row for downstream display).
type SpeedEntry struct {
	UnfoldingEntry
	Bands          []Band
	TyreDiameterMM float64
}

// BandAt returns the band with the given label, if present.
// A single-cadence table only carries the middle band.
func (e SpeedEntry) BandAt(label BandLabel) (Band, bool) {
	for _, b := range e.Bands {
		if b.Label == label {
			return b, true
		}
	}
	return Band{}, false
}

// Speeds evaluates every cadence point against every unfolding row.
//
// meters/rev × rev/min gives meters per minute; ×60 per hour, /1000 for
// kilometers, collapsed into the single factor /60×3.6.
func Speeds(entries []UnfoldingEntry, cadence Cadence, wheel Wheel) []SpeedEntry {
	points := cadence.Points()
	out := make([]SpeedEntry, len(entries))
	for i, e := range entries {
		bands := make([]Band, len(points))
		for j, p := range points {
			bands[j] = Band{
				Label:    p.Label,
				RPM:      p.RPM,
				SpeedKMH: e.UnfoldingM * p.RPM / 60 * 3.6,
			}
		}
		out[i] = SpeedEntry{
			UnfoldingEntry: e,
			Bands:          bands,
			TyreDiameterMM: wheel.DiameterMM(),
		}
	}
	return out
}
