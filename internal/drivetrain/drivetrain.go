// Package drivetrain computes bicycle gear ratios, unfolding distance and
// speed-per-cadence for all combinations of chainring and cassette cogs.
//
// All types are immutable after construction and the computations are pure
// arithmetic, so a Drivetrain can be shared freely once built.
package drivetrain

import "sync"

// Drivetrain composes a chainring, a cassette and a wheel into one
// queryable unit. The ratio and unfolding tables are computed lazily on
// first access and cached for the lifetime of the instance; since the
// inputs never change after construction, the caches never go stale.
type Drivetrain struct {
	chainring CogSet
	cassette  CogSet
	wheel     Wheel

	ratioOnce sync.Once
	ratio     []RatioEntry

	unfoldOnce sync.Once
	unfolding  []UnfoldingEntry
}

// New builds a Drivetrain from already-validated parts.
func New(chainring, cassette CogSet, wheel Wheel) *Drivetrain {
	return &Drivetrain{chainring: chainring, cassette: cassette, wheel: wheel}
}

// FromNumbers builds a Drivetrain from raw configuration values, sorting
// and validating the cog lists and wheel geometry along the way. This is
// the convenience entry point for callers that hold plain numbers rather
// than typed parts.
func FromNumbers(chainringCogs, cassetteCogs []int, wheelDiameterMM, tyreOffsetMM float64) (*Drivetrain, error) {
	chainring, err := NewCogSet(chainringCogs)
	if err != nil {
		return nil, err
	}
	cassette, err := NewCogSet(cassetteCogs)
	if err != nil {
		return nil, err
	}
	wheel, err := NewWheel(wheelDiameterMM, tyreOffsetMM)
	if err != nil {
		return nil, err
	}
	return New(chainring, cassette, wheel), nil
}

// Chainring returns the front cog set.
func (d *Drivetrain) Chainring() CogSet { return d.chainring }

// Cassette returns the rear cog set.
func (d *Drivetrain) Cassette() CogSet { return d.cassette }

// Wheel returns the wheel geometry.
func (d *Drivetrain) Wheel() Wheel { return d.wheel }

func (d *Drivetrain) ratioTable() []RatioEntry {
	d.ratioOnce.Do(func() {
		d.ratio = Combine(d.chainring, d.cassette)
	})
	return d.ratio
}

func (d *Drivetrain) unfoldingTable() []UnfoldingEntry {
	d.unfoldOnce.Do(func() {
		d.unfolding = Unfold(d.ratioTable(), d.wheel)
	})
	return d.unfolding
}

// Ratio returns the gear ratio table for all chainring/cassette
// combinations. Computed on first call, cached afterwards; the caller
// gets a copy and may modify it freely.
func (d *Drivetrain) Ratio() []RatioEntry {
	cached := d.ratioTable()
	out := make([]RatioEntry, len(cached))
	copy(out, cached)
	return out
}

// Unfolding returns the unfolding table in meters per crank revolution
// for all combinations. Computed on first call, cached afterwards.
func (d *Drivetrain) Unfolding() []UnfoldingEntry {
	cached := d.unfoldingTable()
	out := make([]UnfoldingEntry, len(cached))
	copy(out, cached)
	return out
}

// Speed returns the speed table for the given cadence. Unlike Ratio and
// Unfolding this is parameterized per call and therefore not cached; it
// reuses the cached unfolding table internally.
func (d *Drivetrain) Speed(cadence Cadence) []SpeedEntry {
	return Speeds(d.unfoldingTable(), cadence, d.wheel)
}
