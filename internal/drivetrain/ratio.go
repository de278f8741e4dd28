package drivetrain

// RatioEntry is one row of the gear ratio table: a single
// chainring/cassette cog pairing and its mechanical ratio.
type RatioEntry struct {
	ChainCog    int
	CassetteCog int
	Ratio       float64
}

// UnfoldingEntry extends a RatioEntry with the unfolding: the distance in
// meters the bike travels per full crank revolution in that gear.
type UnfoldingEntry struct {
	RatioEntry
	UnfoldingM float64
}

// Combine computes the full cross product of chainring and cassette cogs.
// Rows are emitted chainring-major, cassette-minor, both ascending, so the
// output order is deterministic for a given pair of sets.
//
// Every pairing is included. Real-world concerns such as extreme chain
// angle are left to the rider.
func Combine(chainring, cassette CogSet) []RatioEntry {
	entries := make([]RatioEntry, 0, len(chainring.cogs)*len(cassette.cogs))
	for _, chainCog := range chainring.cogs {
		for _, cassetteCog := range cassette.cogs {
			entries = append(entries, RatioEntry{
				ChainCog:    chainCog,
				CassetteCog: cassetteCog,
				Ratio:       float64(chainCog) / float64(cassetteCog),
			})
		}
	}
	return entries
}

// Unfold derives the unfolding table from a ratio table and a wheel.
func Unfold(entries []RatioEntry, wheel Wheel) []UnfoldingEntry {
	out := make([]UnfoldingEntry, len(entries))
	for i, e := range entries {
		out[i] = UnfoldingEntry{
			RatioEntry: e,
			UnfoldingM: e.Ratio * wheel.PerimeterMM() / 1000,
		}
	}
	return out
}
