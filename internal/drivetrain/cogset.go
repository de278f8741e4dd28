package drivetrain

import (
	"sort"
	"strconv"
	"strings"

	"github.com/velotools/gearrange-cli/internal/apperr"
)

// CogSet is a validated, immutable set of cog tooth counts, stored in
// ascending order. The same type backs both chainrings and cassettes.
//
// Duplicate values are removed at construction: a tooth count appearing
// twice adds nothing to a gear cross product and would silently inflate
// the result tables.
type CogSet struct {
	cogs []int
}

// NewCogSet builds a CogSet from raw tooth counts.
// The input must be non-empty and every value must be positive.
func NewCogSet(values []int) (CogSet, error) {
	if len(values) == 0 {
		return CogSet{}, apperr.Invalid("cog set must contain at least one cog")
	}

	seen := make(map[int]bool, len(values))
	cogs := make([]int, 0, len(values))
	for _, v := range values {
		if v <= 0 {
			return CogSet{}, apperr.Invalidf("cog tooth count must be positive, got %d", v)
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		cogs = append(cogs, v)
	}
	sort.Ints(cogs)

	return CogSet{cogs: cogs}, nil
}

// Cogs returns the tooth counts in ascending order.
// The returned slice is a copy; the set itself never changes.
func (s CogSet) Cogs() []int {
	out := make([]int, len(s.cogs))
	copy(out, s.cogs)
	return out
}

// Len returns the number of distinct cogs in the set.
func (s CogSet) Len() int { return len(s.cogs) }

// String renders the set as a comma-separated list, e.g. "11, 13, 15".
func (s CogSet) String() string {
	parts := make([]string, len(s.cogs))
	for i, c := range s.cogs {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ", ")
}
