// Package preconfig ships a small catalogue of common cassettes so the
// configuration form can offer sensible presets next to the custom input.
package preconfig

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"go.yaml.in/yaml/v3"
)

// Custom is the catalogue entry that stands for "use the custom cog list
// from the form instead of a preset".
const Custom = "CUSTOM"

//go:embed cassettes.yaml
var cassettesYAML []byte

type catalogue struct {
	Cassettes     map[string][]int `yaml:"cassettes"`
	DefaultCustom []int            `yaml:"default_custom"`
}

var (
	loadOnce sync.Once
	loaded   catalogue
)

func load() catalogue {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(cassettesYAML, &loaded); err != nil {
			// The catalogue is embedded at compile time; failing to parse
			// it is a build defect, not a runtime condition.
			panic(fmt.Sprintf("preconfig: invalid embedded catalogue: %v", err))
		}
		for _, cogs := range loaded.Cassettes {
			sort.Ints(cogs)
		}
		sort.Ints(loaded.DefaultCustom)
	})
	return loaded
}

// Names returns the preset names sorted alphabetically, with Custom first.
func Names() []string {
	c := load()
	names := make([]string, 0, len(c.Cassettes)+1)
	for name := range c.Cassettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{Custom}, names...)
}

// Lookup returns the cog list for a preset name. Custom and unknown names
// report false.
func Lookup(name string) ([]int, bool) {
	cogs, ok := load().Cassettes[name]
	if !ok {
		return nil, false
	}
	out := make([]int, len(cogs))
	copy(out, cogs)
	return out, true
}

// DefaultCustom returns the cog list pre-filled into the custom cassette
// field of the configuration form.
func DefaultCustom() []int {
	src := load().DefaultCustom
	out := make([]int, len(src))
	copy(out, src)
	return out
}
