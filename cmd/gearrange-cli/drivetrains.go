package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/velotools/gearrange-cli/internal/config"
	"github.com/velotools/gearrange-cli/internal/drivetrain"
	"github.com/velotools/gearrange-cli/internal/preconfig"
	"github.com/velotools/gearrange-cli/internal/ui"
)

// registerDrivetrainFlags adds the input flags shared by every command
// that evaluates drivetrains: either a configuration file or inline
// values. All flags are bound to viper under the given prefix so they can
// also come from the config file or GEARRANGE_* environment variables.
func registerDrivetrainFlags(c *cobra.Command, prefix string) {
	c.Flags().StringP("file", "f", "", "YAML file with one or more drivetrain configurations")
	c.Flags().String("name", "", "Configuration name for inline values")
	c.Flags().StringP("chainring", "r", "", "Chainring tooth counts, comma-separated (e.g. 40 or 34,50)")
	c.Flags().StringP("cassette", "c", "", "Cassette tooth counts, comma-separated (e.g. 11,13,15,18,21,24,28)")
	c.Flags().String("preset", "", "Preconfigured cassette name (see 'gearrange-cli configure' for the catalogue)")
	c.Flags().Float64P("wheel", "w", 700, "Rim diameter in mm")
	c.Flags().Float64("tyre-offset", drivetrain.DefaultTyreOffset, "Tyre offset in mm (the tyre makes the effective wheel diameter bigger)")
	c.Flags().String("cadence", "85,95", "Cadence in rpm: a single value or a lower,upper pair")

	for _, name := range []string{"file", "name", "chainring", "cassette", "preset", "wheel", "tyre-offset", "cadence"} {
		viper.BindPFlag(prefix+"."+name, c.Flags().Lookup(name))
	}
}

// resolveConfigs turns the bound flags into configuration values: the
// contents of --file when given, otherwise one inline configuration.
func resolveConfigs(prefix string) ([]config.DrivetrainConfig, error) {
	key := func(name string) string { return prefix + "." + name }

	if path := strings.TrimSpace(viper.GetString(key("file"))); path != "" {
		return config.Read(path)
	}

	chainringArg := strings.TrimSpace(viper.GetString(key("chainring")))
	if chainringArg == "" {
		return nil, fmt.Errorf("either --file or --chainring is required")
	}
	chainring, err := ui.ParseCogs(chainringArg)
	if err != nil {
		return nil, err
	}

	presetArg := strings.TrimSpace(viper.GetString(key("preset")))
	cassette, ok := preconfig.Lookup(presetArg)
	if !ok {
		if presetArg != "" && presetArg != preconfig.Custom {
			return nil, fmt.Errorf("unknown cassette preset %q (known: %s)", presetArg, strings.Join(preconfig.Names(), ", "))
		}
		cassetteArg := strings.TrimSpace(viper.GetString(key("cassette")))
		if cassetteArg == "" {
			return nil, fmt.Errorf("either --cassette or --preset is required")
		}
		if cassette, err = ui.ParseCogs(cassetteArg); err != nil {
			return nil, err
		}
	}

	rpm, err := ui.ParseCadence(viper.GetString(key("cadence")))
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(viper.GetString(key("name")))
	if name == "" {
		name = "drivetrain"
	}

	offset := viper.GetFloat64(key("tyre-offset"))
	return []config.DrivetrainConfig{{
		Name:            name,
		Chainring:       chainring,
		Cassette:        cassette,
		WheelDiameterMM: viper.GetFloat64(key("wheel")),
		TyreOffsetMM:    &offset,
		CadenceRPM:      rpm,
	}}, nil
}

// builtConfig is one configuration with its typed parts constructed.
type builtConfig struct {
	Name       string
	Drivetrain *drivetrain.Drivetrain
	Cadence    drivetrain.Cadence
}

func buildConfigs(configs []config.DrivetrainConfig) ([]builtConfig, error) {
	out := make([]builtConfig, 0, len(configs))
	for _, c := range configs {
		d, cadence, err := c.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, builtConfig{Name: c.Name, Drivetrain: d, Cadence: cadence})
	}
	return out, nil
}
