package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/velotools/gearrange-cli/internal/apperr"
	"github.com/velotools/gearrange-cli/internal/config"
	"github.com/velotools/gearrange-cli/internal/drivetrain"
	"github.com/velotools/gearrange-cli/internal/export"
	"github.com/velotools/gearrange-cli/internal/session"
	"github.com/velotools/gearrange-cli/internal/ui"
)

// configureCmd represents the configure command
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure drivetrains interactively and browse their gear ranges",
	Long:  "Build up a session of named drivetrain configurations through an interactive form, then browse them in a list with per-configuration range plots. Use --file to preload configurations and --save to write the session back to a YAML file on exit.",
	RunE:  runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	registry := session.NewRegistry()

	if path := viper.GetString("configure.file"); path != "" {
		configs, err := config.Read(path)
		if err != nil {
			return err
		}
		built, err := buildConfigs(configs)
		if err != nil {
			return err
		}
		for _, b := range built {
			if _, err := registry.Add(b.Name, b.Drivetrain, b.Cadence); err != nil {
				return err
			}
		}
		cmd.Printf("%s %s\n", ui.GetCheckMark(), ui.Dim.Render(fmt.Sprintf("loaded %d configuration(s) from %s", registry.Len(), path)))
	}

	for {
		result, err := ui.RunDrivetrainForm(formDefaults())
		if errors.Is(err, apperr.ErrCancelled) {
			// Aborting the form with preloaded configurations still opens
			// the browser; with an empty session there is nothing to show.
			if registry.Len() == 0 {
				return err
			}
			break
		}
		if err != nil {
			return err
		}

		d, cadence, err := result.Drivetrain()
		if err != nil {
			return err
		}
		if _, err := registry.Add(result.Name, d, cadence); err != nil {
			return err
		}

		another := false
		confirm := huh.NewConfirm().
			Title("Add another drivetrain?").
			Value(&another)
		if err := confirm.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				break
			}
			return err
		}
		if !another {
			break
		}
	}

	if err := ui.RunSessionBrowser(registry); err != nil {
		return err
	}

	if path := viper.GetString("configure.export"); path != "" {
		if err := export.WriteFile(path, registry.Tables()); err != nil {
			return err
		}
		cmd.Printf("%s %s\n", ui.GetCheckMark(), ui.Dim.Render("exported session data to "+path))
	}

	if path := viper.GetString("configure.save"); path != "" {
		return saveSession(cmd, registry, path)
	}
	return nil
}

func saveSession(cmd *cobra.Command, registry *session.Registry, path string) error {
	entries := registry.List()
	configs := make([]config.DrivetrainConfig, 0, len(entries))
	for _, e := range entries {
		offset := e.Drivetrain.Wheel().TyreOffsetMM()
		rpm := []int{int(e.Cadence.Lower())}
		if e.Cadence.IsRange() {
			rpm = append(rpm, int(e.Cadence.Upper()))
		}
		configs = append(configs, config.DrivetrainConfig{
			Name:            e.Name,
			Chainring:       e.Drivetrain.Chainring().Cogs(),
			Cassette:        e.Drivetrain.Cassette().Cogs(),
			WheelDiameterMM: e.Drivetrain.Wheel().NominalMM(),
			TyreOffsetMM:    &offset,
			CadenceRPM:      rpm,
		})
	}

	if err := config.Write(path, configs); err != nil {
		return err
	}
	cmd.Printf("%s %s\n", ui.GetCheckMark(), ui.Dim.Render(fmt.Sprintf("saved %d configuration(s) to %s", len(configs), path)))
	return nil
}

func formDefaults() ui.FormDefaults {
	chainring, err := ui.ParseCogs(viper.GetString("configure.chainring"))
	if err != nil {
		chainring = []int{40}
	}
	return ui.FormDefaults{
		Chainring:       chainring,
		WheelDiameterMM: viper.GetFloat64("configure.wheel"),
		TyreOffsetMM:    viper.GetFloat64("configure.tyre-offset"),
		CadenceLower:    viper.GetInt("configure.cadence-lower"),
		CadenceUpper:    viper.GetInt("configure.cadence-upper"),
	}
}

func init() {
	configureCmd.Flags().StringP("file", "f", "", "YAML file with configurations to preload into the session")
	configureCmd.Flags().StringP("save", "s", "", "Write the session configurations to this YAML file on exit")
	configureCmd.Flags().StringP("export", "e", "", "Write the combined session CSV to this file on exit")
	configureCmd.Flags().String("chainring", "40", "Default chainring cogs pre-filled into the form")
	configureCmd.Flags().Float64("wheel", 700, "Default rim diameter in mm pre-filled into the form")
	configureCmd.Flags().Float64("tyre-offset", drivetrain.DefaultTyreOffset, "Default tyre offset in mm pre-filled into the form")
	configureCmd.Flags().Int("cadence-lower", 85, "Default lower cadence in rpm pre-filled into the form")
	configureCmd.Flags().Int("cadence-upper", 95, "Default upper cadence in rpm pre-filled into the form")

	for _, name := range []string{"file", "save", "export", "chainring", "wheel", "tyre-offset", "cadence-lower", "cadence-upper"} {
		viper.BindPFlag("configure."+name, configureCmd.Flags().Lookup(name))
	}
}
