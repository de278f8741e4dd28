package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/velotools/gearrange-cli/internal/ui"
)

// plotCmd represents the plot command
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Draw the speed range of every gear as a terminal plot",
	Long:  "Draw one horizontal bar per gear combination spanning the speed band between the lower and upper cadence, with a marker at the middle cadence. A single cadence value plots point markers instead of bars.",
	RunE:  runPlot,
}

func runPlot(cmd *cobra.Command, args []string) error {
	configs, err := resolveConfigs("plot")
	if err != nil {
		return err
	}
	built, err := buildConfigs(configs)
	if err != nil {
		return err
	}

	width := viper.GetInt("plot.width")
	for i, b := range built {
		cmd.Print(ui.RenderConfigDetail(b.Name, b.Drivetrain, b.Cadence, width))
		if i < len(built)-1 {
			cmd.Println()
		}
	}
	return nil
}

func init() {
	registerDrivetrainFlags(plotCmd, "plot")
	plotCmd.Flags().Int("width", 60, "Character width of the bar area")

	viper.BindPFlag("plot.width", plotCmd.Flags().Lookup("width"))
}
