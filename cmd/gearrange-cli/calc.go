package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/velotools/gearrange-cli/internal/export"
	"github.com/velotools/gearrange-cli/internal/ui"
)

// calcCmd represents the calc command
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate gear ratios, unfolding and speed per cadence",
	Long:  "Calculate the gear table for a drivetrain: ratio and unfolding distance per chainring/cassette combination, plus the speed reached at each cadence point. Input comes from --file or from the inline flags.",
	RunE:  runCalc,
}

func runCalc(cmd *cobra.Command, args []string) error {
	configs, err := resolveConfigs("calc")
	if err != nil {
		return err
	}
	built, err := buildConfigs(configs)
	if err != nil {
		return err
	}

	quiet := viper.GetBool("calc.quiet")
	table := ui.NewSpeedTableUI(cmd.OutOrStdout(), quiet)

	gears := 0
	for i, b := range built {
		rows := b.Drivetrain.Speed(b.Cadence)
		gears += len(rows)
		table.PrintTable(b.Name, rows)
		if !quiet && i < len(built)-1 {
			cmd.Println()
		}
	}

	if output := viper.GetString("calc.output"); output != "" {
		tables := make([]export.Table, 0, len(built))
		for _, b := range built {
			tables = append(tables, export.Table{Configuration: b.Name, Rows: b.Drivetrain.Speed(b.Cadence)})
		}
		if err := export.WriteFile(output, tables); err != nil {
			return err
		}
		table.PrintSummary(gears, output)
	}

	return nil
}

func init() {
	registerDrivetrainFlags(calcCmd, "calc")
	calcCmd.Flags().StringP("output", "o", "", "Also write the table(s) to a CSV file")
	calcCmd.Flags().BoolP("quiet", "q", false, "Suppress table output")

	viper.BindPFlag("calc.output", calcCmd.Flags().Lookup("output"))
	viper.BindPFlag("calc.quiet", calcCmd.Flags().Lookup("quiet"))
}
