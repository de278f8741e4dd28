package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/velotools/gearrange-cli/internal/export"
	"github.com/velotools/gearrange-cli/internal/ui"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the gear tables as CSV",
	Long:  "Export the full speed table of every configuration as CSV: one row per gear with ratio, unfolding distance and the speed at each cadence band. Use '-' as output to write to stdout.",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	configs, err := resolveConfigs("export")
	if err != nil {
		return err
	}
	built, err := buildConfigs(configs)
	if err != nil {
		return err
	}

	gears := 0
	tables := make([]export.Table, 0, len(built))
	for _, b := range built {
		rows := b.Drivetrain.Speed(b.Cadence)
		gears += len(rows)
		tables = append(tables, export.Table{Configuration: b.Name, Rows: rows})
	}

	output := viper.GetString("export.output")
	if output == "-" {
		return export.WriteCSV(cmd.OutOrStdout(), tables)
	}

	if err := export.WriteFile(output, tables); err != nil {
		return err
	}

	table := ui.NewSpeedTableUI(cmd.OutOrStdout(), viper.GetBool("export.quiet"))
	table.PrintSummary(gears, output)
	return nil
}

func init() {
	registerDrivetrainFlags(exportCmd, "export")
	exportCmd.Flags().StringP("output", "o", "gear_range.csv", "Output CSV path, or '-' for stdout")
	exportCmd.Flags().BoolP("quiet", "q", false, "Suppress the summary line")

	viper.BindPFlag("export.output", exportCmd.Flags().Lookup("output"))
	viper.BindPFlag("export.quiet", exportCmd.Flags().Lookup("quiet"))
}
