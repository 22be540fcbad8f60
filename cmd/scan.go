package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"docvet.dev/pkg/docvet/internal/domain"
	m "docvet.dev/pkg/docvet/internal/model"
)

var scanParallelFlag int
var scanThresholdFlag float64
var scanSaveFlag bool

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan a source tree and report docstring coverage",
		Long:  scanLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			threshold := viper.GetFloat64(thresholdConfigKey)

			report, err := workflow.Scan(context.Background(), domain.ScanArgs{
				Paths:      scanPaths(args),
				Extensions: viper.GetStringSlice(extensionsConfigKey),
				Exclude:    viper.GetStringSlice(excludeConfigKey),
				Threads:    viper.GetInt(parallelConfigKey),
				Reports:    m.Path(viper.GetString(outputFlagName)),
				Save:       scanSaveFlag,
			})
			if err != nil {
				return err
			}

			// The coverage threshold is caller-side CI policy, applied on
			// top of the report rather than inside the pipeline.
			if threshold > 0 && !report.Empty() && report.Coverage() < threshold {
				return fmt.Errorf("docstring coverage %.2f%% is below threshold %.2f%%", report.Coverage(), threshold)
			}

			return nil
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&scanParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of parallel workers for file analysis")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().Float64VarP(&scanThresholdFlag, thresholdFlagName, "t", viper.GetFloat64(thresholdConfigKey), "fail when coverage is below this percentage (0 disables)")
	bindFlagToConfig(cmd.Flags().Lookup(thresholdFlagName), thresholdConfigKey)

	cmd.Flags().BoolVar(&scanSaveFlag, saveFlagName, false, "save the report and verdict log to the output directory")
}
