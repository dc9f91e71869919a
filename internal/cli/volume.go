package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aree6/LiftShift-sub002/internal/service"
	"github.com/aree6/LiftShift-sub002/internal/volume"
)

var (
	volumePeriod  string
	volumeDataset string
)

func init() {
	volumeCmd.Flags().StringVarP(&volumePeriod, "period", "p", "weekly", "bucket size: daily, weekly, or monthly")
	volumeCmd.Flags().StringVarP(&volumeDataset, "dataset", "d", "", "dataset name (defaults to the most recent)")
	rootCmd.AddCommand(volumeCmd)
}

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Show per-muscle set volume over time",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := parsePeriod(volumePeriod)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ds, err := resolveDataset(st, service.NewImporter(st, nil), volumeDataset)
		if err != nil {
			return err
		}

		result, err := analyticsFor(cfg).MuscleVolume(cmd.Context(), ds, period)
		if err != nil {
			return err
		}
		if len(result.Series) == 0 {
			fmt.Println("No volume data")
			return nil
		}

		for _, bucket := range result.Series {
			fmt.Printf("%s\n", bucket.Label)
			for _, m := range result.MuscleKeys {
				if v, ok := bucket.Volumes[m]; ok && v > 0 {
					fmt.Printf("  %-16s %.1f\n", m, v)
				}
			}
		}
		return nil
	},
}

func parsePeriod(s string) (volume.Period, error) {
	switch s {
	case "daily":
		return volume.Daily, nil
	case "weekly":
		return volume.Weekly, nil
	case "monthly":
		return volume.Monthly, nil
	default:
		return 0, fmt.Errorf("period must be daily, weekly, or monthly, got %q", s)
	}
}
