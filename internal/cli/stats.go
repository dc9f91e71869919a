package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aree6/LiftShift-sub002/internal/service"
)

var statsDataset string

func init() {
	statsCmd.Flags().StringVarP(&statsDataset, "dataset", "d", "", "dataset name (defaults to the most recent)")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a summary of the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ds, err := resolveDataset(st, service.NewImporter(st, nil), statsDataset)
		if err != nil {
			return err
		}

		d, err := analyticsFor(cfg).Dashboard(cmd.Context(), ds)
		if err != nil {
			return err
		}

		unit := displayUnit(cfg)
		fmt.Printf("Dataset:        %s\n", ds.Name)
		fmt.Printf("Sets logged:    %d across %d exercises\n", d.TotalSets, d.ExerciseCount)
		fmt.Printf("Total volume:   %s\n", formatWeight(d.TotalVolumeKg, unit))
		if !d.FirstWorkout.IsZero() {
			fmt.Printf("History:        %s to %s\n",
				d.FirstWorkout.Format("Jan 2, 2006"), d.LastWorkout.Format("Jan 2, 2006"))
		}
		fmt.Printf("Records:        %d\n", d.RecordCount)
		fmt.Printf("Gaining:        %d exercises\n", d.GainingCount)
		fmt.Printf("Plateaued:      %d exercises\n", d.PlateauCount)
		fmt.Printf("Inactive:       %d exercises\n", d.InactiveCount)
		return nil
	},
}
