package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aree6/LiftShift-sub002/internal/analysis"
	"github.com/aree6/LiftShift-sub002/internal/service"
)

var trendsDataset string

func init() {
	trendsCmd.Flags().StringVarP(&trendsDataset, "dataset", "d", "", "dataset name (defaults to the most recent)")
	rootCmd.AddCommand(trendsCmd)
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Classify the training status of each exercise",
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

		ds, err := resolveDataset(st, service.NewImporter(st, nil), trendsDataset)
		if err != nil {
			return err
		}

		trends, err := analyticsFor(cfg).Trends(cmd.Context(), ds)
		if err != nil {
			return err
		}

		for _, t := range trends {
			fmt.Println(formatTrend(t))
		}
		return nil
	},
}

// formatTrend renders one classified exercise. An inactive exercise's
// computed status is stale, so only the last-session note is shown.
func formatTrend(t analysis.TrendResult) string {
	if t.Inactive {
		out := fmt.Sprintf("%s [inactive]", t.Exercise)
		if len(t.Evidence) > 0 {
			out += "\n  " + t.Evidence[0]
		}
		return out
	}
	return fmt.Sprintf("%s [%s, %s confidence]\n  %s - %s",
		t.Exercise, t.Status, t.Confidence, t.Headline, t.Subtext)
}
