package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aree6/LiftShift-sub002/internal/service"
)

var prsDataset string

func init() {
	prsCmd.Flags().StringVarP(&prsDataset, "dataset", "d", "", "dataset name (defaults to the most recent)")
	rootCmd.AddCommand(prsCmd)
}

var prsCmd = &cobra.Command{
	Use:   "prs",
	Short: "Show the all-time best set per exercise",
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

		ds, err := resolveDataset(st, service.NewImporter(st, nil), prsDataset)
		if err != nil {
			return err
		}

		prs, err := analyticsFor(cfg).PersonalRecords(cmd.Context(), ds)
		if err != nil {
			return err
		}
		if len(prs) == 0 {
			fmt.Println("No personal records yet")
			return nil
		}

		names := make([]string, 0, len(prs))
		for name := range prs {
			names = append(names, name)
		}
		sort.Strings(names)

		unit := displayUnit(cfg)
		for _, name := range names {
			set := prs[name]
			fmt.Printf("%-36s %s x %d  (%s)\n",
				name, formatWeight(set.WeightKg, unit), set.Reps,
				set.PerformedAt.Format("Jan 2, 2006"))
		}
		return nil
	},
}
