package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	datasetsCmd.AddCommand(datasetsDeleteCmd)
	rootCmd.AddCommand(datasetsCmd)
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List imported datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		datasets, err := st.ListDatasets()
		if err != nil {
			return err
		}
		if len(datasets) == 0 {
			fmt.Println("No datasets yet - run 'liftshift import' first")
			return nil
		}

		fmt.Printf("%-20s %-10s %-6s %8s  %s\n", "NAME", "PLATFORM", "UNIT", "SETS", "IMPORTED")
		for _, d := range datasets {
			fmt.Printf("%-20s %-10s %-6s %8d  %s\n",
				d.Name, d.Platform, d.Unit, d.SetCount,
				d.ImportedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var datasetsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteDataset(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", args[0])
		return nil
	},
}
