package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aree6/LiftShift-sub002/internal/ingest"
	"github.com/aree6/LiftShift-sub002/internal/service"
	"github.com/aree6/LiftShift-sub002/internal/workout"
)

var (
	importName string
	importUnit string
)

func init() {
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "dataset name (defaults to the file name)")
	importCmd.Flags().StringVarP(&importUnit, "unit", "u", "kg", "unit of the file's weight column (kg or lbs)")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a workout log export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit := workout.Unit(importUnit)
		if !unit.Valid() {
			return fmt.Errorf("unit must be %q or %q, got %q", workout.UnitKg, workout.UnitLbs, importUnit)
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		name := importName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		im := service.NewImporter(st, nil)
		ds, result, err := im.Import(name, string(raw), ingest.Options{Unit: unit})
		if err != nil {
			return err
		}

		fmt.Printf("Imported %q: %d sets (%s layout)\n", ds.Name, len(ds.Sets), result.Platform)
		if len(result.Warnings) > 0 {
			fmt.Printf("%d rows skipped:\n", len(result.Warnings))
			for _, w := range result.Warnings {
				fmt.Printf("  %s\n", w)
			}
		}
		return nil
	},
}
