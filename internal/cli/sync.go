package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aree6/LiftShift-sub002/internal/hevy"
	"github.com/aree6/LiftShift-sub002/internal/service"
)

var syncName string

func init() {
	syncCmd.Flags().StringVarP(&syncName, "name", "n", "hevy", "dataset name to store the synced history under")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the full workout history from the Hevy API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		client := hevy.NewClient(cfg.Hevy.APIKey)
		svc := service.NewSyncService(client, st, nil)

		progress := make(chan service.SyncProgress)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for p := range progress {
				if p.Total > 0 {
					fmt.Printf("\r%s: %d/%d", p.Phase, p.Completed, p.Total)
				} else {
					fmt.Printf("\r%s: %d", p.Phase, p.Completed)
				}
			}
			fmt.Println()
		}()

		result, err := svc.SyncAll(cmd.Context(), syncName, progress)
		<-done
		if err != nil {
			return err
		}

		fmt.Printf("Synced %d workouts (%d sets) into %q\n", result.WorkoutsFetched, result.SetsStored, syncName)
		for _, e := range result.Errors {
			fmt.Printf("  warning: %v\n", e)
		}
		return nil
	},
}
