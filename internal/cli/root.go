// Package cli wires the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aree6/LiftShift-sub002/internal/config"
	"github.com/aree6/LiftShift-sub002/internal/muscles"
	"github.com/aree6/LiftShift-sub002/internal/service"
	"github.com/aree6/LiftShift-sub002/internal/store"
	"github.com/aree6/LiftShift-sub002/internal/workout"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "liftshift",
	Short: "Workout log analytics: muscle volume, strength trends, and PRs",
	Long: `liftshift imports workout logs (Hevy, Strong, FitNotes, or generic CSV),
aggregates per-muscle training volume, classifies strength trends per
exercise, and tracks personal records.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when it
// doesn't exist yet.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		defaults := config.DefaultConfig()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openStore() (*store.Store, error) {
	return store.Open()
}

// resolveDataset loads the named dataset, or the most recently imported
// one when name is empty.
func resolveDataset(st *store.Store, im *service.Importer, name string) (*service.Dataset, error) {
	if name == "" {
		datasets, err := st.ListDatasets()
		if err != nil {
			return nil, err
		}
		if len(datasets) == 0 {
			return nil, errors.New("no datasets imported yet - run 'liftshift import' first")
		}
		name = datasets[0].Name
	}
	return im.Load(name)
}

// analyticsFor builds the analytics service from the config.
func analyticsFor(cfg *config.Config) *service.Analytics {
	return service.NewAnalytics(
		muscles.DefaultLookup(),
		service.WithTrendConfig(cfg.ToTrendConfig()),
		service.WithCacheTTL(cacheTTL(cfg)),
	)
}

func cacheTTL(cfg *config.Config) time.Duration {
	if cfg.Cache.TTLMinutes > 0 {
		return time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	}
	return 10 * time.Minute
}

func displayUnit(cfg *config.Config) workout.Unit {
	if u := workout.Unit(cfg.Display.WeightUnit); u.Valid() {
		return u
	}
	return workout.UnitKg
}

func formatWeight(kg float64, unit workout.Unit) string {
	return fmt.Sprintf("%g %s", workout.ToDisplay(kg, unit), unit)
}
