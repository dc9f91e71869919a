package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aree6/LiftShift-sub002/internal/hevy"
	"github.com/aree6/LiftShift-sub002/internal/store"
	"github.com/aree6/LiftShift-sub002/internal/workout"
)

// SyncService pulls a full workout history from the Hevy API and
// registers it as a dataset, so API-linked accounts go through the same
// pipeline as CSV imports.
type SyncService struct {
	client *hevy.Client
	store  *store.Store
	log    *logrus.Logger
}

// NewSyncService creates a sync service.
func NewSyncService(client *hevy.Client, st *store.Store, log *logrus.Logger) *SyncService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SyncService{client: client, store: st, log: log}
}

// SyncProgress reports progress during sync.
type SyncProgress struct {
	Phase     string // "workouts", "store"
	Total     int
	Completed int
}

// SyncResult contains the results of a sync operation.
type SyncResult struct {
	WorkoutsFetched int
	SetsStored      int
	Errors          []error
}

// SyncAll fetches the account's full history and stores it under name.
func (s *SyncService) SyncAll(ctx context.Context, name string, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &SyncResult{}

	workouts, err := s.client.GetAllWorkouts(ctx, func(fetched, total int) {
		if progress != nil {
			progress <- SyncProgress{Phase: "workouts", Total: total, Completed: fetched}
		}
	})
	if err != nil {
		return result, fmt.Errorf("fetching workouts: %w", err)
	}
	result.WorkoutsFetched = len(workouts)

	sets, flattenErrs := hevy.Sets(workouts)
	for _, e := range flattenErrs {
		s.log.WithError(e).Warn("skipping workout")
		result.Errors = append(result.Errors, e)
	}

	if progress != nil {
		progress <- SyncProgress{Phase: "store", Total: len(sets), Completed: 0}
	}

	// Stored as CSV in the Hevy export layout so a synced dataset and a
	// manually imported one are indistinguishable downstream.
	rawCSV, err := renderHevyCSV(sets)
	if err != nil {
		return result, fmt.Errorf("rendering csv: %w", err)
	}

	_, err = s.store.SaveDataset(&store.Dataset{
		Name:       name,
		Platform:   "hevy",
		Unit:       string(workout.UnitKg),
		RawCSV:     rawCSV,
		SetCount:   len(sets),
		ImportedAt: time.Now(),
	})
	if err != nil {
		return result, fmt.Errorf("saving dataset: %w", err)
	}
	result.SetsStored = len(sets)

	if progress != nil {
		progress <- SyncProgress{Phase: "store", Total: len(sets), Completed: len(sets)}
	}

	s.log.WithFields(logrus.Fields{
		"dataset":  name,
		"workouts": result.WorkoutsFetched,
		"sets":     result.SetsStored,
	}).Info("sync complete")

	return result, nil
}

// hevyDateLayout matches the app's own CSV export.
const hevyDateLayout = "2 Jan 2006, 15:04"

func renderHevyCSV(sets []workout.Set) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"start_time", "exercise_title", "set_index", "set_type", "weight_kg", "reps", "rpe"}); err != nil {
		return "", err
	}

	for _, s := range sets {
		rpe := ""
		if s.RPE != nil {
			rpe = strconv.FormatFloat(*s.RPE, 'f', -1, 64)
		}
		rec := []string{
			s.PerformedAt.Format(hevyDateLayout),
			s.Exercise,
			strconv.Itoa(s.Ordinal - 1), // export counts from 0
			string(s.Type),
			strconv.FormatFloat(s.WeightKg, 'f', -1, 64),
			strconv.Itoa(s.Reps),
			rpe,
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}
