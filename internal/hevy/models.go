package hevy

import (
	"fmt"
	"time"

	"github.com/aree6/LiftShift-sub002/internal/workout"
)

// Workout is a single logged session as returned by the API.
type Workout struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Exercises []Exercise `json:"exercises"`
}

// Exercise is one movement within a workout.
type Exercise struct {
	Index int      `json:"index"`
	Title string   `json:"title"`
	Notes string   `json:"notes"`
	Sets  []APISet `json:"sets"`
}

// APISet is one set within an exercise. Weight and reps are pointers
// because duration-only entries carry neither.
type APISet struct {
	Index    int      `json:"index"`
	Type     string   `json:"type"`
	WeightKg *float64 `json:"weight_kg"`
	Reps     *int     `json:"reps"`
	RPE      *float64 `json:"rpe"`
}

type workoutsResponse struct {
	Page      int       `json:"page"`
	PageCount int       `json:"page_count"`
	Workouts  []Workout `json:"workouts"`
}

type workoutCountResponse struct {
	WorkoutCount int `json:"workout_count"`
}

// Sets flattens API workouts into canonical sets. Timestamps arrive as
// RFC 3339 strings; a workout with an unparseable start time is skipped
// and reported, never silently dropped.
func Sets(workouts []Workout) ([]workout.Set, []error) {
	var sets []workout.Set
	var errs []error

	for _, w := range workouts {
		performedAt, err := time.Parse(time.RFC3339, w.StartTime)
		if err != nil {
			errs = append(errs, fmt.Errorf("workout %s: bad start_time %q: %w", w.ID, w.StartTime, err))
			continue
		}

		for _, ex := range w.Exercises {
			for _, s := range ex.Sets {
				set := workout.Set{
					Exercise:    ex.Title,
					PerformedAt: performedAt,
					Ordinal:     s.Index + 1,
					Type:        setType(s.Type),
					RPE:         s.RPE,
				}
				if s.WeightKg != nil {
					set.WeightKg = *s.WeightKg
				}
				if s.Reps != nil {
					set.Reps = *s.Reps
				}
				sets = append(sets, set)
			}
		}
	}

	return sets, errs
}

func setType(apiType string) workout.SetType {
	switch apiType {
	case "warmup":
		return workout.SetTypeWarmup
	case "failure":
		return workout.SetTypeFailure
	case "dropset":
		return workout.SetTypeDrop
	default:
		return workout.SetTypeNormal
	}
}
