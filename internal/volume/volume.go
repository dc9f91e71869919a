// Package volume aggregates normalized sets into per-muscle set-volume,
// with primary/secondary weighting, Full Body and Cardio special cases,
// anatomical group propagation, and calendar-period bucketing.
package volume

import (
	"fmt"
	"sort"
	"time"

	"github.com/aree6/LiftShift-sub002/internal/muscles"
	"github.com/aree6/LiftShift-sub002/internal/workout"
)

// Attribution weights: a primary muscle earns one set-equivalent per
// set, each secondary muscle earns half. Multiple secondaries each get
// the full half, it is not divided further.
const (
	primaryWeight   = 1.0
	secondaryWeight = 0.5
)

// Period selects the calendar bucketing for time-series aggregation.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return fmt.Sprintf("period(%d)", int(p))
	}
}

// Entry accumulates volume for one muscle, with a per-exercise
// breakdown. The breakdown holds raw accumulated values; group
// propagation applies to the Sets total only.
type Entry struct {
	Muscle     muscles.Muscle
	Sets       float64
	ByExercise map[string]float64
}

// TimeBucket is one calendar period's per-muscle volume row.
type TimeBucket struct {
	Start   time.Time
	Label   string
	Volumes map[muscles.Muscle]float64
}

// Result is a time-bucketed aggregation: one row per period, one
// numeric column per muscle key present in the dataset.
type Result struct {
	Series     []TimeBucket
	MuscleKeys []muscles.Muscle
}

// ExerciseVolumes returns the per-set volume each muscle earns from one
// exercise. Cardio contributes nothing anywhere; Full Body contributes
// one set-equivalent to every tracked muscle, bypassing the
// primary/secondary split.
func ExerciseVolumes(ex muscles.ExerciseMuscleData) map[muscles.Muscle]float64 {
	out := make(map[muscles.Muscle]float64)
	switch ex.Primary {
	case muscles.Cardio:
		// explicit exclusion, not an oversight
	case muscles.FullBody:
		for _, m := range muscles.Tracked {
			out[m] = primaryWeight
		}
	default:
		out[ex.Primary] += primaryWeight
		for _, sec := range ex.Secondary {
			out[sec] += secondaryWeight
		}
	}
	return out
}

// Totals accumulates set volume per muscle across all sets, resolving
// each exercise through the lookup. Exercises absent from the lookup
// contribute nothing; that is a data gap, not an error. Group
// propagation runs after all accumulation is complete.
func Totals(sets []workout.Set, lookup *muscles.Lookup) map[muscles.Muscle]*Entry {
	entries := make(map[muscles.Muscle]*Entry)
	add := func(m muscles.Muscle, exercise string, v float64) {
		e, ok := entries[m]
		if !ok {
			e = &Entry{Muscle: m, ByExercise: make(map[string]float64)}
			entries[m] = e
		}
		e.Sets += v
		e.ByExercise[exercise] += v
	}

	for _, s := range sets {
		ex, ok := lookup.Get(s.Exercise)
		if !ok {
			continue
		}
		for m, v := range ExerciseVolumes(ex) {
			add(m, s.Exercise, v)
		}
	}

	totals := make(map[muscles.Muscle]float64, len(entries))
	for m, e := range entries {
		totals[m] = e.Sets
	}
	Propagate(totals)
	for m, v := range totals {
		if e, ok := entries[m]; ok {
			e.Sets = v
		} else {
			entries[m] = &Entry{Muscle: m, Sets: v, ByExercise: make(map[string]float64)}
		}
	}

	return entries
}

// Aggregate buckets sets by calendar period and accumulates per-muscle
// volume within each bucket. Empty input yields an empty series.
func Aggregate(sets []workout.Set, lookup *muscles.Lookup, period Period) *Result {
	buckets := make(map[time.Time]map[muscles.Muscle]float64)
	present := make(map[muscles.Muscle]bool)

	for _, s := range sets {
		ex, ok := lookup.Get(s.Exercise)
		if !ok {
			continue
		}
		start := bucketStart(s.PerformedAt, period)
		row, ok := buckets[start]
		if !ok {
			row = make(map[muscles.Muscle]float64)
			buckets[start] = row
		}
		for m, v := range ExerciseVolumes(ex) {
			row[m] += v
			present[m] = true
		}
	}

	// Propagation is a post-pass per bucket, after accumulation.
	for _, row := range buckets {
		Propagate(row)
		for m := range row {
			present[m] = true
		}
	}

	res := &Result{}
	for start, row := range buckets {
		res.Series = append(res.Series, TimeBucket{
			Start:   start,
			Label:   bucketLabel(start, period),
			Volumes: row,
		})
	}
	sort.Slice(res.Series, func(i, j int) bool {
		return res.Series[i].Start.Before(res.Series[j].Start)
	})

	for m := range present {
		res.MuscleKeys = append(res.MuscleKeys, m)
	}
	sort.Slice(res.MuscleKeys, func(i, j int) bool {
		return res.MuscleKeys[i] < res.MuscleKeys[j]
	})

	return res
}

// Propagate raises every member of an anatomical group to the maximum
// volume attributed to any single member, in place. Muscles without a
// group entry are singletons and unaffected. Already-higher values are
// never lowered.
func Propagate(volumes map[muscles.Muscle]float64) {
	for _, members := range muscles.Groups {
		groupMax := 0.0
		touched := false
		for _, m := range members {
			if v, ok := volumes[m]; ok {
				touched = true
				if v > groupMax {
					groupMax = v
				}
			}
		}
		if !touched || groupMax == 0 {
			continue
		}
		for _, m := range members {
			if volumes[m] < groupMax {
				volumes[m] = groupMax
			}
		}
	}
}

// bucketStart truncates a timestamp to its calendar period. Weeks start
// on Monday.
func bucketStart(t time.Time, period Period) time.Time {
	switch period {
	case Weekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
		return day.AddDate(0, 0, -offset)
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

func bucketLabel(start time.Time, period Period) string {
	switch period {
	case Weekly:
		return "Week of " + start.Format("Jan 2, 2006")
	case Monthly:
		return start.Format("Jan 2006")
	default:
		return start.Format("2006-01-02")
	}
}
