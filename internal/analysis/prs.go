package analysis

import (
	"sort"

	"github.com/aree6/LiftShift-sub002/internal/workout"
)

// FlaggedSet is a set annotated with whether it was a personal record at
// the time it occurred.
type FlaggedSet struct {
	workout.Set
	PersonalRecord bool
}

// FlagPersonalRecords marks each set that set a new all-time maximum
// weight for its exercise, evaluated in strict chronological order.
// Ties with a previous maximum are not records; only strictly greater
// weights count. The input is not mutated; the result is ordered
// chronologically.
func FlagPersonalRecords(sets []workout.Set) []FlaggedSet {
	ordered := make([]FlaggedSet, len(sets))
	for i, s := range sets {
		ordered[i] = FlaggedSet{Set: s}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PerformedAt.Before(ordered[j].PerformedAt)
	})

	best := make(map[string]float64)
	for i := range ordered {
		s := &ordered[i]
		if s.Reps <= 0 {
			continue
		}
		prev, seen := best[s.Exercise]
		if !seen || s.WeightKg > prev {
			s.PersonalRecord = true
			best[s.Exercise] = s.WeightKg
		}
	}

	return ordered
}

// PersonalRecords returns the current all-time best set per exercise,
// keyed by exercise name.
func PersonalRecords(sets []workout.Set) map[string]workout.Set {
	flagged := FlagPersonalRecords(sets)
	records := make(map[string]workout.Set)
	for _, s := range flagged {
		if s.PersonalRecord {
			records[s.Exercise] = s.Set
		}
	}
	return records
}
