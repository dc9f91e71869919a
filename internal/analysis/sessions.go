package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/aree6/LiftShift-sub002/internal/workout"
)

// Session collapses one exercise on one calendar day to its best set.
// Sessions are the unit of trend analysis.
type Session struct {
	Exercise      string
	Date          time.Time // start of the calendar day, local time
	Timestamp     time.Time // latest set time that day
	MaxWeightKg   float64
	RepsAtMax     int     // max reps achieved at the max weight
	MaxReps       int     // max reps across all sets, tracked for bodyweight work
	OneRepMax     float64 // Epley estimate from the best set
	TotalVolumeKg float64 // summed weight*reps across the day's sets
	Sets          int
}

// EstimateOneRepMax estimates a one-rep max from a submaximal set using
// the Epley formula: weight * (1 + reps/30). A single rep is taken at
// face value.
func EstimateOneRepMax(weightKg float64, reps int) float64 {
	if reps <= 0 || weightKg <= 0 {
		return 0
	}
	if reps == 1 {
		return weightKg
	}
	return weightKg * (1 + float64(reps)/30)
}

// SessionsByExercise groups sets by exercise and collapses each exercise
// to one Session per calendar day. Each exercise's sessions are sorted
// most-recent-first, the ordering trend classification expects.
func SessionsByExercise(sets []workout.Set) map[string][]Session {
	type dayKey struct {
		exercise string
		day      time.Time
	}

	days := make(map[dayKey]*Session)
	for _, s := range sets {
		day := startOfDay(s.PerformedAt)
		key := dayKey{exercise: s.Exercise, day: day}

		sess, ok := days[key]
		if !ok {
			sess = &Session{Exercise: s.Exercise, Date: day}
			days[key] = sess
		}

		sess.Sets++
		sess.TotalVolumeKg += s.Volume()
		if s.PerformedAt.After(sess.Timestamp) {
			sess.Timestamp = s.PerformedAt
		}
		if s.Reps > sess.MaxReps {
			sess.MaxReps = s.Reps
		}

		switch {
		case s.WeightKg > sess.MaxWeightKg:
			sess.MaxWeightKg = s.WeightKg
			sess.RepsAtMax = s.Reps
		case s.WeightKg == sess.MaxWeightKg && s.Reps > sess.RepsAtMax:
			sess.RepsAtMax = s.Reps
		}

		if orm := EstimateOneRepMax(s.WeightKg, s.Reps); orm > sess.OneRepMax {
			sess.OneRepMax = orm
		}
	}

	byExercise := make(map[string][]Session)
	for key, sess := range days {
		byExercise[key.exercise] = append(byExercise[key.exercise], *sess)
	}
	for exercise := range byExercise {
		sessions := byExercise[exercise]
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].Date.After(sessions[j].Date)
		})
		byExercise[exercise] = sessions
	}

	return byExercise
}

// IsBodyweightLike reports whether an exercise is reps-driven rather
// than load-driven: its logged weight is zero or near-constant across
// history, so load is not the controllable variable. Sessions may be in
// any order.
func IsBodyweightLike(sessions []Session) bool {
	if len(sessions) == 0 {
		return false
	}

	minW, maxW := math.Inf(1), math.Inf(-1)
	for _, s := range sessions {
		if s.MaxWeightKg < minW {
			minW = s.MaxWeightKg
		}
		if s.MaxWeightKg > maxW {
			maxW = s.MaxWeightKg
		}
	}

	if maxW == 0 {
		return true
	}
	return maxW-minW < 1.0 // fixed added load, e.g. weighted pull ups at +10kg
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
