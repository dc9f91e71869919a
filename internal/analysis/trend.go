package analysis

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"
)

// Status classifies an exercise's recent progress.
type Status string

const (
	StatusBaseline    Status = "baseline"    // not enough usable history yet
	StatusPlateau     Status = "plateau"     // recent sessions pinned to a narrow band
	StatusGaining     Status = "gaining"     // sustained upward smoothed trend
	StatusLosing      Status = "losing"      // sustained downward smoothed trend
	StatusMaintaining Status = "maintaining" // flat or mixed, but not pinned to a band
)

// Confidence grades how much history backs a classification.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// TrendResult is the classified training status of one exercise.
type TrendResult struct {
	Exercise   string
	Status     Status
	Confidence Confidence
	// Inactive is determined independently of Status: the last session
	// is older than the activity window, so callers must suppress the
	// trend display instead of reporting a stale trend as current.
	Inactive   bool
	Bodyweight bool     // reps-driven exercise, signal is max reps not est. 1RM
	Evidence   []string // human-explainable supporting observations
	Headline   string
	Subtext    string
}

// TrendConfig holds the classifier's tuned heuristics. The numeric
// thresholds are calibration knobs, not load-bearing exact values.
type TrendConfig struct {
	MinSessions         int     // below this the status is always baseline
	PlateauWindow       int     // trailing sessions inspected for a plateau
	PlateauTolerancePct float64 // weight band width, fraction of max (e.g. 0.025)
	PlateauRepBand      int     // rep band width for bodyweight-like exercises
	SlopePct            float64 // smoothed change that counts as gaining/losing
	HalfLifeDays        float64 // EMA half-life for the primary signal
	ActivityWindowDays  int     // sessions older than this make the exercise inactive
}

// DefaultTrendConfig returns the tuned defaults.
func DefaultTrendConfig() TrendConfig {
	return TrendConfig{
		MinSessions:         3,
		PlateauWindow:       4,
		PlateauTolerancePct: 0.025,
		PlateauRepBand:      1,
		SlopePct:            0.015,
		HalfLifeDays:        DefaultHalfLifeDays,
		ActivityWindowDays:  60,
	}
}

// Classify derives a TrendResult from an exercise's session history.
// Sessions must be sorted most-recent-first (the SessionsByExercise
// ordering). The classification is recomputed fresh from full history on
// every call; nothing persists between calls.
func Classify(exercise string, sessions []Session, cfg TrendConfig, now time.Time) TrendResult {
	res := TrendResult{
		Exercise:   exercise,
		Status:     StatusBaseline,
		Confidence: ConfidenceLow,
	}

	if len(sessions) == 0 {
		res.Evidence = append(res.Evidence, "no logged sessions yet")
		res.Headline, res.Subtext = phrasing(exercise, res.Status, time.Time{})
		return res
	}

	latest := sessions[0]
	res.Bodyweight = IsBodyweightLike(sessions)

	activityWindow := time.Duration(cfg.ActivityWindowDays) * 24 * time.Hour
	recent := now.Sub(latest.Date) <= activityWindow
	res.Inactive = !recent
	if res.Inactive {
		res.Evidence = append(res.Evidence,
			fmt.Sprintf("last session on %s, outside the %d-day activity window",
				latest.Date.Format("2006-01-02"), cfg.ActivityWindowDays))
	}

	if len(sessions) < cfg.MinSessions {
		res.Evidence = append(res.Evidence,
			fmt.Sprintf("%d of %d sessions needed for a trend", len(sessions), cfg.MinSessions))
		res.Headline, res.Subtext = phrasing(exercise, res.Status, latest.Timestamp)
		return res
	}

	res.Confidence = confidence(len(sessions), recent)

	if plateaued, ev := detectPlateau(sessions, cfg, res.Bodyweight); plateaued {
		res.Status = StatusPlateau
		res.Evidence = append(res.Evidence, ev)
		res.Headline, res.Subtext = phrasing(exercise, res.Status, latest.Timestamp)
		return res
	}

	slope, ev := smoothedSlope(sessions, cfg, res.Bodyweight)
	res.Evidence = append(res.Evidence, ev)
	switch {
	case slope >= cfg.SlopePct:
		res.Status = StatusGaining
	case slope <= -cfg.SlopePct:
		res.Status = StatusLosing
	default:
		res.Status = StatusMaintaining
	}

	res.Headline, res.Subtext = phrasing(exercise, res.Status, latest.Timestamp)
	return res
}

// confidence grades history depth. Stale history is never better than
// low, regardless of how much of it there is.
func confidence(sessionCount int, recent bool) Confidence {
	if !recent {
		return ConfidenceLow
	}
	switch {
	case sessionCount >= 10:
		return ConfidenceHigh
	case sessionCount >= 5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// detectPlateau compares the min/max of a trailing window rather than
// checking strict equality, to tolerate small loading noise.
func detectPlateau(sessions []Session, cfg TrendConfig, bodyweight bool) (bool, string) {
	if len(sessions) < cfg.PlateauWindow || cfg.PlateauWindow < 2 {
		return false, ""
	}
	window := sessions[:cfg.PlateauWindow]

	if bodyweight {
		minReps, maxReps := window[0].MaxReps, window[0].MaxReps
		for _, s := range window[1:] {
			minReps = min(minReps, s.MaxReps)
			maxReps = max(maxReps, s.MaxReps)
		}
		if maxReps-minReps <= cfg.PlateauRepBand {
			return true, fmt.Sprintf("reps held within ±%d for the last %d sessions", cfg.PlateauRepBand, cfg.PlateauWindow)
		}
		return false, ""
	}

	minW, maxW := window[0].MaxWeightKg, window[0].MaxWeightKg
	for _, s := range window[1:] {
		minW = math.Min(minW, s.MaxWeightKg)
		maxW = math.Max(maxW, s.MaxWeightKg)
	}
	if maxW <= 0 {
		return false, ""
	}
	if (maxW-minW)/maxW <= cfg.PlateauTolerancePct {
		return true, fmt.Sprintf("top weight held within %.1f%% for the last %d sessions",
			cfg.PlateauTolerancePct*100, cfg.PlateauWindow)
	}
	return false, ""
}

// smoothedSlope EMA-smooths the primary signal (estimated 1RM, or max
// reps for bodyweight-like exercises) in chronological order and returns
// the relative change across the trailing window.
func smoothedSlope(sessions []Session, cfg TrendConfig, bodyweight bool) (float64, string) {
	// sessions are most-recent-first; the EMA wants chronological order.
	points := make([]Point, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		v := s.OneRepMax
		if bodyweight {
			v = float64(s.MaxReps)
		}
		if v <= 0 {
			v = math.NaN() // bad sample, carried over by the EMA
		}
		points = append(points, Point{Time: s.Date, Value: v})
	}

	smoothed := EMA(points, cfg.HalfLifeDays)

	window := cfg.PlateauWindow
	if window >= len(smoothed) {
		window = len(smoothed) - 1
	}
	if window < 1 {
		return 0, "not enough smoothed history"
	}

	last := smoothed[len(smoothed)-1].Smoothed
	ref := smoothed[len(smoothed)-1-window].Smoothed
	if math.IsNaN(last) || math.IsNaN(ref) || ref == 0 {
		return 0, "signal has gaps across the trailing window"
	}

	slope := (last - ref) / ref
	signal := "est. 1RM"
	if bodyweight {
		signal = "max reps"
	}
	return slope, fmt.Sprintf("smoothed %s changed %+.1f%% across the last %d sessions", signal, slope*100, window)
}

// Phrasing candidates per status. Selection is a deterministic function
// of (exercise, status, latest session timestamp) so the same inputs
// always render the same text.
var headlines = map[Status][]string{
	StatusBaseline: {
		"Building a baseline",
		"Early days",
		"Still warming up the data",
	},
	StatusPlateau: {
		"Progress has stalled",
		"Stuck at the same load",
		"Holding pattern",
	},
	StatusGaining: {
		"Progressive overload is working",
		"Trending up",
		"Strength is climbing",
	},
	StatusLosing: {
		"Sliding backwards",
		"Strength is dipping",
		"Losing ground",
	},
	StatusMaintaining: {
		"Holding steady",
		"Maintaining strength",
		"Keeping the gains",
	},
}

var subtexts = map[Status][]string{
	StatusBaseline: {
		"Log a few more sessions to unlock trend analysis.",
		"Not enough history for a reliable read yet.",
		"A trend needs more data points than this.",
	},
	StatusPlateau: {
		"Consider a deload or a change of rep ranges.",
		"The last few sessions landed in the same narrow band.",
		"Time to shake up volume or intensity.",
	},
	StatusGaining: {
		"Keep riding the current programming.",
		"The smoothed trend line points up.",
		"Recent sessions beat your running average.",
	},
	StatusLosing: {
		"Check recovery, sleep and nutrition.",
		"Recent sessions fall below your running average.",
		"A planned deload may be due.",
	},
	StatusMaintaining: {
		"Holding current strength without much change.",
		"Signal is flat but not pinned to a plateau band.",
		"Steady work, steady results.",
	},
}

// phrasing picks a headline/subtext pair deterministically.
func phrasing(exercise string, status Status, latest time.Time) (string, string) {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s|%d", exercise, status, latest.Unix())
	seed := h.Sum32()

	hs := headlines[status]
	ss := subtexts[status]
	return hs[int(seed)%len(hs)], ss[int(seed>>8)%len(ss)]
}
