// Package analysis derives the trend surfaces of the training dashboard:
// per-exercise session histories, personal records, and a rule-based
// progress classification driven by time-aware exponential smoothing.
package analysis

import (
	"math"
	"time"
)

// DefaultHalfLifeDays is the default EMA half-life. 21 days suppresses
// single-session noise while still reacting to a true 2-4 week shift in
// performance.
const DefaultHalfLifeDays = 21.0

// Point is one sample of an irregularly-spaced time series. A NaN value
// marks a missing sample.
type Point struct {
	Time  time.Time
	Value float64
}

// SmoothedPoint pairs a raw sample with its smoothed value.
type SmoothedPoint struct {
	Time     time.Time
	Value    float64
	Smoothed float64
}

// EMA computes a time-aware exponential moving average. Unlike a
// standard EMA the decay depends on the elapsed time between consecutive
// points, not the point index:
//
//	alpha = 1 - exp(-ln(2) * dtDays / halfLifeDays)
//
// which generalizes smoothing to irregularly spaced training sessions.
// The first valid point seeds the smoothed value with the raw value.
// Missing (NaN) values carry the previous smoothed value forward without
// advancing the previous-timestamp cursor, so a gap of bad samples does
// not corrupt the running estimate.
func EMA(points []Point, halfLifeDays float64) []SmoothedPoint {
	if halfLifeDays <= 0 {
		halfLifeDays = DefaultHalfLifeDays
	}

	out := make([]SmoothedPoint, 0, len(points))
	var (
		smoothed float64
		prevTime time.Time
		seeded   bool
	)

	for _, p := range points {
		if math.IsNaN(p.Value) {
			if seeded {
				out = append(out, SmoothedPoint{Time: p.Time, Value: p.Value, Smoothed: smoothed})
			} else {
				out = append(out, SmoothedPoint{Time: p.Time, Value: p.Value, Smoothed: math.NaN()})
			}
			continue
		}

		if !seeded {
			smoothed = p.Value
			prevTime = p.Time
			seeded = true
			out = append(out, SmoothedPoint{Time: p.Time, Value: p.Value, Smoothed: smoothed})
			continue
		}

		dtDays := p.Time.Sub(prevTime).Hours() / 24
		if dtDays < 0 {
			dtDays = 0
		}
		alpha := 1 - math.Exp(-math.Ln2*dtDays/halfLifeDays)
		smoothed += alpha * (p.Value - smoothed)
		prevTime = p.Time

		out = append(out, SmoothedPoint{Time: p.Time, Value: p.Value, Smoothed: smoothed})
	}

	return out
}
