// Package workout defines the canonical workout log records shared by the
// ingestion and analysis layers. All weights are stored in kilograms;
// converting to a display unit is a pure function that never mutates the
// stored value.
package workout

import (
	"math"
	"time"
)

// LbsPerKg is the conversion factor between kilograms and pounds.
const LbsPerKg = 2.2046226218

// Unit is a weight display unit.
type Unit string

const (
	UnitKg  Unit = "kg"
	UnitLbs Unit = "lbs"
)

// Valid reports whether the unit is one of the supported weight units.
func (u Unit) Valid() bool {
	return u == UnitKg || u == UnitLbs
}

// SetType tags a set as warm-up vs working. The zero value means the
// source export did not distinguish set types.
type SetType string

const (
	SetTypeNormal  SetType = "normal"
	SetTypeWarmup  SetType = "warmup"
	SetTypeFailure SetType = "failure"
	SetTypeDrop    SetType = "dropset"
)

// Set is one logged set of an exercise. It is created once during
// normalization and immutable afterwards.
type Set struct {
	Exercise    string    // exercise title as logged
	PerformedAt time.Time // session start, local time
	WeightKg    float64   // canonical unit, always kilograms
	Reps        int
	Ordinal     int      // set index within the session, 1-based when known
	Type        SetType  // optional, empty when the export has no set type
	RPE         *float64 // perceived exertion, nil when not logged
}

// Volume returns the set volume in kg·reps.
func (s Set) Volume() float64 {
	return s.WeightKg * float64(s.Reps)
}

// ToKg converts a weight value expressed in the given unit to kilograms.
func ToKg(value float64, unit Unit) float64 {
	if unit == UnitLbs {
		return value / LbsPerKg
	}
	return value
}

// ToDisplay converts a stored kilogram weight to the given display unit,
// rounded to one decimal. Display conversion is intentionally lossy; the
// stored kilogram value keeps full precision.
func ToDisplay(kg float64, unit Unit) float64 {
	v := kg
	if unit == UnitLbs {
		v = kg * LbsPerKg
	}
	return math.Round(v*10) / 10
}
