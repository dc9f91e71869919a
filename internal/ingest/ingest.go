// Package ingest normalizes raw workout log exports into canonical
// workout.Set records. It accepts the CSV layouts of several source
// platforms plus a generic fallback, detects the layout by inspecting
// the header row, and tolerates partial corruption: a malformed row is
// skipped with a warning, only structural problems abort the parse.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aree6/LiftShift-sub002/internal/workout"
)

// ErrMalformedInput is returned when a required column is absent from
// the whole file. Nothing is partially returned in that case.
var ErrMalformedInput = errors.New("malformed input")

// ErrDateFormatMismatch is returned when the majority of rows fail date
// parsing under every supported format. It is surfaced distinctly from
// ErrMalformedInput so callers can show language/locale guidance instead
// of a generic parse error.
var ErrDateFormatMismatch = errors.New("date format mismatch")

// Platform identifies the source export layout.
type Platform string

const (
	PlatformHevy     Platform = "hevy"
	PlatformStrong   Platform = "strong"
	PlatformFitNotes Platform = "fitnotes"
	PlatformGeneric  Platform = "generic"
)

// Options controls normalization. Unit is the unit of the file's weight
// column; it defaults to kilograms. Layouts whose weight column is
// explicitly kilograms (e.g. Hevy's weight_kg) ignore it.
type Options struct {
	Unit workout.Unit
}

// Warning records a single skipped row. Row numbers are 1-based and
// include the header row, matching what a user sees in a spreadsheet.
type Warning struct {
	Row    int
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d: %s", w.Row, w.Reason)
}

// Result is the outcome of a successful normalization.
type Result struct {
	Sets     []workout.Set
	Warnings []Warning
	Platform Platform
}

// Normalize parses raw export text into canonical sets. It performs no
// I/O; the caller supplies the text. Weight values are converted to
// kilograms during parsing so everything downstream is unit-agnostic.
func Normalize(rawText string, opts Options) (*Result, error) {
	unit := opts.Unit
	if !unit.Valid() {
		unit = workout.UnitKg
	}

	reader := csv.NewReader(strings.NewReader(rawText))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input, header row required", ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrMalformedInput, err)
	}

	lay, err := detectLayout(header)
	if err != nil {
		return nil, err
	}
	if lay.forceKg {
		unit = workout.UnitKg
	}

	result := &Result{Platform: lay.platform}
	row := 1
	dataRows := 0
	dateFailures := 0

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			result.Warnings = append(result.Warnings, Warning{Row: row, Reason: fmt.Sprintf("unreadable row: %v", err)})
			continue
		}
		if isBlank(rec) {
			continue
		}
		dataRows++

		set, warn := lay.parseRow(rec, unit)
		if warn != "" {
			if strings.HasPrefix(warn, dateWarnPrefix) {
				dateFailures++
			}
			result.Warnings = append(result.Warnings, Warning{Row: row, Reason: warn})
			continue
		}
		result.Sets = append(result.Sets, set)
	}

	// When most of the file fails date parsing the export is almost
	// certainly in an unsupported locale or format. Surfacing that beats
	// silently returning a near-empty dataset.
	if dataRows > 0 && dateFailures*2 > dataRows {
		return nil, fmt.Errorf("%w: %d of %d rows have unparseable dates", ErrDateFormatMismatch, dateFailures, dataRows)
	}

	return result, nil
}

const dateWarnPrefix = "unparseable date"

// columnSet holds resolved column indexes; -1 means the column is absent.
type columnSet struct {
	exercise int
	date     int
	weight   int
	reps     int
	ordinal  int
	setType  int
	rpe      int
}

type layout struct {
	platform    Platform
	cols        columnSet
	dateLayouts []string
	forceKg     bool
	zeroOrdinal bool // source counts set indexes from 0
}

// Candidate column names for the generic fallback layout.
var (
	genericExerciseCols = []string{"exercise", "exercise name", "exercise_title", "title", "movement"}
	genericDateCols     = []string{"date", "start_time", "start time", "timestamp", "datetime", "workout date", "time"}
	genericWeightCols   = []string{"weight", "weight_kg", "weight (kg)", "weight kg", "load"}
	genericRepsCols     = []string{"reps", "repetitions", "rep count"}
)

// Generic exports come from many tools, so the fallback accepts several
// human-readable date formats in addition to ISO timestamps.
var genericDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2 Jan 2006, 15:04",
	"Jan 2, 2006, 3:04 PM",
	"02/01/2006 15:04",
	"02/01/2006",
}

// detectLayout resolves the column layout once from the header row.
// Platform detection is by header inspection, never by a caller flag.
func detectLayout(header []string) (layout, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff") // UTF-8 BOM on the first cell
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	idx := func(names ...string) int {
		for _, name := range names {
			for i, h := range normalized {
				if h == name {
					return i
				}
			}
		}
		return -1
	}
	has := func(name string) bool { return idx(name) >= 0 }

	var lay layout
	switch {
	case has("exercise_title") && has("weight_kg"):
		lay = layout{
			platform: PlatformHevy,
			cols: columnSet{
				exercise: idx("exercise_title"),
				date:     idx("start_time"),
				weight:   idx("weight_kg"),
				reps:     idx("reps"),
				ordinal:  idx("set_index"),
				setType:  idx("set_type"),
				rpe:      idx("rpe"),
			},
			dateLayouts: []string{"2 Jan 2006, 15:04", "Jan 2, 2006, 3:04 PM"},
			forceKg:     true,
			zeroOrdinal: true,
		}
	case has("exercise name") && has("date"):
		lay = layout{
			platform: PlatformStrong,
			cols: columnSet{
				exercise: idx("exercise name"),
				date:     idx("date"),
				weight:   idx("weight"),
				reps:     idx("reps"),
				ordinal:  idx("set order"),
				rpe:      idx("rpe"),
				setType:  -1,
			},
			dateLayouts: []string{"2006-01-02 15:04:05", "Jan 2, 2006, 3:04 PM"},
		}
	case has("exercise") && has("category") && has("date"):
		lay = layout{
			platform: PlatformFitNotes,
			cols: columnSet{
				exercise: idx("exercise"),
				date:     idx("date"),
				weight:   idx("weight", "weight (kg)"),
				reps:     idx("reps"),
				ordinal:  -1,
				setType:  -1,
				rpe:      -1,
			},
			dateLayouts: []string{"2006-01-02"},
		}
		if idx("weight (kg)") >= 0 {
			lay.forceKg = true
		}
	default:
		lay = layout{
			platform: PlatformGeneric,
			cols: columnSet{
				exercise: idx(genericExerciseCols...),
				date:     idx(genericDateCols...),
				weight:   idx(genericWeightCols...),
				reps:     idx(genericRepsCols...),
				ordinal:  idx("set_index", "set order", "set"),
				setType:  idx("set_type", "set type"),
				rpe:      idx("rpe"),
			},
			dateLayouts: genericDateLayouts,
		}
		if w := idx("weight_kg", "weight (kg)", "weight kg"); w >= 0 {
			lay.forceKg = true
		}
	}

	for _, missing := range []struct {
		col  int
		name string
	}{
		{lay.cols.exercise, "exercise"},
		{lay.cols.date, "date"},
		{lay.cols.weight, "weight"},
		{lay.cols.reps, "reps"},
	} {
		if missing.col < 0 {
			return layout{}, fmt.Errorf("%w: required column %q not found (%s layout)", ErrMalformedInput, missing.name, lay.platform)
		}
	}

	return lay, nil
}

// parseRow converts one record to a canonical set. A non-empty warning
// means the row is skipped.
func (l layout) parseRow(rec []string, unit workout.Unit) (workout.Set, string) {
	field := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	exercise := field(l.cols.exercise)
	if exercise == "" {
		return workout.Set{}, "missing exercise name"
	}

	dateStr := field(l.cols.date)
	performedAt, ok := parseDate(dateStr, l.dateLayouts)
	if !ok {
		return workout.Set{}, fmt.Sprintf("%s %q", dateWarnPrefix, dateStr)
	}

	weightKg := 0.0
	if w := field(l.cols.weight); w != "" {
		v, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return workout.Set{}, fmt.Sprintf("non-numeric weight %q", w)
		}
		if v < 0 {
			return workout.Set{}, fmt.Sprintf("negative weight %q", w)
		}
		weightKg = workout.ToKg(v, unit)
	}

	reps := 0
	if r := field(l.cols.reps); r != "" {
		v, err := strconv.Atoi(r)
		if err != nil || v < 0 {
			return workout.Set{}, fmt.Sprintf("invalid rep count %q", r)
		}
		reps = v
	}

	set := workout.Set{
		Exercise:    exercise,
		PerformedAt: performedAt,
		WeightKg:    weightKg,
		Reps:        reps,
		Type:        parseSetType(field(l.cols.setType)),
	}

	if o := field(l.cols.ordinal); o != "" {
		if v, err := strconv.Atoi(o); err == nil {
			if l.zeroOrdinal {
				v++
			}
			set.Ordinal = v
		}
	}
	if r := field(l.cols.rpe); r != "" {
		if v, err := strconv.ParseFloat(r, 64); err == nil {
			set.RPE = &v
		}
	}

	return set, ""
}

// parseDate tries each supported layout in order. Times are interpreted
// as timezone-naive local time.
func parseDate(s string, layouts []string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, lay := range layouts {
		if t, err := time.ParseInLocation(lay, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseSetType(s string) workout.SetType {
	switch strings.ToLower(s) {
	case "warmup", "warm-up", "warm up":
		return workout.SetTypeWarmup
	case "failure":
		return workout.SetTypeFailure
	case "dropset", "drop set":
		return workout.SetTypeDrop
	case "normal", "working":
		return workout.SetTypeNormal
	default:
		return workout.SetType(strings.ToLower(s))
	}
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
