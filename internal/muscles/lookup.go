package muscles

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

//go:embed muscles.csv
var defaultTable []byte

// ExerciseMuscleData describes which muscles an exercise targets.
// Primary is exactly one muscle, or one of the FullBody/Cardio sentinels.
type ExerciseMuscleData struct {
	Exercise  string
	Equipment string
	Primary   Muscle
	Secondary []Muscle
}

// Lookup resolves exercise names to their muscle data. It is loaded once
// and read-only afterwards; construct one per process and inject it into
// the components that need it.
type Lookup struct {
	byName map[string]ExerciseMuscleData
}

// NewLookup builds a lookup from a list of entries. Later duplicates of
// the same exercise name win.
func NewLookup(entries []ExerciseMuscleData) *Lookup {
	byName := make(map[string]ExerciseMuscleData, len(entries))
	for _, e := range entries {
		byName[normalizeName(e.Exercise)] = e
	}
	return &Lookup{byName: byName}
}

// DefaultLookup loads the lookup table bundled with the binary.
func DefaultLookup() *Lookup {
	l, err := LoadLookup(strings.NewReader(string(defaultTable)))
	if err != nil {
		// The embedded table is validated by tests; a parse failure here
		// is a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded muscle table: %v", err))
	}
	return l
}

// LoadLookup parses a muscle table from CSV with the columns
// {exercise, equipment, primary muscle, secondary muscles}. The secondary
// column is a comma-separated list or "None".
func LoadLookup(r io.Reader) (*Lookup, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading muscle table: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("muscle table has no data rows")
	}

	var entries []ExerciseMuscleData
	for i, rec := range records[1:] { // skip header
		if len(rec) < 3 {
			return nil, fmt.Errorf("muscle table row %d: want at least 3 columns, got %d", i+2, len(rec))
		}
		entry := ExerciseMuscleData{
			Exercise:  strings.TrimSpace(rec[0]),
			Equipment: strings.TrimSpace(rec[1]),
			Primary:   Muscle(strings.TrimSpace(rec[2])),
		}
		if len(rec) > 3 {
			entry.Secondary = parseSecondary(rec[3])
		}
		if entry.Exercise == "" || entry.Primary == "" {
			return nil, fmt.Errorf("muscle table row %d: empty exercise or primary muscle", i+2)
		}
		entries = append(entries, entry)
	}

	return NewLookup(entries), nil
}

// Get resolves an exercise by case-insensitive exact name match.
// Fuzzy matching is owned by the presentation layer, not the core.
func (l *Lookup) Get(exercise string) (ExerciseMuscleData, bool) {
	e, ok := l.byName[normalizeName(exercise)]
	return e, ok
}

// Len returns the number of exercises in the table.
func (l *Lookup) Len() int {
	return len(l.byName)
}

func parseSecondary(field string) []Muscle {
	field = strings.TrimSpace(field)
	if field == "" || strings.EqualFold(field, "none") {
		return nil
	}
	parts := strings.Split(field, ",")
	secondary := make([]Muscle, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			secondary = append(secondary, Muscle(p))
		}
	}
	return secondary
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
