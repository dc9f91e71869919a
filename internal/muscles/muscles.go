// Package muscles provides the static exercise-to-muscle reference data:
// which muscles an exercise targets, and how individual muscles roll up
// into anatomical groups for volume propagation.
package muscles

// Muscle identifies a single tracked muscle.
type Muscle string

const (
	FrontDelts Muscle = "Front Delts"
	SideDelts  Muscle = "Side Delts"
	RearDelts  Muscle = "Rear Delts"
	Chest      Muscle = "Chest"
	Biceps     Muscle = "Biceps"
	Triceps    Muscle = "Triceps"
	Forearms   Muscle = "Forearms"
	Lats       Muscle = "Lats"
	UpperBack  Muscle = "Upper Back"
	LowerBack  Muscle = "Lower Back"
	Traps      Muscle = "Traps"
	Abs        Muscle = "Abs"
	Obliques   Muscle = "Obliques"
	Quads      Muscle = "Quads"
	Hamstrings Muscle = "Hamstrings"
	Glutes     Muscle = "Glutes"
	Adductors  Muscle = "Adductors"
	Abductors  Muscle = "Abductors"
	Calves     Muscle = "Calves"
	Neck       Muscle = "Neck"
)

// Sentinel primary-muscle values with non-standard volume attribution.
// FullBody contributes one set-equivalent to every tracked muscle;
// Cardio contributes to none.
const (
	FullBody Muscle = "Full Body"
	Cardio   Muscle = "Cardio"
)

// Tracked lists every muscle that receives volume attribution, in a
// stable display order. Full Body exercises contribute to all of these.
var Tracked = []Muscle{
	FrontDelts, SideDelts, RearDelts,
	Chest,
	Biceps, Triceps, Forearms,
	Lats, UpperBack, LowerBack, Traps,
	Abs, Obliques,
	Quads, Hamstrings, Glutes, Adductors, Abductors, Calves,
	Neck,
}

// Groups maps an anatomical group name to its member muscles. After
// volume accumulation, every member of a group is raised to the maximum
// volume attributed to any single member, so a body map lights up the
// whole region when one head is the primary target. Muscles absent from
// this table are singleton groups with no propagation partners.
var Groups = map[string][]Muscle{
	"Shoulders": {FrontDelts, SideDelts, RearDelts},
}

// GroupOf returns the propagation partners of a muscle, including the
// muscle itself. Singleton muscles return a one-element slice.
func GroupOf(m Muscle) []Muscle {
	for _, members := range Groups {
		for _, member := range members {
			if member == m {
				return members
			}
		}
	}
	return []Muscle{m}
}
