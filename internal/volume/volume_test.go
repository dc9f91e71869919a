package volume

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aree6/LiftShift-sub002/internal/muscles"
	"github.com/aree6/LiftShift-sub002/internal/workout"
)

func testLookup() *muscles.Lookup {
	return muscles.NewLookup([]muscles.ExerciseMuscleData{
		{Exercise: "Bench Press (Barbell)", Primary: muscles.Chest, Secondary: []muscles.Muscle{muscles.FrontDelts, muscles.Triceps}},
		{Exercise: "Lateral Raise (Dumbbell)", Primary: muscles.SideDelts},
		{Exercise: "Front Raise (Dumbbell)", Primary: muscles.FrontDelts},
		{Exercise: "Kettlebell Swing", Primary: muscles.FullBody},
		{Exercise: "Running", Primary: muscles.Cardio},
		{Exercise: "Bicep Curl (Barbell)", Primary: muscles.Biceps, Secondary: []muscles.Muscle{muscles.Forearms}},
	})
}

func setsOn(exercise string, t time.Time, n int) []workout.Set {
	sets := make([]workout.Set, n)
	for i := range sets {
		sets[i] = workout.Set{Exercise: exercise, PerformedAt: t, WeightKg: 50, Reps: 8, Ordinal: i + 1}
	}
	return sets
}

var tuesday = time.Date(2024, 3, 12, 18, 0, 0, 0, time.Local)

func TestExerciseVolumesWeighting(t *testing.T) {
	lookup := testLookup()
	bench, _ := lookup.Get("Bench Press (Barbell)")

	vols := ExerciseVolumes(bench)
	assert.Equal(t, 1.0, vols[muscles.Chest])
	// Each secondary receives the full 0.5, not a divided share.
	assert.Equal(t, 0.5, vols[muscles.FrontDelts])
	assert.Equal(t, 0.5, vols[muscles.Triceps])
	assert.Len(t, vols, 3)
}

func TestExerciseVolumesCardio(t *testing.T) {
	lookup := testLookup()
	running, _ := lookup.Get("Running")
	assert.Empty(t, ExerciseVolumes(running))
}

func TestExerciseVolumesFullBody(t *testing.T) {
	lookup := testLookup()
	swing, _ := lookup.Get("Kettlebell Swing")

	vols := ExerciseVolumes(swing)
	require.Len(t, vols, len(muscles.Tracked))
	for _, m := range muscles.Tracked {
		assert.Equalf(t, 1.0, vols[m], "muscle %s", m)
	}
}

func TestTotalsFullBodyThreeSets(t *testing.T) {
	entries := Totals(setsOn("Kettlebell Swing", tuesday, 3), testLookup())

	for _, m := range muscles.Tracked {
		require.Containsf(t, entries, m, "muscle %s", m)
		assert.Equalf(t, 3.0, entries[m].Sets, "muscle %s", m)
		assert.Equal(t, 3.0, entries[m].ByExercise["Kettlebell Swing"])
	}
}

func TestTotalsPropagation(t *testing.T) {
	// Volume lands only on Front Delts; the whole Shoulders group must
	// reflect it, and Front Delts itself is unchanged.
	entries := Totals(setsOn("Front Raise (Dumbbell)", tuesday, 2), testLookup())

	require.Contains(t, entries, muscles.FrontDelts)
	assert.Equal(t, 2.0, entries[muscles.FrontDelts].Sets)
	require.Contains(t, entries, muscles.SideDelts)
	assert.GreaterOrEqual(t, entries[muscles.SideDelts].Sets, 2.0)
	require.Contains(t, entries, muscles.RearDelts)
	assert.GreaterOrEqual(t, entries[muscles.RearDelts].Sets, 2.0)

	// Propagated members carry no exercise breakdown of their own.
	assert.Empty(t, entries[muscles.SideDelts].ByExercise)
}

func TestTotalsPropagationKeepsHigherMember(t *testing.T) {
	sets := append(setsOn("Front Raise (Dumbbell)", tuesday, 1), setsOn("Lateral Raise (Dumbbell)", tuesday, 4)...)
	entries := Totals(sets, testLookup())

	// Side delts had 4 raw sets; front delts rise to match, side delts
	// are never lowered.
	assert.Equal(t, 4.0, entries[muscles.SideDelts].Sets)
	assert.Equal(t, 4.0, entries[muscles.FrontDelts].Sets)
	assert.Equal(t, 4.0, entries[muscles.RearDelts].Sets)
}

func TestTotalsUnknownExerciseSkipped(t *testing.T) {
	entries := Totals(setsOn("Mystery Machine Press", tuesday, 5), testLookup())
	assert.Empty(t, entries)
}

func TestPropagateDirect(t *testing.T) {
	volumes := map[muscles.Muscle]float64{muscles.FrontDelts: 2}
	Propagate(volumes)

	assert.Equal(t, 2.0, volumes[muscles.FrontDelts])
	assert.Equal(t, 2.0, volumes[muscles.SideDelts])
	assert.Equal(t, 2.0, volumes[muscles.RearDelts])

	// Singleton muscles have no propagation partners.
	volumes = map[muscles.Muscle]float64{muscles.Biceps: 3}
	Propagate(volumes)
	assert.Equal(t, map[muscles.Muscle]float64{muscles.Biceps: 3}, volumes)
}

func TestAggregateEmptyInput(t *testing.T) {
	res := Aggregate(nil, testLookup(), Weekly)
	assert.Empty(t, res.Series)
	assert.Empty(t, res.MuscleKeys)
}

func TestAggregateDaily(t *testing.T) {
	wednesday := tuesday.AddDate(0, 0, 1)
	sets := append(setsOn("Bench Press (Barbell)", tuesday, 3), setsOn("Bicep Curl (Barbell)", wednesday, 2)...)

	res := Aggregate(sets, testLookup(), Daily)
	require.Len(t, res.Series, 2)

	assert.Equal(t, "2024-03-12", res.Series[0].Label)
	assert.Equal(t, 3.0, res.Series[0].Volumes[muscles.Chest])
	assert.Equal(t, 1.5, res.Series[0].Volumes[muscles.Triceps])

	assert.Equal(t, "2024-03-13", res.Series[1].Label)
	assert.Equal(t, 2.0, res.Series[1].Volumes[muscles.Biceps])
	assert.Equal(t, 1.0, res.Series[1].Volumes[muscles.Forearms])

	// Muscle keys cover every muscle present in any bucket, sorted.
	assert.Contains(t, res.MuscleKeys, muscles.Chest)
	assert.Contains(t, res.MuscleKeys, muscles.Forearms)
	assert.IsIncreasing(t, res.MuscleKeys)
}

func TestAggregateWeeklyBuckets(t *testing.T) {
	// Tuesday and Thursday share a week; the following Monday does not.
	thursday := tuesday.AddDate(0, 0, 2)
	nextMonday := tuesday.AddDate(0, 0, 6)

	sets := setsOn("Bicep Curl (Barbell)", tuesday, 1)
	sets = append(sets, setsOn("Bicep Curl (Barbell)", thursday, 1)...)
	sets = append(sets, setsOn("Bicep Curl (Barbell)", nextMonday, 1)...)

	res := Aggregate(sets, testLookup(), Weekly)
	require.Len(t, res.Series, 2)
	assert.Equal(t, "Week of Mar 11, 2024", res.Series[0].Label)
	assert.Equal(t, 2.0, res.Series[0].Volumes[muscles.Biceps])
	assert.Equal(t, "Week of Mar 18, 2024", res.Series[1].Label)
	assert.Equal(t, 1.0, res.Series[1].Volumes[muscles.Biceps])
}

func TestAggregateMonthlyBuckets(t *testing.T) {
	april := time.Date(2024, 4, 2, 10, 0, 0, 0, time.Local)
	sets := append(setsOn("Bicep Curl (Barbell)", tuesday, 2), setsOn("Bicep Curl (Barbell)", april, 3)...)

	res := Aggregate(sets, testLookup(), Monthly)
	require.Len(t, res.Series, 2)
	assert.Equal(t, "Mar 2024", res.Series[0].Label)
	assert.Equal(t, "Apr 2024", res.Series[1].Label)
	assert.Equal(t, 3.0, res.Series[1].Volumes[muscles.Biceps])
}

func TestAggregatePropagationPerBucket(t *testing.T) {
	res := Aggregate(setsOn("Front Raise (Dumbbell)", tuesday, 2), testLookup(), Daily)
	require.Len(t, res.Series, 1)

	row := res.Series[0].Volumes
	assert.Equal(t, 2.0, row[muscles.FrontDelts])
	assert.Equal(t, 2.0, row[muscles.SideDelts])
	assert.Equal(t, 2.0, row[muscles.RearDelts])

	// Propagated muscles appear in the key set too.
	assert.Contains(t, res.MuscleKeys, muscles.RearDelts)
}
