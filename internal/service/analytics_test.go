package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aree6/LiftShift-sub002/internal/analysis"
	"github.com/aree6/LiftShift-sub002/internal/muscles"
	"github.com/aree6/LiftShift-sub002/internal/volume"
	"github.com/aree6/LiftShift-sub002/internal/workout"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testAnalytics(t *testing.T) *Analytics {
	t.Helper()
	return NewAnalytics(muscles.DefaultLookup(), WithLogger(quietLogger()))
}

func benchSession(day int, weightKg float64) []workout.Set {
	at := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC).AddDate(0, 0, day)
	return []workout.Set{
		{Exercise: "Bench Press (Barbell)", PerformedAt: at, WeightKg: weightKg, Reps: 5, Ordinal: 1},
		{Exercise: "Bench Press (Barbell)", PerformedAt: at, WeightKg: weightKg, Reps: 5, Ordinal: 2},
	}
}

func testDataset() *Dataset {
	var sets []workout.Set
	for i, w := range []float64{100, 102.5, 105, 107.5} {
		sets = append(sets, benchSession(i*7, w)...)
	}
	return &Dataset{Name: "main", Sets: sets}
}

func TestMuscleVolumeMemoized(t *testing.T) {
	a := testAnalytics(t)
	ds := testDataset()
	ctx := context.Background()

	first, err := a.MuscleVolume(ctx, ds, volume.Weekly)
	require.NoError(t, err)
	second, err := a.MuscleVolume(ctx, ds, volume.Weekly)
	require.NoError(t, err)

	// Cache hit returns the identical result value.
	assert.Same(t, first, second)

	// A different period is a different cache key.
	monthly, err := a.MuscleVolume(ctx, ds, volume.Monthly)
	require.NoError(t, err)
	assert.NotSame(t, first, monthly)
}

func TestFingerprintChangeRecomputes(t *testing.T) {
	a := testAnalytics(t)
	ds := testDataset()
	ctx := context.Background()

	first, err := a.MuscleVolume(ctx, ds, volume.Weekly)
	require.NoError(t, err)

	ds.Sets = append(ds.Sets, benchSession(28, 110)...)
	second, err := a.MuscleVolume(ctx, ds, volume.Weekly)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Greater(t, len(second.Series), len(first.Series)-1)
}

func TestFingerprintStableAcrossOrder(t *testing.T) {
	ds := testDataset()
	fp := ds.Fingerprint()

	// Reversing set order leaves name, size and latest timestamp alone.
	for i, j := 0, len(ds.Sets)-1; i < j; i, j = i+1, j-1 {
		ds.Sets[i], ds.Sets[j] = ds.Sets[j], ds.Sets[i]
	}
	assert.Equal(t, fp, ds.Fingerprint())

	ds.Sets = ds.Sets[:len(ds.Sets)-1]
	assert.NotEqual(t, fp, ds.Fingerprint())
}

func TestTrendsSortedAndClassified(t *testing.T) {
	a := testAnalytics(t)
	now := time.Date(2024, 1, 23, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	ds := testDataset()
	for i, w := range []float64{60, 60, 60, 60} {
		at := time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC).AddDate(0, 0, i*7)
		ds.Sets = append(ds.Sets, workout.Set{Exercise: "Squat (Barbell)", PerformedAt: at, WeightKg: w, Reps: 5})
	}

	trends, err := a.Trends(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, trends, 2)

	assert.Equal(t, "Bench Press (Barbell)", trends[0].Exercise)
	assert.Equal(t, "Squat (Barbell)", trends[1].Exercise)
	assert.Equal(t, analysis.StatusGaining, trends[0].Status)
	assert.Equal(t, analysis.StatusPlateau, trends[1].Status)
}

func TestPersonalRecords(t *testing.T) {
	a := testAnalytics(t)
	ds := testDataset()

	prs, err := a.PersonalRecords(context.Background(), ds)
	require.NoError(t, err)
	require.Contains(t, prs, "Bench Press (Barbell)")
	assert.Equal(t, 107.5, prs["Bench Press (Barbell)"].WeightKg)
}

func TestDashboard(t *testing.T) {
	a := testAnalytics(t)
	now := time.Date(2024, 1, 23, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }
	ds := testDataset()

	d, err := a.Dashboard(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, 8, d.TotalSets)
	assert.Equal(t, 1, d.ExerciseCount)
	assert.Equal(t, 1, d.RecordCount)
	assert.Equal(t, 1, d.GainingCount)
	assert.Equal(t, 0, d.InactiveCount)
	assert.InDelta(t, 4150, d.TotalVolumeKg, 0.001)
	assert.True(t, d.FirstWorkout.Before(d.LastWorkout))
	require.NotNil(t, d.WeeklyVolume)
	assert.Len(t, d.WeeklyVolume.Series, 4)
}

func TestInvalidateAll(t *testing.T) {
	a := testAnalytics(t)
	ds := testDataset()
	ctx := context.Background()

	first, err := a.MuscleVolume(ctx, ds, volume.Weekly)
	require.NoError(t, err)

	a.InvalidateAll()
	second, err := a.MuscleVolume(ctx, ds, volume.Weekly)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}
