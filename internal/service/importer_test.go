package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aree6/LiftShift-sub002/internal/ingest"
	"github.com/aree6/LiftShift-sub002/internal/store"
	"github.com/aree6/LiftShift-sub002/internal/workout"
)

const strongCSV = `Date,Workout Name,Exercise Name,Set Order,Weight,Reps
2024-03-12 18:00:00,Push,Bench Press (Barbell),1,225,5
2024-03-12 18:05:00,Push,Bench Press (Barbell),2,225,4
`

func testImporter(t *testing.T) (*Importer, *store.Store) {
	t.Helper()
	st, err := store.OpenAt(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewImporter(st, quietLogger()), st
}

func TestImportAndLoad(t *testing.T) {
	im, st := testImporter(t)

	ds, result, err := im.Import("main", strongCSV, ingest.Options{Unit: workout.UnitLbs})
	require.NoError(t, err)
	assert.Equal(t, ingest.PlatformStrong, result.Platform)
	require.Len(t, ds.Sets, 2)
	assert.InDelta(t, 102.06, ds.Sets[0].WeightKg, 0.01)

	saved, err := st.GetDataset("main")
	require.NoError(t, err)
	assert.Equal(t, "strong", saved.Platform)
	assert.Equal(t, "lbs", saved.Unit)
	assert.Equal(t, 2, saved.SetCount)

	// Loading re-parses the stored raw text with the stored unit.
	loaded, err := im.Load("main")
	require.NoError(t, err)
	require.Len(t, loaded.Sets, 2)
	assert.InDelta(t, ds.Sets[0].WeightKg, loaded.Sets[0].WeightKg, 0.0001)
	assert.Equal(t, ds.Fingerprint(), loaded.Fingerprint())
}

func TestImportMalformed(t *testing.T) {
	im, _ := testImporter(t)

	_, _, err := im.Import("bad", "Exercise Name,Date\nBench,2024-01-01\n", ingest.Options{})
	assert.ErrorIs(t, err, ingest.ErrMalformedInput)
}

func TestLoadMissingDataset(t *testing.T) {
	im, _ := testImporter(t)

	_, err := im.Load("nope")
	assert.ErrorIs(t, err, store.ErrDatasetNotFound)
}
