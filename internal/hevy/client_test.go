package hevy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aree6/LiftShift-sub002/internal/workout"
)

func pageBody(page, pageCount int, workouts string) string {
	return fmt.Sprintf(`{"page":%d,"page_count":%d,"workouts":[%s]}`, page, pageCount, workouts)
}

const benchWorkout = `{
	"id": "w-1",
	"title": "Push Day",
	"start_time": "2024-03-12T18:00:00Z",
	"end_time": "2024-03-12T19:05:00Z",
	"exercises": [{
		"index": 0,
		"title": "Bench Press (Barbell)",
		"sets": [
			{"index": 0, "type": "warmup", "weight_kg": 60, "reps": 10},
			{"index": 1, "type": "normal", "weight_kg": 100, "reps": 5, "rpe": 8.5}
		]
	}]
}`

func TestGetWorkouts(t *testing.T) {
	var gotKey, gotPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		gotPage = r.URL.Query().Get("page")
		fmt.Fprint(w, pageBody(1, 1, benchWorkout))
	}))
	defer srv.Close()

	client := NewClient("secret", WithBaseURL(srv.URL))
	workouts, pageCount, err := client.GetWorkouts(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "1", gotPage)
	assert.Equal(t, 1, pageCount)
	require.Len(t, workouts, 1)
	assert.Equal(t, "Push Day", workouts[0].Title)
	require.Len(t, workouts[0].Exercises, 1)
	assert.Len(t, workouts[0].Exercises[0].Sets, 2)
}

func TestGetAllWorkoutsPaginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, pageBody(1, 2, benchWorkout))
		case "2":
			fmt.Fprint(w, pageBody(2, 2, `{"id":"w-2","title":"Pull Day","start_time":"2024-03-14T18:00:00Z","exercises":[]}`))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	client := NewClient("secret", WithBaseURL(srv.URL))
	var progress []int
	workouts, err := client.GetAllWorkouts(context.Background(), func(fetched, total int) {
		progress = append(progress, fetched)
	})
	require.NoError(t, err)

	require.Len(t, workouts, 2)
	assert.Equal(t, "w-1", workouts[0].ID)
	assert.Equal(t, "w-2", workouts[1].ID)
	assert.Equal(t, []int{1, 2}, progress)
}

func TestGetAllWorkoutsProgressTotalOnPartialLastPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, pageBody(1, 2, benchWorkout+","+benchWorkout))
		case "2":
			fmt.Fprint(w, pageBody(2, 2, benchWorkout))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	client := NewClient("secret", WithBaseURL(srv.URL))
	var totals []int
	workouts, err := client.GetAllWorkouts(context.Background(), func(fetched, total int) {
		totals = append(totals, total)
	})
	require.NoError(t, err)
	require.Len(t, workouts, 3)

	// The last page was partial, so the final total matches the fetched
	// count instead of the page-size estimate.
	require.NotEmpty(t, totals)
	assert.Equal(t, 3, totals[len(totals)-1])
}

func TestGetWorkoutCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/workouts/count", r.URL.Path)
		fmt.Fprint(w, `{"workout_count": 137}`)
	}))
	defer srv.Close()

	client := NewClient("secret", WithBaseURL(srv.URL))
	count, err := client.GetWorkoutCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 137, count)
}

func TestBadAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("wrong", WithBaseURL(srv.URL))
	_, _, err := client.GetWorkouts(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBadAPIKey)
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient("secret", WithBaseURL(srv.URL))
	_, _, err := client.GetWorkouts(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error 500")
}

func TestSetsFlattening(t *testing.T) {
	weight := 100.0
	reps := 5
	rpe := 8.5
	workouts := []Workout{{
		ID:        "w-1",
		StartTime: "2024-03-12T18:00:00Z",
		Exercises: []Exercise{{
			Title: "Bench Press (Barbell)",
			Sets: []APISet{
				{Index: 0, Type: "warmup", WeightKg: &weight, Reps: &reps},
				{Index: 1, Type: "normal", WeightKg: &weight, Reps: &reps, RPE: &rpe},
				{Index: 2, Type: "dropset"},
			},
		}},
	}}

	sets, errs := Sets(workouts)
	require.Empty(t, errs)
	require.Len(t, sets, 3)

	assert.Equal(t, "Bench Press (Barbell)", sets[0].Exercise)
	assert.Equal(t, workout.SetTypeWarmup, sets[0].Type)
	assert.Equal(t, 1, sets[0].Ordinal)
	assert.Equal(t, 100.0, sets[0].WeightKg)

	assert.Equal(t, workout.SetTypeNormal, sets[1].Type)
	require.NotNil(t, sets[1].RPE)
	assert.Equal(t, 8.5, *sets[1].RPE)

	// Duration-only set: no weight, no reps.
	assert.Equal(t, workout.SetTypeDrop, sets[2].Type)
	assert.Equal(t, 0.0, sets[2].WeightKg)
	assert.Equal(t, 0, sets[2].Reps)
}

func TestSetsBadTimestampReported(t *testing.T) {
	workouts := []Workout{
		{ID: "w-1", StartTime: "not a time", Exercises: []Exercise{{Title: "Squat", Sets: []APISet{{}}}}},
		{ID: "w-2", StartTime: "2024-03-12T18:00:00Z", Exercises: []Exercise{{Title: "Squat", Sets: []APISet{{}}}}},
	}

	sets, errs := Sets(workouts)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "w-1")
	require.Len(t, sets, 1)
}
