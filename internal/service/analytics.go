// Package service orchestrates the analytics pipeline: it owns the
// muscle lookup, the result cache, and the classifier configuration, and
// exposes the derived views the rest of the application reads.
package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aree6/LiftShift-sub002/internal/analysis"
	"github.com/aree6/LiftShift-sub002/internal/cache"
	"github.com/aree6/LiftShift-sub002/internal/muscles"
	"github.com/aree6/LiftShift-sub002/internal/volume"
	"github.com/aree6/LiftShift-sub002/internal/workout"
)

// Dataset is an in-memory set collection under analysis, identified by
// name for caching purposes.
type Dataset struct {
	Name string
	Sets []workout.Set
}

// Fingerprint identifies the dataset's content cheaply. Imports replace
// a dataset wholesale, so name, size and the newest timestamp are enough
// to detect any change without hashing every row.
func (d *Dataset) Fingerprint() string {
	var latest int64
	for _, s := range d.Sets {
		if ts := s.PerformedAt.Unix(); ts > latest {
			latest = ts
		}
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d", d.Name, len(d.Sets), latest)
	return fmt.Sprintf("%x", h.Sum64())
}

// Analytics computes derived views over a dataset, memoizing each one
// until the dataset changes or the TTL lapses.
type Analytics struct {
	lookup   *muscles.Lookup
	memo     *cache.Memo
	trendCfg analysis.TrendConfig
	ttl      time.Duration
	log      *logrus.Logger

	// now is swapped in tests.
	now func() time.Time
}

// AnalyticsOption configures an Analytics service.
type AnalyticsOption func(*Analytics)

// WithTrendConfig overrides the default classifier tuning.
func WithTrendConfig(cfg analysis.TrendConfig) AnalyticsOption {
	return func(a *Analytics) { a.trendCfg = cfg }
}

// WithCacheTTL overrides the default result cache TTL.
func WithCacheTTL(ttl time.Duration) AnalyticsOption {
	return func(a *Analytics) { a.ttl = ttl }
}

// WithLogger overrides the default logger.
func WithLogger(log *logrus.Logger) AnalyticsOption {
	return func(a *Analytics) { a.log = log }
}

// NewAnalytics creates the analytics service.
func NewAnalytics(lookup *muscles.Lookup, opts ...AnalyticsOption) *Analytics {
	a := &Analytics{
		lookup:   lookup,
		memo:     cache.New(),
		trendCfg: analysis.DefaultTrendConfig(),
		ttl:      cache.DefaultTTL,
		log:      logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// InvalidateAll drops every memoized result, e.g. after a re-import.
func (a *Analytics) InvalidateAll() {
	a.memo.Clear()
}

// MuscleVolume returns per-muscle set volume bucketed by period.
func (a *Analytics) MuscleVolume(ctx context.Context, ds *Dataset, period volume.Period) (*volume.Result, error) {
	key := fmt.Sprintf("volume|%s|%s", ds.Name, period)
	v, err := a.memo.GetOrCompute(key, ds.Fingerprint(), a.ttl, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a.log.WithFields(logrus.Fields{"dataset": ds.Name, "period": period.String()}).Debug("computing muscle volume")
		return volume.Aggregate(ds.Sets, a.lookup, period), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*volume.Result), nil
}

// Trends classifies the training status of every exercise in the
// dataset, sorted by exercise name.
func (a *Analytics) Trends(ctx context.Context, ds *Dataset) ([]analysis.TrendResult, error) {
	key := "trends|" + ds.Name
	v, err := a.memo.GetOrCompute(key, ds.Fingerprint(), a.ttl, func() (any, error) {
		return a.classifyAll(ctx, ds)
	})
	if err != nil {
		return nil, err
	}
	return v.([]analysis.TrendResult), nil
}

func (a *Analytics) classifyAll(ctx context.Context, ds *Dataset) ([]analysis.TrendResult, error) {
	byExercise := analysis.SessionsByExercise(ds.Sets)
	names := make([]string, 0, len(byExercise))
	for name := range byExercise {
		names = append(names, name)
	}
	sort.Strings(names)

	a.log.WithFields(logrus.Fields{"dataset": ds.Name, "exercises": len(names)}).Debug("classifying trends")

	now := a.now()
	results := make([]analysis.TrendResult, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = analysis.Classify(name, byExercise[name], a.trendCfg, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// PersonalRecords returns the all-time best set per exercise.
func (a *Analytics) PersonalRecords(ctx context.Context, ds *Dataset) (map[string]workout.Set, error) {
	key := "prs|" + ds.Name
	v, err := a.memo.GetOrCompute(key, ds.Fingerprint(), a.ttl, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return analysis.PersonalRecords(ds.Sets), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]workout.Set), nil
}

// FlaggedSets returns the dataset's sets in chronological order with
// personal records marked.
func (a *Analytics) FlaggedSets(ctx context.Context, ds *Dataset) ([]analysis.FlaggedSet, error) {
	key := "flagged|" + ds.Name
	v, err := a.memo.GetOrCompute(key, ds.Fingerprint(), a.ttl, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return analysis.FlagPersonalRecords(ds.Sets), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]analysis.FlaggedSet), nil
}

// Dashboard is the combined summary view.
type Dashboard struct {
	TotalSets     int
	TotalVolumeKg float64
	ExerciseCount int
	FirstWorkout  time.Time
	LastWorkout   time.Time
	WeeklyVolume  *volume.Result
	Trends        []analysis.TrendResult
	RecordCount   int
	GainingCount  int
	PlateauCount  int
	InactiveCount int
}

// Dashboard assembles the summary view from the memoized parts.
func (a *Analytics) Dashboard(ctx context.Context, ds *Dataset) (*Dashboard, error) {
	weekly, err := a.MuscleVolume(ctx, ds, volume.Weekly)
	if err != nil {
		return nil, err
	}
	trends, err := a.Trends(ctx, ds)
	if err != nil {
		return nil, err
	}
	prs, err := a.PersonalRecords(ctx, ds)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		WeeklyVolume: weekly,
		Trends:       trends,
		RecordCount:  len(prs),
	}

	exercises := make(map[string]struct{})
	for _, s := range ds.Sets {
		d.TotalSets++
		d.TotalVolumeKg += s.Volume()
		exercises[s.Exercise] = struct{}{}
		if d.FirstWorkout.IsZero() || s.PerformedAt.Before(d.FirstWorkout) {
			d.FirstWorkout = s.PerformedAt
		}
		if s.PerformedAt.After(d.LastWorkout) {
			d.LastWorkout = s.PerformedAt
		}
	}
	d.ExerciseCount = len(exercises)

	for _, t := range trends {
		switch {
		case t.Inactive:
			d.InactiveCount++
		case t.Status == analysis.StatusGaining:
			d.GainingCount++
		case t.Status == analysis.StatusPlateau:
			d.PlateauCount++
		}
	}

	return d, nil
}
