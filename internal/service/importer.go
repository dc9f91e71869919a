package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aree6/LiftShift-sub002/internal/ingest"
	"github.com/aree6/LiftShift-sub002/internal/store"
	"github.com/aree6/LiftShift-sub002/internal/workout"
)

// Importer normalizes raw exports and registers them as named datasets.
type Importer struct {
	store *store.Store
	log   *logrus.Logger
}

// NewImporter creates an importer backed by the given store.
func NewImporter(st *store.Store, log *logrus.Logger) *Importer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Importer{store: st, log: log}
}

// Import parses rawText and saves it under name, replacing any dataset
// with the same name. The raw text is kept verbatim so the dataset can
// be re-parsed later without a fresh export.
func (im *Importer) Import(name, rawText string, opts ingest.Options) (*Dataset, *ingest.Result, error) {
	result, err := ingest.Normalize(rawText, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("normalizing %q: %w", name, err)
	}

	for _, w := range result.Warnings {
		im.log.WithFields(logrus.Fields{"dataset": name, "row": w.Row}).Warn(w.Reason)
	}

	unit := opts.Unit
	if !unit.Valid() {
		unit = workout.UnitKg
	}
	_, err = im.store.SaveDataset(&store.Dataset{
		Name:       name,
		Platform:   string(result.Platform),
		Unit:       string(unit),
		RawCSV:     rawText,
		SetCount:   len(result.Sets),
		ImportedAt: time.Now(),
	})
	if err != nil {
		return nil, nil, err
	}

	im.log.WithFields(logrus.Fields{
		"dataset":  name,
		"platform": result.Platform,
		"sets":     len(result.Sets),
		"warnings": len(result.Warnings),
	}).Info("dataset imported")

	return &Dataset{Name: name, Sets: result.Sets}, result, nil
}

// Load re-parses a stored dataset into an analyzable one.
func (im *Importer) Load(name string) (*Dataset, error) {
	d, err := im.store.GetDataset(name)
	if err != nil {
		return nil, err
	}

	result, err := ingest.Normalize(d.RawCSV, ingest.Options{Unit: workout.Unit(d.Unit)})
	if err != nil {
		return nil, fmt.Errorf("re-parsing %q: %w", name, err)
	}
	return &Dataset{Name: name, Sets: result.Sets}, nil
}
