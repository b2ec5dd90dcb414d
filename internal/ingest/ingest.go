// Package ingest imports externally generated warnings, such as weather
// advisories, into the store as auto-generated entities.
package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/store"
)

// Source defines the contract an external advisory feed must implement.
type Source interface {
	// Name identifies the feed; it becomes the provenance source tag.
	Name() string

	// FetchAdvisories retrieves the currently active advisories as
	// warnings. IDs must be stable across fetches so that re-imports
	// deduplicate.
	FetchAdvisories(ctx context.Context) ([]model.Warning, error)
}

// Importer pulls advisories from registered sources and creates the
// warnings that are not yet stored.
type Importer struct {
	store   store.Store
	sources []Source
	log     zerolog.Logger
}

// NewImporter creates an Importer over the given store.
func NewImporter(s store.Store, log zerolog.Logger) *Importer {
	return &Importer{store: s, log: log}
}

// Register adds an advisory source.
func (im *Importer) Register(src Source) {
	im.sources = append(im.sources, src)
}

// Run fetches every source once and stores new warnings. Returns how
// many warnings were created. A failing source is logged and skipped;
// the others still run.
func (im *Importer) Run(ctx context.Context) int {
	created := 0
	for _, src := range im.sources {
		n, err := im.runSource(ctx, src)
		if err != nil {
			im.log.Error().
				Err(err).
				Str("source", src.Name()).
				Msg("advisory import failed")
			continue
		}
		created += n
	}
	return created
}

func (im *Importer) runSource(ctx context.Context, src Source) (int, error) {
	advisories, err := src.FetchAdvisories(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching advisories from %s: %w", src.Name(), err)
	}

	created := 0
	for _, w := range advisories {
		if w.ID == "" {
			im.log.Warn().
				Str("source", src.Name()).
				Str("title", w.Title).
				Msg("advisory without stable id skipped")
			continue
		}

		_, err := im.store.GetWarningByID(ctx, w.ID)
		if err == nil {
			continue
		}
		if !lifecycle.IsNotFound(err) {
			return created, fmt.Errorf("checking warning %s: %w", w.ID, err)
		}

		w.Status = model.WarningStatusActive
		w.Provenance = model.Provenance{AutoGenerated: true, Source: src.Name()}
		if err := im.store.CreateWarning(ctx, w); err != nil {
			return created, fmt.Errorf("storing warning %s: %w", w.ID, err)
		}
		created++
	}

	im.log.Info().
		Str("source", src.Name()).
		Int("fetched", len(advisories)).
		Int("created", created).
		Msg("advisory import pass finished")
	return created, nil
}
