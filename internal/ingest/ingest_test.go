package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/store"
)

type fakeSource struct {
	name      string
	warnings  []model.Warning
	err       error
	fetchable int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) FetchAdvisories(_ context.Context) ([]model.Warning, error) {
	f.fetchable++
	return f.warnings, f.err
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "farmdash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func advisoryWarning(id string) model.Warning {
	return model.Warning{
		ID:            id,
		Title:         "Frost expected overnight",
		Description:   "Temperatures below -2C from 02:00",
		Category:      model.WarningCategoryWeather,
		Severity:      model.SeverityHigh,
		Status:        model.WarningStatusActive,
		GeneratedAt:   time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
		ExpiresAt:     time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
		PriorityScore: 70,
	}
}

func TestImporterCreatesNewWarnings(t *testing.T) {
	s := newTestStore(t)
	im := NewImporter(s, zerolog.Nop())
	im.Register(&fakeSource{
		name:     "weather_service",
		warnings: []model.Warning{advisoryWarning("weather-1"), advisoryWarning("weather-2")},
	})

	created := im.Run(context.Background())
	require.Equal(t, 2, created)

	stored, err := s.GetWarnings(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, w := range stored {
		require.True(t, w.Provenance.AutoGenerated)
		require.Equal(t, "weather_service", w.Provenance.Source)
		require.Equal(t, model.WarningStatusActive, w.Status)
	}
}

func TestImporterDeduplicatesByID(t *testing.T) {
	s := newTestStore(t)
	im := NewImporter(s, zerolog.Nop())
	im.Register(&fakeSource{
		name:     "weather_service",
		warnings: []model.Warning{advisoryWarning("weather-1")},
	})

	require.Equal(t, 1, im.Run(context.Background()))
	require.Equal(t, 0, im.Run(context.Background()), "second pass imports nothing")

	stored, err := s.GetWarnings(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestImporterSkipsAdvisoriesWithoutID(t *testing.T) {
	s := newTestStore(t)
	im := NewImporter(s, zerolog.Nop())
	im.Register(&fakeSource{
		name:     "weather_service",
		warnings: []model.Warning{advisoryWarning("")},
	})

	require.Equal(t, 0, im.Run(context.Background()))
}

func TestImporterFailingSourceDoesNotBlockOthers(t *testing.T) {
	s := newTestStore(t)
	im := NewImporter(s, zerolog.Nop())
	im.Register(&fakeSource{name: "broken", err: errors.New("feed unreachable")})
	im.Register(&fakeSource{
		name:     "weather_service",
		warnings: []model.Warning{advisoryWarning("weather-1")},
	})

	require.Equal(t, 1, im.Run(context.Background()))
}
