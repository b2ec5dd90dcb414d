package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

const feedPayload = `{
  "advisories": [
    {
      "id": "alrt-991",
      "event": "Frost",
      "headline": "Frost expected overnight",
      "details": "Temperatures below -2C from 02:00",
      "severity": "severe",
      "onset": "2025-03-10T18:00:00Z",
      "expires": "2025-03-11T09:00:00Z",
      "areas": [
        {"id": "field-north", "name": "North field", "impact": "seedlings at risk"}
      ],
      "recommended_actions": ["Cover seedlings", "Delay irrigation until noon"]
    },
    {
      "id": "alrt-992",
      "event": "Wind",
      "severity": "minor"
    }
  ]
}`

func TestFetchAdvisoriesMapsFeedPayload(t *testing.T) {
	var gotRegion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/advisories", r.URL.Path)
		gotRegion = r.URL.Query().Get("region")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(feedPayload))
	}))
	defer srv.Close()

	a := NewAdapter(NewClient(srv.URL, "valley-east"))
	warnings, err := a.FetchAdvisories(context.Background())
	require.NoError(t, err)
	require.Equal(t, "valley-east", gotRegion)
	require.Len(t, warnings, 2)

	frost := warnings[0]
	require.Equal(t, "weather-alrt-991", frost.ID)
	require.Equal(t, "Frost expected overnight", frost.Title)
	require.Equal(t, model.WarningCategoryWeather, frost.Category)
	require.Equal(t, model.SeverityHigh, frost.Severity)
	require.Equal(t, 70, frost.PriorityScore)
	require.Equal(t, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), frost.GeneratedAt)
	require.Equal(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), frost.ExpiresAt)
	require.Len(t, frost.AffectedTargets, 1)
	require.Equal(t, "field-north", frost.AffectedTargets[0].TargetID)
	require.Equal(t, []string{"Cover seedlings", "Delay irrigation until noon"}, frost.RecommendedActions)

	wind := warnings[1]
	require.Equal(t, "Wind", wind.Title, "headline falls back to event name")
	require.Equal(t, model.SeverityLow, wind.Severity)
	require.Equal(t, 30, wind.PriorityScore)
	require.True(t, wind.ExpiresAt.IsZero())
}

func TestFetchAdvisoriesSurfacesFeedErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewAdapter(NewClient(srv.URL, "valley-east"))
	_, err := a.FetchAdvisories(context.Background())
	require.Error(t, err)
}

func TestMapSeverity(t *testing.T) {
	cases := map[string]model.Severity{
		"extreme":  model.SeverityCritical,
		"Severe":   model.SeverityHigh,
		"moderate": model.SeverityMedium,
		"minor":    model.SeverityLow,
		"weird":    model.SeverityMedium,
	}
	for in, want := range cases {
		require.Equal(t, want, mapSeverity(in), in)
	}
}
