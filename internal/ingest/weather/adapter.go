package weather

import (
	"context"
	"strings"
	"time"

	"github.com/Hemanth040/farm-management-system/internal/ingest"
	"github.com/Hemanth040/farm-management-system/internal/model"
)

// sourceName is the provenance tag written on imported warnings.
const sourceName = "weather_service"

// Adapter turns feed advisories into warnings.
type Adapter struct {
	client *Client
}

// NewAdapter creates a weather advisory source over the given client.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

var _ ingest.Source = (*Adapter)(nil)

// Name implements ingest.Source.
func (a *Adapter) Name() string { return sourceName }

// FetchAdvisories implements ingest.Source.
func (a *Adapter) FetchAdvisories(ctx context.Context) ([]model.Warning, error) {
	resp, err := a.client.ActiveAdvisories(ctx)
	if err != nil {
		return nil, err
	}

	warnings := make([]model.Warning, 0, len(resp.Advisories))
	for _, adv := range resp.Advisories {
		warnings = append(warnings, toWarning(adv))
	}
	return warnings, nil
}

// toWarning maps one advisory onto the warning model. The advisory ID
// is kept as the warning ID so repeated imports deduplicate.
func toWarning(adv advisory) model.Warning {
	severity := mapSeverity(adv.Severity)

	targets := make([]model.AffectedTarget, 0, len(adv.Areas))
	for _, area := range adv.Areas {
		targets = append(targets, model.AffectedTarget{
			TargetID: area.ID,
			Name:     area.Name,
			Impact:   area.Impact,
		})
	}

	title := adv.Headline
	if title == "" {
		title = adv.Event
	}

	return model.Warning{
		ID:                 "weather-" + adv.ID,
		Title:              title,
		Description:        adv.Details,
		Category:           model.WarningCategoryWeather,
		Severity:           severity,
		Status:             model.WarningStatusActive,
		AffectedTargets:    targets,
		RecommendedActions: adv.Actions,
		GeneratedAt:        parseTime(adv.Onset),
		ExpiresAt:          parseTime(adv.Expires),
		PriorityScore:      severityScore(severity),
	}
}

// mapSeverity normalizes the feed's severity wording onto the warning
// severity scale. Unknown values read as medium.
func mapSeverity(s string) model.Severity {
	switch strings.ToLower(s) {
	case "extreme", "critical":
		return model.SeverityCritical
	case "severe", "high":
		return model.SeverityHigh
	case "moderate", "medium":
		return model.SeverityMedium
	case "minor", "low":
		return model.SeverityLow
	default:
		return model.SeverityMedium
	}
}

// severityScore seeds the priority score for imported warnings.
func severityScore(s model.Severity) int {
	switch s {
	case model.SeverityCritical:
		return 90
	case model.SeverityHigh:
		return 70
	case model.SeverityMedium:
		return 50
	default:
		return 30
	}
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
