package model

import "time"

// WarningCategory classifies the source domain of a warning.
type WarningCategory string

const (
	WarningCategoryWeather    WarningCategory = "weather"
	WarningCategoryCropHealth WarningCategory = "crop_health"
	WarningCategoryWeed       WarningCategory = "weed"
	WarningCategoryResource   WarningCategory = "resource"
	WarningCategoryActivity   WarningCategory = "activity"
	WarningCategorySupervisor WarningCategory = "supervisor"
	WarningCategoryWorker     WarningCategory = "worker"
)

// ValidWarningCategories returns all valid warning category values.
func ValidWarningCategories() []WarningCategory {
	return []WarningCategory{
		WarningCategoryWeather,
		WarningCategoryCropHealth,
		WarningCategoryWeed,
		WarningCategoryResource,
		WarningCategoryActivity,
		WarningCategorySupervisor,
		WarningCategoryWorker,
	}
}

// IsValid returns true if the category is a known value.
func (c WarningCategory) IsValid() bool {
	for _, valid := range ValidWarningCategories() {
		if c == valid {
			return true
		}
	}
	return false
}

// Severity is the ordinal seriousness of a warning.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// ValidSeverities returns all valid severity values.
func ValidSeverities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
}

// IsValid returns true if the severity is a known value.
func (s Severity) IsValid() bool {
	for _, valid := range ValidSeverities() {
		if s == valid {
			return true
		}
	}
	return false
}

// Priority maps the severity onto the shared priority scale used by
// notification routing.
func (s Severity) Priority() Priority {
	switch s {
	case SeverityCritical:
		return PriorityCritical
	case SeverityHigh:
		return PriorityHigh
	case SeverityMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// WarningStatus is the lifecycle state of a warning.
type WarningStatus string

const (
	WarningStatusActive    WarningStatus = "active"
	WarningStatusResolved  WarningStatus = "resolved"
	WarningStatusDismissed WarningStatus = "dismissed"
)

// ValidWarningStatuses returns all valid warning status values.
func ValidWarningStatuses() []WarningStatus {
	return []WarningStatus{WarningStatusActive, WarningStatusResolved, WarningStatusDismissed}
}

// IsValid returns true if the status is a known value.
func (s WarningStatus) IsValid() bool {
	for _, valid := range ValidWarningStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsTerminal returns true once a warning can no longer transition.
func (s WarningStatus) IsTerminal() bool {
	return s == WarningStatusResolved || s == WarningStatusDismissed
}

// AffectedTarget names one crop, field, or resource a warning applies to.
type AffectedTarget struct {
	// TargetID references the affected crop/field/resource.
	TargetID string `json:"target_id" db:"target_id"`

	// Name is the display name of the target.
	Name string `json:"name" db:"name"`

	// Impact describes how the target is affected.
	Impact string `json:"impact" db:"impact"`
}

// Warning is an event-triggered alert with a validity window, tracked to
// resolution or dismissal.
type Warning struct {
	ID          string          `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Category    WarningCategory `json:"category" db:"category"`
	Severity    Severity        `json:"severity" db:"severity"`
	Status      WarningStatus   `json:"status" db:"status"`

	// AffectedTargets lists what the warning applies to.
	AffectedTargets []AffectedTarget `json:"affected_targets" db:"-"`

	// RecommendedActions is an ordered list of suggested responses.
	RecommendedActions []string `json:"recommended_actions" db:"-"`

	GeneratedAt time.Time `json:"generated_at" db:"generated_at"`
	ExpiresAt   time.Time `json:"expires_at" db:"expires_at"`

	// PriorityScore ranks warnings (0-100). Assigned by the detector at
	// creation and never recomputed from severity.
	PriorityScore int `json:"priority_score" db:"priority_score"`

	// ResolvedAt is set when the warning is resolved.
	ResolvedAt *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`

	// DismissedAt is set when the warning is dismissed.
	DismissedAt *time.Time `json:"dismissed_at,omitempty" db:"dismissed_at"`

	IsRead     bool       `json:"is_read" db:"is_read"`
	Provenance Provenance `json:"provenance" db:"-"`

	// ReportedBy identifies the reporter for manual reports.
	ReportedBy string `json:"reported_by,omitempty" db:"reported_by"`
}
