package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

func cropPtr(s string) *string { return &s }

func testReminders() []model.Reminder {
	yesterday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	nextWeek := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

	irrigate := pendingReminder(nextWeek, "06:00")
	irrigate.ID = "irrigate"
	irrigate.CropID = cropPtr("wheat-7")
	irrigate.Priority = model.PriorityHigh

	invoice := pendingReminder(yesterday, "09:00")
	invoice.ID = "invoice"
	invoice.Category = model.ReminderCategoryFinancial
	invoice.Priority = model.PriorityCritical

	restock := pendingReminder(nextWeek, "10:00")
	restock.ID = "restock"
	restock.Category = model.ReminderCategoryResource
	restock.Priority = model.PriorityLow

	return []model.Reminder{irrigate, invoice, restock}
}

func TestFilterRemindersCombinesWithAnd(t *testing.T) {
	reminders := testReminders()

	cat := model.ReminderCategoryActivity
	prio := model.PriorityHigh
	out, err := FilterReminders(reminders, ReminderCriteria{
		Category: &cat,
		Priority: &prio,
		CropID:   cropPtr("wheat-7"),
	}, noon)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "irrigate", out[0].ID)
}

func TestFilterRemindersNilCriteriaMatchesAll(t *testing.T) {
	reminders := testReminders()

	out, err := FilterReminders(reminders, ReminderCriteria{}, noon)
	require.NoError(t, err)
	require.Len(t, out, len(reminders))
}

func TestFilterRemindersByEffectiveStatus(t *testing.T) {
	reminders := testReminders()

	// "overdue" is never stored, but filtering on it must work.
	overdue := model.ReminderStatusOverdue
	out, err := FilterReminders(reminders, ReminderCriteria{Status: &overdue}, noon)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "invoice", out[0].ID)
}

func TestFilterRemindersDueRange(t *testing.T) {
	reminders := testReminders()

	from := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC)
	out, err := FilterReminders(reminders, ReminderCriteria{DueFrom: &from, DueTo: &to}, noon)
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestFilterRemindersRejectsUnknownEnums(t *testing.T) {
	reminders := testReminders()

	bogus := model.ReminderStatus("archived")
	_, err := FilterReminders(reminders, ReminderCriteria{Status: &bogus}, noon)
	require.Error(t, err)
	require.True(t, IsValidationError(err))

	badCat := model.ReminderCategory("livestock")
	_, err = FilterReminders(reminders, ReminderCriteria{Category: &badCat}, noon)
	require.True(t, IsValidationError(err))
}

func TestFilterRemindersIdempotent(t *testing.T) {
	reminders := testReminders()
	prio := model.PriorityCritical
	criteria := ReminderCriteria{Priority: &prio}

	first, err := FilterReminders(reminders, criteria, noon)
	require.NoError(t, err)
	second, err := FilterReminders(reminders, criteria, noon)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func testWarnings() []model.Warning {
	return []model.Warning{
		{
			ID:       "frost",
			Title:    "Frost risk tonight",
			Category: model.WarningCategoryWeather,
			Severity: model.SeverityCritical,
			Status:   model.WarningStatusActive,
			AffectedTargets: []model.AffectedTarget{
				{TargetID: "wheat-7", Name: "Wheat, north field", Impact: "seedling damage"},
			},
			PriorityScore: 92,
		},
		{
			ID:       "aphids",
			Title:    "Aphid infestation",
			Category: model.WarningCategoryCropHealth,
			Severity: model.SeverityMedium,
			Status:   model.WarningStatusActive,
			AffectedTargets: []model.AffectedTarget{
				{TargetID: "corn-2", Name: "Corn, east field", Impact: "leaf curl"},
				{TargetID: "wheat-7", Name: "Wheat, north field", Impact: "sap loss"},
			},
			PriorityScore: 55,
		},
		{
			ID:            "pump",
			Title:         "Pump pressure low",
			Category:      model.WarningCategoryResource,
			Severity:      model.SeverityLow,
			Status:        model.WarningStatusDismissed,
			PriorityScore: 20,
		},
	}
}

func TestFilterWarningsByCropMatchesAnyTarget(t *testing.T) {
	out, err := FilterWarnings(testWarnings(), WarningCriteria{CropID: cropPtr("wheat-7")})
	require.NoError(t, err)
	require.Len(t, out, 2)

	out, err = FilterWarnings(testWarnings(), WarningCriteria{CropID: cropPtr("corn-2")})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "aphids", out[0].ID)

	out, err = FilterWarnings(testWarnings(), WarningCriteria{CropID: cropPtr("rice-1")})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestFilterWarningsByStatusAndSeverity(t *testing.T) {
	active := model.WarningStatusActive
	critical := model.SeverityCritical
	out, err := FilterWarnings(testWarnings(), WarningCriteria{Status: &active, Severity: &critical})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "frost", out[0].ID)
}

func TestFilterWarningsRejectsUnknownEnums(t *testing.T) {
	bad := model.Severity("catastrophic")
	_, err := FilterWarnings(testWarnings(), WarningCriteria{Severity: &bad})
	require.True(t, IsValidationError(err))
}
