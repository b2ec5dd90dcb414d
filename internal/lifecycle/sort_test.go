package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

func TestSortRemindersByPriorityWeight(t *testing.T) {
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	mk := func(id string, p model.Priority) model.Reminder {
		r := pendingReminder(day, "09:00")
		r.ID = id
		r.Priority = p
		return r
	}

	// Identical due dates: order is decided by weight alone, and the
	// critical/high tie keeps input order.
	in := []model.Reminder{
		mk("low", model.PriorityLow),
		mk("critical", model.PriorityCritical),
		mk("medium", model.PriorityMedium),
		mk("high", model.PriorityHigh),
	}

	out := SortReminders(in, true, time.UTC)

	ids := make([]string, len(out))
	for i, r := range out {
		ids[i] = r.ID
	}
	require.Equal(t, []string{"critical", "high", "medium", "low"}, ids)

	// Input order untouched.
	require.Equal(t, "low", in[0].ID)
}

func TestSortRemindersDueDateDirection(t *testing.T) {
	early := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	mk := func(id string, due time.Time) model.Reminder {
		r := pendingReminder(due, "09:00")
		r.ID = id
		r.Priority = model.PriorityMedium
		return r
	}
	in := []model.Reminder{mk("late", late), mk("early", early)}

	asc := SortReminders(in, true, time.UTC)
	require.Equal(t, "early", asc[0].ID)

	desc := SortReminders(in, false, time.UTC)
	require.Equal(t, "late", desc[0].ID)
}

func TestSortWarningsByScoreStable(t *testing.T) {
	mk := func(id string, score int) model.Warning {
		return model.Warning{
			ID:            id,
			Title:         "w",
			Category:      model.WarningCategoryWeather,
			Severity:      model.SeverityMedium,
			Status:        model.WarningStatusActive,
			PriorityScore: score,
		}
	}

	in := []model.Warning{mk("A", 40), mk("B", 95), mk("C", 95), mk("D", 10)}
	out := SortWarnings(in)

	ids := make([]string, len(out))
	for i, w := range out {
		ids[i] = w.ID
	}
	require.Equal(t, []string{"B", "C", "A", "D"}, ids)
}

func TestSortWarningsIdempotent(t *testing.T) {
	mk := func(id string, score int) model.Warning {
		return model.Warning{ID: id, PriorityScore: score, Status: model.WarningStatusActive}
	}
	in := []model.Warning{mk("x", 5), mk("y", 80), mk("z", 80)}

	first := SortWarnings(in)
	second := SortWarnings(in)
	require.Equal(t, first, second)
}

func TestSortHistoryMostRecentFirst(t *testing.T) {
	t1 := noon.Add(-3 * time.Hour)
	t2 := noon.Add(-2 * time.Hour)
	t3 := noon.Add(-1 * time.Hour)

	records := []model.HistoryRecord{
		{ID: "oldest", Action: model.HistoryActionCompleted, CompletedAt: &t1},
		{ID: "newest", Action: model.HistoryActionSnoozed, SnoozedAt: &t3},
		{ID: "middle", Action: model.HistoryActionResolved, ResolvedAt: &t2},
	}

	out := SortHistory(records)
	require.Equal(t, "newest", out[0].ID)
	require.Equal(t, "middle", out[1].ID)
	require.Equal(t, "oldest", out[2].ID)
}
