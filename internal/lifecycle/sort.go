package lifecycle

import (
	"sort"
	"time"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// PriorityWeight returns the sort weight for a priority tier. Critical and
// high share the top weight; ties between them fall through to the due
// date. This mirrors the product's observed ranking and is deliberate —
// do not "fix" it without a product decision.
func PriorityWeight(p model.Priority) int {
	switch p {
	case model.PriorityCritical, model.PriorityHigh:
		return 3
	case model.PriorityMedium:
		return 2
	case model.PriorityLow:
		return 1
	default:
		return 0
	}
}

// SortReminders returns a new slice ordered by priority weight descending,
// then by due timestamp in the requested direction. The sort is stable:
// equal-weight, equal-due reminders keep their input order.
func SortReminders(reminders []model.Reminder, dueAscending bool, loc *time.Location) []model.Reminder {
	out := make([]model.Reminder, len(reminders))
	copy(out, reminders)

	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := PriorityWeight(out[i].Priority), PriorityWeight(out[j].Priority)
		if wi != wj {
			return wi > wj
		}
		di, dj := out[i].DueAt(loc), out[j].DueAt(loc)
		if di.Equal(dj) {
			return false
		}
		if dueAscending {
			return di.Before(dj)
		}
		return di.After(dj)
	})
	return out
}

// SortWarnings returns a new slice ordered by priority score descending.
// No secondary key: equal scores keep their input order.
func SortWarnings(warnings []model.Warning) []model.Warning {
	out := make([]model.Warning, len(warnings))
	copy(out, warnings)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out
}

// SortHistory returns a new slice ordered most-recent-first by each
// record's terminal action timestamp.
func SortHistory(records []model.HistoryRecord) []model.HistoryRecord {
	out := make([]model.HistoryRecord, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ActionTime().After(out[j].ActionTime())
	})
	return out
}
