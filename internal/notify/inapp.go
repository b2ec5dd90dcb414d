package notify

import (
	"context"
	"sync"
	"time"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// FeedEntry is a notification as it appears in the in-app feed.
type FeedEntry struct {
	Notification
	At time.Time
}

// InAppAdapter accumulates notifications in a bounded in-memory feed
// that the dashboard renders. Oldest entries are evicted first.
type InAppAdapter struct {
	mu      sync.Mutex
	entries []FeedEntry
	max     int
	now     func() time.Time
}

// NewInAppAdapter creates a feed holding at most max entries.
func NewInAppAdapter(max int) *InAppAdapter {
	if max <= 0 {
		max = 50
	}
	return &InAppAdapter{max: max, now: time.Now}
}

// Channel implements Adapter.
func (a *InAppAdapter) Channel() model.Channel {
	return model.ChannelInApp
}

// Send implements Adapter.
func (a *InAppAdapter) Send(_ context.Context, n Notification) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = append(a.entries, FeedEntry{Notification: n, At: a.now()})
	if len(a.entries) > a.max {
		a.entries = a.entries[len(a.entries)-a.max:]
	}
	return nil
}

// Recent returns the feed newest-first.
func (a *InAppAdapter) Recent() []FeedEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]FeedEntry, len(a.entries))
	for i, e := range a.entries {
		out[len(a.entries)-1-i] = e
	}
	return out
}
