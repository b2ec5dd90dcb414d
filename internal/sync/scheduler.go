// Package sync runs the background scan that turns due reminders and
// fresh warnings into notifications.
package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Hemanth040/farm-management-system/internal/ingest"
	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/notify"
	"github.com/Hemanth040/farm-management-system/internal/store"
)

// ScanResultMsg is a tea.Msg sent when a scan pass completes.
type ScanResultMsg struct {
	// Notified is how many entities were dispatched this pass.
	Notified int

	// Now is the instant the scan ran.
	Now time.Time

	Error error
}

// scanTimeout bounds a single scan pass.
const scanTimeout = 30 * time.Second

// Scheduler periodically scans the store for reminders that have come
// due and warnings that have not been announced, and dispatches
// notifications for them. Each entity is announced at most once per due
// instant.
type Scheduler struct {
	store      store.Store
	dispatcher *notify.Dispatcher
	importer   *ingest.Importer
	loc        *time.Location
	interval   time.Duration
	log        zerolog.Logger

	resultCh chan ScanResultMsg
	trigger  chan struct{}
	stopCh   chan struct{}

	mu       gosync.Mutex
	running  bool
	lastScan time.Time

	// announced maps reminder ID to the due instant already notified, and
	// warning ID to its generation instant.
	announced map[string]time.Time
}

// New creates a Scheduler over the given store and dispatcher.
func New(s store.Store, d *notify.Dispatcher, loc *time.Location, interval time.Duration, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Scheduler{
		store:      s,
		dispatcher: d,
		loc:        loc,
		interval:   interval,
		log:        log,
		resultCh:   make(chan ScanResultMsg, 16),
		trigger:    make(chan struct{}, 1),
		stopCh:     make(chan struct{}),
		announced:  make(map[string]time.Time),
	}
}

// SetImporter attaches an advisory importer that runs at the start of
// every scan pass, so imported warnings are announced in the same pass.
func (s *Scheduler) SetImporter(im *ingest.Importer) {
	s.importer = im
}

// Start launches the scan loop and returns a subscription command that
// waits for the first result.
func (s *Scheduler) Start() tea.Cmd {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	go s.loop()

	return s.waitForResult()
}

// Stop halts the scan loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	close(s.stopCh)
	s.running = false
}

// RefreshNow triggers an immediate scan pass.
func (s *Scheduler) RefreshNow() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// LastScan reports when the most recent pass finished.
func (s *Scheduler) LastScan() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastScan
}

func (s *Scheduler) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.scan()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.scan()
		case <-s.trigger:
			s.scan()
		}
	}
}

// scan runs one pass: announce due reminders and unannounced active
// warnings through the dispatcher.
func (s *Scheduler) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	now := time.Now().In(s.loc)

	if s.importer != nil {
		s.importer.Run(ctx)
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		s.sendResult(ScanResultMsg{Now: now, Error: err})
		return
	}

	notified := 0

	reminders, err := s.store.GetReminders(ctx)
	if err != nil {
		s.sendResult(ScanResultMsg{Now: now, Error: err})
		return
	}
	for _, r := range reminders {
		if s.announceReminder(ctx, r, settings, now) {
			notified++
		}
	}

	warnings, err := s.store.GetWarnings(ctx)
	if err != nil {
		s.sendResult(ScanResultMsg{Now: now, Error: err, Notified: notified})
		return
	}
	for _, w := range warnings {
		if s.announceWarning(ctx, w, settings, now) {
			notified++
		}
	}

	s.mu.Lock()
	s.lastScan = now
	s.mu.Unlock()

	s.sendResult(ScanResultMsg{Notified: notified, Now: now})
}

// announceReminder dispatches a reminder that has come due, at most once
// per due instant. Snoozing or rescheduling moves the instant, so the
// reminder fires again when it next comes due.
func (s *Scheduler) announceReminder(ctx context.Context, r model.Reminder, settings model.NotificationSettings, now time.Time) bool {
	status := lifecycle.EffectiveStatus(r, now)
	if status != model.ReminderStatusPending && status != model.ReminderStatusOverdue {
		delete(s.announced, r.ID)
		return false
	}

	due := r.DueAt(s.loc)
	if r.SnoozedUntil != nil && r.SnoozedUntil.After(due) {
		due = *r.SnoozedUntil
	}
	if due.After(now) {
		return false
	}
	if prev, ok := s.announced[r.ID]; ok && prev.Equal(due) {
		return false
	}

	channels := lifecycle.ResolveChannels(r.Channels, r.Priority, settings, now)
	if len(channels) == 0 {
		s.announced[r.ID] = due
		return false
	}

	body := r.Description
	if r.Notes != "" && body == "" {
		body = r.Notes
	}
	attempted := s.dispatcher.Dispatch(ctx, notify.Notification{
		Kind:     model.EntityKindReminder,
		EntityID: r.ID,
		Title:    fmt.Sprintf("Due: %s", r.Title),
		Body:     body,
		Priority: r.Priority,
	}, channels)

	s.announced[r.ID] = due
	s.log.Debug().
		Str("reminder", r.ID).
		Int("channels", len(attempted)).
		Msg("due reminder announced")
	return len(attempted) > 0
}

// announceWarning dispatches an active warning once per generation.
func (s *Scheduler) announceWarning(ctx context.Context, w model.Warning, settings model.NotificationSettings, now time.Time) bool {
	if w.Status != model.WarningStatusActive {
		delete(s.announced, w.ID)
		return false
	}
	if !w.ExpiresAt.IsZero() && w.ExpiresAt.Before(now) {
		return false
	}
	if prev, ok := s.announced[w.ID]; ok && prev.Equal(w.GeneratedAt) {
		return false
	}

	priority := w.Severity.Priority()
	channels := lifecycle.ResolveChannels(model.ValidChannels(), priority, settings, now)
	if len(channels) == 0 {
		s.announced[w.ID] = w.GeneratedAt
		return false
	}

	attempted := s.dispatcher.Dispatch(ctx, notify.Notification{
		Kind:     model.EntityKindWarning,
		EntityID: w.ID,
		Title:    fmt.Sprintf("Warning: %s", w.Title),
		Body:     w.Description,
		Priority: priority,
	}, channels)

	s.announced[w.ID] = w.GeneratedAt
	s.log.Debug().
		Str("warning", w.ID).
		Int("channels", len(attempted)).
		Msg("warning announced")
	return len(attempted) > 0
}

// sendResult sends a ScanResultMsg without blocking the scan loop.
func (s *Scheduler) sendResult(msg ScanResultMsg) {
	select {
	case s.resultCh <- msg:
	default:
	}
}

func (s *Scheduler) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-s.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next scan
// result. Call it after processing a ScanResultMsg to keep listening.
func (s *Scheduler) WaitForNextResult() tea.Cmd {
	return s.waitForResult()
}
