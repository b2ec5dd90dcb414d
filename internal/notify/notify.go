// Package notify delivers resolved notifications to their channels.
//
// Channel eligibility is decided upstream by the lifecycle routing
// policy; this package only transports. Adapter failures are logged and
// never block delivery on the remaining channels.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// Notification is the payload handed to channel adapters.
type Notification struct {
	// Kind distinguishes reminder and warning notifications.
	Kind model.EntityKind

	// EntityID references the originating reminder or warning.
	EntityID string

	Title    string
	Body     string
	Priority model.Priority
}

// Adapter delivers a notification over one channel.
type Adapter interface {
	// Channel identifies which channel this adapter serves.
	Channel() model.Channel

	// Send delivers the notification. Transport errors are returned to
	// the dispatcher for logging; they are never fatal.
	Send(ctx context.Context, n Notification) error
}

// Dispatcher fans a notification out to the adapters for its resolved
// channel set.
type Dispatcher struct {
	adapters map[model.Channel]Adapter
	log      zerolog.Logger
}

// NewDispatcher creates a dispatcher over the given adapters.
func NewDispatcher(log zerolog.Logger, adapters ...Adapter) *Dispatcher {
	byChannel := make(map[model.Channel]Adapter, len(adapters))
	for _, a := range adapters {
		byChannel[a.Channel()] = a
	}
	return &Dispatcher{adapters: byChannel, log: log}
}

// Dispatch sends the notification on every resolved channel that has a
// registered adapter. An empty channel set is a valid no-op. Returns the
// channels that were actually attempted.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification, channels []model.Channel) []model.Channel {
	attempted := make([]model.Channel, 0, len(channels))
	for _, ch := range channels {
		adapter, ok := d.adapters[ch]
		if !ok {
			d.log.Debug().
				Str("channel", string(ch)).
				Str("entity", n.EntityID).
				Msg("no adapter registered for channel")
			continue
		}
		attempted = append(attempted, ch)
		if err := adapter.Send(ctx, n); err != nil {
			d.log.Error().
				Err(err).
				Str("channel", string(ch)).
				Str("entity", n.EntityID).
				Msg("notification delivery failed")
			continue
		}
		d.log.Info().
			Str("channel", string(ch)).
			Str("entity", n.EntityID).
			Str("title", n.Title).
			Msg("notification delivered")
	}
	return attempted
}
