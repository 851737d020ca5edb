// Package notify carries room-scoped change notifications. Notifications are
// pure invalidation signals: they never carry state, subscribers re-fetch
// from the store.
package notify

import "context"

// Bus publishes and subscribes per-room invalidations. Subscribe returns an
// unsubscribe func so callers can scope the subscription to a session's
// lifetime.
type Bus interface {
	Publish(ctx context.Context, room string) error
	Subscribe(ctx context.Context, room string, fn func()) (func(), error)
}
