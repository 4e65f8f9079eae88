// Package eventbus carries ledger events to notification handlers after a commit.
package eventbus

import (
	"context"

	"github.com/amirasaad/brokerage/pkg/domain/events"
)

// HandlerFunc processes one event. A returned error is logged by the bus and,
// on the durable buses, routes the message to the dead letter queue.
type HandlerFunc func(ctx context.Context, e events.Event) error

// Bus defines the contract for publishing and subscribing to ledger events.
type Bus interface {
	Register(eventType events.EventType, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
}
