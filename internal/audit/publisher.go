package audit

import (
	"context"
	"time"
)

// Store is an append-only event sink. Read access is optional; sinks that
// only forward (Kafka) reject ListByZip.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByZip(ctx context.Context, zip string) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and uses
// the store for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}
	return p.store.Append(ctx, base)
}

func (p *Publisher) List(ctx context.Context, zip string) ([]Event, error) {
	return p.store.ListByZip(ctx, zip)
}
