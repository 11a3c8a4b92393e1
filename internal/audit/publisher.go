package audit

import (
	"context"
	"time"

	id "brickgate/pkg/domain"
)

// Sink receives finished audit events. Implementations persist or forward
// them; the publisher never inspects what a sink does with an event.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Lister is implemented by sinks that can read events back, e.g. for the
// admin review queue.
type Lister interface {
	ListByWallet(ctx context.Context, wallet id.Address) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and keeps
// the sink behind an interface so tests can swap implementations.
type Publisher struct {
	sink Sink
}

func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}
	return p.sink.Append(ctx, base)
}

func (p *Publisher) List(ctx context.Context, wallet id.Address) ([]Event, error) {
	lister, ok := p.sink.(Lister)
	if !ok {
		return nil, nil
	}
	return lister.ListByWallet(ctx, wallet)
}
