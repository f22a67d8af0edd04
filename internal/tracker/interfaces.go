package tracker

import (
	"context"

	"github.com/swidge-xyz/rango-wrapper/pkg/publishers"
	"github.com/swidge-xyz/rango-wrapper/pkg/rango"
)

// StatusChecker queries the aggregator for the progress of a swap.
type StatusChecker interface {
	Status(ctx context.Context, req rango.StatusRequest) (*rango.StatusResponse, error)
}

// EventPublisher publishes swap outcomes downstream and reports how many
// sinks accepted the event.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// FinalizedStore remembers swaps that already reached a terminal status.
type FinalizedStore interface {
	Finalized(id string) (bool, error)
	MarkFinalized(id string) error
}
