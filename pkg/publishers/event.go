package publishers

import (
	"time"

	"github.com/swidge-xyz/rango-wrapper/internal/domain"
)

// Event represents the swap status change published downstream.
type Event struct {
	SwapID    string             `json:"swap_id"`
	RequestID string             `json:"request_id"`
	TxHash    string             `json:"tx_hash"`
	FromChain string             `json:"from_chain,omitempty"`
	ToChain   string             `json:"to_chain,omitempty"`
	Outcome   domain.SwapOutcome `json:"outcome"`
	CheckedAt time.Time          `json:"checked_at"`
}

// NewEvent constructs an Event for the given swap and observed outcome.
func NewEvent(swap domain.Swap, outcome domain.SwapOutcome) Event {
	return Event{
		SwapID:    swap.ID,
		RequestID: swap.RequestID,
		TxHash:    swap.TxHash,
		FromChain: swap.FromChain,
		ToChain:   swap.ToChain,
		Outcome:   outcome,
		CheckedAt: time.Now().UTC(),
	}
}

// attributes are the message attributes attached by queue based publishers.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"swap_id": e.SwapID,
		"status":  e.Outcome.Status,
	}
}
