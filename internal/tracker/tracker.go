package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/swidge-xyz/rango-wrapper/internal/domain"
	"github.com/swidge-xyz/rango-wrapper/internal/logger"
	"github.com/swidge-xyz/rango-wrapper/pkg/publishers"
	"github.com/swidge-xyz/rango-wrapper/pkg/rango"
)

// Service polls the status of tracked swaps and publishes the ones that
// reached a terminal status.
type Service struct {
	checker   StatusChecker
	publisher EventPublisher
	store     FinalizedStore
	log       logger.Logger
}

// NewService wires a tracker. A nil store tracks nothing across passes.
func NewService(checker StatusChecker, publisher EventPublisher, log logger.Logger, store FinalizedStore) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		checker:   checker,
		publisher: publisher,
		store:     store,
		log:       log,
	}
}

// Run executes one polling pass over swaps. Failures of individual swaps are
// logged and returned joined; they never stop the pass.
func (s *Service) Run(ctx context.Context, swaps []domain.Swap) error {
	if s == nil || s.checker == nil {
		return fmt.Errorf("tracker service is not initialized")
	}
	if len(swaps) == 0 {
		return fmt.Errorf("no swaps configured for tracking")
	}

	if errs := s.runAll(ctx, swaps); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, swaps []domain.Swap) []error {
	var errs []error
	for _, swap := range swaps {
		if ctx.Err() != nil {
			break
		}
		if err := s.checkSwap(ctx, swap); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("swap status check failed", "swap_error", map[string]any{
				"swap_id": swap.ID,
				"error":   err.Error(),
			})
		}
	}
	return errs
}

func (s *Service) checkSwap(ctx context.Context, swap domain.Swap) error {
	if s.store != nil {
		done, err := s.store.Finalized(swap.ID)
		if err != nil {
			return fmt.Errorf("lookup swap %s: %w", swap.ID, err)
		}
		if done {
			s.log.DebugObj("swap already finalized", "swap_id", swap.ID)
			return nil
		}
	}

	status, err := s.checker.Status(ctx, rango.StatusRequest{
		RequestID: swap.RequestID,
		TxID:      swap.TxHash,
	})
	if err != nil {
		return fmt.Errorf("check swap %s: %w", swap.ID, err)
	}

	if !status.Status.Terminal() {
		s.log.InfoObj("swap still pending", "swap_id", swap.ID)
		return nil
	}

	outcome := toOutcome(status)
	if err := s.publish(ctx, swap, outcome); err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.MarkFinalized(swap.ID); err != nil {
			return fmt.Errorf("mark swap %s finalized: %w", swap.ID, err)
		}
	}

	s.log.InfoObj("swap finalized", "swap_result", map[string]any{
		"swap_id":      swap.ID,
		"status":       outcome.Status,
		"dest_tx_hash": outcome.DestTxHash,
	})
	return nil
}

// publish delivers the outcome. A partial fanout failure is logged but
// still counts as delivered; a swap is only retried when no sink took it.
func (s *Service) publish(ctx context.Context, swap domain.Swap, outcome domain.SwapOutcome) error {
	if s.publisher == nil {
		return nil
	}

	delivered, err := s.publisher.Publish(ctx, publishers.NewEvent(swap, outcome))
	if err == nil {
		return nil
	}
	if delivered == 0 {
		return fmt.Errorf("publish swap %s: %w", swap.ID, err)
	}
	s.log.WarnObj("swap event partially published", "publish_error", map[string]any{
		"swap_id":   swap.ID,
		"delivered": delivered,
		"error":     err.Error(),
	})
	return nil
}

func toOutcome(status *rango.StatusResponse) domain.SwapOutcome {
	outcome := domain.SwapOutcome{
		Status:     string(status.Status),
		Error:      status.Error,
		DestTxHash: status.DestTxHash,
		AmountOut:  status.AmountOut,
	}
	if status.ReceivedToken != nil {
		outcome.ReceivedToken = status.ReceivedToken.Blockchain + "." + status.ReceivedToken.Symbol
	}
	return outcome
}
