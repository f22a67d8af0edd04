package tracker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/swidge-xyz/rango-wrapper/internal/domain"
	"github.com/swidge-xyz/rango-wrapper/pkg/publishers"
	"github.com/swidge-xyz/rango-wrapper/pkg/rango"
)

// fakeChecker returns a preset status per request id.
type fakeChecker struct {
	mu       sync.Mutex
	statuses map[string]*rango.StatusResponse
	errs     map[string]error
	calls    []rango.StatusRequest
}

func (f *fakeChecker) Status(_ context.Context, req rango.StatusRequest) (*rango.StatusResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if err := f.errs[req.RequestID]; err != nil {
		return nil, err
	}
	if st, ok := f.statuses[req.RequestID]; ok {
		return st, nil
	}
	return &rango.StatusResponse{Status: rango.StatusPending}, nil
}

// fakePublisher records published events and can inject errors.
type fakePublisher struct {
	events    []publishers.Event
	err       error
	delivered int
}

func (f *fakePublisher) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.events = append(f.events, evt)
	return f.delivered, f.err
}

// fakeStore tracks finalized ids.
type fakeStore struct {
	done    map[string]bool
	failErr error
}

func (f *fakeStore) Finalized(id string) (bool, error) {
	if f.failErr != nil {
		return false, f.failErr
	}
	return f.done[id], nil
}

func (f *fakeStore) MarkFinalized(id string) error {
	if f.done == nil {
		f.done = make(map[string]bool)
	}
	f.done[id] = true
	return nil
}

func TestRunPublishesTerminalSwapsOnly(t *testing.T) {
	checker := &fakeChecker{statuses: map[string]*rango.StatusResponse{
		"r-success": {Status: rango.StatusSuccess, DestTxHash: "0xdest", ReceivedToken: &rango.Token{Blockchain: "BSC", Symbol: "BNB"}},
		"r-pending": {Status: rango.StatusPending},
	}}
	pub := &fakePublisher{delivered: 1}
	store := &fakeStore{}

	svc := NewService(checker, pub, nil, store)
	err := svc.Run(context.Background(), []domain.Swap{
		{ID: "s1", RequestID: "r-success", TxHash: "0x1"},
		{ID: "s2", RequestID: "r-pending", TxHash: "0x2"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	evt := pub.events[0]
	if evt.SwapID != "s1" || evt.Outcome.Status != "success" || evt.Outcome.ReceivedToken != "BSC.BNB" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if !store.done["s1"] || store.done["s2"] {
		t.Fatalf("unexpected finalized set %v", store.done)
	}
	if checker.calls[0].TxID != "0x1" {
		t.Fatalf("tx hash not forwarded: %+v", checker.calls[0])
	}
}

func TestRunSkipsFinalizedSwaps(t *testing.T) {
	checker := &fakeChecker{}
	svc := NewService(checker, &fakePublisher{}, nil, &fakeStore{done: map[string]bool{"s1": true}})

	if err := svc.Run(context.Background(), []domain.Swap{{ID: "s1", RequestID: "r1"}}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(checker.calls) != 0 {
		t.Fatalf("expected finalized swap to be skipped, got %d calls", len(checker.calls))
	}
}

func TestRunKeepsSwapWhenNoPublisherAccepted(t *testing.T) {
	checker := &fakeChecker{statuses: map[string]*rango.StatusResponse{"r1": {Status: rango.StatusFailed}}}
	store := &fakeStore{}
	svc := NewService(checker, &fakePublisher{err: errors.New("queue down")}, nil, store)

	err := svc.Run(context.Background(), []domain.Swap{{ID: "s1", RequestID: "r1"}})
	if err == nil || !strings.Contains(err.Error(), "s1") {
		t.Fatalf("expected error mentioning s1, got %v", err)
	}
	if store.done["s1"] {
		t.Fatalf("swap must not be finalized when publishing failed everywhere")
	}
}

func TestRunFinalizesOnPartialPublish(t *testing.T) {
	checker := &fakeChecker{statuses: map[string]*rango.StatusResponse{"r1": {Status: rango.StatusSuccess}}}
	store := &fakeStore{}
	svc := NewService(checker, &fakePublisher{delivered: 1, err: errors.New("one sink down")}, nil, store)

	if err := svc.Run(context.Background(), []domain.Swap{{ID: "s1", RequestID: "r1"}}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !store.done["s1"] {
		t.Fatalf("expected swap finalized after partial publish")
	}
}

func TestRunAggregatesErrorsAndContinues(t *testing.T) {
	checker := &fakeChecker{
		errs:     map[string]error{"r-bad": rango.ErrEmptyBody},
		statuses: map[string]*rango.StatusResponse{"r-ok": {Status: rango.StatusSuccess}},
	}
	pub := &fakePublisher{delivered: 1}
	svc := NewService(checker, pub, nil, nil)

	err := svc.Run(context.Background(), []domain.Swap{
		{ID: "bad", RequestID: "r-bad"},
		{ID: "ok", RequestID: "r-ok"},
	})
	if !errors.Is(err, rango.ErrEmptyBody) {
		t.Fatalf("expected joined ErrEmptyBody, got %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].SwapID != "ok" {
		t.Fatalf("expected remaining swap to be processed, got %+v", pub.events)
	}
}

func TestRunStoreErrorIsReported(t *testing.T) {
	svc := NewService(&fakeChecker{}, nil, nil, &fakeStore{failErr: errors.New("db locked")})
	if err := svc.Run(context.Background(), []domain.Swap{{ID: "s1", RequestID: "r1"}}); err == nil {
		t.Fatalf("expected store error")
	}
}

func TestRunAllStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := &fakeChecker{}
	svc := NewService(checker, nil, nil, nil)
	if errs := svc.runAll(ctx, []domain.Swap{{ID: "s1"}}); len(errs) != 0 {
		t.Fatalf("expected no errors on cancelled context, got %v", errs)
	}
	if len(checker.calls) != 0 {
		t.Fatalf("expected no status checks after cancellation")
	}
}

func TestRunRejectsEmptySwapList(t *testing.T) {
	svc := NewService(&fakeChecker{}, nil, nil, nil)
	if err := svc.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error when swaps list empty")
	}
}
