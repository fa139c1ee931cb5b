package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MorseWayne/flour_shop/internal/domain"
)

type fetchOutcome struct {
	items []*domain.Product
	err   error
}

// blockingStrategy lets each Fetch call be released manually, so tests can
// control the order in which in-flight queries complete.
type blockingStrategy struct {
	mu      sync.Mutex
	pending []chan fetchOutcome
	started chan struct{}
}

func newBlockingStrategy() *blockingStrategy {
	return &blockingStrategy{started: make(chan struct{}, 16)}
}

func (b *blockingStrategy) Fetch(ctx context.Context, state FilterState) ([]*domain.Product, error) {
	release := make(chan fetchOutcome, 1)
	b.mu.Lock()
	b.pending = append(b.pending, release)
	b.mu.Unlock()
	b.started <- struct{}{}

	select {
	case out := <-release:
		return out.items, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// release completes the i-th issued fetch with the given items.
func (b *blockingStrategy) release(i int, items []*domain.Product) {
	b.mu.Lock()
	ch := b.pending[i]
	b.mu.Unlock()
	ch <- fetchOutcome{items: items}
}

// releaseErr completes the i-th issued fetch with an error.
func (b *blockingStrategy) releaseErr(i int, err error) {
	b.mu.Lock()
	ch := b.pending[i]
	b.mu.Unlock()
	ch <- fetchOutcome{err: err}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestExecutor_LastCommittedWins(t *testing.T) {
	strategy := newBlockingStrategy()
	e := NewExecutor(strategy, 0, nil)

	stateA := DefaultFilterState()
	stateA.Categories = []string{"wheat"}
	stateB := DefaultFilterState()
	stateB.Categories = []string{"organic"}

	itemA := &domain.Product{ID: 1}
	itemB := &domain.Product{ID: 2}

	// Commit A, then B, while both queries are still in flight.
	e.Apply(stateA)
	<-strategy.started
	e.Apply(stateB)
	<-strategy.started

	// B (committed last) resolves first.
	strategy.release(1, []*domain.Product{itemB})
	waitFor(t, func() bool { return e.Snapshot().Status == StatusSuccess })

	snap := e.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != 2 {
		t.Fatalf("expected B's result, got %+v", snap.Items)
	}

	// A's slow response arrives afterwards and must be discarded.
	strategy.release(0, []*domain.Product{itemA})
	time.Sleep(20 * time.Millisecond)

	snap = e.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != 2 {
		t.Fatalf("stale result overwrote newer one: %+v", snap.Items)
	}
	if !snap.State.Equal(stateB) {
		t.Fatalf("snapshot state = %+v, want B's state", snap.State)
	}
}

func TestExecutor_StateMachine(t *testing.T) {
	strategy := newBlockingStrategy()
	e := NewExecutor(strategy, 0, nil)

	var transitions []Status
	var mu sync.Mutex
	e.OnChange(func(r Result) {
		mu.Lock()
		transitions = append(transitions, r.Status)
		mu.Unlock()
	})

	if e.Snapshot().Status != StatusIdle {
		t.Fatalf("initial status = %v, want idle", e.Snapshot().Status)
	}

	e.Apply(DefaultFilterState())
	<-strategy.started
	if e.Snapshot().Status != StatusLoading {
		t.Fatalf("status after apply = %v, want loading", e.Snapshot().Status)
	}

	strategy.release(0, nil)
	waitFor(t, func() bool { return e.Snapshot().Status == StatusSuccess })

	mu.Lock()
	defer mu.Unlock()
	if len(transitions) != 2 || transitions[0] != StatusLoading || transitions[1] != StatusSuccess {
		t.Fatalf("transitions = %v, want [loading success]", transitions)
	}
}

func TestExecutor_EmptyResultIsSuccess(t *testing.T) {
	e := NewExecutor(NewMemoryStrategy(fixtureProducts()), 0, nil)

	state := DefaultFilterState()
	state.Categories = []string{"nonexistent-category"}
	e.Apply(state)

	waitFor(t, func() bool { return e.Snapshot().Status != StatusLoading })

	snap := e.Snapshot()
	if snap.Status != StatusSuccess {
		t.Fatalf("status = %v, want success", snap.Status)
	}
	if snap.Items == nil || len(snap.Items) != 0 {
		t.Fatalf("expected empty non-nil item list, got %v", snap.Items)
	}
}

func TestExecutor_ErrorClearsPreviousResults(t *testing.T) {
	strategy := newBlockingStrategy()
	e := NewExecutor(strategy, 0, nil)

	e.Apply(DefaultFilterState())
	<-strategy.started
	strategy.release(0, []*domain.Product{{ID: 1}})
	waitFor(t, func() bool { return e.Snapshot().Status == StatusSuccess })

	// The next apply fails; the earlier successful items must not linger.
	e.Apply(DefaultFilterState())
	<-strategy.started
	strategy.releaseErr(1, errors.New("connection refused"))
	waitFor(t, func() bool { return e.Snapshot().Status == StatusError })

	snap := e.Snapshot()
	if snap.Err == nil {
		t.Fatal("expected error in snapshot")
	}
	if snap.Items != nil {
		t.Fatalf("error state must not retain stale items, got %v", snap.Items)
	}
}

func TestExecutor_DoTimesOut(t *testing.T) {
	strategy := NewMemoryStrategy(fixtureProducts()).WithLatency(200 * time.Millisecond)
	e := NewExecutor(strategy, 10*time.Millisecond, nil)

	if _, err := e.Do(context.Background(), DefaultFilterState()); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestExecutor_DoReturnsFilteredItems(t *testing.T) {
	e := NewExecutor(NewMemoryStrategy(fixtureProducts()), time.Second, nil)

	state := DefaultFilterState()
	state.PriceMin, state.PriceMax = 25, 30
	items, err := e.Do(context.Background(), state)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !equalIDs(ids(items), 3, 4, 5) {
		t.Fatalf("Do() ids = %v, want [3 4 5]", ids(items))
	}
}
