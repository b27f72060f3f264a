package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFallback_NeverFetchedReturnsZeroValue(t *testing.T) {
	t.Parallel()

	f := NewFallback[[]string]("scores", StaticTTL[[]string](time.Minute), nil)

	got := f.GetOrFetch(context.Background(), func(context.Context) ([]string, error) {
		return nil, errors.New("source unavailable")
	})
	if got != nil {
		t.Fatalf("expected zero value before first success, got %v", got)
	}
	if _, ok := f.Peek(); ok {
		t.Fatal("Peek reported a last-good value before any success")
	}
}

func TestFallback_ServesLastGoodAfterFailures(t *testing.T) {
	t.Parallel()

	f := NewFallback[[]string]("headlines", StaticTTL[[]string](time.Nanosecond), nil)

	first := f.GetOrFetch(context.Background(), func(context.Context) ([]string, error) {
		return []string{"trade rumor"}, nil
	})
	if len(first) != 1 {
		t.Fatalf("first fetch returned %v", first)
	}

	time.Sleep(time.Millisecond)

	// Every subsequent fetch fails; the last successful value keeps serving.
	for i := 0; i < 3; i++ {
		got := f.GetOrFetch(context.Background(), func(context.Context) ([]string, error) {
			return nil, errors.New("timeout")
		})
		if len(got) != 1 || got[0] != "trade rumor" {
			t.Fatalf("attempt %d: expected last-good value, got %v", i, got)
		}
	}

	st := f.Status()
	if st.Fresh {
		t.Fatal("status reports fresh after expiry and failed refresh")
	}
	if !st.HasLastGood {
		t.Fatal("status lost last-good marker")
	}
	if st.LastError == "" {
		t.Fatal("status should carry the last fetch error")
	}
}

func TestFallback_UnexpiredValueSkipsFetch(t *testing.T) {
	t.Parallel()

	f := NewFallback[int]("salary", StaticTTL[int](time.Minute), nil)
	var calls atomic.Int32

	fetch := func(context.Context) (int, error) {
		calls.Add(1)
		return 42, nil
	}

	for i := 0; i < 5; i++ {
		if got := f.GetOrFetch(context.Background(), fetch); got != 42 {
			t.Fatalf("got %d, want 42", got)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("fetch called %d times, want 1", got)
	}
}

func TestFallback_DynamicTTLRecomputedPerPayload(t *testing.T) {
	t.Parallel()

	// TTL is a function of the payload: volatile payloads expire immediately.
	ttl := func(v string) time.Duration {
		if v == "live" {
			return 0
		}
		return time.Minute
	}
	f := NewFallback[string]("ttl", ttl, nil)

	var calls atomic.Int32
	fetchLive := func(context.Context) (string, error) {
		calls.Add(1)
		return "live", nil
	}

	f.GetOrFetch(context.Background(), fetchLive)
	f.GetOrFetch(context.Background(), fetchLive)
	if got := calls.Load(); got != 2 {
		t.Fatalf("zero TTL payload should force refetch, fetch called %d times", got)
	}

	calls.Store(0)
	fetchFinal := func(context.Context) (string, error) {
		calls.Add(1)
		return "final", nil
	}
	f.GetOrFetch(context.Background(), fetchFinal)
	f.GetOrFetch(context.Background(), fetchFinal)
	if got := calls.Load(); got != 1 {
		t.Fatalf("long TTL payload should be cached, fetch called %d times", got)
	}
}

func TestFallback_EmptyResultTreatedAsFailure(t *testing.T) {
	t.Parallel()

	f := NewFallback[[]int]("stats", StaticTTL[[]int](time.Nanosecond), nil,
		WithEmptyCheck(func(v []int) bool { return len(v) == 0 }))

	f.GetOrFetch(context.Background(), func(context.Context) ([]int, error) {
		return []int{7}, nil
	})
	time.Sleep(time.Millisecond)

	got := f.GetOrFetch(context.Background(), func(context.Context) ([]int, error) {
		return []int{}, nil
	})
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("empty fetch should serve last-good, got %v", got)
	}
}

func TestFallback_ConcurrentMissesShareOneFetch(t *testing.T) {
	t.Parallel()

	f := NewFallback[string]("shared", StaticTTL[string](time.Minute), nil)
	var calls atomic.Int32

	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return "v", nil
	}

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			if got := f.GetOrFetch(context.Background(), fetch); got != "v" {
				t.Errorf("got %q, want v", got)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("fetch called %d times, want 1", got)
	}
}
