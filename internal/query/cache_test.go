package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDoCachesWithinTTL(t *testing.T) {
	c := New()
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return "categories", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.Do(context.Background(), "categories", time.Minute, fetch)
		if err != nil {
			t.Fatalf("do failed: %v", err)
		}
		if v != "categories" {
			t.Fatalf("unexpected value %v", v)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one fetch, got %d", calls.Load())
	}
}

func TestDoExpiresByTTL(t *testing.T) {
	c := New()
	now := time.Now()
	c.now = func() time.Time { return now }

	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return calls.Load(), nil
	}

	if _, err := c.Do(context.Background(), "k", time.Minute, fetch); err != nil {
		t.Fatalf("do failed: %v", err)
	}
	now = now.Add(2 * time.Minute)
	v, err := c.Do(context.Background(), "k", time.Minute, fetch)
	if err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if v != int32(2) {
		t.Fatalf("expected refetch after expiry, got %v", v)
	}
}

func TestDoDeduplicatesConcurrentFetches(t *testing.T) {
	c := New()
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "v", nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]any, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Do(context.Background(), "same-key", time.Minute, fetch)
			if err != nil {
				t.Errorf("do failed: %v", err)
			}
			results[i] = v
		}(i)
	}

	// Give every worker a chance to join the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected one shared fetch, got %d", calls.Load())
	}
	for i, v := range results {
		if v != "v" {
			t.Fatalf("worker %d got %v", i, v)
		}
	}
}

func TestDoDoesNotCacheErrors(t *testing.T) {
	c := New()
	var calls atomic.Int32
	boom := errors.New("backend down")
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return "ok", nil
	}

	if _, err := c.Do(context.Background(), "k", time.Minute, fetch); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	v, err := c.Do(context.Background(), "k", time.Minute, fetch)
	if err != nil || v != "ok" {
		t.Fatalf("expected retry to succeed, got %v %v", v, err)
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := New()
	fetchCount := map[string]*atomic.Int32{}
	fetch := func(key string) func(context.Context) (any, error) {
		counter := &atomic.Int32{}
		fetchCount[key] = counter
		return func(ctx context.Context) (any, error) {
			counter.Add(1)
			return key, nil
		}
	}

	fp := fetch("products:page=1")
	fc := fetch("categories")
	c.Do(context.Background(), "products:page=1", time.Minute, fp)
	c.Do(context.Background(), "categories", time.Minute, fc)

	c.Invalidate("products:")

	c.Do(context.Background(), "products:page=1", time.Minute, fp)
	c.Do(context.Background(), "categories", time.Minute, fc)

	if got := fetchCount["products:page=1"].Load(); got != 2 {
		t.Fatalf("expected products refetched, got %d", got)
	}
	if got := fetchCount["categories"].Load(); got != 1 {
		t.Fatalf("expected categories cached, got %d", got)
	}
}

func TestFetchTyped(t *testing.T) {
	c := New()
	v, err := Fetch(context.Background(), c, "n", time.Minute, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil || v != 42 {
		t.Fatalf("unexpected result %v %v", v, err)
	}
}

func TestDoRespectsCallerCancellation(t *testing.T) {
	c := New()
	release := make(chan struct{})
	defer close(release)
	fetch := func(ctx context.Context) (any, error) {
		<-release
		return "late", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Do(ctx, "slow", time.Minute, fetch); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
