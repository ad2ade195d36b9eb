package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakePrefetcher struct {
	mu     sync.Mutex
	cities []string
	fail   map[string]error
}

func (f *fakePrefetcher) Prefetch(ctx context.Context, city string) error {
	f.mu.Lock()
	f.cities = append(f.cities, city)
	f.mu.Unlock()
	if err, ok := f.fail[city]; ok {
		return err
	}
	return nil
}

func TestWarm_PrefetchesEveryCity(t *testing.T) {
	fp := &fakePrefetcher{}
	w := NewForecastWarmer(fp, nil)

	if err := w.Warm(context.Background(), []string{"Paris", "Tokyo", "Goa"}); err != nil {
		t.Fatalf("Warm() error: %v", err)
	}
	if len(fp.cities) != 3 {
		t.Errorf("prefetched %d cities, want 3: %v", len(fp.cities), fp.cities)
	}
}

func TestWarm_AggregatesFailures(t *testing.T) {
	fp := &fakePrefetcher{fail: map[string]error{"Atlantis": errors.New("city not found")}}
	w := NewForecastWarmer(fp, nil)

	err := w.Warm(context.Background(), []string{"Paris", "Atlantis"})
	if err == nil {
		t.Fatal("Warm() = nil, want aggregated error")
	}
	if !strings.Contains(err.Error(), "Atlantis") {
		t.Errorf("error = %v, want failing city named", err)
	}
	if len(fp.cities) != 2 {
		t.Errorf("prefetched %d cities, want 2 (failure must not skip siblings)", len(fp.cities))
	}
}

func TestWarmPeriodic_StopsOnContextCancel(t *testing.T) {
	fp := &fakePrefetcher{}
	w := NewForecastWarmer(fp, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.WarmPeriodic(ctx, []string{"Paris"}, time.Hour)
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("WarmPeriodic() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WarmPeriodic() did not return after cancel")
	}
}
