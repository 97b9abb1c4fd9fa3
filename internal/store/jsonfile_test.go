package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"signalgate/internal/domain"
)

func newRecord(asset string) *domain.SignalRecord {
	return domain.NewSignalRecord(map[string]interface{}{
		"asset":     asset,
		"direction": "BUY",
	})
}

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "signals.json"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}

	count, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty store, got %d records", count)
	}

	recent, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected no records, got %d", len(recent))
	}
}

func TestAppendAndRecentOrder(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "signals.json"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Append(ctx, newRecord(fmt.Sprintf("ASSET-%d", i))); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}

	count, _ := s.Count(ctx)
	if count != 5 {
		t.Fatalf("expected 5 records, got %d", count)
	}

	recent, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recent))
	}
	for i, want := range []string{"ASSET-2", "ASSET-3", "ASSET-4"} {
		if recent[i].Asset() != want {
			t.Fatalf("record %d: expected %s, got %s", i, want, recent[i].Asset())
		}
	}
}

func TestRecentLimitLargerThanStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "signals.json"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	ctx := context.Background()

	if err := s.Append(ctx, newRecord("ETH/USD")); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	recent, err := s.Recent(ctx, 50)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recent))
	}
}

func TestReloadAfterReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}

	original := newRecord("ETH/USD")
	if err := s.Append(ctx, original); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}

	recent, err := reopened.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 record after reload, got %d", len(recent))
	}

	got := recent[0]
	if got.ID != original.ID {
		t.Fatalf("expected id %s, got %s", original.ID, got.ID)
	}
	if got.Asset() != "ETH/USD" {
		t.Fatalf("expected asset ETH/USD, got %s", got.Asset())
	}
	if !got.ReceivedAt.Equal(original.ReceivedAt) {
		t.Fatalf("expected received_at %v, got %v", original.ReceivedAt, got.ReceivedAt)
	}
}

func TestConcurrentAppends(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "signals.json"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Append(ctx, newRecord(fmt.Sprintf("ASSET-%d", i))); err != nil {
				t.Errorf("Append error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	count, _ := s.Count(ctx)
	if count != n {
		t.Fatalf("expected %d records after concurrent appends, got %d", n, count)
	}

	// No duplicates or omissions
	recent, err := s.Recent(ctx, n)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	seen := make(map[string]bool, n)
	for _, record := range recent {
		asset := record.Asset()
		if seen[asset] {
			t.Fatalf("duplicate record for %s", asset)
		}
		seen[asset] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct records, got %d", n, len(seen))
	}
}

func TestReceivedAtStamped(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "signals.json"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	ctx := context.Background()

	start := time.Now().UTC()
	if err := s.Append(ctx, newRecord("BTC/USD")); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	end := time.Now().UTC()

	recent, _ := s.Recent(ctx, 1)
	got := recent[0].ReceivedAt
	if got.Before(start) || got.After(end) {
		t.Fatalf("received_at %v outside [%v, %v]", got, start, end)
	}
}
