package infra

import (
	"testing"
	"time"

	"signalgate/internal/domain"
)

func record(direction string, receivedAt time.Time) *domain.SignalRecord {
	r := domain.NewSignalRecord(map[string]interface{}{"direction": direction})
	r.ReceivedAt = receivedAt
	return r
}

func TestSummarize(t *testing.T) {
	since := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	records := []*domain.SignalRecord{
		record("BUY", since.Add(-time.Hour)), // before the window
		record("BUY", since.Add(time.Hour)),
		record("SELL", since.Add(2*time.Hour)),
		record("", since.Add(3*time.Hour)),
	}

	received, byDirection := summarize(records, since)

	if received != 3 {
		t.Fatalf("expected 3 records in window, got %d", received)
	}
	if byDirection["BUY"] != 1 || byDirection["SELL"] != 1 || byDirection["UNKNOWN"] != 1 {
		t.Fatalf("unexpected breakdown: %v", byDirection)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	received, byDirection := summarize(nil, time.Now())
	if received != 0 {
		t.Fatalf("expected 0 records, got %d", received)
	}
	if len(byDirection) != 0 {
		t.Fatalf("expected empty breakdown, got %v", byDirection)
	}
}
