package infra

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"signalgate/internal/adapter/telegram"
	"signalgate/internal/domain"
)

// digestWindow bounds how many tail records a digest inspects
const digestWindow = 100

// Digest posts a periodic summary of stored signals to Telegram. It only
// reads the store; the intake path has no background work of its own.
type Digest struct {
	cron     *cron.Cron
	store    domain.SignalStore
	notifier *telegram.NotificationService
	spec     string
}

// NewDigest creates a digest scheduler with a cron spec (e.g. "0 18 * * *")
func NewDigest(store domain.SignalStore, notifier *telegram.NotificationService, spec string) *Digest {
	return &Digest{
		cron:     cron.New(),
		store:    store,
		notifier: notifier,
		spec:     spec,
	}
}

// Start registers and starts the digest job
func (d *Digest) Start() error {
	_, err := d.cron.AddFunc(d.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := d.Run(ctx); err != nil {
			log.Printf("ERROR: Daily digest failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	d.cron.Start()
	log.Printf("[OK] Digest scheduler started (%s)", d.spec)
	return nil
}

// Stop stops the scheduler gracefully
func (d *Digest) Stop() {
	d.cron.Stop()
	log.Println("[OK] Digest scheduler stopped")
}

// Run computes today's summary and sends it to Telegram
func (d *Digest) Run(ctx context.Context) error {
	records, err := d.store.Recent(ctx, digestWindow)
	if err != nil {
		return err
	}

	total, err := d.store.Count(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	day := now.Format("2006-01-02")
	since := now.Truncate(24 * time.Hour)

	received, byDirection := summarize(records, since)

	return d.notifier.SendDigest(day, received, total, byDirection)
}

// summarize counts records received at or after since, grouped by direction
func summarize(records []*domain.SignalRecord, since time.Time) (int, map[string]int) {
	received := 0
	byDirection := make(map[string]int)

	for _, record := range records {
		if record.ReceivedAt.Before(since) {
			continue
		}
		received++

		direction := record.Direction()
		if direction == "" {
			direction = "UNKNOWN"
		}
		byDirection[direction]++
	}

	return received, byDirection
}
