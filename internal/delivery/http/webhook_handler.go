package http

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"signalgate/internal/adapter/telegram"
	"signalgate/internal/delivery/http/dto"
	"signalgate/internal/domain"
	"signalgate/internal/metrics"
)

// WebhookHandler handles authenticated signal submissions
type WebhookHandler struct {
	store    domain.SignalStore
	commands domain.CommandLog
	notifier *telegram.NotificationService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(store domain.SignalStore, commands domain.CommandLog, notifier *telegram.NotificationService) *WebhookHandler {
	return &WebhookHandler{
		store:    store,
		commands: commands,
		notifier: notifier,
	}
}

// Submit handles an authenticated signal submission.
// POST /webhook
//
// Any valid JSON object is accepted; fields are opaque to the gateway.
// The record is persisted before the response is returned, so a success
// response means the append is durable.
func (h *WebhookHandler) Submit(c echo.Context) error {
	metrics.SignalsReceived.Inc()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		metrics.SignalsRejected.WithLabelValues("bad_request").Inc()
		return BadRequestResponse(c, "Failed to read request body")
	}

	if len(body) == 0 {
		metrics.SignalsRejected.WithLabelValues("bad_request").Inc()
		return BadRequestResponse(c, "Request body is empty")
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.SignalsRejected.WithLabelValues("bad_request").Inc()
		return BadRequestResponse(c, "Request body must be a JSON object")
	}
	// A literal null unmarshals into a nil map without error
	if payload == nil {
		metrics.SignalsRejected.WithLabelValues("bad_request").Inc()
		return BadRequestResponse(c, "Request body must be a JSON object")
	}

	record := domain.NewSignalRecord(payload)

	if err := h.store.Append(c.Request().Context(), record); err != nil {
		metrics.StorageFailures.Inc()
		metrics.SignalsRejected.WithLabelValues("storage_failure").Inc()
		log.Printf("ERROR: Failed to persist signal %s: %v", record.ID, err)
		return InternalServerErrorResponse(c, "Failed to persist signal")
	}

	metrics.SignalsAccepted.Inc()

	// Best-effort collaborators; the stored record is the source of truth
	// and their failures never change the HTTP outcome.
	h.logCommand(record, body)
	go func(rec domain.SignalRecord) {
		if err := h.notifier.SendSignal(&rec); err != nil {
			log.Printf("WARNING: Telegram notification failed: %v", err)
		}
	}(*record)

	return SuccessResponse(c, dto.SubmitAck{
		Asset:     record.Asset(),
		Direction: record.Direction(),
		Timeframe: record.Timeframe(),
	})
}

// logCommand appends an audit entry to the external command log
func (h *WebhookHandler) logCommand(record *domain.SignalRecord, body []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	entry := &domain.CommandEntry{
		ID:        record.ID,
		Source:    "webhook",
		Command:   "signal_received",
		Payload:   json.RawMessage(body),
		CreatedAt: record.ReceivedAt,
	}

	if err := h.commands.Insert(ctx, entry); err != nil {
		log.Printf("WARNING: Command log insert failed for %s: %v", record.ID, err)
	}
}
