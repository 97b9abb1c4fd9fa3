package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SignalRecord is one accepted webhook submission. The caller's payload is
// kept verbatim as loosely typed fields; the gateway adds only a server
// identifier and the receipt timestamp. Records are never mutated after
// they are appended to the store.
type SignalRecord struct {
	ID         uuid.UUID
	ReceivedAt time.Time
	Payload    map[string]interface{}
}

// NewSignalRecord stamps a submitted payload with an id and receipt time
func NewSignalRecord(payload map[string]interface{}) *SignalRecord {
	return &SignalRecord{
		ID:         uuid.New(),
		ReceivedAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// MarshalJSON flattens the payload and the server-assigned fields into a
// single object, matching the on-disk layout: payload fields plus "id" and
// "received_at".
func (r *SignalRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Payload)+2)
	for k, v := range r.Payload {
		out[k] = v
	}
	out["id"] = r.ID.String()
	out["received_at"] = r.ReceivedAt.Format(time.RFC3339Nano)
	return json.Marshal(out)
}

// UnmarshalJSON restores a record from its flattened form. Missing server
// fields are tolerated: old or hand-edited store files stay readable.
func (r *SignalRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode signal record: %w", err)
	}

	if s, ok := raw["id"].(string); ok {
		if id, err := uuid.Parse(s); err == nil {
			r.ID = id
		}
	}
	delete(raw, "id")

	if s, ok := raw["received_at"].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			r.ReceivedAt = ts
		}
	}
	delete(raw, "received_at")

	r.Payload = raw
	return nil
}

// Asset returns the submitted asset symbol, or "" when absent
func (r *SignalRecord) Asset() string {
	return r.stringField("asset")
}

// Direction returns the submitted direction (e.g. BUY/SELL), or "" when absent
func (r *SignalRecord) Direction() string {
	return r.stringField("direction")
}

// Timeframe returns the submitted timeframe (e.g. 5m), or "" when absent
func (r *SignalRecord) Timeframe() string {
	return r.stringField("timeframe")
}

// Confidence returns the submitted confidence as a number, or 0 when absent
// or not numeric. Display/digest use only; the stored value is untouched.
func (r *SignalRecord) Confidence() float64 {
	if v, ok := r.Payload["confidence"].(float64); ok {
		return v
	}
	return 0
}

func (r *SignalRecord) stringField(key string) string {
	if v, ok := r.Payload[key].(string); ok {
		return v
	}
	return ""
}
