// Package events normalizes arbitrary webhook payloads into a fixed-shape
// event record.
package events

import "encoding/json"

// Record is the normalized form of one inbound webhook payload. It lives for
// the duration of a single request; nothing persists it.
type Record struct {
	EventType string                 `json:"event_type"`
	Timestamp string                 `json:"timestamp,omitempty"`
	Details   map[string]interface{} `json:"details"`
}

// Normalize maps a decoded JSON object into a Record. It is total: missing or
// unexpectedly-typed fields degrade to defaults ("Unknown" event type, empty
// timestamp, empty details) rather than failing.
func Normalize(raw map[string]interface{}) Record {
	rec := Record{
		EventType: "Unknown",
		Details:   map[string]interface{}{},
	}

	if v, ok := raw["event_type"].(string); ok && v != "" {
		rec.EventType = v
	}
	if v, ok := raw["timestamp"].(string); ok {
		rec.Timestamp = v
	}
	if v, ok := raw["details"].(map[string]interface{}); ok {
		rec.Details = v
	}

	return rec
}

// Summary renders the record for inclusion in an alert body.
func (r Record) Summary() string {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		// Details came out of json.Decode, so this cannot realistically fail.
		return `{"event_type":"` + r.EventType + `"}`
	}
	return string(b)
}
