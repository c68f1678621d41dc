package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"hookalert/internal/engine/events"
	"hookalert/internal/pkg/respond"
)

// AlertSender is the outbound-mail surface the handler needs; the SMTP
// mailer satisfies it.
type AlertSender interface {
	Send(subject, body string) error
}

// WebhookHandler accepts inbound webhook notifications and emails an alert
// for each one. The counter is owned here and incremented atomically, so
// concurrent requests cannot share an ordinal or double-fire the completion
// alert.
type WebhookHandler struct {
	sender AlertSender
	quota  int64
	count  atomic.Int64
}

func NewWebhookHandler(sender AlertSender, quota int) *WebhookHandler {
	return &WebhookHandler{sender: sender, quota: int64(quota)}
}

func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		log.Error().Err(err).Msg("failed to decode webhook payload")
		respond.Error(w, http.StatusInternalServerError, "invalid JSON payload: "+err.Error())
		return
	}

	rec := events.Normalize(raw)
	log.Info().Str("event_type", rec.EventType).Msg("received webhook")

	// The increment is not rolled back if the send below fails.
	n := h.count.Add(1)

	subject := fmt.Sprintf("Webhook Alert %d/%d: %s", n, h.quota, rec.EventType)
	body := "Processed webhook data:\n" + rec.Summary()

	if err := h.sender.Send(subject, body); err != nil {
		log.Error().Err(err).Int64("count", n).Msg("failed to send webhook alert")
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The counter keeps running past the quota and per-event alerts keep
	// going out; only the increment that lands exactly on the quota gets
	// the completion notice. Its failure does not change this response.
	if n == h.quota {
		completionBody := fmt.Sprintf(
			"All %d webhooks have been processed. The system will now stop accepting new webhooks.", h.quota)
		if err := h.sender.Send("Webhook Processing Complete", completionBody); err != nil {
			log.Error().Err(err).Msg("failed to send completion alert")
		} else {
			log.Info().Int64("quota", h.quota).Msg("webhook quota reached")
		}
	}

	respond.Success(w, "Webhook processed and alert sent")
}

// Received reports how many webhooks have been counted so far.
func (h *WebhookHandler) Received() int64 {
	return h.count.Load()
}

// Quota reports the configured notification quota.
func (h *WebhookHandler) Quota() int64 {
	return h.quota
}
