package handlers

import (
	"net/http"
	"time"

	"hookalert/internal/pkg/respond"
)

// StatusHandler exposes a small monitoring surface: counter position,
// provisioned receiving URL, and uptime.
type StatusHandler struct {
	hook       *WebhookHandler
	webhookURL string
	started    time.Time
}

func NewStatusHandler(hook *WebhookHandler, webhookURL string) *StatusHandler {
	return &StatusHandler{
		hook:       hook,
		webhookURL: webhookURL,
		started:    time.Now(),
	}
}

func (h *StatusHandler) Show(w http.ResponseWriter, r *http.Request) {
	received := h.hook.Received()
	quota := h.hook.Quota()

	response := struct {
		Status        string `json:"status"`
		Received      int64  `json:"received"`
		Quota         int64  `json:"quota"`
		Complete      bool   `json:"complete"`
		WebhookURL    string `json:"webhook_url"`
		UptimeSeconds int64  `json:"uptime_seconds"`
	}{
		Status:        "ok",
		Received:      received,
		Quota:         quota,
		Complete:      received >= quota,
		WebhookURL:    h.webhookURL,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}

	respond.JSON(w, http.StatusOK, response)
}

// Healthz is a bare liveness probe.
func (h *StatusHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
