package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hookalert/internal/pkg/respond"
)

type sentMail struct {
	subject string
	body    string
}

type fakeSender struct {
	sent []sentMail
	fail bool
}

func (f *fakeSender) Send(subject, body string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{subject: subject, body: body})
	return nil
}

func post(t *testing.T, h *WebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Receive(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) respond.Envelope {
	t.Helper()
	var env respond.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not valid JSON: %v (body: %s)", err, rr.Body.String())
	}
	return env
}

func TestWebhookHandlerReceive(t *testing.T) {
	t.Run("First Alert Subject", func(t *testing.T) {
		sender := &fakeSender{}
		h := NewWebhookHandler(sender, 3)

		rr := post(t, h, `{"event_type":"ping"}`)

		if rr.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
		}
		env := decodeEnvelope(t, rr)
		if env.Status != "success" || env.Message != "Webhook processed and alert sent" {
			t.Errorf("envelope = %+v", env)
		}
		if len(sender.sent) != 1 {
			t.Fatalf("sent %d alerts, want 1", len(sender.sent))
		}
		if got, want := sender.sent[0].subject, "Webhook Alert 1/3: ping"; got != want {
			t.Errorf("subject = %q, want %q", got, want)
		}
		if !strings.Contains(sender.sent[0].body, "Processed webhook data:") {
			t.Errorf("body missing prefix: %q", sender.sent[0].body)
		}
	})

	t.Run("Completion Alert At Quota", func(t *testing.T) {
		sender := &fakeSender{}
		h := NewWebhookHandler(sender, 3)

		for i := 0; i < 3; i++ {
			rr := post(t, h, `{"event_type":"ping"}`)
			if rr.Code != http.StatusOK {
				t.Fatalf("request %d: status = %d", i+1, rr.Code)
			}
		}

		// 3 per-event alerts plus the completion notice.
		if len(sender.sent) != 4 {
			t.Fatalf("sent %d alerts, want 4", len(sender.sent))
		}
		last := sender.sent[3]
		if last.subject != "Webhook Processing Complete" {
			t.Errorf("subject = %q, want Webhook Processing Complete", last.subject)
		}
		if !strings.Contains(last.body, "All 3 webhooks have been processed") {
			t.Errorf("completion body = %q", last.body)
		}
	})

	t.Run("Counting Continues Past Quota", func(t *testing.T) {
		sender := &fakeSender{}
		h := NewWebhookHandler(sender, 3)

		for i := 0; i < 4; i++ {
			post(t, h, `{"event_type":"ping"}`)
		}

		if h.Received() != 4 {
			t.Errorf("Received() = %d, want 4", h.Received())
		}
		// 4 per-event alerts, one completion notice, no second completion.
		if len(sender.sent) != 5 {
			t.Fatalf("sent %d alerts, want 5", len(sender.sent))
		}
		if got, want := sender.sent[4].subject, "Webhook Alert 4/3: ping"; got != want {
			t.Errorf("subject = %q, want %q", got, want)
		}
	})

	t.Run("Send Failure After Increment", func(t *testing.T) {
		sender := &fakeSender{fail: true}
		h := NewWebhookHandler(sender, 3)

		rr := post(t, h, `{"event_type":"ping"}`)

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
		}
		env := decodeEnvelope(t, rr)
		if env.Status != "error" || !strings.Contains(env.Message, "smtp unavailable") {
			t.Errorf("envelope = %+v", env)
		}
		if h.Received() != 1 {
			t.Errorf("Received() = %d, want 1 (increment precedes send)", h.Received())
		}
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		sender := &fakeSender{}
		h := NewWebhookHandler(sender, 3)

		rr := post(t, h, `{not json`)

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
		}
		env := decodeEnvelope(t, rr)
		if env.Status != "error" || !strings.Contains(env.Message, "invalid JSON payload") {
			t.Errorf("envelope = %+v", env)
		}
		if len(sender.sent) != 0 {
			t.Errorf("sent %d alerts, want 0", len(sender.sent))
		}
		if h.Received() != 0 {
			t.Errorf("Received() = %d, want 0", h.Received())
		}
	})

	t.Run("Missing Fields Default To Unknown", func(t *testing.T) {
		sender := &fakeSender{}
		h := NewWebhookHandler(sender, 3)

		post(t, h, `{"something":"else"}`)

		if len(sender.sent) != 1 {
			t.Fatalf("sent %d alerts, want 1", len(sender.sent))
		}
		if got, want := sender.sent[0].subject, "Webhook Alert 1/3: Unknown"; got != want {
			t.Errorf("subject = %q, want %q", got, want)
		}
	})
}
