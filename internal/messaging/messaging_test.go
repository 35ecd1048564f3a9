package messaging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kolhapurmc/civicbot/internal/models"
	"github.com/kolhapurmc/civicbot/internal/twiliowhatsapp"
	"github.com/kolhapurmc/civicbot/internal/whatsapp"
)

func postForm(handler http.HandlerFunc, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestTwilioWebhookEmitsResponse(t *testing.T) {
	svc := NewTwilioService(twiliowhatsapp.NewMockClient())
	rec := postForm(svc.WebhookHandler, url.Values{
		"From":        {"whatsapp:+919876543210"},
		"Body":        {"hello"},
		"ProfileName": {"Asha"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	select {
	case resp := <-svc.Responses():
		if resp.From != "whatsapp:+919876543210" || resp.Body != "hello" || resp.ProfileName != "Asha" {
			t.Errorf("unexpected response: %+v", resp)
		}
	case <-time.After(time.Second):
		t.Fatal("no response emitted")
	}
}

func TestTwilioWebhookRejectsMissingFields(t *testing.T) {
	svc := NewTwilioService(twiliowhatsapp.NewMockClient())
	cases := []url.Values{
		{"Body": {"hello"}},
		{"From": {"whatsapp:+919876543210"}},
		{},
	}
	for _, values := range cases {
		rec := postForm(svc.WebhookHandler, values)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("payload %v: status = %d, want 400", values, rec.Code)
		}
	}
	select {
	case resp := <-svc.Responses():
		t.Fatalf("rejected payload emitted a response: %+v", resp)
	default:
	}
}

func TestTwilioSendMessageCanonicalizes(t *testing.T) {
	mock := twiliowhatsapp.NewMockClient()
	svc := NewTwilioService(mock)
	if err := svc.SendMessage(context.Background(), "whatsapp:+91 98765 43210", "reply"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if len(mock.SentMessages) != 1 {
		t.Fatalf("sent %d messages, want 1", len(mock.SentMessages))
	}
	if mock.SentMessages[0].To != "919876543210" {
		t.Errorf("recipient = %q, want canonical digits", mock.SentMessages[0].To)
	}
}

func TestTwilioSendAfterStop(t *testing.T) {
	svc := NewTwilioService(twiliowhatsapp.NewMockClient())
	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := svc.SendMessage(context.Background(), "919876543210", "reply"); err != ErrServiceStopped {
		t.Errorf("expected ErrServiceStopped, got %v", err)
	}
}

func TestCanonicalizePhone(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"whatsapp:+919876543210", "919876543210", false},
		{"+91 98765-43210", "919876543210", false},
		{"919876543210", "919876543210", false},
		{"12345", "", true},
		{"", "", true},
		{"no digits", "", true},
	}
	for _, c := range cases {
		got, err := canonicalizePhone(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("canonicalizePhone(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("canonicalizePhone(%q) failed: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("canonicalizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// echoHandler replies with a fixed string and records calls.
type echoHandler struct {
	mu     sync.Mutex
	phones []string
	texts  []string
	reply  string
}

func (h *echoHandler) HandleMessage(ctx context.Context, phone, text string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.phones = append(h.phones, phone)
	h.texts = append(h.texts, text)
	return h.reply
}

func TestDispatcherRoutesInboundToHandlerAndSendsReply(t *testing.T) {
	mock := twiliowhatsapp.NewMockClient()
	svc := NewTwilioService(mock)
	handler := &echoHandler{reply: "canned reply"}
	d := NewDispatcher(svc, handler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	rec := postForm(svc.WebhookHandler, url.Values{
		"From": {"whatsapp:+919876543210"},
		"Body": {"2"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("webhook status = %d", rec.Code)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		handler.mu.Lock()
		handled := len(handler.phones)
		handler.mu.Unlock()
		if handled == 1 && len(mock.SentMessages) == 1 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()
	if len(handler.phones) != 1 || handler.phones[0] != "919876543210" {
		t.Fatalf("handler saw phones %v", handler.phones)
	}
	if handler.texts[0] != "2" {
		t.Errorf("handler saw text %q", handler.texts[0])
	}
	if len(mock.SentMessages) != 1 || mock.SentMessages[0].Body != "canned reply" {
		t.Errorf("sent messages: %+v", mock.SentMessages)
	}
}

func TestDispatcherDropsInvalidSender(t *testing.T) {
	mock := twiliowhatsapp.NewMockClient()
	svc := NewTwilioService(mock)
	handler := &echoHandler{reply: "reply"}
	d := NewDispatcher(svc, handler)

	d.dispatch(context.Background(), models.Response{From: "garbage", Body: "hi"})

	handler.mu.Lock()
	defer handler.mu.Unlock()
	if len(handler.phones) != 0 {
		t.Error("invalid sender must not reach the handler")
	}
	if len(mock.SentMessages) != 0 {
		t.Error("nothing should be sent for an invalid sender")
	}
}

func TestWhatsAppEmitAfterStopIsDropped(t *testing.T) {
	svc := NewWhatsAppService(whatsapp.NewMockClient())
	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	// An event callback can still fire after Stop; the emit must be
	// dropped rather than hitting the closing channel.
	svc.safeEmitResponse(models.Response{From: "919876543210", Body: "late"})

	select {
	case resp, ok := <-svc.Responses():
		if ok {
			t.Errorf("unexpected response after stop: %+v", resp)
		}
	case <-time.After(time.Second):
		t.Error("responses channel never closed after Stop")
	}
}

func TestWhatsAppEmitBeforeStopDelivered(t *testing.T) {
	svc := NewWhatsAppService(whatsapp.NewMockClient())
	svc.safeEmitResponse(models.Response{From: "919876543210", Body: "hi"})

	select {
	case resp := <-svc.Responses():
		if resp.Body != "hi" {
			t.Errorf("body = %q", resp.Body)
		}
	case <-time.After(time.Second):
		t.Fatal("inbound message was not emitted")
	}
	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}
