package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kolhapurmc/civicbot/internal/messaging"
	"github.com/kolhapurmc/civicbot/internal/models"
	"github.com/kolhapurmc/civicbot/internal/twiliowhatsapp"
)

type stubHandler struct {
	lastPhone string
	lastText  string
	reply     string
}

func (h *stubHandler) HandleMessage(ctx context.Context, phone, text string) string {
	h.lastPhone = phone
	h.lastText = text
	return h.reply
}

func TestChatHandlerRoundTrip(t *testing.T) {
	h := &stubHandler{reply: "namaste"}
	s := NewServer(h, nil)

	body := `{"from":"web-user-1","message":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.chatHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result type: %T", resp.Result)
	}
	if result["reply"] != "namaste" {
		t.Errorf("reply = %v", result["reply"])
	}
	if h.lastPhone != "web-user-1" || h.lastText != "hello" {
		t.Errorf("handler saw %q/%q", h.lastPhone, h.lastText)
	}
}

func TestChatHandlerRejectsBadPayloads(t *testing.T) {
	s := NewServer(&stubHandler{reply: "x"}, nil)
	cases := []string{
		`not json`,
		`{"message":"hello"}`,
		`{"from":"u1"}`,
		`{"from":"  ","message":"hello"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.chatHandler(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("payload %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestChatHandlerMethodNotAllowed(t *testing.T) {
	s := NewServer(&stubHandler{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()
	s.chatHandler(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	s := NewServer(&stubHandler{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Errorf("status field = %v", payload["status"])
	}
}

func TestWebhookRouteRegisteredWithTwilio(t *testing.T) {
	twilioSvc := messaging.NewTwilioService(twiliowhatsapp.NewMockClient())
	s := NewServer(&stubHandler{reply: "x"}, twilioSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.chatHandler)
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/webhook/whatsapp", twilioSvc.WebhookHandler)

	form := url.Values{"From": {"whatsapp:+919876543210"}, "Body": {"hi"}}
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("webhook status = %d, want 200", rec.Code)
	}
}
