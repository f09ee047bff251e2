package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenRouterProvider_Invoke(t *testing.T) {
	var gotReq openRouterRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices": [{"message": {"content": "{\"days\": []}"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenRouterProvider("test-key", "openai/gpt-4o-mini")
	p.baseURL = srv.URL

	out, err := p.Invoke(context.Background(), "plan a trip")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out != `{"days": []}` {
		t.Errorf("out = %q", out)
	}
	if gotReq.Model != "openai/gpt-4o-mini" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "plan a trip" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestOpenRouterProvider_RateLimitErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenRouterProvider("test-key", "openai/gpt-4o-mini")
	p.baseURL = srv.URL

	_, err := p.Invoke(context.Background(), "plan a trip")
	if err == nil {
		t.Fatal("expected error")
	}
	// The status code in the message is what the fallback loop keys its
	// quota detection on.
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %v, want 429 in message", err)
	}
	if !isQuotaSignal(err) {
		t.Error("rate-limit error should register as a quota signal")
	}
}

func TestOpenRouterProvider_NoChoicesIsSoftFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	p := NewOpenRouterProvider("test-key", "openai/gpt-4o-mini")
	p.baseURL = srv.URL

	out, err := p.Invoke(context.Background(), "plan a trip")
	if err != nil || out != "" {
		t.Errorf("got (%q, %v), want empty soft failure", out, err)
	}
}

func TestOpenRouterProvider_MissingKey(t *testing.T) {
	p := NewOpenRouterProvider("", "openai/gpt-4o-mini")
	if _, err := p.Invoke(context.Background(), "x"); err == nil {
		t.Error("missing key should fail fast")
	}
}
