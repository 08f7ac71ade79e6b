package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"translation-practice/services/rest-api/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/", Timeout: timeout})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("New() error = %v, want %v", err, ErrMissingAPIKey)
	}
}

func TestComplete(t *testing.T) {
	var got chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  今日は雨です。\n"}}]}`))
	}, time.Second)

	out, err := c.Complete(context.Background(), domain.CompletionRequest{
		System:      "sys",
		Prompt:      "make a sentence",
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "今日は雨です。" {
		t.Errorf("Complete() = %q", out)
	}

	if got.Model != DefaultModel {
		t.Errorf("model = %q, want %q", got.Model, DefaultModel)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "make a sentence" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "api error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`, wantMsg: "bad key"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantMsg: ErrEmptyResponse.Error()},
		{name: "bad json", status: http.StatusBadGateway, body: `<html>`, wantMsg: "decode"},
		{name: "bare status", status: http.StatusServiceUnavailable, body: `{}`, wantMsg: "unexpected status 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, time.Second)

			_, err := c.Complete(context.Background(), domain.CompletionRequest{Prompt: "x"})
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Complete() error = %v, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestComplete_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 50*time.Millisecond)

	_, err := c.Complete(context.Background(), domain.CompletionRequest{Prompt: "x"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Complete() error = %v, want deadline exceeded", err)
	}
}
