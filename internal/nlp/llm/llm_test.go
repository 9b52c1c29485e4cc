package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"brand-insights-go/internal/types"
)

func gateway(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		GatewayURL:     srv.URL,
		APIKey:         "test-key",
		Model:          "test-model",
		RequestTimeout: 2 * time.Second,
		MaxElapsed:     3 * time.Second,
	})
}

func completion(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestExtract_ParsesFencedJSONArray(t *testing.T) {
	c := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		completion(t, w, "Here are the brands:\n```json\n[\"Kirkland\", \"kirkland\", \"Isopure\"]\n```")
	})
	got, err := c.Extract(context.Background(), "some transcript", nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := []string{"Isopure", "Kirkland"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScore_ClampsAndLabels(t *testing.T) {
	c := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		completion(t, w, `{"label": "very good", "score": 1.7}`)
	})
	got, err := c.Score(context.Background(), types.Statement{Index: 2, Text: "s"}, "Kirkland")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got.Score != 1 {
		t.Errorf("score not clamped: %v", got.Score)
	}
	if got.Label != types.SentimentPositive {
		t.Errorf("unknown label should fall back to score sign, got %q", got.Label)
	}
	if got.StatementIndex != 2 || got.Brand != "Kirkland" {
		t.Errorf("result identity wrong: %+v", got)
	}
}

func TestComplete_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "overloaded", http.StatusBadGateway)
			return
		}
		completion(t, w, `["Kirkland"]`)
	})
	got, err := c.Extract(context.Background(), "text", nil)
	if err != nil {
		t.Fatalf("extract after retry: %v", err)
	}
	if calls.Load() < 2 {
		t.Fatalf("expected a retry, got %d calls", calls.Load())
	}
	if len(got) != 1 || got[0] != "Kirkland" {
		t.Fatalf("got %v", got)
	}
}

func TestComplete_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	c := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	})
	if _, err := c.Extract(context.Background(), "text", nil); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", calls.Load())
	}
}
