package langfuse

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient_Disabled(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{
			name:   "empty base URL",
			config: Config{BaseURL: "", PublicKey: "pk", SecretKey: "sk"},
		},
		{
			name:   "empty public key",
			config: Config{BaseURL: "http://localhost", PublicKey: "", SecretKey: "sk"},
		},
		{
			name:   "empty secret key",
			config: Config{BaseURL: "http://localhost", PublicKey: "pk", SecretKey: ""},
		},
		{
			name:   "all empty",
			config: Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.config)
			if c.IsEnabled() {
				t.Error("expected client to be disabled")
			}
		})
	}
}

func TestNewClient_Enabled(t *testing.T) {
	c := NewClient(Config{
		BaseURL:     "http://localhost:3000",
		PublicKey:   "pk-test",
		SecretKey:   "sk-test",
		Environment: "test",
	})

	if !c.IsEnabled() {
		t.Error("expected client to be enabled")
	}
}

func TestCreateTrace_DisabledClient(t *testing.T) {
	c := NewClient(Config{}) // disabled

	traceID, err := c.CreateTrace(context.Background(), TraceInput{
		UserID: "user-123",
		Name:   "test-trace",
		Input:  map[string]any{"key": "value"},
		Output: map[string]any{"result": "ok"},
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if traceID != "" {
		t.Errorf("expected empty trace ID, got %s", traceID)
	}
}

func TestCreateScore_DisabledClient(t *testing.T) {
	c := NewClient(Config{}) // disabled

	err := c.CreateScore(context.Background(), ScoreInput{
		TraceID: "trace-123",
		Name:    "user_rating",
		Value:   4.0,
		Comment: "Great!",
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

// captureServer records the first ingestion batch it receives and signals
// on done. Sends are fire-and-forget, so tests must wait for the signal.
func captureServer(t *testing.T) (*httptest.Server, *map[string]any, *string, chan struct{}) {
	t.Helper()
	var receivedBody map[string]any
	var receivedAuth string
	done := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, pass, ok := r.BasicAuth(); ok {
			receivedAuth = user + ":" + pass
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &receivedBody)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"successes":[],"errors":[]}`))
		close(done)
	}))
	return server, &receivedBody, &receivedAuth, done
}

func waitForSend(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("ingestion request never arrived")
	}
}

func TestCreateTrace_EnabledClient(t *testing.T) {
	server, receivedBody, receivedAuth, done := captureServer(t)
	defer server.Close()

	c := NewClient(Config{
		BaseURL:     server.URL,
		PublicKey:   "pk-test",
		SecretKey:   "sk-test",
		Environment: "testing",
	})

	traceID, err := c.CreateTrace(context.Background(), TraceInput{
		UserID: "user-123",
		Name:   "coach-chat",
		Input:  map[string]any{"query": "How is my sleep?"},
		Output: map[string]any{"answer": "Looking steady."},
		Tags:   []string{"chat"},
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if traceID == "" {
		t.Error("expected non-empty trace ID")
	}

	waitForSend(t, done)

	if *receivedAuth != "pk-test:sk-test" {
		t.Errorf("expected auth pk-test:sk-test, got %s", *receivedAuth)
	}

	batch, ok := (*receivedBody)["batch"].([]any)
	if !ok || len(batch) != 1 {
		t.Fatal("expected batch with 1 event")
	}

	event := batch[0].(map[string]any)
	if event["type"] != "trace-create" {
		t.Errorf("expected type trace-create, got %v", event["type"])
	}

	body := event["body"].(map[string]any)
	if body["name"] != "coach-chat" {
		t.Errorf("expected name coach-chat, got %v", body["name"])
	}
	if body["userId"] != "user-123" {
		t.Errorf("expected userId user-123, got %v", body["userId"])
	}

	metadata := body["metadata"].(map[string]any)
	if metadata["environment"] != "testing" {
		t.Errorf("expected environment testing, got %v", metadata["environment"])
	}
}

func TestCreateScore_EnabledClient(t *testing.T) {
	server, receivedBody, _, done := captureServer(t)
	defer server.Close()

	c := NewClient(Config{
		BaseURL:   server.URL,
		PublicKey: "pk-test",
		SecretKey: "sk-test",
	})

	err := c.CreateScore(context.Background(), ScoreInput{
		TraceID: "trace-abc123",
		Name:    "user_rating",
		Value:   4.5,
		Comment: "Very helpful!",
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	waitForSend(t, done)

	batch := (*receivedBody)["batch"].([]any)
	event := batch[0].(map[string]any)

	if event["type"] != "score-create" {
		t.Errorf("expected type score-create, got %v", event["type"])
	}

	body := event["body"].(map[string]any)
	if body["traceId"] != "trace-abc123" {
		t.Errorf("expected traceId trace-abc123, got %v", body["traceId"])
	}
	if body["value"] != 4.5 {
		t.Errorf("expected value 4.5, got %v", body["value"])
	}
}

func TestCreateTrace_ExplicitID(t *testing.T) {
	server, _, _, _ := captureServer(t)
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, PublicKey: "pk", SecretKey: "sk"})

	traceID, err := c.CreateTrace(context.Background(), TraceInput{ID: "fixed-id", Name: "t"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if traceID != "fixed-id" {
		t.Errorf("expected fixed-id, got %s", traceID)
	}
}
