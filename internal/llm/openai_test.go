package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if raw["model"] != "gpt-4o" {
			t.Errorf("expected model 'gpt-4o', got %v", raw["model"])
		}
		if temp, ok := raw["temperature"]; !ok {
			t.Error("expected temperature field in request body")
		} else if temp != 0.2 {
			t.Errorf("expected temperature 0.2, got %v", temp)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionBody("尊敬的家长，您好！"))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "gpt-4o")

	got, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "写用药教育"}}, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "尊敬的家长，您好！" {
		t.Errorf("expected completion content, got %q", got)
	}
}

func TestOpenAIClient_Complete_NoRetryOnFailure(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "model unavailable"})
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "gpt-4o")

	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 0.2)
	if err == nil {
		t.Fatal("expected error for failing upstream")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Errorf("expected *UpstreamError, got %T", err)
	}
	// a single failure must propagate immediately
	if requests != 1 {
		t.Errorf("expected exactly one upstream request, got %d", requests)
	}
}

func TestOpenAIClient_Complete_NoMessages(t *testing.T) {
	client := NewOpenAIClient("test-key", "http://localhost:1", "gpt-4o")

	_, err := client.Complete(context.Background(), nil, 0.2)
	if err == nil {
		t.Error("expected error for empty message list")
	}
}

func TestOpenAIClient_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "gpt-4o")

	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 0.2)
	if err == nil {
		t.Fatal("expected error for empty choices")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Errorf("expected *UpstreamError, got %T", err)
	}
}
