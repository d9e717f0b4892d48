package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionBody(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
}

func TestChatClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected path /chat/completions, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer header, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected JSON content type, got %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "gpt-4o" {
			t.Errorf("expected model 'gpt-4o', got %q", req.Model)
		}
		if req.Temperature != 0.2 {
			t.Errorf("expected temperature 0.2, got %v", req.Temperature)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != RoleUser {
			t.Errorf("expected one user message, got %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(completionBody("尊敬的家长，您好！"))
	}))
	defer server.Close()

	client := NewChatClient(server.URL, "test-key", "gpt-4o")

	got, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "写用药教育"}}, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "尊敬的家长，您好！" {
		t.Errorf("expected completion content, got %q", got)
	}
}

func TestChatClient_Complete_ZeroTemperatureOnWire(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		// temperature 0 must be sent explicitly, not dropped from the payload
		temp, ok := raw["temperature"]
		if !ok {
			t.Error("expected temperature field in request body")
		} else if temp != 0.0 {
			t.Errorf("expected temperature 0, got %v", temp)
		}

		json.NewEncoder(w).Encode(completionBody("ok"))
	}))
	defer server.Close()

	client := NewChatClient(server.URL, "test-key", "gpt-4o")

	if _, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "评价"}}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChatClient_Complete_NoMessages(t *testing.T) {
	client := NewChatClient("http://localhost:1", "test-key", "gpt-4o")

	_, err := client.Complete(context.Background(), nil, 0.2)
	if err == nil {
		t.Error("expected error for empty message list")
	}
}

func TestChatClient_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "bad credentials"})
	}))
	defer server.Close()

	client := NewChatClient(server.URL, "bad-key", "gpt-4o")

	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 0.2)
	if err == nil {
		t.Fatal("expected error for non-OK status")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %T", err)
	}
	if upstream.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", upstream.Status)
	}
}

func TestChatClient_Complete_UndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewChatClient(server.URL, "test-key", "gpt-4o")

	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 0.2)
	if err == nil {
		t.Fatal("expected error for undecodable body")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Errorf("expected *UpstreamError, got %T", err)
	}
}

func TestChatClient_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := NewChatClient(server.URL, "test-key", "gpt-4o")

	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 0.2)
	if err == nil {
		t.Fatal("expected error for empty choices")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Errorf("expected *UpstreamError, got %T", err)
	}
}

func TestChatClient_Complete_ConnectionRefused(t *testing.T) {
	client := NewChatClient("http://127.0.0.1:1", "test-key", "gpt-4o")

	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 0.2)
	if err == nil {
		t.Fatal("expected error when endpoint is unreachable")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Errorf("expected *UpstreamError, got %T", err)
	}
	if upstream.Status != 0 {
		t.Errorf("expected status 0 for transport failure, got %d", upstream.Status)
	}
}

func TestNewChatClient_TrimsTrailingSlash(t *testing.T) {
	client := NewChatClient("https://models.inference.ai.azure.com/", "k", "gpt-4o")

	if client.baseURL != "https://models.inference.ai.azure.com" {
		t.Errorf("expected trimmed base URL, got %q", client.baseURL)
	}
	if client.client == nil {
		t.Error("expected non-nil HTTP client")
	}
}
