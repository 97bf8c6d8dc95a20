package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiChat(t *testing.T) {
	var gotPath string
	var gotBody geminiGenerateReq

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "Check your coolant "}, {"text": "level."}},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "test-key", "gemini-pro")
	reply, err := p.Chat(context.Background(), []Message{
		{Role: "assistant", Content: "Hello, how can I help?"},
		{Role: "user", Content: "My engine is noisy"},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "Check your coolant level." {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if !strings.Contains(gotPath, "models/gemini-pro:generateContent") {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if len(gotBody.Contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(gotBody.Contents))
	}
	if gotBody.Contents[0].Role != "model" {
		t.Fatalf("assistant role must map to %q, got %q", "model", gotBody.Contents[0].Role)
	}
	if gotBody.Contents[1].Role != "user" {
		t.Fatalf("unexpected user role: %q", gotBody.Contents[1].Role)
	}
}

func TestGeminiChat_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "test-key", "gemini-pro")
	_, err := p.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error on non-2xx status")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error should carry the provider message, got %v", err)
	}
}

func TestGeminiChat_MissingAPIKey(t *testing.T) {
	p := NewGeminiProvider("http://unused", "", "gemini-pro")
	if _, err := p.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
