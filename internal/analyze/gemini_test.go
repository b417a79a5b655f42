package analyze

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGeminiClassifier_Classify(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		payload := `{"items":[{"type":"task","title":"Water plants","estimated_minutes":10}],` +
			`"reality_check":{"is_overloaded":false,"suggestion":"easy day"}}`
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": payload}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	g := NewGeminiClassifier("test-key", "gemini-3-flash-preview", srv.URL)
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	resp, err := g.Classify(context.Background(), "water the plants", now)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if gotPath != "/v1beta/models/gemini-3-flash-preview:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotReq.SystemInstruction == nil || len(gotReq.SystemInstruction.Parts) == 0 {
		t.Fatal("system instruction missing")
	}
	if gotReq.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Errorf("response mime type = %q", gotReq.GenerationConfig.ResponseMIMEType)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 {
		t.Fatal("expected one user content part")
	}
	userText := gotReq.Contents[0].Parts[0].Text
	if !strings.Contains(userText, "water the plants") {
		t.Errorf("user text missing dump: %q", userText)
	}
	if !strings.Contains(userText, "Sunday, March 1, 2026") {
		t.Errorf("user text missing current date: %q", userText)
	}

	if len(resp.Items) != 1 || resp.Items[0].Title != "Water plants" {
		t.Fatalf("items = %+v", resp.Items)
	}
	if resp.RealityCheck == nil || resp.RealityCheck.Suggestion != "easy day" {
		t.Fatalf("reality check = %+v", resp.RealityCheck)
	}
}

func TestGeminiClassifier_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exhausted"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGeminiClassifier("k", "m", srv.URL)
	if _, err := g.Classify(context.Background(), "x", time.Now()); err == nil {
		t.Fatal("expected error for non-200 upstream response")
	}
}

func TestGeminiClassifier_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	g := NewGeminiClassifier("k", "m", srv.URL)
	if _, err := g.Classify(context.Background(), "x", time.Now()); err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}
