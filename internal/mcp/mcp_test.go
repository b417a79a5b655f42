package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flowdeck/flowdeck/internal/analyze"
	"github.com/flowdeck/flowdeck/internal/config"
	"github.com/flowdeck/flowdeck/internal/flow"
	"github.com/flowdeck/flowdeck/internal/store"
)

// stubClassifier returns a canned response without a network round trip.
type stubClassifier struct {
	resp *analyze.Response
}

func (s *stubClassifier) Classify(context.Context, string, time.Time) (*analyze.Response, error) {
	return s.resp, nil
}

// testSetup creates an in-memory session with a stub classifier.
func testSetup(t *testing.T) *Handlers {
	t.Helper()

	st, err := store.Open(store.NewMemAdapter(), "tester")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(st.Close)

	minutes := 45.0
	analyzer := analyze.New(&stubClassifier{resp: &analyze.Response{
		Items: []analyze.Candidate{
			{Type: "task", Title: "Sort the garage", Priority: "medium", EstimatedMinutes: &minutes},
			{Type: "idea", Title: "Pottery class"},
		},
		RealityCheck: &flow.RealityCheck{IsOverloaded: false, Suggestion: "manageable"},
	}}, 0)

	return NewHandlers(st, analyzer)
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestHandleCapture(t *testing.T) {
	h := testSetup(t)
	ctx := context.Background()

	result, err := h.HandleCapture(ctx, makeRequest(map[string]any{"text": "garage, pottery"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}

	out := parseOutput(t, result)
	if out["added"].(float64) != 2 {
		t.Errorf("added = %v, want 2", out["added"])
	}
	rc, ok := out["reality_check"].(map[string]any)
	if !ok || rc["suggestion"] != "manageable" {
		t.Errorf("reality_check = %v", out["reality_check"])
	}
	if h.st.Len() != 2 {
		t.Errorf("store has %d items, want 2", h.st.Len())
	}
}

func TestHandleCapture_EmptyText(t *testing.T) {
	h := testSetup(t)

	result, err := h.HandleCapture(context.Background(), makeRequest(map[string]any{"text": "  "}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result, got success")
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleBoardAndList(t *testing.T) {
	h := testSetup(t)
	ctx := context.Background()

	if _, err := h.HandleCapture(ctx, makeRequest(map[string]any{"text": "seed"})); err != nil {
		t.Fatalf("setup capture failed: %v", err)
	}

	result, err := h.HandleBoard(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	out := parseOutput(t, result)
	columns, ok := out["columns"].([]any)
	if !ok || len(columns) != 4 {
		t.Fatalf("columns = %v", out["columns"])
	}
	if out["inbox_count"].(float64) != 1 {
		t.Errorf("inbox_count = %v, want 1", out["inbox_count"])
	}

	result, err = h.HandleList(ctx, makeRequest(map[string]any{"status": "someday"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	out = parseOutput(t, result)
	if out["total"].(float64) != 1 {
		t.Errorf("someday total = %v, want 1", out["total"])
	}

	result, err = h.HandleList(ctx, makeRequest(map[string]any{"status": "bogus"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleMoveDoneDelete(t *testing.T) {
	h := testSetup(t)
	ctx := context.Background()

	if _, err := h.HandleCapture(ctx, makeRequest(map[string]any{"text": "seed"})); err != nil {
		t.Fatalf("setup capture failed: %v", err)
	}
	items := h.st.Items()
	id := items[0].ID

	result, err := h.HandleMove(ctx, makeRequest(map[string]any{"id": id, "status": "today"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	out := parseOutput(t, result)
	if out["moved"] != true {
		t.Errorf("moved = %v, want true", out["moved"])
	}

	result, err = h.HandleDone(ctx, makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	out = parseOutput(t, result)
	item := out["item"].(map[string]any)
	if item["status"] != "done" {
		t.Errorf("status = %v, want done", item["status"])
	}

	result, err = h.HandleDelete(ctx, makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	out = parseOutput(t, result)
	if out["deleted"] != true {
		t.Errorf("deleted = %v, want true", out["deleted"])
	}

	// Stale id: no-op, not an error
	result, err = h.HandleMove(ctx, makeRequest(map[string]any{"id": id, "status": "today"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	out = parseOutput(t, result)
	if out["moved"] != false {
		t.Errorf("stale move = %v, want false", out["moved"])
	}
}

func TestHandleQuest(t *testing.T) {
	h := testSetup(t)
	ctx := context.Background()

	// Empty pool first
	result, err := h.HandleQuest(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "EMPTY_POOL")

	if _, err := h.HandleCapture(ctx, makeRequest(map[string]any{"text": "seed"})); err != nil {
		t.Fatalf("setup capture failed: %v", err)
	}

	result, err = h.HandleQuest(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	out := parseOutput(t, result)
	item := out["item"].(map[string]any)
	if item["status"] != "today" {
		t.Errorf("quest item status = %v, want today", item["status"])
	}
}

func TestHandleBadgesAndMinutes(t *testing.T) {
	h := testSetup(t)
	ctx := context.Background()

	result, err := h.HandleBadges(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	out := parseOutput(t, result)
	badges, ok := out["badges"].([]any)
	if !ok || len(badges) != 4 {
		t.Fatalf("badges = %v", out["badges"])
	}

	if _, err := h.HandleCapture(ctx, makeRequest(map[string]any{"text": "seed"})); err != nil {
		t.Fatalf("setup capture failed: %v", err)
	}
	items := h.st.Items()
	for _, item := range items {
		if _, err := h.HandleMove(ctx, makeRequest(map[string]any{"id": item.ID, "status": "today"})); err != nil {
			t.Fatalf("setup move failed: %v", err)
		}
	}

	result, err = h.HandleMinutes(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	out = parseOutput(t, result)
	if out["status"] != "today" {
		t.Errorf("default status = %v, want today", out["status"])
	}
	if out["total_minutes"].(float64) != 45 {
		t.Errorf("total_minutes = %v, want 45", out["total_minutes"])
	}
}

func TestServerRegistration(t *testing.T) {
	h := testSetup(t)

	s := NewServer(h.st, h.analyzer, config.DefaultConfig(), "test")
	tools := s.ListTools()
	if tools == nil {
		t.Fatal("expected tools to be registered, got nil")
	}

	expectedTools := []string{
		"flow_capture",
		"flow_board",
		"flow_list",
		"flow_move",
		"flow_done",
		"flow_delete",
		"flow_quest",
		"flow_badges",
		"flow_minutes",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(expectedTools))
	}

	for _, name := range expectedTools {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing registered tool: %s", name)
		}
	}
}

func TestServerRegistration_WithDisabledTools(t *testing.T) {
	h := testSetup(t)

	cfg := config.DefaultConfig()
	cfg.DisabledTools = []string{"flow_delete", "flow_quest"}
	s := NewServer(h.st, h.analyzer, cfg, "test")
	tools := s.ListTools()

	if len(tools) != 7 {
		t.Errorf("registered tool count = %d, want 7", len(tools))
	}
	for _, name := range cfg.DisabledTools {
		if _, ok := tools[name]; ok {
			t.Errorf("disabled tool %q should not be registered", name)
		}
	}
	for _, name := range []string{"flow_capture", "flow_board", "flow_move"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("core tool %q should be registered", name)
		}
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"flow_capture", "flow_teleport"})
	if len(unknown) != 1 || unknown[0] != "flow_teleport" {
		t.Errorf("unknown = %v, want [flow_teleport]", unknown)
	}
}

func TestErrorResult_InternalDoesNotExposeDetails(t *testing.T) {
	// A plain error must collapse to a generic INTERNAL payload
	result := errorResult(context.DeadlineExceeded)
	assertErrorCode(t, result, "INTERNAL")

	var payload map[string]any
	text := result.Content[0].(mcp.TextContent)
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	errorObj := payload["error"].(map[string]any)
	if errorObj["message"] != "an internal error occurred" {
		t.Errorf("message = %v, want generic", errorObj["message"])
	}
	if _, ok := errorObj["details"]; ok {
		t.Error("internal errors must not carry details")
	}
}

// parseOutput unmarshals a success result's JSON content.
func parseOutput(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("content is not TextContent")
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(text.Text), &out); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	return out
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if len(result.Content) == 0 {
		t.Errorf("no content in error result")
		return
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Errorf("content is not TextContent")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Errorf("failed to unmarshal error payload: %v", err)
		return
	}

	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}

	code, ok := errorObj["code"].(string)
	if !ok {
		t.Errorf("no code in error object")
		return
	}

	if code != expectedCode {
		t.Errorf("got error code %q, want %q", code, expectedCode)
	}
}

func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}
