package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flowdeck/flowdeck/internal/analyze"
	"github.com/flowdeck/flowdeck/internal/errors"
	"github.com/flowdeck/flowdeck/internal/ops"
	"github.com/flowdeck/flowdeck/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	st       *store.Store
	analyzer *analyze.Analyzer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, analyzer *analyze.Analyzer) *Handlers {
	return &Handlers{st: st, analyzer: analyzer}
}

// Request types for each tool

// CaptureRequest represents the arguments for capture.
type CaptureRequest struct {
	Text string `json:"text"`
}

// ListRequest represents the arguments for list.
type ListRequest struct {
	Status string `json:"status,omitempty"`
}

// MoveRequest represents the arguments for move.
type MoveRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// IDRequest represents the arguments for done and delete.
type IDRequest struct {
	ID string `json:"id"`
}

// MinutesRequest represents the arguments for minutes.
type MinutesRequest struct {
	Status string `json:"status,omitempty"`
}

// HandleCapture handles the flow_capture tool.
func (h *Handlers) HandleCapture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CaptureRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Capture(ctx, h.analyzer, h.st, ops.CaptureInput{Text: input.Text})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleBoard handles the flow_board tool.
func (h *Handlers) HandleBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.Board(h.st))
}

// HandleList handles the flow_list tool.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.st, ops.ListInput{Status: input.Status})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleMove handles the flow_move tool.
func (h *Handlers) HandleMove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[MoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Move(h.st, ops.MoveInput{ID: input.ID, Status: input.Status})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDone handles the flow_done tool.
func (h *Handlers) HandleDone(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Done(h.st, input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the flow_delete tool.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(h.st, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleQuest handles the flow_quest tool.
func (h *Handlers) HandleQuest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Quest(h.st, nil)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleBadges handles the flow_badges tool.
func (h *Handlers) HandleBadges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.Badges(h.st))
}

// HandleMinutes handles the flow_minutes tool.
func (h *Handlers) HandleMinutes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[MinutesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Minutes(h.st, ops.MinutesInput{Status: input.Status})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult wraps an error in a structured MCP error payload.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if flowErr, ok := err.(*errors.FlowError); ok {
		errorObj := map[string]any{
			"code":    flowErr.Code,
			"message": flowErr.Message,
			"status":  flowErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if flowErr.Code != errors.ErrInternal && flowErr.Details != nil {
			errorObj["details"] = flowErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult wraps data in a JSON tool result.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
