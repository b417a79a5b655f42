package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/flowdeck/flowdeck/internal/analyze"
	"github.com/flowdeck/flowdeck/internal/config"
	"github.com/flowdeck/flowdeck/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"flow_capture": {
		def:     captureToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCapture },
	},
	"flow_board": {
		def:     boardToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBoard },
	},
	"flow_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"flow_move": {
		def:     moveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMove },
	},
	"flow_done": {
		def:     doneToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDone },
	},
	"flow_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"flow_quest": {
		def:     questToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleQuest },
	},
	"flow_badges": {
		def:     badgesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBadges },
	},
	"flow_minutes": {
		def:     minutesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMinutes },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with flowdeck tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(st *store.Store, analyzer *analyze.Analyzer, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"flowdeck",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(st, analyzer)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(st *store.Store, analyzer *analyze.Analyzer, cfg *config.Config, version string) error {
	s := NewServer(st, analyzer, cfg, version)
	return server.ServeStdio(s)
}
