// Package mcp exposes the insights, historical-statistics, and timeline
// operations as MCP tools so LLM clients can query a user's biometric
// timeline directly.
package mcp

import (
	"context"
	"log/slog"

	"github.com/claude/biosync/internal/service"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the local user id injected by the transport
// layer. Falls back to "local" for single-user stdio mode.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok && id != "" {
		return id
	}
	return "local"
}

// WithUserID returns a context carrying the given local user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools registered.
func New(svc *service.Service, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("BioSync", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("BioSync wearable-data analysis server. Query merged daily biometric timelines, health trend insights, and historical statistics. All data is scoped to the requesting user."),
	)

	h := &handlers{svc: svc, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetInsights, Handler: h.getInsights},
		server.ServerTool{Tool: toolGetHistoricalStats, Handler: h.getHistoricalStats},
		server.ServerTool{Tool: toolGetTimeline, Handler: h.getTimeline},
	)

	return s
}

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	svc *service.Service
	log *slog.Logger
}
