package mcp

import (
	"context"
	"errors"

	"github.com/claude/biosync/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetInsights = mcp.NewTool("get_insights",
	mcp.WithDescription("Health trend insights (sleep, recovery, activity) over a lookback window. Each family reports improving/declining/stable trends with window averages; a null family means insufficient data, not a stable trend."),
	mcp.WithNumber("days", mcp.Description("Lookback window in days (1-365). Defaults to 30.")),
)

var toolGetHistoricalStats = mcp.NewTool("get_historical_stats",
	mcp.WithDescription("Merged daily records plus summary statistics (averages over present fields only, workouts per week, most common workout type) over a lookback window."),
	mcp.WithNumber("days", mcp.Description("Lookback window in days (1-365). Defaults to 90.")),
)

var toolGetTimeline = mcp.NewTool("get_timeline",
	mcp.WithDescription("Merged daily biometric records for an explicit date range, one record per (date, source), sorted ascending by date."),
	mcp.WithString("start", mcp.Required(), mcp.Description("Start date (YYYY-MM-DD)")),
	mcp.WithString("end", mcp.Required(), mcp.Description("End date (YYYY-MM-DD)")),
)

// --- Tool handlers ---

func (h *handlers) getInsights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 30)
	uid := UserIDFromContext(ctx)

	report, err := h.svc.GetInsights(ctx, uid, days)
	if err != nil {
		return h.toolError(ctx, "get_insights", err), nil
	}

	result, err := mcp.NewToolResultJSON(report)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistoricalStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 90)
	uid := UserIDFromContext(ctx)

	data, err := h.svc.GetHistoricalData(ctx, uid, days)
	if err != nil {
		return h.toolError(ctx, "get_historical_stats", err), nil
	}

	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := req.RequireString("start")
	if err != nil {
		return mcp.NewToolResultError("start parameter is required"), nil
	}
	end, err := req.RequireString("end")
	if err != nil {
		return mcp.NewToolResultError("end parameter is required"), nil
	}

	uid := UserIDFromContext(ctx)
	merged, err := h.svc.GetMergedTimeline(ctx, uid, start, end)
	if err != nil {
		return h.toolError(ctx, "get_timeline", err), nil
	}

	result, err := mcp.NewToolResultJSON(merged)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// toolError keeps validation messages verbatim and logs everything else.
func (h *handlers) toolError(ctx context.Context, tool string, err error) *mcp.CallToolResult {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return mcp.NewToolResultError(verr.Error())
	}
	h.log.Error("mcp "+tool, "error", err)
	return mcp.NewToolResultError("query failed: " + err.Error())
}
