// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const sourcePathDescription = "Path to the roster (xlsx, csv or parquet). Defaults to the configured source."

// NewMCPServer initializes and configures the ShiftLens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"ShiftLens Roster Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_dimensions ---
	s.AddTool(mcp.NewTool("get_dimensions",
		mcp.WithDescription("Count the nurses (rows) and shifts (columns) of a roster."),
		mcp.WithString("source_path", mcp.Description(sourcePathDescription)),
	), h.handleGetDimensions)

	// --- 2. Tool: get_shift_coverage ---
	s.AddTool(mcp.NewTool("get_shift_coverage",
		mcp.WithDescription("Number of nurses working each shift. Shifts at the minimum are flagged critical."),
		mcp.WithString("source_path", mcp.Description(sourcePathDescription)),
		mcp.WithBoolean("rank", mcp.Description("Sort the least covered shifts first.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of shifts returned.")),
	), h.handleGetShiftCoverage)

	// --- 3. Tool: get_nurse_workload ---
	s.AddTool(mcp.NewTool("get_nurse_workload",
		mcp.WithDescription("Number of shifts worked by each nurse. Nurses at the maximum are flagged overloaded."),
		mcp.WithString("source_path", mcp.Description(sourcePathDescription)),
		mcp.WithBoolean("rank", mcp.Description("Sort the busiest nurses first.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of nurses returned.")),
	), h.handleGetNurseWorkload)

	// --- 4. Tool: get_recommendations ---
	s.AddTool(mcp.NewTool("get_recommendations",
		mcp.WithDescription("Shifts with the lowest coverage and nurses with the highest workload, ties included."),
		mcp.WithString("source_path", mcp.Description(sourcePathDescription)),
	), h.handleGetRecommendations)

	// --- 5. Tool: get_nurse_view ---
	s.AddTool(mcp.NewTool("get_nurse_view",
		mcp.WithDescription("Schedule of one nurse, filtered to worked shifts, rested shifts or all of them."),
		mcp.WithString("nurse", mcp.Description("Nurse label (e.g. 'Nurse 2') or 1-based number."), mcp.Required()),
		mcp.WithString("filter", mcp.Description("Which shifts to keep. Defaults to 'all'."), mcp.Enum("all", "working", "resting")),
		mcp.WithString("source_path", mcp.Description(sourcePathDescription)),
	), h.handleGetNurseView)

	// --- 6. Tool: get_report ---
	s.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Coverage, workload and recommendations of a roster in one result."),
		mcp.WithString("source_path", mcp.Description(sourcePathDescription)),
	), h.handleGetReport)

	return s
}

// StartMCPServer starts the ShiftLens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
