package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/shiftlens/core"
	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// loadRoster applies the optional source_path override and loads the roster.
func (h *toolHandler) loadRoster(ctx context.Context, request mcp.CallToolRequest) (*core.Roster, *contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("source_path", ""); p != "" {
		cfg = h.baseCfg.CloneWithSource(p)
	}
	roster, err := core.LoadRoster(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return nil, nil, err
	}
	return roster, cfg, nil
}

// jsonResult encodes v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDimensions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	roster, _, err := h.loadRoster(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading roster failed: %v", err)), nil
	}
	return jsonResult(roster.Dimensions())
}

func (h *toolHandler) handleGetShiftCoverage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}
	roster, _, err := h.loadRoster(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading roster failed: %v", err)), nil
	}
	return jsonResult(roster.CoverageRows(request.GetBool("rank", false), limit))
}

func (h *toolHandler) handleGetNurseWorkload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}
	roster, _, err := h.loadRoster(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading roster failed: %v", err)), nil
	}
	return jsonResult(roster.WorkloadRows(request.GetBool("rank", false), limit))
}

func (h *toolHandler) handleGetRecommendations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	roster, _, err := h.loadRoster(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading roster failed: %v", err)), nil
	}
	rec, err := roster.Recommendations()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendations failed: %v", err)), nil
	}
	return jsonResult(rec)
}

func (h *toolHandler) handleGetNurseView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := request.GetString("nurse", "")
	if ref == "" {
		return mcp.NewToolResultError("nurse is required"), nil
	}
	mode, err := schema.ParseFilterMode(request.GetString("filter", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid filter: %v", err)), nil
	}

	roster, _, err := h.loadRoster(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading roster failed: %v", err)), nil
	}
	v, err := roster.NurseView(ref, mode)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("nurse view failed: %v", err)), nil
	}
	return jsonResult(v)
}

func (h *toolHandler) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	roster, cfg, err := h.loadRoster(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading roster failed: %v", err)), nil
	}
	report, err := roster.Report(cfg.SourcePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}
	return jsonResult(report)
}
