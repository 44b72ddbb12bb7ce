package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/locusproject/locus/core"
	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// applyDataArgs copies the shared tool arguments onto a cloned config. An
// include list from the tool replaces the base selection on that axis, so
// the caller controls it alone.
func applyDataArgs(cfg *contract.Config, request mcp.CallToolRequest) {
	if p := request.GetString("data_path", ""); p != "" {
		cfg.DataPath = p
	}
	if v := request.GetString("criteria", ""); v != "" {
		cfg.IncludeCriteria = contract.SplitList(v)
		cfg.ExcludeCriteria = nil
		cfg.Selection.Criteria = nil
	}
	if v := request.GetString("entities", ""); v != "" {
		cfg.IncludeEntities = contract.SplitList(v)
		cfg.ExcludeEntities = nil
		cfg.Selection.Entities = nil
	}
}

func (h *toolHandler) handleRankEntities(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyDataArgs(cfg, request)
	cfg.Strict = request.GetBool("strict", cfg.Strict)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	pillarStr := request.GetString("pillar_weights", "")
	criterionStr := request.GetString("criterion_weights", "")
	if err := contract.RevalidateWeights(cfg, pillarStr, criterionStr); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid weight parameters: %v", err)), nil
	}

	report, err := core.ExecuteRank(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	enriched := schema.EnrichRanking(report.Entities)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListCriteria(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyDataArgs(cfg, request)

	report, err := core.ExecuteCriteria(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("criteria listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleExplainWeights(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyDataArgs(cfg, request)

	pillarStr := request.GetString("pillar_weights", "")
	criterionStr := request.GetString("criterion_weights", "")
	if err := contract.RevalidateWeights(cfg, pillarStr, criterionStr); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid weight parameters: %v", err)), nil
	}

	report, err := core.ExecuteWeights(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("weight resolution failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckData(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyDataArgs(cfg, request)

	minCoverage := request.GetFloat("min_coverage", cfg.MinCoverage)
	minRows := request.GetInt("min_rows", cfg.MinRows)
	if err := contract.RevalidateCheckGate(cfg, minCoverage, minRows); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid check parameters: %v", err)), nil
	}

	result, err := core.ExecuteCheck(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("data check failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
