// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/locusproject/locus/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Locus MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Locus Comparison Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: rank_entities ---
	s.AddTool(mcp.NewTool("rank_entities",
		mcp.WithDescription("Rank entities by their weighted scores over the configured criteria hierarchy."),
		mcp.WithString("data_path", mcp.Description("Path to the entity table, CSV or Parquet (defaults to the server configuration).")),
		mcp.WithString("criteria", mcp.Description("Comma-separated criterion codes to include (e.g. 'co2_pc,gdp_pc').")),
		mcp.WithString("entities", mcp.Description("Comma-separated entity ids to include.")),
		mcp.WithString("pillar_weights", mcp.Description("Raw pillar weights as 'id:weight' pairs (e.g. 'env:2,econ:1').")),
		mcp.WithString("criterion_weights", mcp.Description("Raw criterion weights as 'pillar.code:weight' pairs.")),
		mcp.WithBoolean("strict", mcp.Description("Drop entities missing any selected criterion before scoring.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankEntities)

	// --- 2. Tool: list_criteria ---
	s.AddTool(mcp.NewTool("list_criteria",
		mcp.WithDescription("List every defined criterion with its pillar, documentation, selection state and data coverage."),
		mcp.WithString("data_path", mcp.Description("Path to the entity table used for coverage counts (optional).")),
		mcp.WithString("criteria", mcp.Description("Comma-separated criterion codes to mark as selected.")),
	), h.handleListCriteria)

	// --- 3. Tool: explain_weights ---
	s.AddTool(mcp.NewTool("explain_weights",
		mcp.WithDescription("Resolve raw weights into normalized pillar, criterion and global weights without ranking."),
		mcp.WithString("pillar_weights", mcp.Description("Raw pillar weights as 'id:weight' pairs.")),
		mcp.WithString("criterion_weights", mcp.Description("Raw criterion weights as 'pillar.code:weight' pairs.")),
		mcp.WithString("criteria", mcp.Description("Comma-separated criterion codes to include; excluded criteria redistribute their mass.")),
	), h.handleExplainWeights)

	// --- 4. Tool: check_data ---
	s.AddTool(mcp.NewTool("check_data",
		mcp.WithDescription("Validate the dataset against coverage and row-count thresholds, as 'locus check' does."),
		mcp.WithString("data_path", mcp.Description("Path to the entity table, CSV or Parquet.")),
		mcp.WithString("criteria", mcp.Description("Comma-separated criterion codes to include.")),
		mcp.WithString("entities", mcp.Description("Comma-separated entity ids to include.")),
		mcp.WithNumber("min_coverage", mcp.Description("Required per-criterion coverage fraction between 0.0 and 1.0.")),
		mcp.WithNumber("min_rows", mcp.Description("Required number of surviving rows.")),
	), h.handleCheckData)

	return s
}

// StartMCPServer starts the Locus MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
