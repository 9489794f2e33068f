// Package mcpserver exposes the tool registry as a Model Context Protocol
// server so an agent can call the analytical tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/albapepper/scoracle-scout/internal/tools"
)

// Version is reported to MCP clients during initialization.
var Version = "1.0.0"

// New creates the MCP server with every tool from registry registered.
func New(registry *tools.Registry, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}

	s := server.NewMCPServer(
		"scoracle-scout",
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	for _, def := range registry.Definitions() {
		s.AddTool(toolFor(def), handlerFor(registry, def.Name, logger))
	}
	logger.Info("MCP tools registered", "count", len(registry.Definitions()))
	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// toolFor converts a registry declaration into an MCP tool. Every argument is
// a string.
func toolFor(def tools.Definition) mcp.Tool {
	required := make(map[string]bool, len(def.Parameters.Required))
	for _, name := range def.Parameters.Required {
		required[name] = true
	}

	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}
	for name, prop := range def.Parameters.Properties {
		propOpts := []mcp.PropertyOption{mcp.Description(prop.Description)}
		if required[name] {
			propOpts = append(propOpts, mcp.Required())
		}
		opts = append(opts, mcp.WithString(name, propOpts...))
	}
	return mcp.NewTool(def.Name, opts...)
}

// handlerFor forwards a call to the registry. Tool output is always text, so
// failures surface as diagnostic sentences rather than MCP errors.
func handlerFor(registry *tools.Registry, name string, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.Params.Arguments)
		if err != nil {
			logger.Warn("MCP arguments not encodable", "tool", name, "error", err)
			args = nil
		}
		return mcp.NewToolResultText(registry.Invoke(ctx, name, args)), nil
	}
}

const instructions = `Scoracle Scout answers questions about NBA player game logs.
Use calculate_player_averages or get_player_total_stats for per-game or cumulative numbers,
get_player_season_info to find which seasons a player appears in,
compare_players_averages for head-to-head comparisons,
get_player_career_high for a best single game,
get_player_stat_progression for season-by-season trends,
and find_top_performer_against_team for leaders against one opponent.
Seasons are written like 2023-24. Results are JSON; any other reply is a diagnostic sentence.`
