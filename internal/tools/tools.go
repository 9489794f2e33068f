// Package tools exposes the scout engine as a fixed set of named functions for
// a tool-calling agent. Arguments arrive as a JSON object of strings; output is
// always text: either a JSON payload or a diagnostic sentence. Nothing here
// returns an error or panics toward the caller.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/albapepper/scoracle-scout/internal/scout"
)

// Tool names, matching the function declarations registered with the agent.
const (
	PlayerAverages   = "calculate_player_averages"
	PlayerTotals     = "get_player_total_stats"
	PlayerSeasons    = "get_player_season_info"
	ComparePlayers   = "compare_players_averages"
	PlayerCareerHigh = "get_player_career_high"
	StatProgression  = "get_player_stat_progression"
	TopPerformer     = "find_top_performer_against_team"
)

// Definition is a tool's function declaration: name, description and a JSON
// schema for its arguments.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// Schema is the object schema of a tool's arguments.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes one string argument.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type handler func(ctx context.Context, args json.RawMessage) (any, error)

type tool struct {
	def Definition
	run handler
}

// Registry dispatches tool calls to an engine.
type Registry struct {
	tools  []tool
	byName map[string]int
	logger *slog.Logger
}

// New builds the registry of all seven tools over engine.
func New(engine *scout.Engine, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{byName: make(map[string]int), logger: logger}
	for _, t := range catalog(engine) {
		r.byName[t.def.Name] = len(r.tools)
		r.tools = append(r.tools, t)
	}
	return r
}

// Definitions returns every tool declaration in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, len(r.tools))
	for i, t := range r.tools {
		defs[i] = t.def
	}
	return defs
}

// Has reports whether name is a registered tool.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Call runs a tool and returns its typed result. Use Invoke at the agent
// boundary; Call is for callers that need to tell failure kinds apart.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	if len(bytes.TrimSpace(args)) == 0 || bytes.Equal(bytes.TrimSpace(args), []byte("null")) {
		args = json.RawMessage("{}")
	}
	return r.tools[i].run(ctx, args)
}

// Invoke runs a tool and renders the outcome as text: the JSON-encoded result
// on success, a diagnostic sentence otherwise.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) string {
	result, err := r.Call(ctx, name, args)
	if err != nil {
		msg := Diagnostic(err)
		r.logger.Warn("tool call failed", "tool", name, "error", err, "diagnostic", msg)
		return msg
	}
	payload, err := json.Marshal(result)
	if err != nil {
		r.logger.Error("tool result encoding failed", "tool", name, "error", err)
		return Diagnostic(err)
	}
	r.logger.Debug("tool call succeeded", "tool", name, "bytes", len(payload))
	return string(payload)
}

// bind decodes the JSON arguments into A before calling fn.
func bind[A any](fn func(ctx context.Context, args A) (any, error)) handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args A
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, &ArgumentError{Err: err}
		}
		return fn(ctx, args)
	}
}

// ArgumentError reports arguments that are not a JSON object of the expected
// shape.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string { return fmt.Sprintf("decode arguments: %v", e.Err) }
func (e *ArgumentError) Unwrap() error { return e.Err }

// UnknownToolError reports a call to an unregistered tool.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string { return fmt.Sprintf("unknown tool %q", e.Name) }
