package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-scout/internal/api/respond"
)

// ToolOutput is the envelope of a tool call. Output is either a JSON document
// or a diagnostic sentence; callers tell them apart by trying to parse it.
type ToolOutput struct {
	Tool   string `json:"tool"`
	Output string `json:"output"`
}

// ListTools returns every tool declaration.
// @Summary List tools
// @Description Returns the function declarations (name, description, JSON-schema parameters) of every analytical tool.
// @Tags tools
// @Produce json
// @Success 200 {array} tools.Definition
// @Router /tools [get]
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.tools.Definitions())
}

// InvokeTool runs one tool with the JSON request body as its arguments.
// @Summary Invoke a tool
// @Description Runs an analytical tool. The body is a JSON object of string arguments. The output is always text: a JSON payload on success or a diagnostic sentence.
// @Tags tools
// @Accept json
// @Produce json
// @Param name path string true "Tool name" Enums(calculate_player_averages, get_player_total_stats, get_player_season_info, compare_players_averages, get_player_career_high, get_player_stat_progression, find_top_performer_against_team)
// @Param args body map[string]string false "Tool arguments"
// @Success 200 {object} ToolOutput
// @Failure 404 {object} respond.ErrorResponse
// @Failure 413 {object} respond.ErrorResponse
// @Router /tools/{name} [post]
func (h *Handler) InvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.tools.Has(name) {
		respond.WriteError(w, http.StatusNotFound, "UNKNOWN_TOOL", "No tool named "+name)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxToolArgsBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.WriteError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Tool arguments are too large")
			return
		}
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Could not read request body")
		return
	}

	output := h.tools.Invoke(r.Context(), name, json.RawMessage(body))
	respond.WriteJSONObject(w, http.StatusOK, ToolOutput{Tool: name, Output: output})
}
