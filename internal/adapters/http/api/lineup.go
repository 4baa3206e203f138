package api

import (
	"net/http"

	"github.com/tcorrea/cartoart/internal/domain/types"
)

// LineupHandler serves the enriched roster read-back.
type LineupHandler struct {
	deps Dependencies
}

// NewLineupHandler creates a new lineup handler.
func NewLineupHandler(deps Dependencies) *LineupHandler {
	return &LineupHandler{deps: deps}
}

// HandleGetLineup handles GET /lineup requests. The response carries every
// stored pick with its resolved price/metric/tier (or found:false) plus
// the "players not found" list the renderer surfaces to the author.
func (h *LineupHandler) HandleGetLineup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	lineup := h.deps.Lineup(r.Context())
	if lineup.Picks == nil {
		lineup.Picks = []types.Pick{}
	}
	if lineup.NotFound == nil {
		lineup.NotFound = []string{}
	}
	writeJSON(w, http.StatusOK, lineup)
}
