package api

import (
	"net/http"
)

// RefreshHandler triggers the manual market/valuation refresh.
type RefreshHandler struct {
	deps Dependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Dependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	Status string `json:"status"`
}

// HandlePostRefresh handles POST /market/refresh requests.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_refresh"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.RefreshAll(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "refresh_failed", WrapKind(op, ErrRefreshFailed, err))
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Status: "refreshed"})
}
