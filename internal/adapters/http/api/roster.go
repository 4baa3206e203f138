package api

import (
	"net/http"
)

// RosterHandler handles roster CSV uploads.
type RosterHandler struct {
	deps Dependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps Dependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// rosterResponse acknowledges an upload with the diagnostic not-found list.
type rosterResponse struct {
	Entries  int      `json:"entries"`
	NotFound []string `json:"not_found"`
}

// HandlePostRoster handles POST /roster requests. The body is the picks
// CSV as uploaded; parsing failures reject the whole upload.
func (h *RosterHandler) HandlePostRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_roster"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	defer r.Body.Close()

	count, notFound, err := h.deps.SetRoster(r.Context(), r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "roster_rejected", WrapKind(op, ErrRosterRejected, err))
		return
	}
	if notFound == nil {
		notFound = []string{}
	}
	writeJSON(w, http.StatusOK, rosterResponse{Entries: count, NotFound: notFound})
}
