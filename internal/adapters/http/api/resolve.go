package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ResolveHandler serves single-query resolution, mainly for diagnostics
// and for callers that price picks one at a time.
type ResolveHandler struct {
	deps Dependencies
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(deps Dependencies) *ResolveHandler {
	return &ResolveHandler{deps: deps}
}

// resolveRequest is one (name, club, position) query.
type resolveRequest struct {
	Name     string `json:"name"`
	Club     string `json:"club"`
	Position string `json:"position"`
}

func (q resolveRequest) validate() error {
	switch {
	case strings.TrimSpace(q.Name) == "":
		return errors.New("missing name")
	case strings.TrimSpace(q.Club) == "":
		return errors.New("missing club")
	case strings.TrimSpace(q.Position) == "":
		return errors.New("missing position")
	}
	return nil
}

// HandlePostResolve handles POST /resolve requests. A query that cannot
// be resolved returns 200 with found:false; refusal is an outcome, not an
// HTTP error.
func (h *ResolveHandler) HandlePostResolve(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_resolve"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	answer := h.deps.ResolveQuery(r.Context(), req.Name, req.Club, req.Position)
	writeJSON(w, http.StatusOK, answer)
}
