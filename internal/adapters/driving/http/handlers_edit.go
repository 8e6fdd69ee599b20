package http

import (
	"net/http"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// locateRequest accepts either one fragment or a batch
// @Description Fragment(s) to relocate in the chat's latest document
type locateRequest struct {
	PreviousVersion string              `json:"previous_version,omitempty"`
	Fragments       []string            `json:"fragments,omitempty"`
	Options         domain.MatchOptions `json:"options"`
}

// LocateResponse holds relocation results. Match is null when nothing was found.
// @Description Relocation result
type LocateResponse struct {
	Found   bool                  `json:"found"`
	Match   *domain.MatchResult   `json:"match"`
	Results []*domain.MatchResult `json:"results,omitempty"`
}

// ParseResponse lists the segments of an assistant response
// @Description Parsed response segments
type ParseResponse struct {
	Segments []domain.ResponseSegment `json:"segments"`
}

// Edit endpoints

// handleLocateEdit godoc
// @Summary      Locate fragment
// @Description  Find where a previous-version fragment sits in the chat's latest document. Send fragments for a batch; results keep request order with null for misses.
// @Tags         Edits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Chat ID"
// @Param        request  body      locateRequest  true  "Fragment"
// @Success      200      {object}  LocateResponse
// @Failure      404      {object}  ErrorResponse  "Chat has no documents"
// @Router       /chats/{id}/edits/locate [post]
func (s *Server) handleLocateEdit(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	authCtx := GetAuthContext(r.Context())
	chatID := r.PathValue("id")

	if len(req.Fragments) > 0 {
		results, err := s.editService.LocateAll(r.Context(), authCtx, chatID, domain.LocateAllRequest{
			Fragments: req.Fragments,
			Options:   req.Options,
		})
		if err != nil {
			writeServiceError(w, err, "locate fragments")
			return
		}

		found := false
		for _, res := range results {
			found = found || res != nil
		}
		writeJSON(w, http.StatusOK, LocateResponse{Found: found, Results: results})
		return
	}

	match, err := s.editService.Locate(r.Context(), authCtx, chatID, domain.LocateEditRequest{
		PreviousVersion: req.PreviousVersion,
		Options:         req.Options,
	})
	if err != nil {
		writeServiceError(w, err, "locate fragment")
		return
	}
	writeJSON(w, http.StatusOK, LocateResponse{Found: match != nil, Match: match})
}

// handleApplyEdit godoc
// @Summary      Apply edit
// @Description  Replace the located previous version with the new fragment and save a new document version. applied=false means no confident match and nothing changed.
// @Tags         Edits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                   true  "Chat ID"
// @Param        request  body      domain.ApplyEditRequest  true  "Edit"
// @Success      200      {object}  domain.ApplyEditResult
// @Failure      409      {object}  ErrorResponse  "Another edit holds the document"
// @Router       /chats/{id}/edits/apply [post]
func (s *Server) handleApplyEdit(w http.ResponseWriter, r *http.Request) {
	var req domain.ApplyEditRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.editService.Apply(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err, "apply edit")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleParseResponse godoc
// @Summary      Parse assistant response
// @Description  Split a tagged assistant response into text and editing segments
// @Tags         Edits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.ParseResponseRequest  true  "Response"
// @Success      200      {object}  ParseResponse
// @Router       /responses/parse [post]
func (s *Server) handleParseResponse(w http.ResponseWriter, r *http.Request) {
	var req domain.ParseResponseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	segments, err := s.editService.Parse(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "parse response")
		return
	}
	if segments == nil {
		segments = []domain.ResponseSegment{}
	}
	writeJSON(w, http.StatusOK, ParseResponse{Segments: segments})
}
