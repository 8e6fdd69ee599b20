package http

import (
	"log"
	"net/http"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// SaveVersionResponse is the stored version and the chat message announcing it
// @Description Stored document version
type SaveVersionResponse struct {
	Document  *domain.Document `json:"document"`
	MessageID string           `json:"message_id,omitempty"`
	Warning   string           `json:"warning,omitempty"`
}

// Document endpoints

// handleListVersions godoc
// @Summary      List document versions
// @Description  All versions of a document, oldest first
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {array}   domain.Document
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id} [get]
func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.docService.Versions(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "list versions")
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

// handleLatestVersion godoc
// @Summary      Latest document version
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.Document
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id}/latest [get]
func (s *Server) handleLatestVersion(w http.ResponseWriter, r *http.Request) {
	doc, err := s.docService.Latest(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "load document")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleSaveVersion godoc
// @Summary      Save document version
// @Description  Store new content as the newest version. With chat_id set, an assistant message announcing the update is appended to that chat.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Document ID"
// @Param        request  body      domain.SaveVersionRequest  true  "Version"
// @Success      201      {object}  SaveVersionResponse
// @Failure      403      {object}  ErrorResponse  "Document belongs to another user"
// @Router       /documents/{id} [post]
func (s *Server) handleSaveVersion(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveVersionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	doc, messageID, err := s.docService.SaveVersion(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"), req)
	if err != nil && doc == nil {
		writeServiceError(w, err, "save version")
		return
	}

	resp := SaveVersionResponse{Document: doc, MessageID: messageID}
	if err != nil {
		// The version is stored; only the chat announcement failed
		log.Printf("save version %s: %v", doc.ID, err)
		resp.Warning = "version saved but the chat was not updated"
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleDeleteVersionsAfter godoc
// @Summary      Delete newer versions
// @Description  Remove versions created after the timestamp
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Document ID"
// @Param        after  query     string  true  "RFC 3339 timestamp"
// @Success      200    {object}  CountResponse
// @Router       /documents/{id}/versions [delete]
func (s *Server) handleDeleteVersionsAfter(w http.ResponseWriter, r *http.Request) {
	after, err := queryTime(r, "after")
	if err != nil {
		writeError(w, http.StatusBadRequest, "after must be an RFC 3339 timestamp")
		return
	}

	n, err := s.docService.DeleteVersionsAfter(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"), after)
	if err != nil {
		writeServiceError(w, err, "delete versions")
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Deleted: n})
}
