package http

import (
	"net/http"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// ChatListResponse is a page of chats
// @Description Page of the caller's chats, newest first
type ChatListResponse struct {
	Chats  []*domain.Chat `json:"chats"`
	Limit  int            `json:"limit" example:"20"`
	Offset int            `json:"offset" example:"0"`
}

// HasDocumentsResponse reports whether a chat produced any document
// @Description Whether any message of the chat created or updated a document
type HasDocumentsResponse struct {
	HasDocuments bool `json:"has_documents"`
}

// Chat endpoints

// handleListChats godoc
// @Summary      List chats
// @Description  List the caller's chats, newest first
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 20, max 100)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  ChatListResponse
// @Router       /chats [get]
func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	chats, err := s.chatService.List(r.Context(), GetAuthContext(r.Context()), limit, offset)
	if err != nil {
		writeServiceError(w, err, "list chats")
		return
	}
	if chats == nil {
		chats = []*domain.Chat{}
	}
	writeJSON(w, http.StatusOK, ChatListResponse{Chats: chats, Limit: limit, Offset: offset})
}

// handleCreateChat godoc
// @Summary      Create chat
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.CreateChatRequest  true  "Chat"
// @Success      201      {object}  domain.Chat
// @Failure      409      {object}  ErrorResponse  "Chat ID already taken"
// @Router       /chats [post]
func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	chat, err := s.chatService.Create(r.Context(), GetAuthContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, err, "create chat")
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

// handleGetChat godoc
// @Summary      Get chat
// @Description  Owners and admins see any chat; public chats are readable without a token
// @Tags         Chats
// @Produce      json
// @Param        id   path      string  true  "Chat ID"
// @Success      200  {object}  domain.Chat
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /chats/{id} [get]
func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	chat, err := s.chatService.Get(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "get chat")
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

// handleUpdateChatTitle godoc
// @Summary      Rename chat
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Chat ID"
// @Param        request  body      domain.UpdateTitleRequest  true  "New title"
// @Success      200      {object}  StatusResponse
// @Router       /chats/{id} [patch]
func (s *Server) handleUpdateChatTitle(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.chatService.UpdateTitle(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"), req.Title); err != nil {
		writeServiceError(w, err, "rename chat")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleDeleteChat godoc
// @Summary      Delete chat
// @Description  Delete a chat and its messages
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Chat ID"
// @Success      200  {object}  StatusResponse
// @Router       /chats/{id} [delete]
func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	if err := s.chatService.Delete(r.Context(), GetAuthContext(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "delete chat")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// handleUpdateVisibility godoc
// @Summary      Change chat visibility
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Chat ID"
// @Param        request  body      domain.UpdateVisibilityRequest  true  "Visibility"
// @Success      200      {object}  StatusResponse
// @Router       /chats/{id}/visibility [put]
func (s *Server) handleUpdateVisibility(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateVisibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.chatService.UpdateVisibility(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"), req.Visibility); err != nil {
		writeServiceError(w, err, "update visibility")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Message endpoints

// handleListMessages godoc
// @Summary      List messages
// @Description  Messages of a readable chat, oldest first
// @Tags         Messages
// @Produce      json
// @Param        id   path      string  true  "Chat ID"
// @Success      200  {array}   domain.Message
// @Router       /chats/{id}/messages [get]
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.chatService.ListMessages(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "list messages")
		return
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

// handleSaveMessages godoc
// @Summary      Append messages
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Chat ID"
// @Param        request  body      domain.SaveMessagesRequest  true  "Messages"
// @Success      201      {array}   domain.Message
// @Router       /chats/{id}/messages [post]
func (s *Server) handleSaveMessages(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveMessagesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.chatService.SaveMessages(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"), req.Messages); err != nil {
		writeServiceError(w, err, "save messages")
		return
	}
	writeJSON(w, http.StatusCreated, req.Messages)
}

// handleDeleteMessagesAfter godoc
// @Summary      Delete trailing messages
// @Description  Delete messages created at or after the timestamp
// @Tags         Messages
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Chat ID"
// @Param        after  query     string  true  "RFC 3339 timestamp"
// @Success      200    {object}  CountResponse
// @Router       /chats/{id}/messages [delete]
func (s *Server) handleDeleteMessagesAfter(w http.ResponseWriter, r *http.Request) {
	at, err := queryTime(r, "after")
	if err != nil {
		writeError(w, http.StatusBadRequest, "after must be an RFC 3339 timestamp")
		return
	}

	n, err := s.chatService.DeleteMessagesAfter(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"), at)
	if err != nil {
		writeServiceError(w, err, "delete messages")
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Deleted: n})
}

// Chat document endpoints

// handleLatestChatDocument godoc
// @Summary      Latest chat document
// @Description  Newest version of the document most recently created or updated in the chat
// @Tags         Chats
// @Produce      json
// @Param        id   path      string  true  "Chat ID"
// @Success      200  {object}  domain.ChatDocument
// @Failure      404  {object}  ErrorResponse  "Chat has no documents"
// @Router       /chats/{id}/documents/latest [get]
func (s *Server) handleLatestChatDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.chatService.LatestDocument(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "load chat document")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleCheckChatDocuments godoc
// @Summary      Check chat documents
// @Tags         Chats
// @Produce      json
// @Param        id   path      string  true  "Chat ID"
// @Success      200  {object}  HasDocumentsResponse
// @Router       /chats/{id}/documents/check [get]
func (s *Server) handleCheckChatDocuments(w http.ResponseWriter, r *http.Request) {
	has, err := s.chatService.HasDocuments(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "check chat documents")
		return
	}
	writeJSON(w, http.StatusOK, HasDocumentsResponse{HasDocuments: has})
}
