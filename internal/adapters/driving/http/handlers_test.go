package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "github.com/custodia-labs/scenaria-core/docs"
	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

const (
	memberToken = "member-token"
	adminToken  = "admin-token"
)

type testServer struct {
	auth  *mockAuthService
	users *mockUserService
	chats *mockChatService
	docs  *mockDocumentService
	edits *mockEditService
	db    *mockPinger
	redis *mockPinger
	srv   *Server
}

func newTestServer() *testServer {
	ts := &testServer{
		auth:  &mockAuthService{},
		users: &mockUserService{},
		chats: &mockChatService{},
		docs:  &mockDocumentService{},
		edits: &mockEditService{},
		db:    &mockPinger{},
		redis: &mockPinger{},
	}
	ts.auth.validateTokenFn = func(ctx context.Context, token string) (*domain.AuthContext, error) {
		switch token {
		case memberToken:
			return &domain.AuthContext{UserID: "user-1", Email: "writer@example.com", Role: domain.RoleMember, SessionID: "s1"}, nil
		case adminToken:
			return &domain.AuthContext{UserID: "admin-1", Role: domain.RoleAdmin, SessionID: "s2"}, nil
		}
		return nil, domain.ErrTokenInvalid
	}

	cfg := DefaultConfig()
	cfg.Version = "1.2.3"
	cfg.Metrics = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "# HELP scenaria_edit_apply_total\n")
	})
	ts.srv = NewServer(cfg, ts.auth, ts.users, ts.chats, ts.docs, ts.edits, ts.db, ts.redis)
	return ts
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, _ := json.Marshal(b)
			reader = bytes.NewReader(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func TestHandleHealthAndVersion(t *testing.T) {
	ts := newTestServer()

	rec := ts.do("GET", "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	rec = ts.do("GET", "/version", "", nil)
	var v VersionResponse
	decodeBody(t, rec, &v)
	if v.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", v.Version)
	}
}

func TestHandleReady(t *testing.T) {
	tests := []struct {
		name     string
		dbErr    error
		redisErr error
		want     int
	}{
		{"all healthy", nil, nil, http.StatusOK},
		{"database down", errors.New("connection refused"), nil, http.StatusServiceUnavailable},
		{"redis down", nil, errors.New("connection refused"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()
			ts.db.err = tt.dbErr
			ts.redis.err = tt.redisErr

			if rec := ts.do("GET", "/ready", "", nil); rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestHandleMetricsAndSwagger(t *testing.T) {
	ts := newTestServer()

	rec := ts.do("GET", "/metrics", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "scenaria_edit_apply_total") {
		t.Errorf("metrics: %d %q", rec.Code, rec.Body.String())
	}

	rec = ts.do("GET", "/swagger/doc.json", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("swagger: expected 200, got %d", rec.Code)
	}
	var doc map[string]interface{}
	decodeBody(t, rec, &doc)
	if doc["swagger"] != "2.0" {
		t.Errorf("expected swagger 2.0 document, got %v", doc["swagger"])
	}
	paths, _ := doc["paths"].(map[string]interface{})
	if _, ok := paths["/chats/{id}/edits/apply"]; !ok {
		t.Error("expected apply route in api documentation")
	}
}

func TestHandleLogin(t *testing.T) {
	tests := []struct {
		name string
		err  error
		body interface{}
		want int
	}{
		{"success", nil, domain.LoginRequest{Email: "writer@example.com", Password: "secret-pass"}, http.StatusOK},
		{"invalid credentials", domain.ErrInvalidCredentials, domain.LoginRequest{Email: "writer@example.com", Password: "x"}, http.StatusUnauthorized},
		{"disabled", domain.ErrUnauthorized, domain.LoginRequest{Email: "writer@example.com", Password: "x"}, http.StatusUnauthorized},
		{"bad body", nil, "{not json", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()
			ts.auth.authenticateFn = func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &domain.LoginResponse{Token: "jwt", User: &domain.UserSummary{ID: "user-1"}}, nil
			}

			rec := ts.do("POST", "/api/v1/auth/login", "", tt.body)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestHandleRegister(t *testing.T) {
	ts := newTestServer()
	ts.users.registerFn = func(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
		if req.Email == "taken@example.com" {
			return nil, domain.ErrAlreadyExists
		}
		return &domain.User{ID: "user-9", Email: req.Email, PasswordHash: "hash", Role: domain.RoleMember, Active: true}, nil
	}

	rec := ts.do("POST", "/api/v1/auth/register", "", domain.RegisterRequest{Email: "new@example.com", Password: "long-enough"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Error("password hash leaked in response")
	}

	rec = ts.do("POST", "/api/v1/auth/register", "", domain.RegisterRequest{Email: "taken@example.com", Password: "long-enough"})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandleChangePassword(t *testing.T) {
	ts := newTestServer()
	ts.auth.changePasswordFn = func(ctx context.Context, userID string, req domain.ChangePasswordRequest) error {
		if userID != "user-1" {
			t.Errorf("unexpected user %s", userID)
		}
		if req.CurrentPassword != "old-password" {
			return domain.ErrInvalidCredentials
		}
		return nil
	}

	body := domain.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}
	if rec := ts.do("PUT", "/api/v1/me/password", memberToken, body); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	body.CurrentPassword = "wrong"
	if rec := ts.do("PUT", "/api/v1/me/password", memberToken, body); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	ts := newTestServer()
	ts.users.listFn = func(ctx context.Context) ([]*domain.User, error) {
		return []*domain.User{{ID: "user-1"}, {ID: "admin-1"}}, nil
	}

	if rec := ts.do("GET", "/api/v1/users", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", rec.Code)
	}
	if rec := ts.do("GET", "/api/v1/users", memberToken, nil); rec.Code != http.StatusForbidden {
		t.Errorf("member: expected 403, got %d", rec.Code)
	}

	rec := ts.do("GET", "/api/v1/users", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", rec.Code)
	}
	var users []domain.UserSummary
	decodeBody(t, rec, &users)
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}

func TestHandleListChats(t *testing.T) {
	ts := newTestServer()
	var gotLimit, gotOffset int
	ts.chats.listFn = func(ctx context.Context, auth *domain.AuthContext, limit, offset int) ([]*domain.Chat, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	rec := ts.do("GET", "/api/v1/chats?limit=5&offset=10", memberToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotLimit != 5 || gotOffset != 10 {
		t.Errorf("expected limit 5 offset 10, got %d %d", gotLimit, gotOffset)
	}
	if !strings.Contains(rec.Body.String(), `"chats":[]`) {
		t.Errorf("expected empty chats array, got %s", rec.Body.String())
	}

	if rec := ts.do("GET", "/api/v1/chats?limit=abc", memberToken, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestHandleGetChat_OptionalAuth(t *testing.T) {
	ts := newTestServer()
	ts.chats.getFn = func(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Chat, error) {
		chat := &domain.Chat{ID: id, UserID: "user-1", Visibility: domain.VisibilityPrivate}
		if id == "public" {
			chat.Visibility = domain.VisibilityPublic
		}
		if !chat.CanRead(auth) {
			return nil, domain.ErrForbidden
		}
		return chat, nil
	}

	tests := []struct {
		name  string
		id    string
		token string
		want  int
	}{
		{"public anonymous", "public", "", http.StatusOK},
		{"private anonymous", "private", "", http.StatusForbidden},
		{"private owner", "private", memberToken, http.StatusOK},
		{"invalid token rejected", "public", "garbage", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := ts.do("GET", "/api/v1/chats/"+tt.id, tt.token, nil); rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestHandleCreateChat(t *testing.T) {
	ts := newTestServer()
	ts.chats.createFn = func(ctx context.Context, auth *domain.AuthContext, req domain.CreateChatRequest) (*domain.Chat, error) {
		if req.ID == "dup" {
			return nil, domain.ErrAlreadyExists
		}
		return &domain.Chat{ID: "chat-1", UserID: auth.UserID, Title: req.Title}, nil
	}

	rec := ts.do("POST", "/api/v1/chats", memberToken, domain.CreateChatRequest{Title: "Пилот"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var chat domain.Chat
	decodeBody(t, rec, &chat)
	if chat.UserID != "user-1" || chat.Title != "Пилот" {
		t.Errorf("unexpected chat %+v", chat)
	}

	if rec := ts.do("POST", "/api/v1/chats", memberToken, domain.CreateChatRequest{ID: "dup"}); rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandleDeleteMessagesAfter(t *testing.T) {
	ts := newTestServer()
	cutoff := time.Date(2024, 5, 1, 12, 30, 0, 500, time.UTC)
	ts.chats.deleteMessagesAfterFn = func(ctx context.Context, auth *domain.AuthContext, chatID string, at time.Time) (int, error) {
		if !at.Equal(cutoff) {
			t.Errorf("expected %v, got %v", cutoff, at)
		}
		return 3, nil
	}

	rec := ts.do("DELETE", "/api/v1/chats/chat-1/messages?after="+cutoff.Format(time.RFC3339Nano), memberToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp CountResponse
	decodeBody(t, rec, &resp)
	if resp.Deleted != 3 {
		t.Errorf("expected 3 deleted, got %d", resp.Deleted)
	}

	if rec := ts.do("DELETE", "/api/v1/chats/chat-1/messages", memberToken, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing after: expected 400, got %d", rec.Code)
	}
}

func TestHandleChatDocuments(t *testing.T) {
	ts := newTestServer()
	ts.chats.hasDocumentsFn = func(ctx context.Context, auth *domain.AuthContext, chatID string) (bool, error) {
		return chatID == "with-docs", nil
	}

	rec := ts.do("GET", "/api/v1/chats/with-docs/documents/check", memberToken, nil)
	var resp HasDocumentsResponse
	decodeBody(t, rec, &resp)
	if !resp.HasDocuments {
		t.Error("expected has_documents true")
	}

	if rec := ts.do("GET", "/api/v1/chats/empty/documents/latest", memberToken, nil); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without documents, got %d", rec.Code)
	}
}

func TestHandleLocateEdit(t *testing.T) {
	ts := newTestServer()
	ts.edits.locateFn = func(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.LocateEditRequest) (*domain.MatchResult, error) {
		if req.PreviousVersion == "missing" {
			return nil, nil
		}
		return &domain.MatchResult{
			MatchCandidate: domain.MatchCandidate{Start: 4, End: 20, Similarity: 1, Method: domain.MethodExact},
			Confidence:     1,
		}, nil
	}
	ts.edits.locateAllFn = func(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.LocateAllRequest) ([]*domain.MatchResult, error) {
		return []*domain.MatchResult{{Confidence: 0.9}, nil}, nil
	}

	rec := ts.do("POST", "/api/v1/chats/chat-1/edits/locate", memberToken, map[string]string{"previous_version": "ИНТ. КУХНЯ"})
	var found LocateResponse
	decodeBody(t, rec, &found)
	if !found.Found || found.Match == nil || found.Match.Method != domain.MethodExact {
		t.Errorf("unexpected response %+v", found)
	}

	rec = ts.do("POST", "/api/v1/chats/chat-1/edits/locate", memberToken, map[string]string{"previous_version": "missing"})
	if rec.Code != http.StatusOK {
		t.Fatalf("miss: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"match":null`) {
		t.Errorf("expected null match, got %s", rec.Body.String())
	}

	rec = ts.do("POST", "/api/v1/chats/chat-1/edits/locate", memberToken, map[string][]string{"fragments": {"a", "b"}})
	var batch LocateResponse
	decodeBody(t, rec, &batch)
	if len(batch.Results) != 2 || batch.Results[1] != nil || !batch.Found {
		t.Errorf("unexpected batch response %+v", batch)
	}
}

func TestHandleApplyEdit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"applied", nil, http.StatusOK},
		{"locked", domain.ErrEditInProgress, http.StatusConflict},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"no document", domain.ErrNotFound, http.StatusNotFound},
		{"invalid", fmt.Errorf("%w: ApplyEditRequest.PreviousVersion failed \"required\"", domain.ErrInvalidInput), http.StatusBadRequest},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()
			ts.edits.applyFn = func(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.ApplyEditRequest) (*domain.ApplyEditResult, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &domain.ApplyEditResult{Applied: true, ScrollTo: req.NewFragment}, nil
			}

			rec := ts.do("POST", "/api/v1/chats/chat-1/edits/apply", memberToken, domain.ApplyEditRequest{
				PreviousVersion: "старый текст",
				NewFragment:     "новый текст",
			})
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleParseResponse(t *testing.T) {
	ts := newTestServer()
	ts.edits.parseFn = func(ctx context.Context, req domain.ParseResponseRequest) ([]domain.ResponseSegment, error) {
		return []domain.ResponseSegment{{Type: domain.SegmentText, Content: req.Response}}, nil
	}

	rec := ts.do("POST", "/api/v1/responses/parse", memberToken, domain.ParseResponseRequest{Response: "Готово."})
	var resp ParseResponse
	decodeBody(t, rec, &resp)
	if len(resp.Segments) != 1 || resp.Segments[0].Content != "Готово." {
		t.Errorf("unexpected segments %+v", resp.Segments)
	}
}

func TestHandleSaveVersion(t *testing.T) {
	ts := newTestServer()
	ts.docs.saveVersionFn = func(ctx context.Context, auth *domain.AuthContext, id string, req domain.SaveVersionRequest) (*domain.Document, string, error) {
		doc := &domain.Document{ID: id, Title: req.Title, Kind: req.Kind, Content: req.Content, UserID: auth.UserID}
		switch req.ChatID {
		case "broken-chat":
			return doc, "", errors.New("document saved, recording update message: boom")
		case "other-owner":
			return nil, "", domain.ErrForbidden
		}
		return doc, "msg-1", nil
	}

	req := domain.SaveVersionRequest{Title: "Пилот", Kind: domain.KindText, Content: "# Сцена 1", ChatID: "chat-1"}
	rec := ts.do("POST", "/api/v1/documents/doc-1", memberToken, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp SaveVersionResponse
	decodeBody(t, rec, &resp)
	if resp.MessageID != "msg-1" || resp.Document.ID != "doc-1" || resp.Warning != "" {
		t.Errorf("unexpected response %+v", resp)
	}

	req.ChatID = "broken-chat"
	rec = ts.do("POST", "/api/v1/documents/doc-1", memberToken, req)
	resp = SaveVersionResponse{}
	decodeBody(t, rec, &resp)
	if rec.Code != http.StatusCreated || resp.Warning == "" {
		t.Errorf("expected 201 with warning, got %d %+v", rec.Code, resp)
	}

	req.ChatID = "other-owner"
	if rec := ts.do("POST", "/api/v1/documents/doc-1", memberToken, req); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestHandleDeleteVersionsAfter(t *testing.T) {
	ts := newTestServer()
	ts.docs.deleteAfterFn = func(ctx context.Context, auth *domain.AuthContext, id string, after time.Time) (int, error) {
		return 2, nil
	}

	rec := ts.do("DELETE", "/api/v1/documents/doc-1/versions?after=2024-05-01T12:00:00Z", memberToken, nil)
	var resp CountResponse
	decodeBody(t, rec, &resp)
	if resp.Deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", resp.Deleted)
	}

	if rec := ts.do("DELETE", "/api/v1/documents/doc-1/versions?after=yesterday", memberToken, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad timestamp, got %d", rec.Code)
	}
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	ts := newTestServer()
	huge := `{"response":"` + strings.Repeat("а", maxBodyBytes) + `"}`

	if rec := ts.do("POST", "/api/v1/responses/parse", memberToken, huge); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
