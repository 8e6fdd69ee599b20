package http

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driving"
)

var errNotImplemented = errors.New("not implemented")

type mockAuthService struct {
	authenticateFn   func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	validateTokenFn  func(ctx context.Context, token string) (*domain.AuthContext, error)
	refreshTokenFn   func(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)
	logoutFn         func(ctx context.Context, token string) error
	changePasswordFn func(ctx context.Context, userID string, req domain.ChangePasswordRequest) error
}

var _ driving.AuthService = (*mockAuthService)(nil)

func (m *mockAuthService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if m.validateTokenFn != nil {
		return m.validateTokenFn(ctx, token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *mockAuthService) RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
	if m.refreshTokenFn != nil {
		return m.refreshTokenFn(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

func (m *mockAuthService) LogoutAll(ctx context.Context, userID string) error {
	return nil
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, req)
	}
	return nil
}

type mockUserService struct {
	registerFn func(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	createFn   func(ctx context.Context, req driving.CreateUserRequest) (*domain.User, error)
	getFn      func(ctx context.Context, id string) (*domain.User, error)
	listFn     func(ctx context.Context) ([]*domain.User, error)
	deleteFn   func(ctx context.Context, id string) error
}

var _ driving.UserService = (*mockUserService)(nil)

func (m *mockUserService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockUserService) Create(ctx context.Context, req driving.CreateUserRequest) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockUserService) List(ctx context.Context) ([]*domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockUserService) Update(ctx context.Context, id string, req driving.UpdateUserRequest) (*domain.User, error) {
	return nil, errNotImplemented
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return errNotImplemented
}

type mockChatService struct {
	createFn              func(ctx context.Context, auth *domain.AuthContext, req domain.CreateChatRequest) (*domain.Chat, error)
	getFn                 func(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Chat, error)
	listFn                func(ctx context.Context, auth *domain.AuthContext, limit, offset int) ([]*domain.Chat, error)
	listMessagesFn        func(ctx context.Context, auth *domain.AuthContext, chatID string) ([]*domain.Message, error)
	deleteMessagesAfterFn func(ctx context.Context, auth *domain.AuthContext, chatID string, at time.Time) (int, error)
	latestDocumentFn      func(ctx context.Context, auth *domain.AuthContext, chatID string) (*domain.ChatDocument, error)
	hasDocumentsFn        func(ctx context.Context, auth *domain.AuthContext, chatID string) (bool, error)
}

var _ driving.ChatService = (*mockChatService)(nil)

func (m *mockChatService) Create(ctx context.Context, auth *domain.AuthContext, req domain.CreateChatRequest) (*domain.Chat, error) {
	if m.createFn != nil {
		return m.createFn(ctx, auth, req)
	}
	return nil, errNotImplemented
}

func (m *mockChatService) Ensure(ctx context.Context, auth *domain.AuthContext, id string, title string) (*domain.Chat, error) {
	return nil, errNotImplemented
}

func (m *mockChatService) Get(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Chat, error) {
	if m.getFn != nil {
		return m.getFn(ctx, auth, id)
	}
	return nil, errNotImplemented
}

func (m *mockChatService) List(ctx context.Context, auth *domain.AuthContext, limit, offset int) ([]*domain.Chat, error) {
	if m.listFn != nil {
		return m.listFn(ctx, auth, limit, offset)
	}
	return nil, errNotImplemented
}

func (m *mockChatService) Delete(ctx context.Context, auth *domain.AuthContext, id string) error {
	return nil
}

func (m *mockChatService) UpdateVisibility(ctx context.Context, auth *domain.AuthContext, id string, visibility domain.Visibility) error {
	return nil
}

func (m *mockChatService) UpdateTitle(ctx context.Context, auth *domain.AuthContext, id string, title string) error {
	return nil
}

func (m *mockChatService) SaveMessages(ctx context.Context, auth *domain.AuthContext, chatID string, messages []*domain.Message) error {
	return nil
}

func (m *mockChatService) ListMessages(ctx context.Context, auth *domain.AuthContext, chatID string) ([]*domain.Message, error) {
	if m.listMessagesFn != nil {
		return m.listMessagesFn(ctx, auth, chatID)
	}
	return nil, nil
}

func (m *mockChatService) DeleteMessagesAfter(ctx context.Context, auth *domain.AuthContext, chatID string, at time.Time) (int, error) {
	if m.deleteMessagesAfterFn != nil {
		return m.deleteMessagesAfterFn(ctx, auth, chatID, at)
	}
	return 0, nil
}

func (m *mockChatService) HasDocuments(ctx context.Context, auth *domain.AuthContext, chatID string) (bool, error) {
	if m.hasDocumentsFn != nil {
		return m.hasDocumentsFn(ctx, auth, chatID)
	}
	return false, nil
}

func (m *mockChatService) LatestDocument(ctx context.Context, auth *domain.AuthContext, chatID string) (*domain.ChatDocument, error) {
	if m.latestDocumentFn != nil {
		return m.latestDocumentFn(ctx, auth, chatID)
	}
	return nil, domain.ErrNotFound
}

type mockDocumentService struct {
	versionsFn    func(ctx context.Context, auth *domain.AuthContext, id string) ([]*domain.Document, error)
	saveVersionFn func(ctx context.Context, auth *domain.AuthContext, id string, req domain.SaveVersionRequest) (*domain.Document, string, error)
	deleteAfterFn func(ctx context.Context, auth *domain.AuthContext, id string, after time.Time) (int, error)
}

var _ driving.DocumentService = (*mockDocumentService)(nil)

func (m *mockDocumentService) Versions(ctx context.Context, auth *domain.AuthContext, id string) ([]*domain.Document, error) {
	if m.versionsFn != nil {
		return m.versionsFn(ctx, auth, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) Latest(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) SaveVersion(ctx context.Context, auth *domain.AuthContext, id string, req domain.SaveVersionRequest) (*domain.Document, string, error) {
	if m.saveVersionFn != nil {
		return m.saveVersionFn(ctx, auth, id, req)
	}
	return nil, "", errNotImplemented
}

func (m *mockDocumentService) DeleteVersionsAfter(ctx context.Context, auth *domain.AuthContext, id string, after time.Time) (int, error) {
	if m.deleteAfterFn != nil {
		return m.deleteAfterFn(ctx, auth, id, after)
	}
	return 0, nil
}

type mockEditService struct {
	parseFn     func(ctx context.Context, req domain.ParseResponseRequest) ([]domain.ResponseSegment, error)
	locateFn    func(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.LocateEditRequest) (*domain.MatchResult, error)
	locateAllFn func(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.LocateAllRequest) ([]*domain.MatchResult, error)
	applyFn     func(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.ApplyEditRequest) (*domain.ApplyEditResult, error)
}

var _ driving.EditService = (*mockEditService)(nil)

func (m *mockEditService) Parse(ctx context.Context, req domain.ParseResponseRequest) ([]domain.ResponseSegment, error) {
	if m.parseFn != nil {
		return m.parseFn(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockEditService) Locate(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.LocateEditRequest) (*domain.MatchResult, error) {
	if m.locateFn != nil {
		return m.locateFn(ctx, auth, chatID, req)
	}
	return nil, errNotImplemented
}

func (m *mockEditService) LocateAll(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.LocateAllRequest) ([]*domain.MatchResult, error) {
	if m.locateAllFn != nil {
		return m.locateAllFn(ctx, auth, chatID, req)
	}
	return nil, errNotImplemented
}

func (m *mockEditService) Apply(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.ApplyEditRequest) (*domain.ApplyEditResult, error) {
	if m.applyFn != nil {
		return m.applyFn(ctx, auth, chatID, req)
	}
	return nil, errNotImplemented
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}
