package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/scenaria-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService driving.AuthService
	userService driving.UserService
	chatService driving.ChatService
	docService  driving.DocumentService
	editService driving.EditService

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
	metrics     http.Handler
}

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	Version     string
	CORSOrigins []string

	// Metrics serves GET /metrics. Defaults to the Prometheus default registry.
	Metrics http.Handler
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:        "0.0.0.0",
		Port:        8080,
		Version:     "dev",
		CORSOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	userService driving.UserService,
	chatService driving.ChatService,
	docService driving.DocumentService,
	editService driving.EditService,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:      http.NewServeMux(),
		version:     cfg.Version,
		authService: authService,
		userService: userService,
		chatService: chatService,
		docService:  docService,
		editService: editService,
		db:          db,
		redisClient: redisClient,
		metrics:     cfg.Metrics,
	}
	if s.metrics == nil {
		s.metrics = promhttp.Handler()
	}

	s.setupRoutes()

	handler := NewRecoveryMiddleware().Handler(
		NewLoggingMiddleware().Handler(
			NewCORSMiddleware(cfg.CORSOrigins).Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)
	authed := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(authMiddleware.RequireAdmin(h))
	}
	// Public chats are readable without a token
	optional := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Optional(h)
	}

	// Health, metrics and docs (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.Handle("GET /metrics", s.metrics)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout", authed(s.handleLogout))
	s.router.Handle("GET /api/v1/me", authed(s.handleGetMe))
	s.router.Handle("PUT /api/v1/me/password", authed(s.handleChangePassword))

	// Admin-only user management
	s.router.Handle("GET /api/v1/users", admin(s.handleListUsers))
	s.router.Handle("POST /api/v1/users", admin(s.handleCreateUser))
	s.router.Handle("PATCH /api/v1/users/{id}", admin(s.handleUpdateUser))
	s.router.Handle("DELETE /api/v1/users/{id}", admin(s.handleDeleteUser))

	// Chats
	s.router.Handle("GET /api/v1/chats", authed(s.handleListChats))
	s.router.Handle("POST /api/v1/chats", authed(s.handleCreateChat))
	s.router.Handle("GET /api/v1/chats/{id}", optional(s.handleGetChat))
	s.router.Handle("PATCH /api/v1/chats/{id}", authed(s.handleUpdateChatTitle))
	s.router.Handle("DELETE /api/v1/chats/{id}", authed(s.handleDeleteChat))
	s.router.Handle("PUT /api/v1/chats/{id}/visibility", authed(s.handleUpdateVisibility))
	s.router.Handle("GET /api/v1/chats/{id}/messages", optional(s.handleListMessages))
	s.router.Handle("POST /api/v1/chats/{id}/messages", authed(s.handleSaveMessages))
	s.router.Handle("DELETE /api/v1/chats/{id}/messages", authed(s.handleDeleteMessagesAfter))
	s.router.Handle("GET /api/v1/chats/{id}/documents/latest", optional(s.handleLatestChatDocument))
	s.router.Handle("GET /api/v1/chats/{id}/documents/check", optional(s.handleCheckChatDocuments))

	// Edits
	s.router.Handle("POST /api/v1/chats/{id}/edits/locate", authed(s.handleLocateEdit))
	s.router.Handle("POST /api/v1/chats/{id}/edits/apply", authed(s.handleApplyEdit))
	s.router.Handle("POST /api/v1/responses/parse", authed(s.handleParseResponse))

	// Documents
	s.router.Handle("GET /api/v1/documents/{id}", authed(s.handleListVersions))
	s.router.Handle("POST /api/v1/documents/{id}", authed(s.handleSaveVersion))
	s.router.Handle("GET /api/v1/documents/{id}/latest", authed(s.handleLatestVersion))
	s.router.Handle("DELETE /api/v1/documents/{id}/versions", authed(s.handleDeleteVersionsAfter))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
