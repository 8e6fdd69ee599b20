package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/match"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driving"
	"github.com/custodia-labs/scenaria-core/internal/core/segments"
)

// Ensure editService implements EditService
var _ driving.EditService = (*editService)(nil)

// Apply outcomes reported to EditMetrics
const (
	OutcomeApplied = "applied"
	OutcomeNoMatch = "no_match"
	OutcomeLocked  = "locked"
	OutcomeError   = "error"
)

// editDescription is recorded on the assistant message of an applied edit
const editDescription = "Правка фрагмента сценария"

// editService implements the EditService interface
type editService struct {
	chats     driving.ChatService
	documents driving.DocumentService
	lock      driven.DistributedLock
	metrics   driven.EditMetrics
	matcher   *match.Matcher
	parser    *segments.Parser
	logger    *slog.Logger

	minSimilarity float64
	timeout       time.Duration
	lockTTL       time.Duration
	maxParallel   int
}

// EditServiceConfig holds configuration for the edit service.
type EditServiceConfig struct {
	Chats         driving.ChatService
	Documents     driving.DocumentService
	Lock          driven.DistributedLock // Optional: serialises edits per document
	Metrics       driven.EditMetrics     // Optional
	Matcher       *match.Matcher         // Default: match.New with Logger
	Parser        *segments.Parser       // Default: segments.NewParser(segments.DefaultTags)
	Logger        *slog.Logger
	MinSimilarity float64       // Used when a request carries none (default: 0.7)
	Timeout       time.Duration // Deadline for one relocation, checked per scan window (default: 10s)
	LockTTL       time.Duration // TTL of the per-document edit lock (default: 30s)
	MaxParallel   int           // Concurrent relocations in LocateAll (default: 4)
}

// NewEditService creates a new EditService
func NewEditService(cfg EditServiceConfig) driving.EditService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	matcher := cfg.Matcher
	if matcher == nil {
		matcher = match.New(match.WithLogger(logger))
	}

	parser := cfg.Parser
	if parser == nil {
		parser = segments.NewParser(segments.DefaultTags)
	}

	minSim := cfg.MinSimilarity
	if minSim <= 0 || minSim > 1 {
		minSim = domain.DefaultMinSimilarity
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	lockTTL := cfg.LockTTL
	if lockTTL == 0 {
		lockTTL = 30 * time.Second
	}

	maxParallel := cfg.MaxParallel
	if maxParallel <= 0 {
		maxParallel = 4
	}

	return &editService{
		chats:         cfg.Chats,
		documents:     cfg.Documents,
		lock:          cfg.Lock,
		metrics:       cfg.Metrics,
		matcher:       matcher,
		parser:        parser,
		logger:        logger,
		minSimilarity: minSim,
		timeout:       timeout,
		lockTTL:       lockTTL,
		maxParallel:   maxParallel,
	}
}

// Parse splits an assistant response into text and editing segments.
// Analysis tags in text segments are rendered as headings.
func (s *editService) Parse(ctx context.Context, req domain.ParseResponseRequest) ([]domain.ResponseSegment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	segs := s.parser.Parse(req.Response)
	for i := range segs {
		if segs[i].Type == domain.SegmentText {
			segs[i].Content = segments.FormatAnalysis(segs[i].Content)
		}
	}
	return segs, nil
}

// Locate finds the previous version inside the chat's latest document
func (s *editService) Locate(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.LocateEditRequest) (*domain.MatchResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	cd, err := s.chats.LatestDocument(ctx, auth, chatID)
	if err != nil {
		return nil, err
	}
	return s.locate(ctx, cd.Document.Content, req.PreviousVersion, req.Options)
}

// LocateAll locates several fragments against one snapshot of the document
func (s *editService) LocateAll(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.LocateAllRequest) ([]*domain.MatchResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	cd, err := s.chats.LatestDocument(ctx, auth, chatID)
	if err != nil {
		return nil, err
	}

	content := cd.Document.Content
	results := make([]*domain.MatchResult, len(req.Fragments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)
	for i, fragment := range req.Fragments {
		g.Go(func() error {
			res, err := s.locate(gctx, content, fragment, req.Options)
			if err != nil {
				return fmt.Errorf("fragment %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Apply replaces the located previous version with the new fragment
func (s *editService) Apply(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.ApplyEditRequest) (*domain.ApplyEditResult, error) {
	result, outcome, err := s.apply(ctx, auth, chatID, req)
	s.observeApply(outcome)
	if err != nil {
		s.logger.Warn("edit not applied", "chat_id", chatID, "outcome", outcome, "error", err)
		return nil, err
	}
	return result, nil
}

func (s *editService) apply(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.ApplyEditRequest) (*domain.ApplyEditResult, string, error) {
	if err := validateRequest(req); err != nil {
		return nil, OutcomeError, err
	}

	cd, err := s.chats.LatestDocument(ctx, auth, chatID)
	if err != nil {
		return nil, OutcomeError, err
	}
	docID := cd.Document.ID

	if s.lock != nil {
		name := "edit:" + docID
		acquired, err := s.lock.Acquire(ctx, name, s.lockTTL)
		if err != nil {
			return nil, OutcomeError, fmt.Errorf("acquire edit lock: %w", err)
		}
		if !acquired {
			return nil, OutcomeLocked, domain.ErrEditInProgress
		}
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx), name); err != nil {
				s.logger.Warn("failed to release edit lock", "document_id", docID, "error", err)
			}
		}()
	}

	// Re-read under the lock so a concurrent apply is never overwritten
	current, err := s.documents.Latest(ctx, auth, docID)
	if err != nil {
		return nil, OutcomeError, err
	}

	found, err := s.locate(ctx, current.Content, req.PreviousVersion, req.Options)
	if err != nil {
		return nil, OutcomeError, err
	}
	if found == nil {
		return &domain.ApplyEditResult{Applied: false}, OutcomeNoMatch, nil
	}

	updated := current.Content[:found.Start] + req.NewFragment + current.Content[found.End:]

	dmp := diffmatchpatch.New()
	patch := dmp.PatchToText(dmp.PatchMake(current.Content, updated))

	doc, messageID, err := s.documents.SaveVersion(ctx, auth, docID, domain.SaveVersionRequest{
		Title:       current.Title,
		Kind:        current.Kind,
		Content:     updated,
		ChatID:      chatID,
		Description: editDescription,
	})
	if err != nil {
		return nil, OutcomeError, err
	}

	s.logger.Info("edit applied",
		"chat_id", chatID,
		"document_id", docID,
		"method", found.Method,
		"confidence", found.Confidence,
		"start", found.Start,
		"end", found.End)

	return &domain.ApplyEditResult{
		Applied:   true,
		Match:     found,
		Document:  doc,
		MessageID: messageID,
		Patch:     patch,
		ScrollTo:  segments.FirstMeaningfulLine(req.NewFragment),
	}, OutcomeApplied, nil
}

// locate runs one bounded relocation and records it
func (s *editService) locate(ctx context.Context, content, fragment string, opts domain.MatchOptions) (*domain.MatchResult, error) {
	if opts.MinSimilarity == 0 {
		opts.MinSimilarity = s.minSimilarity
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	res, err := s.matcher.FindMatch(ctx, content, fragment, opts)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		if res == nil {
			s.metrics.ObserveLocate("", 0, time.Since(start))
		} else {
			s.metrics.ObserveLocate(res.Method, res.Confidence, time.Since(start))
		}
	}
	return res, nil
}

func (s *editService) observeApply(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveApply(outcome)
	}
}
