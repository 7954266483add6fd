package service

import (
	"context"
	"fmt"

	"github.com/afubot/afu-assistant/internal/auth"
	"github.com/afubot/afu-assistant/internal/config"
	"github.com/afubot/afu-assistant/internal/domain"
	"github.com/afubot/afu-assistant/internal/knowledge"
	"github.com/afubot/afu-assistant/internal/session"
	"go.uber.org/zap"
)

// AdminService handles admin login, session management, knowledge-base
// browsing and dashboard stats.
type AdminService struct {
	cfg       *config.Config
	issuer    *auth.TokenIssuer
	sessions  *session.Tiered
	guard     *session.Guard
	store     *knowledge.Store
	feedback  *FeedbackService
	analytics *AnalyticsService
	logger    *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	cfg *config.Config,
	issuer *auth.TokenIssuer,
	sessions *session.Tiered,
	guard *session.Guard,
	store *knowledge.Store,
	feedback *FeedbackService,
	analytics *AnalyticsService,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		cfg:       cfg,
		issuer:    issuer,
		sessions:  sessions,
		guard:     guard,
		store:     store,
		feedback:  feedback,
		analytics: analytics,
		logger:    logger,
	}
}

// Login checks credentials and opens a session. The returned token is the
// session key; the handler also sets it as an HTTP-only cookie.
func (s *AdminService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Username != s.cfg.Admin.Username || req.Password != s.cfg.Admin.Password {
		s.logger.Warn("admin login rejected", zap.String("username", req.Username))
		return nil, domain.ErrUnauthorized
	}

	token, err := s.issuer.Generate(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	rec := session.NewRecord(token)
	if err := s.sessions.Put(rec); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("admin logged in", zap.String("username", req.Username))
	return &domain.LoginResponse{Success: true, Token: token, Message: "登入成功"}, nil
}

// Logout closes the session. Storage failures are logged, not returned:
// the client clears its cookie either way.
func (s *AdminService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.sessions.Delete(token); err != nil {
		s.logger.Warn("failed to delete session on logout", zap.Error(err))
	}
}

// SessionStatus reports the state of the session behind token, for the
// back-office's periodic expiry poll.
func (s *AdminService) SessionStatus(ctx context.Context, token string) (session.Status, error) {
	rec, err := s.sessions.Lookup(token)
	if err != nil {
		return session.Status{}, err
	}
	return s.guard.Check(rec), nil
}

// ExtendSession resets the session clock, clearing a pending warning.
func (s *AdminService) ExtendSession(ctx context.Context, token string) (session.Status, error) {
	rec, err := s.sessions.Lookup(token)
	if err != nil {
		return session.Status{}, err
	}
	if rec == nil {
		return session.Status{}, domain.ErrUnauthorized
	}

	s.guard.Extend(rec)
	if err := s.sessions.Put(rec); err != nil {
		return session.Status{}, fmt.Errorf("failed to store session: %w", err)
	}
	return s.guard.Check(rec), nil
}

// Knowledge operations (the knowledge base is read-only server-side)

func (s *AdminService) ListKnowledge(ctx context.Context) []domain.FaqEntry {
	return s.store.List()
}

func (s *AdminService) GetKnowledge(ctx context.Context, id string) (*domain.FaqEntry, error) {
	return s.store.Get(id)
}

func (s *AdminService) KnowledgeCategories(ctx context.Context) []string {
	return s.store.Categories()
}

// Stats assembles the dashboard headline numbers.
func (s *AdminService) Stats(ctx context.Context) (*domain.Stats, error) {
	fb, err := s.feedback.Stats(ctx, domain.FeedbackFilter{}, domain.FilterEcho{})
	if err != nil {
		return nil, err
	}
	an, err := s.analytics.Stats(ctx, domain.AnalyticsFilter{}, domain.FilterEcho{})
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		TotalEntries:    s.store.Len(),
		TotalCategories: len(s.store.Categories()),
		TotalFeedback:   fb.Total,
		HelpfulPercent:  fb.HelpfulPercentage,
		TotalViews:      an.TotalViews,
		TotalClicks:     an.TotalClicks,
		ClickThrough:    an.ClickThroughRate,
	}, nil
}
