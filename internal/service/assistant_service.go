package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/afubot/afu-assistant/internal/domain"
	"github.com/afubot/afu-assistant/internal/knowledge"
	"github.com/afubot/afu-assistant/internal/recommend"
	"go.uber.org/zap"
)

// AssistantService answers widget queries from the FAQ knowledge base and
// suggests follow-up questions.
type AssistantService struct {
	store  *knowledge.Store
	engine *recommend.Engine
	logger *zap.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(store *knowledge.Store, engine *recommend.Engine, logger *zap.Logger) *AssistantService {
	return &AssistantService{store: store, engine: engine, logger: logger}
}

// Query matches a user query against the knowledge base. When no entry
// matches it returns the canned fallback answer rather than an error.
func (s *AssistantService) Query(ctx context.Context, query string) (*domain.QueryResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is missing", domain.ErrInvalidRequest)
	}

	entry := s.store.Match(query)
	if entry == nil {
		s.logger.Info("query had no knowledge match", zap.String("query", query))
		return knowledge.Fallback(), nil
	}

	resp := &domain.QueryResponse{
		AnswerHTML:      entry.AnswerHTML,
		QuickActions:    entry.QuickActions,
		Recommendations: entry.Recommendations,
	}
	if resp.QuickActions == nil {
		resp.QuickActions = []domain.QuickAction{}
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []domain.Recommendation{}
	}

	s.logger.Info("query answered",
		zap.String("entry_id", entry.ID),
		zap.String("category", entry.Category),
	)
	return resp, nil
}

// Recommend returns up to three follow-up questions for a query, skipping
// texts the widget has already shown or the user has clicked.
func (s *AssistantService) Recommend(ctx context.Context, query string, exclude []string) ([]domain.QuickAction, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is missing", domain.ErrInvalidRequest)
	}

	excluded := make(map[string]bool, len(exclude))
	for _, text := range exclude {
		excluded[text] = true
	}

	actions := make([]domain.QuickAction, 0, recommend.MaxSuggestions)
	for _, text := range s.engine.Recommend(query, excluded) {
		actions = append(actions, domain.QuickAction{Text: text})
	}
	return actions, nil
}
