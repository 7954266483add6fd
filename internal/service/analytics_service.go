package service

import (
	"context"
	"fmt"
	"time"

	"github.com/afubot/afu-assistant/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalyticsStore is the storage contract for recommendation events.
type AnalyticsStore interface {
	Create(event *domain.AnalyticsEvent) error
	List(filter domain.AnalyticsFilter) ([]domain.AnalyticsEvent, error)
}

// AnalyticsService records recommendation view/click events and computes
// click-through aggregates.
type AnalyticsService struct {
	store  AnalyticsStore
	logger *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(store AnalyticsStore, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, logger: logger}
}

// Record validates and stores one view or click event.
func (s *AnalyticsService) Record(ctx context.Context, req *domain.AnalyticsRequest) (*domain.AnalyticsEvent, error) {
	if req.RecommendationText == "" || req.RecommendationURL == "" || req.UserQuery == "" ||
		req.SessionID == "" || req.Action == "" || req.MessageID == "" {
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrInvalidRequest)
	}
	if req.Action != domain.ActionViewed && req.Action != domain.ActionClicked {
		return nil, fmt.Errorf("%w: invalid action value", domain.ErrInvalidRequest)
	}

	event := &domain.AnalyticsEvent{
		ID:                 "rec-" + uuid.New().String(),
		RecommendationText: req.RecommendationText,
		RecommendationURL:  req.RecommendationURL,
		Context:            req.Context,
		Priority:           req.Priority,
		UserQuery:          req.UserQuery,
		SessionID:          req.SessionID,
		Timestamp:          time.Now().UTC(),
		Action:             req.Action,
		MessageID:          req.MessageID,
	}
	if event.Context == "" {
		event.Context = "unknown"
	}
	if event.Priority == "" {
		event.Priority = "medium"
	}

	if err := s.store.Create(event); err != nil {
		return nil, fmt.Errorf("failed to store analytics event: %w", err)
	}

	s.logger.Info("recommendation event",
		zap.String("action", event.Action),
		zap.String("recommendation", event.RecommendationText),
	)
	return event, nil
}

// Stats aggregates matching events: view/click totals, overall CTR and a
// per-recommendation performance breakdown.
func (s *AnalyticsService) Stats(ctx context.Context, filter domain.AnalyticsFilter, echo domain.FilterEcho) (*domain.AnalyticsStats, error) {
	events, err := s.store.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list analytics events: %w", err)
	}

	stats := &domain.AnalyticsStats{Filters: echo}

	perf := make(map[string]*domain.RecommendationPerformance)
	var order []string
	for _, event := range events {
		switch event.Action {
		case domain.ActionViewed:
			stats.TotalViews++
		case domain.ActionClicked:
			stats.TotalClicks++
		}

		p, ok := perf[event.RecommendationText]
		if !ok {
			p = &domain.RecommendationPerformance{
				Text:     event.RecommendationText,
				URL:      event.RecommendationURL,
				Context:  event.Context,
				Priority: event.Priority,
			}
			perf[event.RecommendationText] = p
			order = append(order, event.RecommendationText)
		}
		switch event.Action {
		case domain.ActionViewed:
			p.Views++
		case domain.ActionClicked:
			p.Clicks++
		}
	}
	stats.ClickThroughRate = percentage(stats.TotalClicks, stats.TotalViews)

	stats.RecommendationPerformance = make([]domain.RecommendationPerformance, 0, len(order))
	for _, text := range order {
		p := perf[text]
		p.CTR = percentage(p.Clicks, p.Views)
		stats.RecommendationPerformance = append(stats.RecommendationPerformance, *p)
	}

	if len(events) > maxRecent {
		events = events[:maxRecent]
	}
	if events == nil {
		events = []domain.AnalyticsEvent{}
	}
	stats.RecentAnalytics = events

	return stats, nil
}
