package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/afubot/afu-assistant/internal/domain"
	"go.uber.org/zap"
)

// maxRecent caps the detailed record list in a stats response.
const maxRecent = 50

// FeedbackStore is the storage contract for feedback records.
type FeedbackStore interface {
	Create(rec *domain.FeedbackRecord) error
	List(filter domain.FeedbackFilter) ([]domain.FeedbackRecord, error)
}

// FeedbackService records answer feedback and computes its aggregates.
type FeedbackService struct {
	store  FeedbackStore
	logger *zap.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(store FeedbackStore, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{store: store, logger: logger}
}

// Record validates and stores one feedback submission.
func (s *FeedbackService) Record(ctx context.Context, req *domain.FeedbackRequest) (*domain.FeedbackRecord, error) {
	if req.MessageID == "" || req.Feedback == "" || req.Query == "" || req.Answer == "" {
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrInvalidRequest)
	}
	if req.Feedback != domain.FeedbackHelpful && req.Feedback != domain.FeedbackNotHelpful {
		return nil, fmt.Errorf("%w: invalid feedback value", domain.ErrInvalidRequest)
	}
	if req.Feedback == domain.FeedbackNotHelpful && req.Reason != "" && !validReason(req.Reason) {
		return nil, fmt.Errorf("%w: invalid reason value", domain.ErrInvalidRequest)
	}

	rec := &domain.FeedbackRecord{
		MessageID:    req.MessageID,
		Feedback:     req.Feedback,
		Reason:       req.Reason,
		CustomReason: req.CustomReason,
		Query:        req.Query,
		Answer:       req.Answer,
		Timestamp:    time.Now().UTC(),
		SessionID:    req.SessionID,
	}
	if err := s.store.Create(rec); err != nil {
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}

	s.logger.Info("feedback received",
		zap.String("message_id", rec.MessageID),
		zap.String("feedback", rec.Feedback),
		zap.String("reason", rec.Reason),
	)
	return rec, nil
}

// Stats aggregates matching feedback: totals, helpful percentage, counts
// per reason (all reasons enumerated, zeros included) and the newest
// records.
func (s *FeedbackService) Stats(ctx context.Context, filter domain.FeedbackFilter, echo domain.FilterEcho) (*domain.FeedbackStats, error) {
	records, err := s.store.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	stats := &domain.FeedbackStats{
		Total:       len(records),
		ReasonStats: make(map[string]int, len(domain.FeedbackReasons)),
		Filters:     echo,
	}
	for _, reason := range domain.FeedbackReasons {
		stats.ReasonStats[reason] = 0
	}

	for _, rec := range records {
		if rec.Feedback == domain.FeedbackHelpful {
			stats.Helpful++
		} else {
			stats.NotHelpful++
		}
		if rec.Reason != "" {
			stats.ReasonStats[rec.Reason]++
		}
	}
	stats.HelpfulPercentage = percentage(stats.Helpful, stats.Total)

	if len(records) > maxRecent {
		records = records[:maxRecent]
	}
	if records == nil {
		records = []domain.FeedbackRecord{}
	}
	stats.RecentFeedback = records

	return stats, nil
}

func validReason(reason string) bool {
	for _, r := range domain.FeedbackReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// percentage rounds part/total to a whole percent; 0 when total is 0.
func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
