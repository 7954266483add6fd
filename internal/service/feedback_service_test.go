package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/afubot/afu-assistant/internal/domain"
	"go.uber.org/zap"
)

// fakeFeedbackStore collects records in memory, newest first, the way the
// real repositories list them.
type fakeFeedbackStore struct {
	records []domain.FeedbackRecord
	err     error
}

func (s *fakeFeedbackStore) Create(rec *domain.FeedbackRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append([]domain.FeedbackRecord{*rec}, s.records...)
	return nil
}

func (s *fakeFeedbackStore) List(filter domain.FeedbackFilter) ([]domain.FeedbackRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.FeedbackRecord
	for _, rec := range s.records {
		if filter.Reason != "" && rec.Reason != filter.Reason {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func validFeedbackRequest() *domain.FeedbackRequest {
	return &domain.FeedbackRequest{
		MessageID: "msg-1",
		Feedback:  domain.FeedbackHelpful,
		Query:     "如何申請",
		Answer:    "<p>請洽分行。</p>",
	}
}

func TestFeedbackRecordValidation(t *testing.T) {
	svc := NewFeedbackService(&fakeFeedbackStore{}, zap.NewNop())

	tests := []struct {
		name    string
		mutate  func(*domain.FeedbackRequest)
		wantErr bool
	}{
		{"valid helpful", func(r *domain.FeedbackRequest) {}, false},
		{"valid not-helpful with reason", func(r *domain.FeedbackRequest) {
			r.Feedback = domain.FeedbackNotHelpful
			r.Reason = domain.ReasonContentUnclear
		}, false},
		{"not-helpful without reason", func(r *domain.FeedbackRequest) {
			r.Feedback = domain.FeedbackNotHelpful
		}, false},
		{"missing message id", func(r *domain.FeedbackRequest) { r.MessageID = "" }, true},
		{"missing query", func(r *domain.FeedbackRequest) { r.Query = "" }, true},
		{"missing answer", func(r *domain.FeedbackRequest) { r.Answer = "" }, true},
		{"unknown feedback value", func(r *domain.FeedbackRequest) { r.Feedback = "meh" }, true},
		{"unknown reason", func(r *domain.FeedbackRequest) {
			r.Feedback = domain.FeedbackNotHelpful
			r.Reason = "bad-weather"
		}, true},
		{"reason ignored for helpful", func(r *domain.FeedbackRequest) {
			r.Reason = "bad-weather"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validFeedbackRequest()
			tt.mutate(req)
			_, err := svc.Record(context.Background(), req)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidRequest) {
					t.Errorf("Record() error = %v, want ErrInvalidRequest", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Record() error = %v", err)
			}
		})
	}
}

func TestFeedbackRecordStampsTimestamp(t *testing.T) {
	store := &fakeFeedbackStore{}
	svc := NewFeedbackService(store, zap.NewNop())

	rec, err := svc.Record(context.Background(), validFeedbackRequest())
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if rec.Timestamp.IsZero() {
		t.Error("Record() left Timestamp zero")
	}
	if len(store.records) != 1 {
		t.Errorf("store has %d records, want 1", len(store.records))
	}
}

func TestFeedbackStats(t *testing.T) {
	store := &fakeFeedbackStore{}
	svc := NewFeedbackService(store, zap.NewNop())

	seed := []struct {
		feedback string
		reason   string
	}{
		{domain.FeedbackHelpful, ""},
		{domain.FeedbackHelpful, ""},
		{domain.FeedbackNotHelpful, domain.ReasonContentUnclear},
	}
	for i, s := range seed {
		req := validFeedbackRequest()
		req.MessageID = fmt.Sprintf("msg-%d", i)
		req.Feedback = s.feedback
		req.Reason = s.reason
		if _, err := svc.Record(context.Background(), req); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	stats, err := svc.Stats(context.Background(), domain.FeedbackFilter{}, domain.FilterEcho{})
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	if stats.Total != 3 || stats.Helpful != 2 || stats.NotHelpful != 1 {
		t.Errorf("Stats() totals = %d/%d/%d", stats.Total, stats.Helpful, stats.NotHelpful)
	}
	// 2/3 rounds to 67.
	if stats.HelpfulPercentage != 67 {
		t.Errorf("Stats() helpful percentage = %d, want 67", stats.HelpfulPercentage)
	}
	if stats.ReasonStats[domain.ReasonContentUnclear] != 1 {
		t.Errorf("Stats() reason count = %d, want 1", stats.ReasonStats[domain.ReasonContentUnclear])
	}
	// Every known reason appears, zeroes included.
	for _, reason := range domain.FeedbackReasons {
		if _, ok := stats.ReasonStats[reason]; !ok {
			t.Errorf("Stats() missing reason %s", reason)
		}
	}
	if len(stats.RecentFeedback) != 3 {
		t.Errorf("Stats() recent = %d records, want 3", len(stats.RecentFeedback))
	}
}

func TestFeedbackStatsEmpty(t *testing.T) {
	svc := NewFeedbackService(&fakeFeedbackStore{}, zap.NewNop())

	stats, err := svc.Stats(context.Background(), domain.FeedbackFilter{}, domain.FilterEcho{})
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.HelpfulPercentage != 0 {
		t.Errorf("Stats() percentage on empty = %d, want 0", stats.HelpfulPercentage)
	}
	if stats.RecentFeedback == nil {
		t.Error("Stats() RecentFeedback should be an empty slice, not nil")
	}
}

func TestFeedbackStatsCapsRecent(t *testing.T) {
	store := &fakeFeedbackStore{}
	svc := NewFeedbackService(store, zap.NewNop())

	for i := 0; i < maxRecent+10; i++ {
		req := validFeedbackRequest()
		req.MessageID = fmt.Sprintf("msg-%d", i)
		if _, err := svc.Record(context.Background(), req); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	stats, err := svc.Stats(context.Background(), domain.FeedbackFilter{}, domain.FilterEcho{})
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != maxRecent+10 {
		t.Errorf("Stats() total = %d", stats.Total)
	}
	if len(stats.RecentFeedback) != maxRecent {
		t.Errorf("Stats() recent = %d records, want %d", len(stats.RecentFeedback), maxRecent)
	}
	// Newest first.
	if stats.RecentFeedback[0].MessageID != fmt.Sprintf("msg-%d", maxRecent+9) {
		t.Errorf("Stats() recent[0] = %s", stats.RecentFeedback[0].MessageID)
	}
}

func TestFeedbackStatsFilterEcho(t *testing.T) {
	svc := NewFeedbackService(&fakeFeedbackStore{}, zap.NewNop())

	echo := domain.FilterEcho{Reason: "content-unclear", StartDate: "2025-01-01"}
	stats, err := svc.Stats(context.Background(), domain.FeedbackFilter{Reason: "content-unclear"}, echo)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Filters != echo {
		t.Errorf("Stats() filters = %+v, want %+v", stats.Filters, echo)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, total, want int
	}{
		{0, 0, 0},
		{1, 0, 0},
		{1, 2, 50},
		{2, 3, 67},
		{1, 3, 33},
		{3, 3, 100},
		{1, 8, 13},
	}
	for _, tt := range tests {
		if got := percentage(tt.part, tt.total); got != tt.want {
			t.Errorf("percentage(%d, %d) = %d, want %d", tt.part, tt.total, got, tt.want)
		}
	}
}
