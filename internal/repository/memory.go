package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/afubot/afu-assistant/internal/domain"
)

// In-memory repositories mirror the sqlite ones with process-lifetime
// storage: append-only slices scanned per query. Used by tests and by the
// "memory" database driver.

// MemoryFeedbackRepository stores feedback records in memory
type MemoryFeedbackRepository struct {
	mu      sync.RWMutex
	records []domain.FeedbackRecord
}

// NewMemoryFeedbackRepository creates an empty in-memory feedback store
func NewMemoryFeedbackRepository() *MemoryFeedbackRepository {
	return &MemoryFeedbackRepository{}
}

// Create appends a feedback record
func (r *MemoryFeedbackRepository) Create(rec *domain.FeedbackRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *rec)
	return nil
}

// List returns records matching filter, newest first
func (r *MemoryFeedbackRepository) List(filter domain.FeedbackFilter) ([]domain.FeedbackRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.FeedbackRecord
	for _, rec := range r.records {
		if filter.Reason != "" && rec.Reason != filter.Reason {
			continue
		}
		if !filter.StartDate.IsZero() && rec.Timestamp.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && rec.Timestamp.After(filter.EndDate) {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// Count returns the total number of feedback records
func (r *MemoryFeedbackRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

// MemoryAnalyticsRepository stores analytics events in memory
type MemoryAnalyticsRepository struct {
	mu     sync.RWMutex
	events []domain.AnalyticsEvent
}

// NewMemoryAnalyticsRepository creates an empty in-memory analytics store
func NewMemoryAnalyticsRepository() *MemoryAnalyticsRepository {
	return &MemoryAnalyticsRepository{}
}

// Create appends an analytics event
func (r *MemoryAnalyticsRepository) Create(event *domain.AnalyticsEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

// List returns events matching filter, newest first
func (r *MemoryAnalyticsRepository) List(filter domain.AnalyticsFilter) ([]domain.AnalyticsEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.AnalyticsEvent
	for _, event := range r.events {
		if filter.Context != "" && event.Context != filter.Context {
			continue
		}
		if filter.Action != "" && event.Action != filter.Action {
			continue
		}
		if !filter.StartDate.IsZero() && event.Timestamp.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && event.Timestamp.After(filter.EndDate) {
			continue
		}
		out = append(out, event)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}
