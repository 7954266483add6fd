package repository

import (
	"time"

	"github.com/afubot/afu-assistant/internal/domain"
)

// AnalyticsRepository persists recommendation view/click events in sqlite
type AnalyticsRepository struct {
	db *DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Create appends an analytics event
func (r *AnalyticsRepository) Create(event *domain.AnalyticsEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO analytics_events (id, recommendation_text, recommendation_url, context, priority,
			user_query, session_id, action, message_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.RecommendationText, event.RecommendationURL, event.Context, event.Priority,
		event.UserQuery, event.SessionID, event.Action, event.MessageID, event.Timestamp)

	return err
}

// List returns events matching filter, newest first
func (r *AnalyticsRepository) List(filter domain.AnalyticsFilter) ([]domain.AnalyticsEvent, error) {
	query := `
		SELECT id, recommendation_text, recommendation_url, context, priority,
			user_query, session_id, action, message_id, created_at
		FROM analytics_events WHERE 1=1`
	var args []any

	if filter.Context != "" {
		query += ` AND context = ?`
		args = append(args, filter.Context)
	}
	if filter.Action != "" {
		query += ` AND action = ?`
		args = append(args, filter.Action)
	}
	if !filter.StartDate.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += ` AND created_at <= ?`
		args = append(args, filter.EndDate)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.AnalyticsEvent
	for rows.Next() {
		var event domain.AnalyticsEvent
		if err := rows.Scan(&event.ID, &event.RecommendationText, &event.RecommendationURL,
			&event.Context, &event.Priority, &event.UserQuery, &event.SessionID,
			&event.Action, &event.MessageID, &event.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
