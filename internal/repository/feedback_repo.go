package repository

import (
	"database/sql"
	"time"

	"github.com/afubot/afu-assistant/internal/domain"
)

// FeedbackRepository persists feedback records in sqlite
type FeedbackRepository struct {
	db *DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create appends a feedback record
func (r *FeedbackRepository) Create(rec *domain.FeedbackRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO feedback (message_id, feedback, reason, custom_reason, query, answer, session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.MessageID, rec.Feedback, rec.Reason, rec.CustomReason,
		rec.Query, rec.Answer, rec.SessionID, rec.Timestamp)

	return err
}

// List returns records matching filter, newest first
func (r *FeedbackRepository) List(filter domain.FeedbackFilter) ([]domain.FeedbackRecord, error) {
	query := `
		SELECT message_id, feedback, reason, custom_reason, query, answer, session_id, created_at
		FROM feedback WHERE 1=1`
	var args []any

	if filter.Reason != "" {
		query += ` AND reason = ?`
		args = append(args, filter.Reason)
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

	var records []domain.FeedbackRecord
	for rows.Next() {
		var rec domain.FeedbackRecord
		var reason, customReason, sessionID sql.NullString

		if err := rows.Scan(&rec.MessageID, &rec.Feedback, &reason, &customReason,
			&rec.Query, &rec.Answer, &sessionID, &rec.Timestamp); err != nil {
			return nil, err
		}

		rec.Reason = reason.String
		rec.CustomReason = customReason.String
		rec.SessionID = sessionID.String
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Count returns the total number of feedback records
func (r *FeedbackRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM feedback`).Scan(&count)
	return count, err
}
