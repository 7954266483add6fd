package repository

import (
	"database/sql"

	"github.com/afubot/afu-assistant/internal/session"
)

// SessionRepository is the sqlite fallback tier for admin sessions, so a
// restart does not log every admin out. It implements session.Store.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Name() string { return "sqlite" }

// Available probes the connection; a broken database disables this tier
// instead of failing lookups.
func (r *SessionRepository) Available() bool {
	return r.db.Ping() == nil
}

// Get retrieves a session record by token
func (r *SessionRepository) Get(token string) (*session.Record, error) {
	rec := &session.Record{}
	err := r.db.QueryRow(`
		SELECT token, login_time FROM admin_sessions WHERE token = ?
	`, token).Scan(&rec.Token, &rec.LoginTime)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Put inserts or refreshes a session record
func (r *SessionRepository) Put(rec *session.Record) error {
	_, err := r.db.Exec(`
		INSERT INTO admin_sessions (token, login_time) VALUES (?, ?)
		ON CONFLICT(token) DO UPDATE SET login_time = excluded.login_time
	`, rec.Token, rec.LoginTime)
	return err
}

// Delete removes a session record
func (r *SessionRepository) Delete(token string) error {
	_, err := r.db.Exec(`DELETE FROM admin_sessions WHERE token = ?`, token)
	return err
}
