package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nvalverde/tourvia-be/internal/auth"
	"github.com/nvalverde/tourvia-be/internal/models"
)

// SessionTTL is the absolute lifetime of a session from issuance.
const SessionTTL = 7 * 24 * time.Hour

// SessionServiceProvider defines the interface for session services.
type SessionServiceProvider interface {
	Issue(ctx context.Context, userID string) (models.Session, error)
	Resolve(ctx context.Context, token string) (models.User, error)
	Revoke(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionService issues, resolves and revokes opaque session tokens
// backed by the sessions table. Expiry is enforced lazily at resolve
// time; stale rows are harmless until swept.
type SessionService struct {
	db *sql.DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *sql.DB) *SessionService {
	return &SessionService{db: db}
}

// Issue generates a fresh token for the user and persists it with a
// 7-day expiry. A token collision (negligible at 32 bytes of entropy)
// surfaces as a persistence failure; callers may retry.
func (s *SessionService) Issue(ctx context.Context, userID string) (models.Session, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return models.Session{}, err
	}

	now := time.Now().UTC()
	session := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)",
		session.Token, session.UserID,
		session.ExpiresAt.Format(time.RFC3339), session.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: inserting session: %v", ErrPersistence, err)
	}
	return session, nil
}

// Resolve looks up an unexpired session joined to its owning user.
// It is a pure read: resolving does not extend the session's lifetime.
func (s *SessionService) Resolve(ctx context.Context, token string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT users.id, users.name, users.email, users.phone, users.created_at
		FROM sessions JOIN users ON sessions.user_id = users.id
		WHERE sessions.token = ? AND sessions.expires_at > ?
		LIMIT 1`,
		token, time.Now().UTC().Format(time.RFC3339),
	)

	var user models.User
	var phone sql.NullString
	var createdAt string
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &phone, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, err
	}
	user.Phone = phone.String
	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return user, nil
}

// Revoke deletes the session row. Revoking an absent token is not an
// error.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return fmt.Errorf("%w: deleting session: %v", ErrPersistence, err)
	}
	return nil
}

// DeleteExpired removes sessions that expired at or before now. Storage
// hygiene only: Resolve never returns expired rows regardless of whether
// this has run.
func (s *SessionService) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at <= ?", now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("%w: sweeping sessions: %v", ErrPersistence, err)
	}
	return res.RowsAffected()
}
