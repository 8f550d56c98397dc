package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIssueAndResolve(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	ctx := context.Background()

	user := seedUser(t, db, "ana@example.com", "salt:hash")

	session, err := svc.Issue(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, session.Token, 64)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), session.ExpiresAt, time.Minute)

	resolved, err := svc.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Email, resolved.Email)
	assert.Empty(t, resolved.PasswordHash, "resolve must not expose the password hash")
}

func TestSessionResolveUnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)

	_, err := svc.Resolve(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSessionResolveExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	ctx := context.Background()

	user := seedUser(t, db, "bo@example.com", "salt:hash")
	session, err := svc.Issue(ctx, user.ID)
	require.NoError(t, err)

	// Push the expiry into the past; the row stays but must no longer resolve.
	past := time.Now().UTC().Add(-time.Minute).Format(time.RFC3339)
	_, err = db.Exec("UPDATE sessions SET expires_at = ? WHERE token = ?", past, session.Token)
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSessionRevoke(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	ctx := context.Background()

	user := seedUser(t, db, "cy@example.com", "salt:hash")
	session, err := svc.Issue(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, session.Token))

	_, err = svc.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Revoking again, or revoking a token that never existed, is not an error.
	assert.NoError(t, svc.Revoke(ctx, session.Token))
	assert.NoError(t, svc.Revoke(ctx, "nonexistent"))
}

func TestSessionDeleteExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	ctx := context.Background()

	user := seedUser(t, db, "dee@example.com", "salt:hash")

	live, err := svc.Issue(ctx, user.ID)
	require.NoError(t, err)
	stale, err := svc.Issue(ctx, user.ID)
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	_, err = db.Exec("UPDATE sessions SET expires_at = ? WHERE token = ?", past, stale.Token)
	require.NoError(t, err)

	deleted, err := svc.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = svc.Resolve(ctx, live.Token)
	assert.NoError(t, err)
}
