package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, NewEventService(db))
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "a@x.com", "555-0100", "sup3rsecret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.PasswordHash)

	authed, err := svc.Authenticate(ctx, "a@x.com", "sup3rsecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.Empty(t, authed.PasswordHash)
}

func TestUserAuthenticateFailuresIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, NewEventService(db))
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "a@x.com", "", "sup3rsecret")
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate(ctx, "a@x.com", "wrong")
	_, unknownEmail := svc.Authenticate(ctx, "nobody@x.com", "sup3rsecret")

	assert.ErrorIs(t, wrongPassword, ErrUnauthorized)
	assert.ErrorIs(t, unknownEmail, ErrUnauthorized)
	assert.Equal(t, wrongPassword, unknownEmail, "failure causes must not be distinguishable")
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, NewEventService(db))
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "a@x.com", "", "sup3rsecret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Ana", "a@x.com", "", "d1fferent")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, NewEventService(db))
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "a@x.com", "", "oldpassword")
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, user.ID, "wrongcurrent", "newpassword1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "oldpassword", "newpassword1"))

	_, err = svc.Authenticate(ctx, "a@x.com", "oldpassword")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Authenticate(ctx, "a@x.com", "newpassword1")
	assert.NoError(t, err)
}

func TestUserUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, NewEventService(db))
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "a@x.com", "", "sup3rsecret")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, "Ana Maria", "555-0199")
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, user.Email, updated.Email)
}
