package service

import (
	"context"
	"testing"
	"time"

	"notevault-be/internal/apperrors"
	"notevault-be/internal/dto"
	"notevault-be/internal/pkg/token"
	"notevault-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (IAuthService, *token.Service) {
	tokenService := token.NewService([]byte("test-secret"), time.Hour)
	factory := memory.NewRepositoryFactory()
	return NewAuthService(factory, tokenService, nil, nil), tokenService
}

func TestRegister_IssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	svc, tokenService := newAuthService()
	ctx := context.Background()

	res, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "a@x.com", res.Email)

	gotID, err := tokenService.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Id, gotID)
}

func TestRegister_DuplicateIdentity(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()
	ctx := context.Background()

	first, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	// Same email, different username.
	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice2", Email: "a@x.com", Password: "secret2",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateIdentity)

	// Same username, different email.
	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice", Email: "a2@x.com", Password: "secret2",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateIdentity)

	// The first user is unaffected and can still log in.
	logged, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, first.Id, logged.Id)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "bob", Email: "b@x.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, errWrongPassword := svc.Login(ctx, &dto.LoginRequest{Email: "b@x.com", Password: "nope"})
	_, errUnknownEmail := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@x.com", Password: "hunter22"})

	assert.ErrorIs(t, errWrongPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, apperrors.ErrInvalidCredentials)
	// Identical error either way, nothing leaks about which part failed.
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "carol", Email: "c@x.com", Password: "pass123",
	})
	require.NoError(t, err)

	me, err := svc.CurrentUser(ctx, registered.Id)
	require.NoError(t, err)
	assert.Equal(t, registered.Id, me.Id)
	assert.Equal(t, "carol", me.Username)
	assert.Equal(t, "c@x.com", me.Email)
	assert.False(t, me.CreatedAt.IsZero())
}

func TestCurrentUser_UnknownId(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()

	_, err := svc.CurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
