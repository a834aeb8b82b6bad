package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/expense-service/internal/entity/user"
	"max.ks1230/expense-service/internal/model/storage"
)

type testConfig struct{}

func (testConfig) SessionTTLHours() int64 { return 1 }
func (testConfig) BcryptCost() int        { return 4 }

func Test_OnRegisterAndLogin_ShouldAuthenticateToOwner(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewInMemStorage(), testConfig{})

	acc, err := svc.Register(ctx, "  alice  ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.Username)
	assert.NotZero(t, acc.ID)

	token, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ownerID, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, ownerID)
}

func Test_OnWrongPassword_ShouldRejectLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewInMemStorage(), testConfig{})

	_, err := svc.Register(ctx, "bob", "correct horse")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "bob", "battery staple")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func Test_OnUnknownOrEmptyToken_ShouldRejectAuthentication(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewInMemStorage(), testConfig{})

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Authenticate(ctx, "deadbeef")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func Test_OnExpiredSession_ShouldRejectAuthentication(t *testing.T) {
	ctx := context.Background()
	db := storage.NewInMemStorage()
	svc := NewService(db, testConfig{})

	require.NoError(t, db.InsertSession(ctx, user.Session{
		Token:     "stale",
		UserID:    1,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))

	_, err := svc.Authenticate(ctx, "stale")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func Test_OnLogin_ShouldIssueDistinctTokens(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewInMemStorage(), testConfig{})

	_, err := svc.Register(ctx, "carol", "correct horse")
	require.NoError(t, err)

	first, err := svc.Login(ctx, "carol", "correct horse")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "carol", "correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
