package service

import (
	"strings"
	"testing"
	"time"

	"truthlink/message-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetRequest(t *testing.T) {
	e := newTestEnv(t)

	e.registerVerified(t, "alice", "alice@example.com", "password123")

	require.NoError(t, e.reset.Request("alice"))
	require.Len(t, e.mail.resetURLs, 1)

	var stored model.User
	require.NoError(t, e.db.Where("username = ?", "alice").First(&stored).Error)
	require.NotNil(t, stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpiry)

	assert.True(t, strings.HasSuffix(e.mail.resetURLs[0], "?token="+*stored.ResetToken))
	assert.True(t, stored.ResetTokenExpiry.After(time.Now()))
}

func TestResetRequestErrors(t *testing.T) {
	e := newTestEnv(t)

	assert.ErrorIs(t, e.reset.Request("nobody"), ErrAccountNotFound)

	// Unverified accounts can't request a reset.
	_, err := e.accounts.Register("bob", "bob@example.com", "password123")
	require.NoError(t, err)
	assert.ErrorIs(t, e.reset.Request("bob"), ErrAccountNotFound)
}

func TestResetRequestMailFailureKeepsToken(t *testing.T) {
	e := newTestEnv(t)

	e.registerVerified(t, "alice", "alice@example.com", "password123")

	e.mail.failNext = true
	assert.ErrorIs(t, e.reset.Request("alice"), ErrMailDelivery)

	var stored model.User
	require.NoError(t, e.db.Where("username = ?", "alice").First(&stored).Error)
	require.NotNil(t, stored.ResetToken)

	// The persisted token is still redeemable.
	require.NoError(t, e.reset.Redeem(*stored.ResetToken, "newpass123"))
}

func TestResetRedeemIsSingleUse(t *testing.T) {
	e := newTestEnv(t)

	e.registerVerified(t, "alice", "alice@example.com", "password123")
	require.NoError(t, e.reset.Request("alice"))

	var stored model.User
	require.NoError(t, e.db.Where("username = ?", "alice").First(&stored).Error)
	token := *stored.ResetToken

	// Old password works before the redemption, new one doesn't.
	_, _, err := e.auth.Authenticate(LoginRequest{Identifier: "alice", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, e.reset.Redeem(token, "newpass123"))

	// Same token a second time must fail, regardless of timing.
	assert.ErrorIs(t, e.reset.Redeem(token, "evilpass123"), ErrInvalidResetToken)

	_, _, err = e.auth.Authenticate(LoginRequest{Identifier: "alice", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, _, err = e.auth.Authenticate(LoginRequest{Identifier: "alice", Password: "newpass123"})
	assert.NoError(t, err)

	stored = model.User{}
	require.NoError(t, e.db.Where("username = ?", "alice").First(&stored).Error)
	assert.Nil(t, stored.ResetToken)
	assert.Nil(t, stored.ResetTokenExpiry)
}

func TestResetRedeemExpiredToken(t *testing.T) {
	e := newTestEnv(t)

	e.registerVerified(t, "alice", "alice@example.com", "password123")
	require.NoError(t, e.reset.Request("alice"))

	var stored model.User
	require.NoError(t, e.db.Where("username = ?", "alice").First(&stored).Error)
	token := *stored.ResetToken

	require.NoError(t, e.db.Model(model.User{}).
		Where("username = ?", "alice").
		Update("reset_token_expiry", time.Now().Add(-time.Second)).Error)

	assert.ErrorIs(t, e.reset.Redeem(token, "newpass123"), ErrInvalidResetToken)
}

func TestResetRequestSupersedesToken(t *testing.T) {
	e := newTestEnv(t)

	e.registerVerified(t, "alice", "alice@example.com", "password123")

	require.NoError(t, e.reset.Request("alice"))

	var stored model.User
	require.NoError(t, e.db.Where("username = ?", "alice").First(&stored).Error)
	oldToken := *stored.ResetToken

	require.NoError(t, e.reset.Request("alice"))

	require.NoError(t, e.db.Where("username = ?", "alice").First(&stored).Error)
	newToken := *stored.ResetToken

	require.NotEqual(t, oldToken, newToken)
	assert.ErrorIs(t, e.reset.Redeem(oldToken, "newpass123"), ErrInvalidResetToken)
	assert.NoError(t, e.reset.Redeem(newToken, "newpass123"))
}
