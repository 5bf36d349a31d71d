package service

import (
	"testing"
	"time"

	"truthlink/message-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) inboxLen(t *testing.T, userID string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(model.Message{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestAppendRespectsAdmission(t *testing.T) {
	e := newTestEnv(t)

	alice := e.registerVerified(t, "alice", "alice@example.com", "password123")

	msg, err := e.messages.Append("alice", "hello")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, msg.UserID)
	assert.Equal(t, "hello", msg.Content)
	assert.EqualValues(t, 1, e.inboxLen(t, alice.ID))

	accepting, err := e.messages.SetAdmission(alice.ID, false)
	require.NoError(t, err)
	require.False(t, accepting)

	_, err = e.messages.Append("alice", "hi")
	assert.ErrorIs(t, err, ErrNotAccepting)
	assert.EqualValues(t, 1, e.inboxLen(t, alice.ID))
}

func TestAppendValidation(t *testing.T) {
	e := newTestEnv(t)

	alice := e.registerVerified(t, "alice", "alice@example.com", "password123")

	_, err := e.messages.Append("nobody", "hello")
	assert.ErrorIs(t, err, ErrRecipientNotFound)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err = e.messages.Append("alice", content)
		assert.ErrorIs(t, err, ErrEmptyContent)
	}

	assert.EqualValues(t, 0, e.inboxLen(t, alice.ID))
}

func TestAppendTrimsContent(t *testing.T) {
	e := newTestEnv(t)

	e.registerVerified(t, "alice", "alice@example.com", "password123")

	msg, err := e.messages.Append("alice", "  hello there  ")
	require.NoError(t, err)
	assert.Equal(t, "hello there", msg.Content)
}

func TestListNewestFirst(t *testing.T) {
	e := newTestEnv(t)

	alice := e.registerVerified(t, "alice", "alice@example.com", "password123")

	first, err := e.messages.Append("alice", "first")
	require.NoError(t, err)
	second, err := e.messages.Append("alice", "second")
	require.NoError(t, err)

	// Force distinct timestamps, sqlite stores them with limited precision.
	require.NoError(t, e.db.Model(model.Message{}).
		Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Minute)).Error)

	messages, err := e.messages.List(alice.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, second.ID, messages[0].ID)
	assert.Equal(t, first.ID, messages[1].ID)
}

func TestDeleteScopedToOwner(t *testing.T) {
	e := newTestEnv(t)

	alice := e.registerVerified(t, "alice", "alice@example.com", "password123")
	carol := e.registerVerified(t, "carol", "carol@example.com", "password123")

	msg, err := e.messages.Append("alice", "hello")
	require.NoError(t, err)

	// Someone else's inbox can't reach this message.
	assert.ErrorIs(t, e.messages.Delete(carol.ID, msg.ID), ErrMessageNotFound)
	assert.EqualValues(t, 1, e.inboxLen(t, alice.ID))

	require.NoError(t, e.messages.Delete(alice.ID, msg.ID))
	assert.EqualValues(t, 0, e.inboxLen(t, alice.ID))

	// Already gone.
	assert.ErrorIs(t, e.messages.Delete(alice.ID, msg.ID), ErrMessageNotFound)
}

func TestAdmissionFlag(t *testing.T) {
	e := newTestEnv(t)

	alice := e.registerVerified(t, "alice", "alice@example.com", "password123")

	accepting, err := e.messages.Admission(alice.ID)
	require.NoError(t, err)
	assert.True(t, accepting)

	accepting, err = e.messages.SetAdmission(alice.ID, false)
	require.NoError(t, err)
	assert.False(t, accepting)

	accepting, err = e.messages.Admission(alice.ID)
	require.NoError(t, err)
	assert.False(t, accepting)

	accepting, err = e.messages.SetAdmission(alice.ID, true)
	require.NoError(t, err)
	assert.True(t, accepting)

	_, err = e.messages.Admission("missing")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = e.messages.SetAdmission("missing", true)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

// An admission toggle must not clobber a reset token written concurrently,
// field updates are scoped to the columns they own.
func TestFieldScopedUpdatesDontClobber(t *testing.T) {
	e := newTestEnv(t)

	alice := e.registerVerified(t, "alice", "alice@example.com", "password123")

	require.NoError(t, e.reset.Request("alice"))

	_, err := e.messages.SetAdmission(alice.ID, false)
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, e.db.Where("id = ?", alice.ID).First(&stored).Error)
	assert.NotNil(t, stored.ResetToken)
	assert.False(t, stored.AcceptingMessages)
}
