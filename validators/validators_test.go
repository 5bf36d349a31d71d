package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernameValidator(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     error
	}{
		{"empty", "", ErrUsernameEmpty},
		{"too short", "a", ErrUsernameTooShort},
		{"too long", strings.Repeat("a", 21), ErrUsernameTooLong},
		{"bad characters", "al ice!", ErrUsernameInvalid},
		{"valid", "alice_42", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, UsernameValidator(tt.username), tt.want)
		})
	}
}

func TestEmailValidator(t *testing.T) {
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	assert.NoError(t, EmailValidator("alice@example.com"))
}

func TestPasswordValidator(t *testing.T) {
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("a", 256)), ErrPasswordTooLong)
	assert.NoError(t, PasswordValidator("password123"))
}

func TestContentValidator(t *testing.T) {
	assert.ErrorIs(t, ContentValidator("", 300), ErrContentEmpty)
	assert.ErrorIs(t, ContentValidator("   \n", 300), ErrContentEmpty)
	assert.ErrorIs(t, ContentValidator(strings.Repeat("a", 301), 300), ErrContentTooLong)
	assert.NoError(t, ContentValidator("hello", 300))
}
