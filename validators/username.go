package validators

import (
	"errors"
	"regexp"
)

var (
	ErrUsernameEmpty    = errors.New("no username provided")
	ErrUsernameTooShort = errors.New("username must be at least 2 characters long")
	ErrUsernameTooLong  = errors.New("username can't be longer than 20 characters")
	ErrUsernameInvalid  = errors.New("username may only contain letters, digits and underscores")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if len(u) < 2 {
		return ErrUsernameTooShort
	}

	if len(u) > 20 {
		return ErrUsernameTooLong
	}

	if !usernamePattern.MatchString(u) {
		return ErrUsernameInvalid
	}

	return nil
}
