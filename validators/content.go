package validators

import (
	"errors"
	"strings"
)

var (
	ErrContentEmpty   = errors.New("message content can't be empty")
	ErrContentTooLong = errors.New("message content exceeds the maximum length")
)

func ContentValidator(content string, maxLength int) error {
	if strings.TrimSpace(content) == "" {
		return ErrContentEmpty
	}

	if len(content) > maxLength {
		return ErrContentTooLong
	}

	return nil
}
