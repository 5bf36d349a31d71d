package service

import (
	"errors"
	"fmt"
	"time"

	"truthlink/message-api/internal/model"
	"truthlink/message-api/pkg/security"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Reset handles forgotten passwords: a single-use opaque token, mailed as a
// link, that replaces the stored hash exactly once before its expiry.
type Reset struct {
	DB       *gorm.DB
	Argon    *security.ArgonHash
	Mail     MailSender
	TokenTTL time.Duration
	ResetURL string
}

// Request mints a reset token for a verified account and mails the reset
// link. A new request supersedes any token issued earlier. The token is
// persisted before the send so a delivery failure doesn't lose it.
func (s *Reset) Request(identifier string) error {
	var user model.User

	err := s.DB.
		Where("(username = ? OR email = ?) AND verified = ?", identifier, identifier, true).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}

		return fmt.Errorf("failed to look up account, %w", err)
	}

	token, err := security.MakeResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token, %w", err)
	}

	expiry := time.Now().Add(s.TokenTTL)

	err = s.DB.Model(model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to store reset token, %w", err)
	}

	resetURL := s.ResetURL + "?token=" + token

	if err := s.Mail.SendPasswordReset(user.Email, user.Username, resetURL); err != nil {
		zap.L().Error("Failed to send password reset mail",
			zap.Error(err),
			zap.String("userID", user.ID))

		return ErrMailDelivery
	}

	return nil
}

// Redeem swaps in the new password and burns the token. Replacement and burn
// are one conditional update keyed on the token still being live, so the same
// token can never satisfy the lookup twice.
func (s *Reset) Redeem(token, newRawPassword string) error {
	hash, err := s.Argon.GenerateFromPassword(newRawPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password, %w", err)
	}

	res := s.DB.Model(model.User{}).
		Where("reset_token = ? AND reset_token_expiry > ?", token, time.Now()).
		Updates(map[string]any{
			"password_hash":      hash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to reset password, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrInvalidResetToken
	}

	return nil
}
