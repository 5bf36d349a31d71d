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

const verifyCodeDigits = 6

// Verification drives the unverified → verified transition. An account gets a
// short numeric code by mail; redeeming it before expiry flips the account to
// verified, which is terminal.
type Verification struct {
	DB      *gorm.DB
	Mail    MailSender
	CodeTTL time.Duration
}

// Issue mints a fresh code for the account, persists it with its expiry and
// mails it out. A new code supersedes whatever was stored before. The code is
// persisted before the send, so an ErrMailDelivery result still means the
// code exists and a later resend can replace it.
func (s *Verification) Issue(user *model.User) error {
	code, err := security.MakeVerifyCode(verifyCodeDigits)
	if err != nil {
		return fmt.Errorf("failed to generate verification code, %w", err)
	}

	expiry := time.Now().Add(s.CodeTTL)

	err = s.DB.Model(model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"verify_code":        code,
			"verify_code_expiry": expiry,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to store verification code, %w", err)
	}

	if err := s.Mail.SendVerifyCode(user.Email, user.Username, code); err != nil {
		zap.L().Error("Failed to send verification mail",
			zap.Error(err),
			zap.String("userID", user.ID))

		return ErrMailDelivery
	}

	return nil
}

// Resend issues a new code for an existing unverified account.
func (s *Verification) Resend(identifier string) error {
	var user model.User

	err := s.DB.
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}

		return fmt.Errorf("failed to look up account, %w", err)
	}

	if user.Verified {
		return ErrAlreadyVerified
	}

	return s.Issue(&user)
}

// Redeem checks the submitted code and marks the account verified. The flip
// itself is a conditional update keyed on the code still being valid, so two
// concurrent redemptions can't both succeed.
func (s *Verification) Redeem(username, submittedCode string) error {
	var user model.User

	err := s.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}

		return fmt.Errorf("failed to look up account, %w", err)
	}

	if user.Verified {
		return ErrAlreadyVerified
	}

	now := time.Now()

	if !user.VerifyCodeExpiry.After(now) {
		return ErrCodeExpired
	}

	if user.VerifyCode == "" || submittedCode != user.VerifyCode {
		return ErrCodeMismatch
	}

	res := s.DB.Model(model.User{}).
		Where("id = ? AND verified = ? AND verify_code = ? AND verify_code_expiry > ?",
			user.ID, false, submittedCode, now).
		Update("verified", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark account verified, %w", res.Error)
	}

	// Zero rows means someone else won the race or the code rotated
	// underneath us. Either way this submission no longer matches.
	if res.RowsAffected == 0 {
		return ErrAlreadyVerified
	}

	return nil
}
