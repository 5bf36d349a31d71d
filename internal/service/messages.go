package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"truthlink/message-api/internal/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// Messages is the admission gate and inbox. Anonymous senders append by
// username; the admission flag is checked in the same transaction as the
// insert. Owners list and delete their own rows only.
type Messages struct {
	DB *gorm.DB
}

// Admission returns whether the account currently accepts new messages.
func (s *Messages) Admission(userID string) (bool, error) {
	var accepting bool

	err := s.DB.Model(model.User{}).
		Select("accepting_messages").
		Where("id = ?", userID).
		First(&accepting).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrAccountNotFound
		}

		return false, fmt.Errorf("failed to read admission flag, %w", err)
	}

	return accepting, nil
}

// SetAdmission overwrites the flag and returns the new value. Both states are
// always reachable from either.
func (s *Messages) SetAdmission(userID string, desired bool) (bool, error) {
	res := s.DB.Model(model.User{}).
		Where("id = ?", userID).
		Update("accepting_messages", desired)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update admission flag, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return false, ErrAccountNotFound
	}

	return desired, nil
}

// Append adds an anonymous message to the target's inbox. The admission check
// and the insert run in one transaction so a flag flip can't slip between
// them. Nothing about the sender is recorded.
func (s *Messages) Append(targetUsername, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	messageID, err := gonanoid.Generate(idCharset, idLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate message ID, %w", err)
	}

	msg := &model.Message{
		ID:        messageID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var user model.User

		err := tx.
			Select("id", "accepting_messages").
			Where("username = ?", targetUsername).
			First(&user).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipientNotFound
			}

			return fmt.Errorf("failed to look up recipient, %w", err)
		}

		if !user.AcceptingMessages {
			return ErrNotAccepting
		}

		msg.UserID = user.ID

		return tx.Create(msg).Error
	})
	if err != nil {
		return nil, err
	}

	return msg, nil
}

// List returns the owner's inbox, newest first.
func (s *Messages) List(ownerID string) ([]model.Message, error) {
	var messages []model.Message

	err := s.DB.
		Where("user_id = ?", ownerID).
		Order("created_at desc").
		Find(&messages).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages, %w", err)
	}

	return messages, nil
}

// Delete removes one message from the owner's inbox. The delete is scoped by
// owner ID, so a foreign message ID fails the same way as a missing one.
func (s *Messages) Delete(ownerID, messageID string) error {
	res := s.DB.
		Where("id = ? AND user_id = ?", messageID, ownerID).
		Delete(&model.Message{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete message, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}
