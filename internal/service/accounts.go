package service

import (
	"errors"
	"fmt"

	"truthlink/message-api/internal/model"
	"truthlink/message-api/pkg/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const idLength = 16

// Accounts owns the account records: creation with hashed credentials and
// lookups by username or email. Mutable security fields are only ever touched
// through field-scoped updates so concurrent writers can't clobber each other.
type Accounts struct {
	DB    *gorm.DB
	Argon *security.ArgonHash
}

// Register creates a new unverified account. Usernames and emails are unique;
// a clash on either fails with ErrDuplicateIdentity.
func (a *Accounts) Register(username, email, rawPassword string) (*model.User, error) {
	var found bool

	r := a.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("username = ? OR email = ?", username, email).
		Find(&found)
	if r.Error != nil {
		return nil, fmt.Errorf("failed to check for existing account, %w", r.Error)
	}

	if found {
		return nil, ErrDuplicateIdentity
	}

	hash, err := a.Argon.GenerateFromPassword(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	userID, err := gonanoid.Generate(idCharset, idLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID, %w", err)
	}

	user := &model.User{
		ID:                userID,
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		AcceptingMessages: true,
	}

	if err := a.DB.Create(user).Error; err != nil {
		// Two registrations racing past the pre-check resolve at the
		// unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}

		return nil, fmt.Errorf("failed to create account, %w", err)
	}

	return user, nil
}

// FindByIdentifier looks an account up by username or email.
func (a *Accounts) FindByIdentifier(identifier string) (*model.User, error) {
	var user model.User

	err := a.DB.
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}

		return nil, fmt.Errorf("failed to look up account, %w", err)
	}

	return &user, nil
}

// FindByID returns the account with the given ID.
func (a *Accounts) FindByID(id string) (*model.User, error) {
	var user model.User

	err := a.DB.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}

		return nil, fmt.Errorf("failed to look up account, %w", err)
	}

	return &user, nil
}
