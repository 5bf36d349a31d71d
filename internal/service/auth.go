package service

import (
	"errors"
	"fmt"
	"time"

	"truthlink/message-api/internal/model"
	"truthlink/message-api/pkg/security"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// LoginRequest is the typed credential pair accepted at the auth boundary.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Auth validates credentials and issues the signed session claim. Only
// verified accounts may log in; every session requires a fresh authentication.
type Auth struct {
	DB         *gorm.DB
	Argon      *security.ArgonHash
	SignKey    []byte
	SessionTTL time.Duration
}

// Authenticate checks the identifier+password pair and returns a signed HS256
// token carrying the session claim alongside the matched account.
func (s *Auth) Authenticate(req LoginRequest) (string, *model.User, error) {
	var user model.User

	err := s.DB.
		Where("username = ? OR email = ?", req.Identifier, req.Identifier).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrAccountNotFound
		}

		return "", nil, fmt.Errorf("failed to look up account, %w", err)
	}

	if !user.Verified {
		return "", nil, ErrNotVerified
	}

	ok, err := s.Argon.VerifyPasswd(req.Password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return "", nil, ErrInvalidPassword
	}

	token, err := s.makeToken(&user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token, %w", err)
	}

	return token, &user, nil
}

func (s *Auth) makeToken(u *model.User) (string, error) {
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":            u.ID,
		"username":           u.Username,
		"verified":           u.Verified,
		"accepting_messages": u.AcceptingMessages,
		"iat":                now.Unix(),
		"exp":                now.Add(s.SessionTTL).Unix(),
	})

	return t.SignedString(s.SignKey)
}
