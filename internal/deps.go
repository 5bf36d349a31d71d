package internal

import (
	"truthlink/message-api/internal/service"
	"truthlink/message-api/pkg/security"

	"gorm.io/gorm"
)

// Deps bundles everything the handlers need. Built once in app.NewRouter and
// passed explicitly, so tests can assemble their own against a throwaway DB.
type Deps struct {
	DB    *gorm.DB
	Argon *security.ArgonHash
	Mail  service.MailSender

	Accounts     *service.Accounts
	Verification *service.Verification
	Reset        *service.Reset
	Auth         *service.Auth
	Messages     *service.Messages
}
