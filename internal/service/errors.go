package service

import "errors"

// Sentinel errors returned by the core services. Handlers match on these with
// errors.Is to pick a status class; anything else is treated as an internal
// store fault and never shown to the client.
var (
	// ErrDuplicateIdentity indicates the username or email is already taken.
	ErrDuplicateIdentity = errors.New("username or email already registered")

	// ErrAccountNotFound indicates no account matches the given identifier.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNotVerified indicates the account exists but never redeemed its code.
	ErrNotVerified = errors.New("account not verified")

	// ErrInvalidPassword indicates the password check failed.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrAlreadyVerified indicates a verification was attempted on a verified account.
	ErrAlreadyVerified = errors.New("account already verified")

	// ErrCodeExpired indicates the verification code is past its expiry.
	ErrCodeExpired = errors.New("verification code expired")

	// ErrCodeMismatch indicates the submitted code doesn't match the stored one.
	ErrCodeMismatch = errors.New("verification code mismatch")

	// ErrInvalidResetToken indicates no account holds this reset token unexpired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrRecipientNotFound indicates the message target username doesn't exist.
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrNotAccepting indicates the recipient has messages switched off.
	ErrNotAccepting = errors.New("recipient is not accepting messages")

	// ErrEmptyContent indicates the message body was blank after trimming.
	ErrEmptyContent = errors.New("message content is empty")

	// ErrMessageNotFound indicates no such message in the caller's inbox.
	ErrMessageNotFound = errors.New("message not found")

	// ErrMailDelivery indicates a code or token was persisted but the mail
	// carrying it could not be sent. The caller may retry sending without
	// minting a new value.
	ErrMailDelivery = errors.New("mail could not be delivered")
)
