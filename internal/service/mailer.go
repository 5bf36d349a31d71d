// Package service holds the account, verification, reset and message
// state machines plus the bits they need that aren't HTTP.
package service

import (
	"fmt"

	v "github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// MailSender delivers rendered account mails. The SMTP implementation below
// is swapped for a stub in tests.
type MailSender interface {
	SendVerifyCode(toAddr, username, code string) error
	SendPasswordReset(toAddr, username, resetURL string) error
}

// SMTPMailer sends through the SMTP relay configured under mail.* keys.
type SMTPMailer struct{}

func (SMTPMailer) SendVerifyCode(toAddr, username, code string) error {
	body := fmt.Sprintf(
		"Hi %v,<br><br>Your verification code is <b>%v</b>.<br>Enter it on the verify page to activate your account.",
		username, code)

	return dialAndSend(toAddr, "Your verification code", body)
}

func (SMTPMailer) SendPasswordReset(toAddr, username, resetURL string) error {
	body := fmt.Sprintf(
		"Hi %v,<br><br>Click <a href='%v'>here</a> to reset your password.<br>The link expires in %v.",
		username, resetURL, v.GetDuration("reset.token_ttl"))

	return dialAndSend(toAddr, "Reset your password", body)
}

func dialAndSend(toAddr, subject, body string) error {
	from := v.GetString("mail.sender")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", toAddr)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		v.GetString("mail.host"),
		v.GetInt("mail.port"),
		from,
		v.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}
