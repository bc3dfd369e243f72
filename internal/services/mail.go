package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gomail/gomail"
)

type Mailer interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends plain-text mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	// sender replaces the dialer when set.
	sender gomail.Sender
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	if from == "" {
		from = username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendMail(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return errors.New("mail: recipient required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	var err error
	if m.sender != nil {
		err = gomail.Send(m.sender, msg)
	} else {
		err = m.dialer.DialAndSend(msg)
	}
	if err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	return nil
}
