// Package email delivers the verification mail over SMTP.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"net/url"
	"strings"
)

// Config carries the SMTP settings and the base URL used to build
// verification links.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string
}

// SMTPMailer implements ports.Mailer over a plain SMTP connection.
type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendVerificationEmail sends the verification link for the given token.
// The context bounds nothing here: net/smtp has no context support, so the
// mail queue's retry budget is the only cancellation mechanism.
func (m *SMTPMailer) SendVerificationEmail(_ context.Context, email, token string) error {
	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s",
		strings.TrimRight(m.cfg.BaseURL, "/"), url.QueryEscape(token))

	var b strings.Builder
	fmt.Fprintf(&b, "From: User Management App <%s>\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", email)
	b.WriteString("Subject: Verify Your Email Address\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("<h2>Welcome to User Management App</h2>\r\n")
	b.WriteString("<p>Please verify your email address by clicking the link below:</p>\r\n")
	fmt.Fprintf(&b, "<a href=\"%s\">Verify Email</a>\r\n", link)
	b.WriteString("<p>If you didn't create an account, please ignore this email.</p>\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email}, []byte(b.String())); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}
