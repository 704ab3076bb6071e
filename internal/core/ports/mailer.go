package ports

import "context"

// VerificationMail is a queued request to deliver a verification email.
type VerificationMail struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// Mailer sends a single verification email.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, token string) error
}

// MailDispatcher accepts mail jobs for asynchronous delivery. Enqueue must
// not block the caller beyond queue capacity; delivery failures never reach
// the enqueuer.
type MailDispatcher interface {
	Enqueue(mail VerificationMail)
}
