package mailer

import (
	"context"
)

// Message is a rendered email ready to be sent.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer sends emails. Implementations must be safe for concurrent use;
// the registration flow and the reminder worker both send through one
// instance.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}
