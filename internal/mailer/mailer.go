// Package mailer dispatches the verification email. Drivers cover an SMTP
// relay, an HTTP mail provider behind a circuit breaker, and a log-only mode
// for development.
package mailer

import "context"

// Driver names accepted by configuration.
const (
	DriverLog  = "log"
	DriverSMTP = "smtp"
	DriverAPI  = "api"
)

// Message is a single outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Mailer sends email. A nil error means the message was accepted by the
// transport; any error means it was not delivered and the caller may need to
// compensate.
type Mailer interface {
	// Name identifies the driver in logs and errors.
	Name() string

	// Send dispatches the message.
	Send(ctx context.Context, msg *Message) error
}
