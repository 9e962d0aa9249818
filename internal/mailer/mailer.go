// Package mailer delivers transactional and broadcast email. The Client
// interface abstracts the transport; production uses AWS SES, development
// falls back to a log-only client when no credentials are configured.
package mailer

import "context"

// Email is a single outbound message.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Client sends email through some transport.
type Client interface {
	Send(ctx context.Context, email Email) error
}
