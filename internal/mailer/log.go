package mailer

import (
	"context"

	"github.com/ignite/newsletter/internal/pkg/logger"
)

// LogClient logs sends instead of delivering them. Used in development when
// no SES credentials are configured, and in tests.
type LogClient struct{}

// NewLogClient creates a log-only mail client.
func NewLogClient() *LogClient {
	return &LogClient{}
}

// Send logs the email and reports success.
func (c *LogClient) Send(_ context.Context, email Email) error {
	logger.Info("email send (log-only)", "recipient", email.To, "subject", email.Subject)
	return nil
}
