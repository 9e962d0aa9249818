package newsletter

import (
	"context"
	"fmt"

	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/mailer"
	"github.com/ignite/newsletter/internal/pkg/logger"
)

// Service implements broadcast business logic. It is safe for concurrent use.
type Service struct {
	repo Repository
	mail mailer.Client
}

// NewService creates a newsletter service backed by the given repository and
// mail transport.
func NewService(repo Repository, mail mailer.Client) *Service {
	return &Service{repo: repo, mail: mail}
}

// Publish delivers an issue to all confirmed subscribers. Subscribers whose
// stored address no longer passes validation are skipped with a warning.
// The first transport failure aborts the remaining sends and is returned to
// the caller.
func (s *Service) Publish(ctx context.Context, issue domain.Issue) error {
	subscribers, err := s.repo.ListConfirmed(ctx)
	if err != nil {
		return fmt.Errorf("list confirmed subscribers: %w", err)
	}

	sent := 0
	for _, sub := range subscribers {
		email, err := domain.ParseSubscriberEmail(sub.Email)
		if err != nil {
			logger.Warn("skipping subscriber with invalid stored email",
				"subscriber_id", sub.ID.String(), "error", err)
			continue
		}

		msg := mailer.Email{
			To:      email.String(),
			Subject: issue.Title,
			HTML:    issue.HTML,
			Text:    issue.Text,
		}
		if err := s.mail.Send(ctx, msg); err != nil {
			return fmt.Errorf("%w: recipient %s: %v", ErrDelivery, logger.RedactEmail(email.String()), err)
		}
		sent++
	}

	logger.Info("issue published", "title", issue.Title, "delivered", sent, "total", len(subscribers))
	return nil
}
