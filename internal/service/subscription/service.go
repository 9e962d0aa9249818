package subscription

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/mailer"
	"github.com/ignite/newsletter/internal/pkg/logger"
)

// Service implements the signup and confirmation business logic. It is safe
// for concurrent use.
type Service struct {
	repo    Repository
	mail    mailer.Client
	baseURL string
}

// NewService creates a subscription service. baseURL is the public origin
// confirmation links are built against, e.g. "https://newsletter.example.com".
func NewService(repo Repository, mail mailer.Client, baseURL string) *Service {
	return &Service{repo: repo, mail: mail, baseURL: baseURL}
}

// Subscribe registers a new pending subscriber and sends the confirmation
// email. The subscriber and its token are stored atomically before any email
// leaves; a delivery failure after commit returns ErrConfirmationDelivery
// with the subscriber already persisted, so a later confirmation request can
// still succeed once the token is re-delivered.
func (s *Service) Subscribe(ctx context.Context, name, email string) error {
	sub, err := newPendingSubscriber(name, email)
	if err != nil {
		return err
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	if err := s.repo.CreateSubscriber(ctx, sub, token); err != nil {
		return fmt.Errorf("store subscriber: %w", err)
	}
	logger.Info("subscriber stored", "email", email, "subscriber_id", sub.ID.String())

	msg, err := mailer.ConfirmationEmail(sub.Email.String(), s.confirmationLink(token))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfirmationDelivery, err)
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrConfirmationDelivery, err)
	}

	return nil
}

// Confirm activates the subscriber owning the token. Unknown tokens return
// ErrTokenNotFound; confirming twice is a no-op success.
func (s *Service) Confirm(ctx context.Context, token string) error {
	if err := s.repo.ConfirmByToken(ctx, token); err != nil {
		return err
	}
	logger.Info("subscriber confirmed", "token", token)
	return nil
}

func (s *Service) confirmationLink(token string) string {
	return fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s",
		s.baseURL, url.QueryEscape(token))
}

func newPendingSubscriber(name, email string) (*domain.Subscriber, error) {
	parsedName, err := domain.ParseSubscriberName(name)
	if err != nil {
		return nil, &ValidationError{Field: "name", Reason: err.Error()}
	}
	parsedEmail, err := domain.ParseSubscriberEmail(email)
	if err != nil {
		return nil, &ValidationError{Field: "email", Reason: err.Error()}
	}

	return &domain.Subscriber{
		ID:           uuid.New(),
		Email:        parsedEmail,
		Name:         parsedName,
		SubscribedAt: time.Now().UTC(),
		Status:       domain.SubscriberPendingConfirmation,
	}, nil
}
