package subscription

import (
	"context"

	"github.com/ignite/newsletter/internal/domain"
)

// Repository defines the data access contract for subscribers and their
// confirmation tokens.
type Repository interface {
	// CreateSubscriber stores a new pending subscriber and its confirmation
	// token atomically: either both rows land or neither does.
	CreateSubscriber(ctx context.Context, sub *domain.Subscriber, token string) error

	// ConfirmByToken marks the subscriber owning the token as confirmed.
	// Returns ErrTokenNotFound when the token matches no subscriber.
	// Confirming an already-confirmed subscriber succeeds.
	ConfirmByToken(ctx context.Context, token string) error
}
