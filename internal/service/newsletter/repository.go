package newsletter

import (
	"context"

	"github.com/ignite/newsletter/internal/domain"
)

// Repository defines the data access contract for the broadcast path.
type Repository interface {
	// ListConfirmed returns every confirmed subscriber with its raw stored
	// email address.
	ListConfirmed(ctx context.Context) ([]domain.ConfirmedSubscriber, error)
}
