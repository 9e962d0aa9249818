package subscription

import (
	"errors"
	"fmt"
)

// Sentinel errors for the subscription service layer.
var (
	// ErrTokenNotFound means the confirmation token does not match any
	// pending subscriber.
	ErrTokenNotFound = errors.New("subscription token not found")

	// ErrConfirmationDelivery means the subscriber was stored but the
	// confirmation email could not be sent.
	ErrConfirmationDelivery = errors.New("confirmation email delivery failed")

	// ErrDuplicateToken means the generated confirmation token collided with
	// an existing one. With 25 random alphanumeric characters this indicates
	// a broken random source, not bad luck, so it is surfaced rather than
	// retried.
	ErrDuplicateToken = errors.New("duplicate subscription token")
)

// ValidationError reports a rejected signup field. Handlers expose the field
// and reason to the client as a 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
