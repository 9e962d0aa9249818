package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/pkg/workerpool"
)

// CredentialStore resolves stored publisher credentials.
// A missing username is (nil, nil), not an error.
type CredentialStore interface {
	GetCredential(ctx context.Context, username string) (*domain.Credential, error)
}

// Validator checks Basic-auth credentials against the credential store.
// Argon2id verification is dispatched to a dedicated worker pool: it is
// CPU- and memory-expensive by construction and must not run inline on the
// request-handling goroutine.
type Validator struct {
	store CredentialStore
	pool  *workerpool.Pool
}

// NewValidator creates a credential validator using the given store and
// hash-verification worker pool.
func NewValidator(store CredentialStore, pool *workerpool.Pool) *Validator {
	return &Validator{store: store, pool: pool}
}

// ValidateCredentials verifies a username/password pair and returns the
// authenticated user's id.
//
// When the username is unknown, the password is still verified against a
// fixed fallback hash before rejecting. Skipping that verification would
// make the unknown-user path measurably faster and leak which usernames
// exist.
func (v *Validator) ValidateCredentials(ctx context.Context, creds Credentials) (uuid.UUID, error) {
	cred, err := v.store.GetCredential(ctx, creds.Username)
	if err != nil {
		return uuid.Nil, fmt.Errorf("look up credentials: %w", err)
	}

	expectedHash := fallbackHash()
	var userID uuid.UUID
	if cred != nil {
		expectedHash = cred.PasswordHash
		userID = cred.UserID
	}

	var match bool
	err = v.pool.Do(ctx, func() error {
		var verifyErr error
		match, verifyErr = VerifyPassword(creds.Password, expectedHash)
		return verifyErr
	})
	switch {
	case errors.Is(err, workerpool.ErrClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return uuid.Nil, fmt.Errorf("dispatch hash verification: %w", err)
	case err != nil:
		// The stored hash failed to parse; treat as a bad credential rather
		// than leaking storage details.
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	if !match || cred == nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	return userID, nil
}
