package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/service/subscription"
)

// SubscriberRepo implements the subscriber data access contracts against
// PostgreSQL: subscription.Repository for signup and confirmation, and the
// newsletter broadcast listing.
type SubscriberRepo struct{ db *sql.DB }

// NewSubscriberRepo creates a Postgres-backed subscriber repository.
func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// CreateSubscriber stores a pending subscriber and its confirmation token in
// one transaction. A failure on either insert rolls back both rows.
func (r *SubscriberRepo) CreateSubscriber(ctx context.Context, sub *domain.Subscriber, token string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`, sub.ID, sub.Email.String(), sub.Name.String(), sub.SubscribedAt, sub.Status); err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO subscription_tokens (subscription_token, subscriber_id)
		VALUES ($1, $2)
	`, token, sub.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", subscription.ErrDuplicateToken, err)
		}
		return fmt.Errorf("insert subscription token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit subscriber: %w", err)
	}
	return nil
}

// ConfirmByToken flips the token's subscriber to confirmed in a single
// statement. Re-confirming an already-confirmed subscriber matches a row and
// succeeds, which makes the operation idempotent.
func (r *SubscriberRepo) ConfirmByToken(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions SET status = 'confirmed'
		WHERE id = (SELECT subscriber_id FROM subscription_tokens WHERE subscription_token = $1)
	`, token)
	if err != nil {
		return fmt.Errorf("confirm subscriber: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("confirm subscriber: %w", err)
	}
	if n == 0 {
		return subscription.ErrTokenNotFound
	}
	return nil
}

// ListConfirmed returns all confirmed subscribers with their raw stored
// addresses.
func (r *SubscriberRepo) ListConfirmed(ctx context.Context) ([]domain.ConfirmedSubscriber, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email FROM subscriptions WHERE status = 'confirmed'`,
	)
	if err != nil {
		return nil, fmt.Errorf("list confirmed subscribers: %w", err)
	}
	defer rows.Close()

	var out []domain.ConfirmedSubscriber
	for rows.Next() {
		var s domain.ConfirmedSubscriber
		if err := rows.Scan(&s.ID, &s.Email); err != nil {
			return nil, fmt.Errorf("scan confirmed subscriber: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate confirmed subscribers: %w", err)
	}
	return out, nil
}

// GetCredential looks up a publisher's stored credential by username.
// A missing username is (nil, nil), not an error.
func (r *SubscriberRepo) GetCredential(ctx context.Context, username string) (*domain.Credential, error) {
	var cred domain.Credential
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, username, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&cred.UserID, &cred.Username, &cred.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return &cred, nil
}
