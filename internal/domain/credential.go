package domain

import "github.com/google/uuid"

// Credential is a publisher identity. PasswordHash is a PHC-encoded Argon2id
// string carrying its own salt and cost parameters. Rows are immutable once
// provisioned.
type Credential struct {
	UserID       uuid.UUID `db:"user_id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
}
