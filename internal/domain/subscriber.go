package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
)

// SubscriberStatus enumerates the states a subscriber can be in.
type SubscriberStatus string

const (
	SubscriberPendingConfirmation SubscriberStatus = "pending_confirmation"
	SubscriberConfirmed           SubscriberStatus = "confirmed"
)

// Subscriber represents a single newsletter recipient. The status transition
// is one-way: pending_confirmation -> confirmed, never back.
type Subscriber struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	Email        SubscriberEmail  `json:"email" db:"email"`
	Name         SubscriberName   `json:"name" db:"name"`
	SubscribedAt time.Time        `json:"subscribed_at" db:"subscribed_at"`
	Status       SubscriberStatus `json:"status" db:"status"`
}

// ConfirmedSubscriber is the projection the broadcast path works with.
// Email is the raw stored string, not a validated SubscriberEmail: rows may
// predate the current validation rules and are re-checked at send time.
type ConfirmedSubscriber struct {
	ID    uuid.UUID `db:"id"`
	Email string    `db:"email"`
}

// SubscriberName is a display name that passed validation.
type SubscriberName string

// maxNameGraphemes bounds the display name by user-perceived characters,
// not bytes or runes.
const maxNameGraphemes = 256

// forbiddenNameChars would let a stored name break out of HTML or header
// contexts downstream.
const forbiddenNameChars = `/()"<>\{}`

// ParseSubscriberName validates a raw display name. The raw value is kept
// as-is on success; trimming is only applied for the emptiness check.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("name must not be empty")
	}
	if uniseg.GraphemeClusterCount(raw) > maxNameGraphemes {
		return "", fmt.Errorf("name exceeds %d characters", maxNameGraphemes)
	}
	if strings.ContainsAny(raw, forbiddenNameChars) {
		return "", fmt.Errorf("name contains a forbidden character (one of %s)", forbiddenNameChars)
	}
	return SubscriberName(raw), nil
}

func (n SubscriberName) String() string { return string(n) }

// SubscriberEmail is an email address that passed validation.
type SubscriberEmail string

// ParseSubscriberEmail validates a raw email address. Beyond RFC 5322 syntax
// it requires a dotted domain and rejects display-name forms
// ("Ursula <u@x.com>"), which net/mail would otherwise accept.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return "", fmt.Errorf("%q is not a valid email address", raw)
	}
	if addr.Address != raw {
		return "", fmt.Errorf("%q is not a bare email address", raw)
	}
	at := strings.LastIndex(raw, "@")
	if at < 0 || !strings.Contains(raw[at+1:], ".") {
		return "", fmt.Errorf("%q is missing a dotted domain", raw)
	}
	if len(raw) > 254 {
		return "", fmt.Errorf("email address exceeds 254 characters")
	}
	return SubscriberEmail(raw), nil
}

func (e SubscriberEmail) String() string { return string(e) }
