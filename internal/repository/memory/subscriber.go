// Package memory provides an in-memory subscriber repository. It backs the
// API tests and lets the server run without a database for local demos.
package memory

import (
	"context"
	"sync"

	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/service/subscription"
)

// SubscriberRepo is a map-backed implementation of the subscriber data
// access contracts. Safe for concurrent use.
type SubscriberRepo struct {
	mu     sync.RWMutex
	subs   map[string]*domain.Subscriber // keyed by subscriber id
	tokens map[string]string             // token -> subscriber id
	users  map[string]*domain.Credential // keyed by username
}

// NewSubscriberRepo creates an empty in-memory repository.
func NewSubscriberRepo() *SubscriberRepo {
	return &SubscriberRepo{
		subs:   make(map[string]*domain.Subscriber),
		tokens: make(map[string]string),
		users:  make(map[string]*domain.Credential),
	}
}

func (r *SubscriberRepo) CreateSubscriber(_ context.Context, sub *domain.Subscriber, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *sub
	r.subs[sub.ID.String()] = &copied
	r.tokens[token] = sub.ID.String()
	return nil
}

func (r *SubscriberRepo) ConfirmByToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.tokens[token]
	if !ok {
		return subscription.ErrTokenNotFound
	}
	r.subs[id].Status = domain.SubscriberConfirmed
	return nil
}

func (r *SubscriberRepo) ListConfirmed(_ context.Context) ([]domain.ConfirmedSubscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.ConfirmedSubscriber
	for _, sub := range r.subs {
		if sub.Status == domain.SubscriberConfirmed {
			out = append(out, domain.ConfirmedSubscriber{ID: sub.ID, Email: sub.Email.String()})
		}
	}
	return out, nil
}

func (r *SubscriberRepo) GetCredential(_ context.Context, username string) (*domain.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cred, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copied := *cred
	return &copied, nil
}

// AddCredential registers a publisher credential. Used by tests and the
// database-less demo mode.
func (r *SubscriberRepo) AddCredential(cred domain.Credential) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[cred.Username] = &cred
}

// OverwriteSubscriberEmail replaces a stored address directly, bypassing
// validation. Tests use it to model rows written under older rules.
func (r *SubscriberRepo) OverwriteSubscriberEmail(id, email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub, ok := r.subs[id]; ok {
		sub.Email = domain.SubscriberEmail(email)
	}
}

// Subscribers returns a snapshot of all stored subscribers.
func (r *SubscriberRepo) Subscribers() []domain.Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Subscriber, 0, len(r.subs))
	for _, sub := range r.subs {
		out = append(out, *sub)
	}
	return out
}
