package subscription

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/mailer"
)

// mockRepo is an in-memory repository for testing.
type mockRepo struct {
	mu        sync.Mutex
	subs      map[string]*domain.Subscriber // keyed by token
	createErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{subs: make(map[string]*domain.Subscriber)}
}

func (m *mockRepo) CreateSubscriber(_ context.Context, sub *domain.Subscriber, token string) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[token] = sub
	return nil
}

func (m *mockRepo) ConfirmByToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subs[token]
	if !ok {
		return ErrTokenNotFound
	}
	sub.Status = domain.SubscriberConfirmed
	return nil
}

// mockMailer records sent emails and can be told to fail.
type mockMailer struct {
	mu      sync.Mutex
	sent    []mailer.Email
	sendErr error
}

func (m *mockMailer) Send(_ context.Context, email mailer.Email) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return nil
}

const testBaseURL = "https://newsletter.example.com"

func TestSubscribe_StoresPendingSubscriberAndSendsConfirmation(t *testing.T) {
	repo := newMockRepo()
	mail := &mockMailer{}
	svc := NewService(repo, mail, testBaseURL)

	if err := svc.Subscribe(context.Background(), "Ursula Le Guin", "ursula_le_guin@gmail.com"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if len(repo.subs) != 1 {
		t.Fatalf("stored %d subscribers, want 1", len(repo.subs))
	}
	var token string
	for tok, sub := range repo.subs {
		token = tok
		if sub.Status != domain.SubscriberPendingConfirmation {
			t.Errorf("status = %q, want pending_confirmation", sub.Status)
		}
		if sub.Email.String() != "ursula_le_guin@gmail.com" {
			t.Errorf("email = %q", sub.Email)
		}
	}
	if !regexp.MustCompile(`^[A-Za-z0-9]{25}$`).MatchString(token) {
		t.Errorf("token %q is not 25 alphanumeric characters", token)
	}

	if len(mail.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mail.sent))
	}
	msg := mail.sent[0]
	if msg.To != "ursula_le_guin@gmail.com" {
		t.Errorf("recipient = %q", msg.To)
	}
	wantLink := testBaseURL + "/subscriptions/confirm?subscription_token=" + token
	if !strings.Contains(msg.HTML, wantLink) {
		t.Errorf("html body missing confirmation link %q", wantLink)
	}
	if !strings.Contains(msg.Text, wantLink) {
		t.Errorf("text body missing confirmation link %q", wantLink)
	}
}

func TestSubscribe_RejectsInvalidInput(t *testing.T) {
	cases := []struct {
		testName  string
		name      string
		email     string
		wantField string
	}{
		{"empty name", "   ", "ursula@example.com", "name"},
		{"name with forbidden chars", "Ursula<script>", "ursula@example.com", "name"},
		{"name too long", strings.Repeat("a", 257), "ursula@example.com", "name"},
		{"empty email", "Ursula", "", "email"},
		{"email missing at", "Ursula", "ursulaexample.com", "email"},
		{"email missing domain dot", "Ursula", "ursula@example", "email"},
		{"email with display name", "Ursula", "Ursula <ursula@example.com>", "email"},
	}
	for _, tc := range cases {
		t.Run(tc.testName, func(t *testing.T) {
			repo := newMockRepo()
			mail := &mockMailer{}
			svc := NewService(repo, mail, testBaseURL)

			err := svc.Subscribe(context.Background(), tc.name, tc.email)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tc.wantField)
			}
			if len(repo.subs) != 0 {
				t.Error("invalid input must not be stored")
			}
			if len(mail.sent) != 0 {
				t.Error("invalid input must not trigger email")
			}
		})
	}
}

func TestSubscribe_RepositoryFailure(t *testing.T) {
	repo := newMockRepo()
	repo.createErr = errors.New("connection refused")
	mail := &mockMailer{}
	svc := NewService(repo, mail, testBaseURL)

	err := svc.Subscribe(context.Background(), "Ursula", "ursula@example.com")
	if err == nil {
		t.Fatal("want error")
	}
	if errors.Is(err, ErrConfirmationDelivery) {
		t.Error("storage failure must not be reported as delivery failure")
	}
	if len(mail.sent) != 0 {
		t.Error("no email may be sent when storage fails")
	}
}

func TestSubscribe_DeliveryFailureKeepsSubscriber(t *testing.T) {
	repo := newMockRepo()
	mail := &mockMailer{sendErr: errors.New("smtp unreachable")}
	svc := NewService(repo, mail, testBaseURL)

	err := svc.Subscribe(context.Background(), "Ursula", "ursula@example.com")
	if !errors.Is(err, ErrConfirmationDelivery) {
		t.Fatalf("err = %v, want ErrConfirmationDelivery", err)
	}
	if len(repo.subs) != 1 {
		t.Error("subscriber must stay stored when only delivery fails")
	}
}

func TestConfirm(t *testing.T) {
	repo := newMockRepo()
	mail := &mockMailer{}
	svc := NewService(repo, mail, testBaseURL)

	if err := svc.Subscribe(context.Background(), "Ursula", "ursula@example.com"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	var token string
	for tok := range repo.subs {
		token = tok
	}

	if err := svc.Confirm(context.Background(), token); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if repo.subs[token].Status != domain.SubscriberConfirmed {
		t.Errorf("status = %q, want confirmed", repo.subs[token].Status)
	}

	// Confirming again is idempotent.
	if err := svc.Confirm(context.Background(), token); err != nil {
		t.Fatalf("second Confirm: %v", err)
	}
}

func TestConfirm_UnknownToken(t *testing.T) {
	svc := NewService(newMockRepo(), &mockMailer{}, testBaseURL)

	err := svc.Confirm(context.Background(), "nosuchtoken1234567890abcd")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("err = %v, want ErrTokenNotFound", err)
	}
}

func TestGenerateToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		tok, err := generateToken()
		if err != nil {
			t.Fatalf("generateToken: %v", err)
		}
		if !regexp.MustCompile(`^[A-Za-z0-9]{25}$`).MatchString(tok) {
			t.Fatalf("token %q is not 25 alphanumeric characters", tok)
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}
