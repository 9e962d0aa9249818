package newsletter

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/mailer"
)

type mockRepo struct {
	subs    []domain.ConfirmedSubscriber
	listErr error
}

func (m *mockRepo) ListConfirmed(_ context.Context) ([]domain.ConfirmedSubscriber, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.subs, nil
}

// mockMailer records sends and can fail on a chosen recipient.
type mockMailer struct {
	mu     sync.Mutex
	sent   []mailer.Email
	failTo string
}

func (m *mockMailer) Send(_ context.Context, email mailer.Email) error {
	if m.failTo != "" && email.To == m.failTo {
		return errors.New("transport rejected message")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return nil
}

func confirmed(email string) domain.ConfirmedSubscriber {
	return domain.ConfirmedSubscriber{ID: uuid.New(), Email: email}
}

var testIssue = domain.Issue{
	Title: "Newsletter title",
	HTML:  "<p>Newsletter body as HTML</p>",
	Text:  "Newsletter body as plain text",
}

func TestPublish_DeliversToAllConfirmed(t *testing.T) {
	repo := &mockRepo{subs: []domain.ConfirmedSubscriber{
		confirmed("first@example.com"),
		confirmed("second@example.com"),
	}}
	mail := &mockMailer{}

	if err := NewService(repo, mail).Publish(context.Background(), testIssue); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(mail.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(mail.sent))
	}
	for _, msg := range mail.sent {
		if msg.Subject != testIssue.Title {
			t.Errorf("subject = %q, want %q", msg.Subject, testIssue.Title)
		}
		if msg.HTML != testIssue.HTML || msg.Text != testIssue.Text {
			t.Errorf("body mismatch for %s", msg.To)
		}
	}
}

func TestPublish_NoConfirmedSubscribers(t *testing.T) {
	mail := &mockMailer{}
	if err := NewService(&mockRepo{}, mail).Publish(context.Background(), testIssue); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(mail.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(mail.sent))
	}
}

func TestPublish_SkipsInvalidStoredEmail(t *testing.T) {
	repo := &mockRepo{subs: []domain.ConfirmedSubscriber{
		confirmed("valid@example.com"),
		confirmed("not-an-email"),
		confirmed("also.valid@example.com"),
	}}
	mail := &mockMailer{}

	if err := NewService(repo, mail).Publish(context.Background(), testIssue); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(mail.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(mail.sent))
	}
	for _, msg := range mail.sent {
		if msg.To == "not-an-email" {
			t.Error("invalid stored address must be skipped")
		}
	}
}

func TestPublish_TransportFailureAborts(t *testing.T) {
	repo := &mockRepo{subs: []domain.ConfirmedSubscriber{
		confirmed("first@example.com"),
		confirmed("second@example.com"),
		confirmed("third@example.com"),
	}}
	mail := &mockMailer{failTo: "second@example.com"}

	err := NewService(repo, mail).Publish(context.Background(), testIssue)
	if err == nil {
		t.Fatal("want error when transport fails")
	}
	if len(mail.sent) != 1 {
		t.Errorf("sent %d emails before aborting, want 1", len(mail.sent))
	}
}

func TestPublish_RepositoryFailure(t *testing.T) {
	repo := &mockRepo{listErr: errors.New("connection refused")}
	err := NewService(repo, &mockMailer{}).Publish(context.Background(), testIssue)
	if err == nil {
		t.Fatal("want error when listing fails")
	}
}
