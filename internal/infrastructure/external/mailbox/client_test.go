package mailbox

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/meeting-prep-team/meeting-prep-bot/internal/domain/entities"
	"github.com/meeting-prep-team/meeting-prep-bot/pkg/config"
)

type fakeSession struct {
	loginErr   error
	searchErr  error
	nums       []uint32
	envelopes  []envelopeSummary
	fetched    []uint32
	searchText string
	loggedOut  bool
}

func (f *fakeSession) Login(_, _ string) error { return f.loginErr }
func (f *fakeSession) Select(_ string) error   { return nil }

func (f *fakeSession) SearchBody(text string) ([]uint32, error) {
	f.searchText = text
	return f.nums, f.searchErr
}

func (f *fakeSession) FetchEnvelopes(nums []uint32) ([]envelopeSummary, error) {
	f.fetched = nums
	return f.envelopes, nil
}

func (f *fakeSession) Logout() { f.loggedOut = true }

func newTestClient(sess *fakeSession, dialErr error) *Client {
	return &Client{
		cfg: &config.MailboxConfig{
			Addr:     "imap.example.com:993",
			Folder:   "INBOX",
			User:     "bot@example.com",
			Password: "pw",
		},
		dial: func(_ string) (session, error) {
			if dialErr != nil {
				return nil, dialErr
			}
			return sess, nil
		},
		logger: zap.NewNop(),
	}
}

func TestFetch_FormatsEnvelopes(t *testing.T) {
	sess := &fakeSession{
		nums: []uint32{3, 9},
		envelopes: []envelopeSummary{
			{From: "Alice <alice@x.com>", Subject: "Q3 agenda"},
			{From: "bob@x.com", Subject: "Re: Q3 agenda"},
		},
	}

	got := newTestClient(sess, nil).Fetch(context.Background(), "Q3")
	want := "From: Alice <alice@x.com>\nSubject: Q3 agenda\nFrom: bob@x.com\nSubject: Re: Q3 agenda"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if sess.searchText != "Q3" {
		t.Fatalf("expected body search for %q, got %q", "Q3", sess.searchText)
	}
	if !sess.loggedOut {
		t.Fatal("expected session logout")
	}
}

func TestFetch_LimitsToFiveMostRecent(t *testing.T) {
	sess := &fakeSession{
		nums:      []uint32{1, 2, 3, 4, 5, 6, 7},
		envelopes: []envelopeSummary{{From: "a@x.com", Subject: "s"}},
	}

	newTestClient(sess, nil).Fetch(context.Background(), "Q3")

	if len(sess.fetched) != 5 {
		t.Fatalf("expected 5 fetched messages, got %d", len(sess.fetched))
	}
	if sess.fetched[0] != 3 || sess.fetched[4] != 7 {
		t.Fatalf("expected the most recent tail, got %v", sess.fetched)
	}
}

func TestFetch_NoMatchesSentinel(t *testing.T) {
	sess := &fakeSession{nums: nil}

	got := newTestClient(sess, nil).Fetch(context.Background(), "Nothing")
	if got != noResultsSentinel {
		t.Fatalf("expected no-results sentinel, got %q", got)
	}
}

func TestFetch_DialErrorSentinel(t *testing.T) {
	got := newTestClient(nil, errors.New("connection refused")).Fetch(context.Background(), "Q3")
	if got != errorSentinel {
		t.Fatalf("expected error sentinel, got %q", got)
	}
	if got == noResultsSentinel {
		t.Fatal("error sentinel must be distinguishable from no-results sentinel")
	}
}

func TestFetch_LoginErrorSentinel(t *testing.T) {
	sess := &fakeSession{loginErr: errors.New("authentication failed")}

	got := newTestClient(sess, nil).Fetch(context.Background(), "Q3")
	if got != errorSentinel {
		t.Fatalf("expected error sentinel, got %q", got)
	}
	if !sess.loggedOut {
		t.Fatal("expected session logout even after failure")
	}
}

func TestFetch_SearchErrorSentinel(t *testing.T) {
	sess := &fakeSession{searchErr: errors.New("BAD search")}

	got := newTestClient(sess, nil).Fetch(context.Background(), "Q3")
	if got != errorSentinel {
		t.Fatalf("expected error sentinel, got %q", got)
	}
}

func TestKind(t *testing.T) {
	if (&Client{}).Kind() != entities.SourceMail {
		t.Fatal("expected mail source kind")
	}
}
