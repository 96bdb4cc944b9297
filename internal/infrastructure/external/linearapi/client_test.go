package linearapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/meeting-prep-team/meeting-prep-bot/internal/domain/entities"
	"github.com/meeting-prep-team/meeting-prep-bot/pkg/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.LinearConfig{APIKey: "lin_test", BaseURL: baseURL}, zap.NewNop())
}

func TestFetch_FormatsIssues(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "lin_test" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var payload gqlRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Variables["search"] != "Q3 Planning" {
			t.Fatalf("unexpected search variable %q", payload.Variables["search"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"issues": map[string]interface{}{
					"nodes": []map[string]interface{}{
						{
							"id":       "1",
							"title":    "Prepare agenda",
							"state":    map[string]string{"name": "Todo"},
							"assignee": map[string]string{"name": "Alice"},
						},
						{
							"id":       "2",
							"title":    "Collect metrics",
							"state":    map[string]string{"name": "In Progress"},
							"assignee": nil,
						},
					},
				},
			},
		})
	}))
	defer ts.Close()

	got := newTestClient(ts.URL).Fetch(context.Background(), "Q3 Planning")
	want := "- Prepare agenda (State: Todo, Assignee: Alice)\n- Collect metrics (State: In Progress, Assignee: Unassigned)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFetch_NoResultsSentinel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"issues": map[string]interface{}{"nodes": []interface{}{}},
			},
		})
	}))
	defer ts.Close()

	got := newTestClient(ts.URL).Fetch(context.Background(), "Nothing")
	if got != noResultsSentinel {
		t.Fatalf("expected no-results sentinel, got %q", got)
	}
}

func TestFetch_TransportErrorSentinel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	got := newTestClient(ts.URL).Fetch(context.Background(), "Q3")
	if got != errorSentinel {
		t.Fatalf("expected error sentinel, got %q", got)
	}
	if got == noResultsSentinel {
		t.Fatal("error sentinel must be distinguishable from no-results sentinel")
	}
}

func TestFetch_UpstreamErrorStatusSentinel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	got := newTestClient(ts.URL).Fetch(context.Background(), "Q3")
	if got != errorSentinel {
		t.Fatalf("expected error sentinel, got %q", got)
	}
}

func TestKind(t *testing.T) {
	if newTestClient("http://unused").Kind() != entities.SourceIssueTracker {
		t.Fatal("expected issue tracker source kind")
	}
}
