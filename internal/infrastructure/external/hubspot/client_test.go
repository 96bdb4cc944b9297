package hubspot

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
	return NewClient(&config.HubSpotConfig{APIKey: "test-key", BaseURL: baseURL}, zap.NewNop())
}

func TestFetch_FormatsContacts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var payload searchRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Limit != 5 {
			t.Fatalf("expected limit 5, got %d", payload.Limit)
		}
		if payload.FilterGroups[0].Filters[0].Value != "Acme" {
			t.Fatalf("unexpected filter value %q", payload.FilterGroups[0].Filters[0].Value)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"properties": map[string]string{
					"firstname": "Alice", "lastname": "Smith", "email": "alice@x.com",
					"company": "Acme", "phone": "555-0100",
				}},
			},
		})
	}))
	defer ts.Close()

	got := newTestClient(ts.URL).Fetch(context.Background(), "Acme")
	want := "- Alice Smith | alice@x.com | Acme | 555-0100"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFetch_NoResultsSentinel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}})
	}))
	defer ts.Close()

	got := newTestClient(ts.URL).Fetch(context.Background(), "Nothing")
	if got != noResultsSentinel {
		t.Fatalf("expected no-results sentinel, got %q", got)
	}
	if got == "" {
		t.Fatal("sentinel must never be empty")
	}
}

func TestFetch_TransportErrorSentinel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // simulate upstream outage

	got := newTestClient(ts.URL).Fetch(context.Background(), "Acme")
	if got != errorSentinel {
		t.Fatalf("expected error sentinel, got %q", got)
	}
	if got == noResultsSentinel {
		t.Fatal("error sentinel must be distinguishable from no-results sentinel")
	}
}

func TestFetch_UpstreamErrorStatusSentinel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	got := newTestClient(ts.URL).Fetch(context.Background(), "Acme")
	if got != errorSentinel {
		t.Fatalf("expected error sentinel, got %q", got)
	}
}

func TestKind(t *testing.T) {
	if newTestClient("http://unused").Kind() != entities.SourceCRM {
		t.Fatal("expected CRM source kind")
	}
}
