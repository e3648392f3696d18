package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"

	"github.com/aikawa-h/instapipe/utils/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(),
		config.SearchConfig{APIKey: "test-key", EngineID: "test-engine"},
		option.WithEndpoint(server.URL),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return client
}

func TestSearch(t *testing.T) {
	var gotQuery, gotCx, gotNum string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		gotQuery = query.Get("q")
		gotCx = query.Get("cx")
		gotNum = query.Get("num")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"title": "Latte trends", "snippet": "Pistachio lattes are trending", "link": "https://example.com/latte"},
				{"title": "Coffee news", "link": "https://example.com/news"}
			]
		}`))
	})

	results, err := client.Search(context.Background(), "seasonal latte trends", 2)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if gotQuery != "seasonal latte trends" {
		t.Errorf("request q = %q, want the query", gotQuery)
	}
	if gotCx != "test-engine" {
		t.Errorf("request cx = %q, want %q", gotCx, "test-engine")
	}
	if gotNum != "2" {
		t.Errorf("request num = %q, want %q", gotNum, "2")
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "Latte trends" || results[0].Link != "https://example.com/latte" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Snippet != "" {
		t.Errorf("results[1].Snippet = %q, want empty for an omitted field", results[1].Snippet)
	}
}

func TestSearchNoItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	results, err := client.Search(context.Background(), "obscure query", 3)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestSearchServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), "q", 3)
	if err == nil {
		t.Fatal("Search() expected error for a 500 response")
	}

	var svcErr *ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error type = %T, want *ExternalServiceError", err)
	}
	if svcErr.Service != "search" {
		t.Errorf("Service = %q, want %q", svcErr.Service, "search")
	}
}

func TestSearchDefaultLimit(t *testing.T) {
	var gotNum string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotNum = r.URL.Query().Get("num")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	if _, err := client.Search(context.Background(), "q", 0); err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if gotNum != "3" {
		t.Errorf("request num = %q, want the default of 3", gotNum)
	}
}

func TestNewClientMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SearchConfig
	}{
		{"missing api key", config.SearchConfig{EngineID: "e"}},
		{"missing engine id", config.SearchConfig{APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(context.Background(), tt.cfg)
			var confErr *config.ConfigurationError
			if !errors.As(err, &confErr) {
				t.Fatalf("NewClient() error type = %T, want *config.ConfigurationError", err)
			}
		})
	}
}
