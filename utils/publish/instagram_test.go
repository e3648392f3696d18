package publish

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aikawa-h/instapipe/utils/config"
)

func newTestGraphClient(t *testing.T, handler http.HandlerFunc) *GraphClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGraphClient(config.InstagramConfig{
		UserID:      "17841400000000000",
		AccessToken: "EAAG-test-token",
	}, "v24.0", server.Client())
	if err != nil {
		t.Fatalf("NewGraphClient() error: %v", err)
	}
	client.SetBaseURL(server.URL)
	return client
}

func TestCreateChildMedia(t *testing.T) {
	var gotPath string
	var gotParams map[string]string
	client := newTestGraphClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		query := r.URL.Query()
		gotParams = map[string]string{
			"image_url":        query.Get("image_url"),
			"is_carousel_item": query.Get("is_carousel_item"),
			"access_token":     query.Get("access_token"),
		}
		w.Write([]byte(`{"id": "child-1"}`))
	})

	id, err := client.CreateChildMedia(context.Background(), "https://storage.example.com/img.jpg")
	if err != nil {
		t.Fatalf("CreateChildMedia() error: %v", err)
	}

	if id != "child-1" {
		t.Errorf("id = %q, want %q", id, "child-1")
	}
	if gotPath != "/v24.0/17841400000000000/media" {
		t.Errorf("path = %q, want the versioned media endpoint", gotPath)
	}
	if gotParams["image_url"] != "https://storage.example.com/img.jpg" {
		t.Errorf("image_url = %q", gotParams["image_url"])
	}
	if gotParams["is_carousel_item"] != "true" {
		t.Errorf("is_carousel_item = %q, want %q", gotParams["is_carousel_item"], "true")
	}
	if gotParams["access_token"] != "EAAG-test-token" {
		t.Errorf("access_token = %q, want the configured token", gotParams["access_token"])
	}
}

func TestCreateCarousel(t *testing.T) {
	var gotChildren, gotMediaType, gotCaption string
	client := newTestGraphClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		gotChildren = query.Get("children")
		gotMediaType = query.Get("media_type")
		gotCaption = query.Get("caption")
		w.Write([]byte(`{"id": "carousel-1"}`))
	})

	id, err := client.CreateCarousel(context.Background(), []string{"child-1", "child-2"}, "Our new latte! #cafe")
	if err != nil {
		t.Fatalf("CreateCarousel() error: %v", err)
	}

	if id != "carousel-1" {
		t.Errorf("id = %q, want %q", id, "carousel-1")
	}
	if gotChildren != "child-1,child-2" {
		t.Errorf("children = %q, want comma-joined ids", gotChildren)
	}
	if gotMediaType != "CAROUSEL" {
		t.Errorf("media_type = %q, want CAROUSEL", gotMediaType)
	}
	if gotCaption != "Our new latte! #cafe" {
		t.Errorf("caption = %q", gotCaption)
	}
}

func TestPublish(t *testing.T) {
	var gotPath, gotCreationID string
	client := newTestGraphClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCreationID = r.URL.Query().Get("creation_id")
		w.Write([]byte(`{"id": "media-1"}`))
	})

	id, err := client.Publish(context.Background(), "carousel-1")
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if id != "media-1" {
		t.Errorf("id = %q, want %q", id, "media-1")
	}
	if gotPath != "/v24.0/17841400000000000/media_publish" {
		t.Errorf("path = %q, want the media_publish endpoint", gotPath)
	}
	if gotCreationID != "carousel-1" {
		t.Errorf("creation_id = %q, want %q", gotCreationID, "carousel-1")
	}
}

func TestGraphErrorEnvelope(t *testing.T) {
	client := newTestGraphClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Invalid image URL", "type": "OAuthException", "code": 100}}`))
	})

	_, err := client.CreateChildMedia(context.Background(), "https://bad.example.com/x.jpg")
	if err == nil {
		t.Fatal("CreateChildMedia() expected error from error envelope")
	}
	for _, want := range []string{"Invalid image URL", "OAuthException", "100"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error = %q, want it to mention %q", err.Error(), want)
		}
	}
}

func TestGraphMissingID(t *testing.T) {
	client := newTestGraphClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	if _, err := client.CreateChildMedia(context.Background(), "https://example.com/x.jpg"); err == nil {
		t.Error("CreateChildMedia() expected error for a reply without an id")
	}
}

func TestNewGraphClientMissingCredentials(t *testing.T) {
	if _, err := NewGraphClient(config.InstagramConfig{AccessToken: "t"}, "v24.0", nil); err == nil {
		t.Error("NewGraphClient() expected error for missing user id")
	}
	if _, err := NewGraphClient(config.InstagramConfig{UserID: "u"}, "v24.0", nil); err == nil {
		t.Error("NewGraphClient() expected error for missing access token")
	}
}
