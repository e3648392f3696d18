package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aikawa-h/instapipe/utils/config"
)

const defaultGraphBaseURL = "https://graph.facebook.com"

// graphResponse is the Graph API envelope shared by the media endpoints.
type graphResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// GraphClient talks to the Instagram Graph API media endpoints.
type GraphClient struct {
	userID      string
	accessToken string
	version     string
	baseURL     string
	client      *http.Client
}

// NewGraphClient builds a Graph API client from the configured credentials.
func NewGraphClient(cfg config.InstagramConfig, version string, client *http.Client) (*GraphClient, error) {
	if cfg.UserID == "" {
		return nil, &config.ConfigurationError{Key: "instagram.user_id"}
	}
	if cfg.AccessToken == "" {
		return nil, &config.ConfigurationError{Key: "instagram.access_token"}
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	return &GraphClient{
		userID:      cfg.UserID,
		accessToken: cfg.AccessToken,
		version:     version,
		baseURL:     defaultGraphBaseURL,
		client:      client,
	}, nil
}

// SetBaseURL overrides the API host, for tests.
func (g *GraphClient) SetBaseURL(baseURL string) {
	g.baseURL = strings.TrimSuffix(baseURL, "/")
}

// post issues one Graph API call and decodes the shared envelope.
func (g *GraphClient) post(ctx context.Context, endpoint string, params url.Values) (*graphResponse, error) {
	params.Set("access_token", g.accessToken)

	reqURL := fmt.Sprintf("%s/%s/%s/%s?%s", g.baseURL, g.version, g.userID, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Graph API request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Graph API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Graph API response: %w", err)
	}

	var decoded graphResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse Graph API response: %s", string(body))
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("Graph API error (%s, code %d): %s",
			decoded.Error.Type, decoded.Error.Code, decoded.Error.Message)
	}

	return &decoded, nil
}

// CreateChildMedia registers one image as a carousel item and returns its
// media container id.
func (g *GraphClient) CreateChildMedia(ctx context.Context, imageURL string) (string, error) {
	config.DebugLog("[Graph] creating child media for image")

	params := url.Values{}
	params.Set("image_url", imageURL)
	params.Set("is_carousel_item", "true")

	resp, err := g.post(ctx, "media", params)
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("Graph API returned no id for child media")
	}
	return resp.ID, nil
}

// CreateCarousel assembles the child media into a carousel container with
// the caption attached.
func (g *GraphClient) CreateCarousel(ctx context.Context, childIDs []string, caption string) (string, error) {
	config.DebugLog("[Graph] creating carousel container with %d child(ren)", len(childIDs))

	params := url.Values{}
	params.Set("caption", caption)
	params.Set("children", strings.Join(childIDs, ","))
	params.Set("media_type", "CAROUSEL")

	resp, err := g.post(ctx, "media", params)
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("Graph API returned no id for carousel container")
	}
	return resp.ID, nil
}

// Publish makes the carousel container live and returns the published media
// id.
func (g *GraphClient) Publish(ctx context.Context, creationID string) (string, error) {
	config.DebugLog("[Graph] publishing creation %s", creationID)

	params := url.Values{}
	params.Set("creation_id", creationID)

	resp, err := g.post(ctx, "media_publish", params)
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("Graph API returned no id for published media")
	}
	return resp.ID, nil
}
