package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aikawa-h/instapipe/utils/config"
)

// defaultPublishWait is the pause between container creation and publish;
// the Graph API needs a moment to process the carousel.
const defaultPublishWait = 2 * time.Second

// Uploader stages an image and returns a URL the Graph API can fetch.
// *Bucket satisfies it.
type Uploader interface {
	UploadSigned(ctx context.Context, destPath string, data io.Reader, contentType string) (string, error)
}

// Publisher turns local images plus a caption into a published carousel.
type Publisher struct {
	bucket      Uploader
	graph       *GraphClient
	publishWait time.Duration
}

// NewPublisher wires the staging bucket and Graph client together.
func NewPublisher(bucket Uploader, graph *GraphClient) *Publisher {
	return &Publisher{
		bucket:      bucket,
		graph:       graph,
		publishWait: defaultPublishWait,
	}
}

// SetPublishWait overrides the pre-publish pause, for tests.
func (p *Publisher) SetPublishWait(d time.Duration) {
	p.publishWait = d
}

// PostCarousel uploads each image, registers the carousel children, and
// publishes. Returns the published media id. Any step failing aborts the
// whole post; a carousel with zero usable children is an error, not an
// empty publish.
func (p *Publisher) PostCarousel(ctx context.Context, imagePaths []string, caption string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("no images to post")
	}

	childIDs := make([]string, 0, len(imagePaths))
	for _, path := range imagePaths {
		data, err := NormalizeImage(path)
		if err != nil {
			return "", err
		}

		destPath := fmt.Sprintf("instagram/%s", filepath.Base(path))
		signedURL, err := p.bucket.UploadSigned(ctx, destPath, bytes.NewReader(data), "image/jpeg")
		if err != nil {
			return "", err
		}

		childID, err := p.graph.CreateChildMedia(ctx, signedURL)
		if err != nil {
			return "", err
		}
		childIDs = append(childIDs, childID)
	}

	creationID, err := p.graph.CreateCarousel(ctx, childIDs, caption)
	if err != nil {
		return "", err
	}

	config.DebugLog("[Publish] waiting %s before publish", p.publishWait)
	select {
	case <-time.After(p.publishWait):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	publishedID, err := p.graph.Publish(ctx, creationID)
	if err != nil {
		return "", err
	}

	config.DebugLog("[Publish] carousel published: %s", publishedID)
	return publishedID, nil
}
