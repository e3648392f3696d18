package publish

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/aikawa-h/instapipe/utils/config"
)

// signedURLTTL is how long an uploaded image stays fetchable by the Graph
// API; the publish flow finishes well inside an hour.
const signedURLTTL = time.Hour

// Bucket uploads staged carousel images to GCS and issues signed URLs.
type Bucket struct {
	client *storage.Client
	name   string
}

// NewBucket creates a GCS-backed staging bucket. Credentials come from the
// ambient GOOGLE_APPLICATION_CREDENTIALS service account.
func NewBucket(ctx context.Context, bucketName string, opts ...option.ClientOption) (*Bucket, error) {
	if bucketName == "" {
		return nil, &config.ConfigurationError{Key: "storage.bucket"}
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Bucket{client: client, name: bucketName}, nil
}

// Close releases the underlying storage client.
func (b *Bucket) Close() error {
	return b.client.Close()
}

// UploadSigned writes the object and returns a V4 signed GET URL valid for
// one hour.
func (b *Bucket) UploadSigned(ctx context.Context, destPath string, data io.Reader, contentType string) (string, error) {
	config.DebugLog("[GCS] uploading object %s to bucket %s", destPath, b.name)

	obj := b.client.Bucket(b.name).Object(destPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", destPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload of %s: %w", destPath, err)
	}

	url, err := b.client.Bucket(b.name).SignedURL(destPath, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(signedURLTTL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s: %w", destPath, err)
	}

	config.DebugLog("[GCS] object %s uploaded and signed", destPath)
	return url, nil
}
