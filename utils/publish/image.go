package publish

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// maxImageWidth is the widest image the Graph API accepts without its own
// downscaling; wider uploads just waste bandwidth.
const maxImageWidth = 1080

// NormalizeImage reads a local jpeg/png, downscales anything wider than
// maxImageWidth, and returns jpeg bytes ready for upload.
func NormalizeImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	if width > maxImageWidth {
		height := bounds.Dy() * maxImageWidth / width
		scaled := image.NewRGBA(image.Rect(0, 0, maxImageWidth, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	} else if format == "jpeg" {
		// Already jpeg and small enough, keep the original bytes.
		return data, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode image %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
