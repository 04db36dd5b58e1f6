package hero

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"time"

	// Registered decoders for silhouette assets
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrImageLoad is returned when the silhouette image cannot be obtained.
var ErrImageLoad = errors.New("hero: image load failed")

// DefaultLoadTimeout bounds a single image load.
const DefaultLoadTimeout = 10 * time.Second

// ImageSource produces the silhouette image. Implementations should honour
// ctx cancellation; LoadImage stops waiting on cancellation either way.
type ImageSource func(ctx context.Context) (image.Image, error)

// FSImage returns a source decoding name from fsys.
// PNG, JPEG, BMP and WebP are supported.
func FSImage(fsys fs.FS, name string) ImageSource {
	return func(ctx context.Context) (image.Image, error) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return img, nil
	}
}

// StaticImage returns a source that yields img.
func StaticImage(img image.Image) ImageSource {
	return func(context.Context) (image.Image, error) {
		return img, nil
	}
}

// LoadImage runs src with a timeout. A timeout ≤ 0 selects DefaultLoadTimeout.
// Every failure, including the timeout, wraps ErrImageLoad.
func LoadImage(ctx context.Context, src ImageSource, timeout time.Duration) (image.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no image source", ErrImageLoad)
	}
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		img image.Image
		err error
	}
	done := make(chan result, 1)
	go func() {
		img, err := src(ctx)
		done <- result{img, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageLoad, r.err)
		}
		if r.img == nil {
			return nil, fmt.Errorf("%w: source returned no image", ErrImageLoad)
		}
		return r.img, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, ctx.Err())
	}
}
