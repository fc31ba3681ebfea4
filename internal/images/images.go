// Package images produces rendition URLs for page images.
package images

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"finitefield.org/hanko-seo/internal/seo"
)

var errNoImage = errors.New("images: image has no file")

// ObjectPath is the storage path of a rendition: the original file for
// "original", else images/<name>.<filter><ext>.
func ObjectPath(img *seo.Image, filter string) (string, error) {
	if img == nil || strings.TrimSpace(img.File) == "" {
		return "", errNoImage
	}
	file := strings.TrimLeft(img.File, "/")
	if filter == "" || filter == seo.RenditionOriginal {
		return file, nil
	}
	filter = strings.ReplaceAll(filter, "|", ".")
	base := path.Base(file)
	ext := path.Ext(base)
	return "images/" + strings.TrimSuffix(base, ext) + "." + filter + ext, nil
}

// Static serves renditions from the media URL.
type Static struct {
	MediaURL string
}

// NewStatic returns a Static renditioner rooted at mediaURL.
func NewStatic(mediaURL string) *Static {
	return &Static{MediaURL: mediaURL}
}

// RenditionURL implements seo.Renditioner.
func (s *Static) RenditionURL(_ context.Context, img *seo.Image, filter string) (string, error) {
	object, err := ObjectPath(img, filter)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s.MediaURL, "/") + "/" + object, nil
}

// GCS signs V4 GET URLs for renditions stored in a Cloud Storage bucket.
// Signing is local; no request reaches Cloud Storage.
type GCS struct {
	bucket     string
	accessID   string
	privateKey []byte
	expiry     time.Duration
	now        func() time.Time
}

// GCSOption customises a GCS renditioner.
type GCSOption func(*GCS)

// WithClock overrides the signing clock.
func WithClock(now func() time.Time) GCSOption {
	return func(g *GCS) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGCS validates the signing parameters and builds a GCS renditioner.
func NewGCS(bucket, accessID, privateKeyPEM string, expiry time.Duration, opts ...GCSOption) (*GCS, error) {
	bucket = strings.TrimSpace(bucket)
	accessID = strings.TrimSpace(accessID)
	switch {
	case bucket == "":
		return nil, errors.New("images: bucket is required")
	case accessID == "":
		return nil, errors.New("images: access id is required")
	case strings.TrimSpace(privateKeyPEM) == "":
		return nil, errors.New("images: private key is required")
	case expiry <= 0 || expiry > 7*24*time.Hour:
		return nil, fmt.Errorf("images: expiry %s outside (0, 168h]", expiry)
	}
	g := &GCS{
		bucket:     bucket,
		accessID:   accessID,
		privateKey: []byte(privateKeyPEM),
		expiry:     expiry,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// RenditionURL implements seo.Renditioner.
func (g *GCS) RenditionURL(ctx context.Context, img *seo.Image, filter string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	object, err := ObjectPath(img, filter)
	if err != nil {
		return "", err
	}
	u, err := storage.SignedURL(g.bucket, object, &storage.SignedURLOptions{
		GoogleAccessID: g.accessID,
		PrivateKey:     g.privateKey,
		Method:         "GET",
		Expires:        g.now().Add(g.expiry),
		Scheme:         storage.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("images: sign %s: %w", object, err)
	}
	return u, nil
}
