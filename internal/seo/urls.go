package seo

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// Renditioner produces the URL of a resized copy of an image.
type Renditioner interface {
	RenditionURL(ctx context.Context, img *Image, filter string) (string, error)
}

// RenditionerFunc adapts a function to Renditioner.
type RenditionerFunc func(ctx context.Context, img *Image, filter string) (string, error)

// RenditionURL calls f.
func (f RenditionerFunc) RenditionURL(ctx context.Context, img *Image, filter string) (string, error) {
	return f(ctx, img, filter)
}

// Crops used for structured-data images: 1:1, 4:3 and 16:9.
var StructImageFilters = []string{"fill-10000x10000", "fill-40000x30000", "fill-16000x9000"}

var errNoRenditioner = errors.New("seo: no renditioner configured")

// protocolRE matches a leading scheme such as "https://" or a
// protocol-relative "//".
var protocolRE = regexp.MustCompile(`^(\w[\w.\-+]*:)*//`)

// IsAbsoluteURL reports whether u starts with a protocol or "//".
func IsAbsoluteURL(u string) bool {
	return protocolRE.MatchString(u)
}

// EnsureAbsoluteURL prefixes base to u unless u is already absolute.
func EnsureAbsoluteURL(u, base string) string {
	if u == "" || IsAbsoluteURL(u) {
		return u
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return base + u
}

// AbsoluteMediaBase returns the base used to make media URLs absolute: the
// site root URL, or "" when the media URL is itself absolute.
func AbsoluteMediaBase(site *Site, mediaURL string) string {
	if IsAbsoluteURL(mediaURL) || site == nil {
		return ""
	}
	return site.RootURL
}
