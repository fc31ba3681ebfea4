package seo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/platform/requestctx"
)

// DefaultSeparator joins page title and site name in fallback titles.
const DefaultSeparator = "—"

// Resolver computes the SEO properties of a page. The zero value is not
// usable; construct one with NewResolver.
type Resolver struct {
	sep         string
	renditioner Renditioner
	mediaURL    string
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithSeparator sets the title separator.
func WithSeparator(sep string) Option {
	return func(r *Resolver) {
		if sep != "" {
			r.sep = sep
		}
	}
}

// WithRenditioner sets the image rendition backend.
func WithRenditioner(rn Renditioner) Option {
	return func(r *Resolver) { r.renditioner = rn }
}

// WithMediaURL sets the configured media URL. An absolute media URL disables
// prefixing rendition URLs with the site root.
func WithMediaURL(u string) Option {
	return func(r *Resolver) { r.mediaURL = u }
}

// NewResolver builds a Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{sep: DefaultSeparator, mediaURL: "/media/"}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// PageTitle is the search/Open Graph title.
func (r *Resolver) PageTitle(p *Page) string {
	if v := firstText(p, sourcesOr(p.PageTitleSources, DefaultPageTitleSources)); v != "" {
		return v
	}
	return strings.TrimRight(fmt.Sprintf("%s %s %s", p.Title, r.sep, r.SiteName(p)), " ")
}

// Description is the search/Open Graph description, or "".
func (r *Resolver) Description(p *Page) string {
	return firstText(p, sourcesOr(p.DescriptionSources, DefaultDescriptionSources))
}

// CanonicalURL falls back to the page's full URL.
func (r *Resolver) CanonicalURL(p *Page) string {
	if v := firstText(p, sourcesOr(p.CanonicalURLSources, DefaultCanonicalURLSources)); v != "" {
		return v
	}
	return p.URL
}

// Image is the preferred Open Graph image, or nil.
func (r *Resolver) Image(p *Page) *Image {
	return firstImage(p, sourcesOr(p.ImageSources, DefaultImageSources))
}

// ImageURL is the absolute URL of the original rendition of Image, or "".
func (r *Resolver) ImageURL(ctx context.Context, p *Page) string {
	return r.absoluteRendition(ctx, p, r.Image(p), RenditionOriginal)
}

// Logo is the organization logo, or nil.
func (r *Resolver) Logo(p *Page) *Image {
	return p.Org.Logo
}

// LogoURL is the absolute URL of the original logo rendition, or "".
func (r *Resolver) LogoURL(ctx context.Context, p *Page) string {
	return r.absoluteRendition(ctx, p, r.Logo(p), RenditionOriginal)
}

// OGType is the Open Graph type, website unless set.
func (r *Resolver) OGType(p *Page) string {
	if p.ContentType == "" {
		return string(defaultContentType)
	}
	return string(p.ContentType)
}

// TwitterCardContent is the twitter:card value, summary unless set.
func (r *Resolver) TwitterCardContent(p *Page) string {
	if p.TwitterCard == "" {
		return string(defaultTwitterCard)
	}
	return string(p.TwitterCard)
}

// SiteName is the name of the page's site, or "".
func (r *Resolver) SiteName(p *Page) string {
	if p.Site == nil {
		return ""
	}
	return p.Site.Name
}

// OrgName is the organization name, falling back to the site name.
func (r *Resolver) OrgName(p *Page) string {
	if strings.TrimSpace(p.Org.Name) != "" {
		return p.Org.Name
	}
	return r.SiteName(p)
}

// Author is the override, else the owner's full name, else "".
func (r *Resolver) Author(p *Page) string {
	if strings.TrimSpace(p.Author) != "" {
		return p.Author
	}
	return p.Owner
}

// PublishedAt is the override, else the first publication time.
func (r *Resolver) PublishedAt(p *Page) time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.FirstPublishedAt
}

// ModifiedAt is the override, else the last publication time.
func (r *Resolver) ModifiedAt(p *Page) time.Time {
	if p.ModifiedAt != nil {
		return *p.ModifiedAt
	}
	return p.LastPublishedAt
}

// AMPURL is the page URL with an "amp/" segment appended.
func (r *Resolver) AMPURL(p *Page) string {
	if p.URL == "" {
		return ""
	}
	return strings.TrimRight(p.URL, "/") + "/amp/"
}

func (r *Resolver) mediaBase(p *Page) string {
	return AbsoluteMediaBase(p.Site, r.mediaURL)
}

// absoluteRendition returns "" and logs when the rendition cannot be produced.
func (r *Resolver) absoluteRendition(ctx context.Context, p *Page, img *Image, filter string) string {
	if img == nil {
		return ""
	}
	if r.renditioner == nil {
		requestctx.Logger(ctx).Warn("seo: rendition skipped", zap.String("image", img.File), zap.Error(errNoRenditioner))
		return ""
	}
	u, err := r.renditioner.RenditionURL(ctx, img, filter)
	if err != nil {
		requestctx.Logger(ctx).Warn("seo: rendition failed",
			zap.String("image", img.File),
			zap.String("filter", filter),
			zap.Error(err),
		)
		return ""
	}
	return EnsureAbsoluteURL(u, r.mediaBase(p))
}

// StructDataImages returns absolute URLs for the 1:1, 4:3 and 16:9 crops of
// img. Crops that fail are left out.
func (r *Resolver) StructDataImages(ctx context.Context, p *Page, img *Image) []string {
	images := make([]string, 0, len(StructImageFilters))
	for _, filter := range StructImageFilters {
		if u := r.absoluteRendition(ctx, p, img, filter); u != "" {
			images = append(images, u)
		}
	}
	return images
}
