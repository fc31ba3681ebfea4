package seo

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/platform/requestctx"
)

// Timestamp encodes as an RFC 3339 string, or null when zero.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(tt.Format(time.RFC3339))
}

// Equal reports whether both timestamps denote the same instant.
func (t Timestamp) Equal(u Timestamp) bool {
	return time.Time(t).Equal(time.Time(u))
}

// JSON marshals v to a compact JSON string. It returns an empty string on
// error. <, > and & are escaped so the output can sit inside a script tag.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// OrganizationBase is the generic Organization data of a page, also used as
// the publisher of articles.
func (r *Resolver) OrganizationBase(ctx context.Context, p *Page) map[string]any {
	sd := map[string]any{
		"@context": structContext,
		"@type":    "Organization",
		"url":      r.CanonicalURL(p),
		"name":     r.OrgName(p),
	}
	if r.Logo(p) != nil {
		sd["logo"] = map[string]any{
			"@type": "ImageObject",
			"url":   r.LogoURL(ctx, p),
		}
	}
	if p.Org.Image != nil {
		sd["image"] = r.StructDataImages(ctx, p, p.Org.Image)
	}
	if p.Org.Phone != "" {
		sd["telephone"] = p.Org.Phone
	}
	if addr := p.Org.Address; addr.Street != "" {
		sd["address"] = map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   addr.Street,
			"addressLocality": addr.Locality,
			"addressRegion":   addr.Region,
			"postalCode":      addr.Postal,
			"addressCountry":  addr.Country,
		}
	}
	return sd
}

// Organization is the full Organization data: the base plus type, geo,
// hours, actions and the page's extra JSON, which is applied last.
func (r *Resolver) Organization(ctx context.Context, p *Page) map[string]any {
	sd := r.OrganizationBase(ctx, p)
	org := p.Org

	if org.Type != "" {
		sd["@type"] = org.Type
	}
	if org.GeoLat != nil && org.GeoLng != nil && !org.GeoLat.IsZero() && !org.GeoLng.IsZero() {
		sd["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  org.GeoLat.InexactFloat64(),
			"longitude": org.GeoLng.InexactFloat64(),
		}
	}
	if len(org.Hours) > 0 {
		hours := make([]map[string]any, 0, len(org.Hours))
		for _, h := range org.Hours {
			hours = append(hours, h.StructDict())
		}
		sd["openingHoursSpecification"] = hours
	}
	if len(org.Actions) > 0 {
		actions := make([]map[string]any, 0, len(org.Actions))
		for i, a := range org.Actions {
			if _, err := decodeExtraJSON(a.ExtraJSON); err != nil {
				requestctx.Logger(ctx).Warn("seo: ignoring action extra json",
					zap.String("page", p.Slug), zap.Int("action", i), zap.Error(err))
			}
			actions = append(actions, a.StructDict())
		}
		sd["potentialAction"] = actions
	}
	if err := mergeExtraJSON(sd, org.ExtraJSON); err != nil {
		requestctx.Logger(ctx).Warn("seo: ignoring organization extra json",
			zap.String("page", p.Slug), zap.Error(err))
	}
	return sd
}

// Publisher is the page's own base organization when it declares an
// organization type, else the site root page's, else nil.
func (r *Resolver) Publisher(ctx context.Context, p *Page) map[string]any {
	if p.Org.Type != "" {
		return r.OrganizationBase(ctx, p)
	}
	if p.Site != nil && p.Site.RootPage != nil {
		root := p.Site.RootPage
		if root.Site == nil {
			rootCopy := *root
			rootCopy.Site = p.Site
			root = &rootCopy
		}
		return r.OrganizationBase(ctx, root)
	}
	return nil
}

// Article is the Article data of a page.
func (r *Resolver) Article(ctx context.Context, p *Page) map[string]any {
	sd := map[string]any{
		"@context": structContext,
		"@type":    "Article",
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   r.CanonicalURL(p),
		},
		"headline":      p.Title,
		"description":   r.Description(p),
		"datePublished": Timestamp(r.PublishedAt(p)),
		"dateModified":  Timestamp(r.ModifiedAt(p)),
		"author": map[string]any{
			"@type": "Person",
			"name":  r.Author(p),
		},
	}
	if img := r.Image(p); img != nil {
		sd["image"] = r.StructDataImages(ctx, p, img)
	}
	if pub := r.Publisher(ctx, p); pub != nil {
		sd["publisher"] = pub
	}
	return sd
}

// OrganizationJSON serializes Organization.
func (r *Resolver) OrganizationJSON(ctx context.Context, p *Page) string {
	return JSON(r.Organization(ctx, p))
}

// ArticleJSON serializes Article.
func (r *Resolver) ArticleJSON(ctx context.Context, p *Page) string {
	return JSON(r.Article(ctx, p))
}
