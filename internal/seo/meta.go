package seo

import (
	"context"
	"time"
)

// OpenGraph holds og:* values. The article fields are set for article pages.
type OpenGraph struct {
	Title         string
	Description   string
	Image         string
	SiteName      string
	URL           string
	Type          string
	PublishedTime string
	ModifiedTime  string
	Author        string
}

// Twitter holds twitter:* values. Site is empty when no handle is configured.
type Twitter struct {
	Card  string
	Title string
	Image string
	Site  string
}

// Meta is everything a page head needs. OG and Twitter are nil when the
// site disables them.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	AMPURL      string
	OG          *OpenGraph
	Twitter     *Twitter

	OrganizationJSON string
	ArticleJSON      string
}

// Meta resolves the head metadata of p under the site settings s.
func (r *Resolver) Meta(ctx context.Context, p *Page, s Settings) Meta {
	title := r.PageTitle(p)
	imageURL := r.ImageURL(ctx, p)
	m := Meta{
		Title:       title,
		Description: r.Description(p),
		Canonical:   r.CanonicalURL(p),
	}
	if s.AMPPages {
		m.AMPURL = r.AMPURL(p)
	}
	if s.OGMeta {
		og := &OpenGraph{
			Title:       title,
			Description: m.Description,
			Image:       imageURL,
			SiteName:    r.SiteName(p),
			URL:         m.Canonical,
			Type:        r.OGType(p),
		}
		if p.IsArticle() {
			og.PublishedTime = formatTime(r.PublishedAt(p))
			og.ModifiedTime = formatTime(r.ModifiedAt(p))
			og.Author = r.Author(p)
		}
		m.OG = og
	}
	if s.TwitterMeta {
		tw := &Twitter{
			Card:  r.TwitterCardContent(p),
			Title: title,
			Image: imageURL,
		}
		if s.HasTwitterSite() {
			tw.Site = s.AtTwitterSite()
		}
		m.Twitter = tw
	}
	if s.StructMeta {
		if p.Org.Type != "" {
			m.OrganizationJSON = r.OrganizationJSON(ctx, p)
		}
		if p.IsArticle() {
			m.ArticleJSON = r.ArticleJSON(ctx, p)
		}
	}
	return m
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
