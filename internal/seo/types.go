package seo

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ContentType is the Open Graph type of a page.
type ContentType string

const (
	ContentTypeArticle ContentType = "article"
	ContentTypeWebsite ContentType = "website"
)

// TwitterCard is the style of Twitter card shown for a page.
type TwitterCard string

const (
	TwitterCardApp        TwitterCard = "app"
	TwitterCardLargeImage TwitterCard = "summary_large_image"
	TwitterCardPlayer     TwitterCard = "player"
	TwitterCardSummary    TwitterCard = "summary"
)

const (
	defaultTwitterCard    = TwitterCardSummary
	defaultContentType    = ContentTypeWebsite
	defaultActionLanguage = "en-US"
	structContext         = "http://schema.org"

	// RenditionOriginal is the filter for the unresized image.
	RenditionOriginal = "original"
)

// Default attribute chains, in order of preference.
var (
	DefaultDescriptionSources  = []string{"search_description"}
	DefaultCanonicalURLSources = []string{"canonical_url"}
	DefaultImageSources        = []string{"og_image"}
	DefaultPageTitleSources    = []string{"seo_title"}
)

// FocalPoint marks the region of an image that crops should keep.
type FocalPoint struct {
	X      int `yaml:"x" json:"x"`
	Y      int `yaml:"y" json:"y"`
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Image references a stored image. File is the storage path of the original.
type Image struct {
	ID         string      `yaml:"id" json:"id"`
	Title      string      `yaml:"title" json:"title"`
	File       string      `yaml:"file" json:"file"`
	Width      int         `yaml:"width" json:"width"`
	Height     int         `yaml:"height" json:"height"`
	FocalPoint *FocalPoint `yaml:"focal_point,omitempty" json:"focal_point,omitempty"`
}

// Site is the site a page belongs to.
type Site struct {
	ID       string
	Name     string
	RootURL  string
	RootPage *Page
}

// Address is a postal address. Street gates whether it is emitted at all.
type Address struct {
	Street   string `yaml:"street" json:"street"`
	Locality string `yaml:"locality" json:"locality"`
	Region   string `yaml:"region" json:"region"`
	Postal   string `yaml:"postal" json:"postal"`
	Country  string `yaml:"country" json:"country"`
}

// Organization holds the struct_org_* fields of a page.
type Organization struct {
	Type      string
	Name      string
	Logo      *Image
	Image     *Image
	Phone     string
	Address   Address
	GeoLat    *decimal.Decimal
	GeoLng    *decimal.Decimal
	Hours     []OpenHours
	Actions   []Action
	ExtraJSON string
}

// Page carries the SEO fields of one content page.
type Page struct {
	Title             string
	Slug              string
	URL               string
	SEOTitle          string
	SearchDescription string
	CanonicalURL      string
	OGImage           *Image
	Owner             string
	FirstPublishedAt  time.Time
	LastPublishedAt   time.Time

	Author      string
	PublishedAt *time.Time
	ModifiedAt  *time.Time
	ContentType ContentType
	TwitterCard TwitterCard

	Org         Organization
	Site        *Site
	ShowInMenus bool

	Fields map[string]string
	Images map[string]*Image

	DescriptionSources  []string
	CanonicalURLSources []string
	ImageSources        []string
	PageTitleSources    []string
}

// IsArticle reports whether the page is typed as an article.
func (p *Page) IsArticle() bool {
	return p != nil && p.ContentType == ContentTypeArticle
}

// textAttr resolves a named text attribute. ok is false when the page has no
// such attribute.
func (p *Page) textAttr(name string) (string, bool) {
	switch name {
	case "seo_title":
		return p.SEOTitle, true
	case "search_description":
		return p.SearchDescription, true
	case "canonical_url":
		return p.CanonicalURL, true
	case "title":
		return p.Title, true
	case "slug":
		return p.Slug, true
	}
	if p.Fields != nil {
		v, ok := p.Fields[name]
		return v, ok
	}
	return "", false
}

func (p *Page) imageAttr(name string) (*Image, bool) {
	switch name {
	case "og_image":
		return p.OGImage, true
	case "struct_org_logo":
		return p.Org.Logo, true
	case "struct_org_image":
		return p.Org.Image, true
	}
	if p.Images != nil {
		v, ok := p.Images[name]
		return v, ok
	}
	return nil, false
}

func firstText(p *Page, sources []string) string {
	for _, name := range sources {
		if v, ok := p.textAttr(name); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstImage(p *Page, sources []string) *Image {
	for _, name := range sources {
		if img, ok := p.imageAttr(name); ok && img != nil {
			return img
		}
	}
	return nil
}

func sourcesOr(sources, fallback []string) []string {
	if sources == nil {
		return fallback
	}
	return sources
}
