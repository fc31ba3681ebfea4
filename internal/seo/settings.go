package seo

import (
	"strings"
	"unicode/utf8"
)

// MaxTwitterSiteLength bounds the Twitter handle, including any "@".
const MaxTwitterSiteLength = 16

// Settings toggles SEO features for one site.
type Settings struct {
	SiteID      string `yaml:"site_id" json:"site_id" firestore:"siteId"`
	OGMeta      bool   `yaml:"og_meta" json:"og_meta" firestore:"ogMeta"`
	TwitterMeta bool   `yaml:"twitter_meta" json:"twitter_meta" firestore:"twitterMeta"`
	TwitterSite string `yaml:"twitter_site" json:"twitter_site" firestore:"twitterSite"`
	StructMeta  bool   `yaml:"struct_meta" json:"struct_meta" firestore:"structMeta"`
	AMPPages    bool   `yaml:"amp_pages" json:"amp_pages" firestore:"ampPages"`
}

// DefaultSettings returns the settings a site starts with.
func DefaultSettings(siteID string) Settings {
	return Settings{
		SiteID:      siteID,
		OGMeta:      true,
		TwitterMeta: true,
		StructMeta:  true,
	}
}

// AtTwitterSite returns the handle with exactly one leading "@".
func (s Settings) AtTwitterSite() string {
	return "@" + strings.TrimLeft(strings.TrimSpace(s.TwitterSite), "@")
}

// HasTwitterSite reports whether a handle is configured.
func (s Settings) HasTwitterSite() bool {
	return strings.TrimLeft(strings.TrimSpace(s.TwitterSite), "@") != ""
}

// Validate checks the settings the way the admin form would.
func (s Settings) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(s.SiteID) == "" {
		verr.Add("site_id", "This field is required.")
	}
	if utf8.RuneCountInString(s.TwitterSite) > MaxTwitterSiteLength {
		verr.Add("twitter_site", maxLengthMessage(MaxTwitterSiteLength, s.TwitterSite))
	}
	return verr.OrNil()
}
