// Package settings persists per-site SEO settings.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"finitefield.org/hanko-seo/internal/seo"
)

// ErrNotFound is returned by Delete when the site has no stored settings.
var ErrNotFound = errors.New("settings: not found")

// Store loads and saves settings. Get returns defaults for unknown sites.
type Store interface {
	Get(ctx context.Context, siteID string) (seo.Settings, error)
	Save(ctx context.Context, s seo.Settings) error
	Delete(ctx context.Context, siteID string) error
}

func normalizeSiteID(siteID string) (string, error) {
	siteID = strings.TrimSpace(siteID)
	if siteID == "" {
		return "", errors.New("settings: site id is required")
	}
	return siteID, nil
}

func prepare(s seo.Settings) (seo.Settings, error) {
	s.SiteID = strings.TrimSpace(s.SiteID)
	if err := s.Validate(); err != nil {
		return seo.Settings{}, fmt.Errorf("settings: %w", err)
	}
	return s, nil
}
