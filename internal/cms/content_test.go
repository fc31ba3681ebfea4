package cms

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/hanko-seo/internal/seo"
)

const indexEN = `---
title: Hanko Field
seo_title: Hanko Field | Custom Seals
search_description: Handcrafted seals made to order.
show_in_menus: false
struct_org:
  type: Store
  name: Hanko Field Store
  logo:
    id: "1"
    title: Logo
    file: original_images/logo.png
    width: 400
    height: 400
  phone: "+81-3-1234-5678"
  address:
    street: 1-1-1 Marunouchi
    locality: Chiyoda
    region: Tokyo
    postal: 100-0005
    country: JP
  geo_lat: 35.68123456
  geo_lng: 139.76712345
  hours:
    - days: [Monday, Tuesday]
      start_time: 09:00
      end_time: "18:30:00"
  actions:
    - action_type: ReserveAction
      target: https://example.com/book
      language: ja-JP
      result_type: Reservation
      result_name: Book a consultation
  extra_json: '{"priceRange": "$$"}'
---
Welcome to **Hanko Field**.
`

const journalEN = `---
title: Care Journal
search_description: How to care for a seal.
content_type: article
twitter_card: summary_large_image
author: Aiko Tanaka
published_at: 2024-03-01T09:30:00Z
modified_at: 2024-03-05
show_in_menus: true
og_image:
  id: "7"
  title: Care
  file: original_images/care.jpg
  width: 1200
  height: 800
fields:
  subtitle: Keep your seal sharp
sources:
  description: [subtitle, search_description]
---
# Care

Wipe after use.
`

const journalJA = `---
title: お手入れ日誌
show_in_menus: true
---
使用後は拭き取ってください。
`

func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func newTestClient(t *testing.T, files map[string]string, opts ...Option) *Client {
	t.Helper()
	dir := writeContent(t, files)
	return NewClient(dir, SiteInfo{ID: "default", Name: "Hanko Field", RootURL: "https://example.com/"}, opts...)
}

func TestGetPageParsesFrontMatter(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, map[string]string{
		"en/index.md":   indexEN,
		"en/journal.md": journalEN,
	})
	ctx := context.Background()

	page, err := c.GetPage(ctx, "Journal/", "en")
	require.NoError(t, err)
	require.Equal(t, "journal", page.Slug)
	require.Equal(t, "en", page.Lang)
	require.Equal(t, "https://example.com/journal/", page.URL)
	require.Equal(t, seo.ContentTypeArticle, page.ContentType)
	require.Equal(t, seo.TwitterCardLargeImage, page.TwitterCard)
	require.Equal(t, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), *page.PublishedAt)
	require.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *page.ModifiedAt)
	require.Equal(t, "original_images/care.jpg", page.OGImage.File)
	require.Equal(t, []string{"subtitle", "search_description"}, page.DescriptionSources)
	require.Contains(t, string(page.Body), "Wipe after use.")
	require.False(t, page.LastPublishedAt.IsZero())

	require.NotNil(t, page.Site)
	require.Equal(t, "https://example.com", page.Site.RootURL)
	require.NotNil(t, page.Site.RootPage)
	require.Equal(t, "Store", page.Site.RootPage.Org.Type)
	require.Same(t, page.Site, page.Site.RootPage.Site)

	r := seo.NewResolver()
	require.Equal(t, "Keep your seal sharp", r.Description(&page.Page))
}

func TestGetPageOrganization(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, map[string]string{"en/index.md": indexEN})

	root, err := c.GetPage(context.Background(), RootSlug, "en")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/", root.URL)
	require.Same(t, &root.Page, root.Site.RootPage)

	org := root.Org
	require.Equal(t, "Hanko Field Store", org.Name)
	require.Equal(t, "100-0005", org.Address.Postal)
	require.Equal(t, "35.68123456", org.GeoLat.String())
	require.Equal(t, "139.76712345", org.GeoLng.String())
	require.Len(t, org.Hours, 1)
	require.Equal(t, seo.TimeOfDay{Hour: 9}, org.Hours[0].Opens)
	require.Equal(t, seo.TimeOfDay{Hour: 18, Minute: 30}, org.Hours[0].Closes)
	require.Equal(t, "ja-JP", org.Actions[0].Language)
	require.Equal(t, `{"priceRange": "$$"}`, org.ExtraJSON)
	require.NoError(t, root.Validate())
}

func TestGetPageLanguageFallback(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, map[string]string{
		"en/journal.md": journalEN,
		"ja/journal.md": journalJA,
		"ja/about.md":   "---\ntitle: 会社概要\n---\n",
	})
	ctx := context.Background()

	ja, err := c.GetPage(ctx, "journal", "ja-JP")
	require.NoError(t, err)
	require.Equal(t, "お手入れ日誌", ja.Title)
	require.Equal(t, "ja", ja.Lang)
	require.Nil(t, ja.Site.RootPage)

	fr, err := c.GetPage(ctx, "journal", "fr")
	require.NoError(t, err)
	require.Equal(t, "Care Journal", fr.Title)

	about, err := c.GetPage(ctx, "about", "en")
	require.NoError(t, err)
	require.Equal(t, "ja", about.Lang)

	_, err = c.GetPage(ctx, "missing", "en")
	require.True(t, errors.Is(err, ErrNotFound))
	_, err = c.GetPage(ctx, "../secrets", "en")
	require.True(t, errors.Is(err, ErrNotFound))
	_, err = c.GetPage(ctx, "a/b", "en")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestGetPageDefaultsTitleFromSlug(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, map[string]string{"en/shipping-policy.md": "No front matter here.\n"})
	page, err := c.GetPage(context.Background(), "shipping-policy", "en")
	require.NoError(t, err)
	require.Equal(t, "Shipping Policy", page.Title)
	require.Equal(t, "No front matter here.\n", string(page.Body))
}

func TestGetPageRejectsBadFrontMatter(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, map[string]string{
		"en/broken.md":  "---\ntitle: [unterminated\n---\n",
		"en/badgeo.md":  "---\nstruct_org:\n  geo_lat: north\n---\n",
		"en/badtime.md": "---\nstruct_org:\n  hours:\n    - days: [Monday]\n      start_time: noon\n      end_time: \"17:00\"\n---\n",
	})
	ctx := context.Background()
	for _, slug := range []string{"broken", "badgeo", "badtime"} {
		_, err := c.GetPage(ctx, slug, "en")
		require.Error(t, err, slug)
		require.False(t, errors.Is(err, ErrNotFound), slug)
	}
}

func TestGetPageCache(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newTestClient(t, map[string]string{"en/about.md": "---\ntitle: About\n---\n"},
		WithCacheTTL(time.Minute), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	page, err := c.GetPage(ctx, "about", "en")
	require.NoError(t, err)
	require.Equal(t, "About", page.Title)
	page.Title = "mutated"

	path := filepath.Join(c.ContentDir(), "en", "about.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: About Us\n---\n"), 0o644))

	page, err = c.GetPage(ctx, "about", "en")
	require.NoError(t, err)
	require.Equal(t, "About", page.Title)

	now = now.Add(2 * time.Minute)
	page, err = c.GetPage(ctx, "about", "en")
	require.NoError(t, err)
	require.Equal(t, "About Us", page.Title)
}

func TestListPages(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, map[string]string{
		"en/index.md":   indexEN,
		"en/journal.md": journalEN,
		"ja/journal.md": journalJA,
		"ja/about.md":   "---\ntitle: 会社概要\nshow_in_menus: true\n---\n",
		"ja/notes.txt":  "ignored",
	})

	pages, err := c.ListPages(context.Background(), "ja")
	require.NoError(t, err)
	slugs := make([]string, 0, len(pages))
	for _, p := range pages {
		slugs = append(slugs, p.Slug)
	}
	require.Equal(t, []string{"about", "index", "journal"}, slugs)
	require.Equal(t, "お手入れ日誌", pages[2].Title)

	menu := MenuPages(pages)
	require.Len(t, menu, 2)
	require.Equal(t, "about", menu[0].Slug)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.ListPages(ctx, "en")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()
	fm, body := splitFrontMatter("\ufeff---\ntitle: x\n---\n\nbody\n")
	require.Equal(t, "title: x", fm)
	require.Equal(t, "body\n", body)

	fm, body = splitFrontMatter("---\nunterminated")
	require.Empty(t, fm)
	require.Equal(t, "---\nunterminated", body)
}
