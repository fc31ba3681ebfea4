package cms

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-seo/internal/richtext"
	"finitefield.org/hanko-seo/internal/seo"
)

// RootSlug names the site root page file.
const RootSlug = "index"

const (
	defaultContentDir = "content"
	defaultCacheTTL   = 5 * time.Minute
)

// ErrNotFound is returned when no language variant of a page exists.
var ErrNotFound = errors.New("cms: page not found")

// Page is a localized content page with its SEO properties.
type Page struct {
	seo.Page
	Lang    string
	Summary string
	Body    richtext.Text
}

// SiteInfo identifies the site pages belong to.
type SiteInfo struct {
	ID      string
	Name    string
	RootURL string
}

// Client reads markdown pages from content/{lang}/{slug}.md.
type Client struct {
	contentDir string
	site       SiteInfo
	ttl        time.Duration
	now        func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    *Page
	expires time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithCacheTTL overrides the in-memory cache duration.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock overrides the clock used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient constructs a Client rooted at dir.
func NewClient(dir string, site SiteInfo, opts ...Option) *Client {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	site.RootURL = strings.TrimRight(strings.TrimSpace(site.RootURL), "/")
	c := &Client{
		contentDir: dir,
		site:       site,
		ttl:        defaultCacheTTL,
		now:        time.Now,
		cache:      map[string]cacheEntry{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// ContentDir returns the configured directory.
func (c *Client) ContentDir() string { return c.contentDir }

// Site returns the site identity without a root page.
func (c *Client) Site() SiteInfo { return c.site }

// GetPage loads slug in lang, falling back to en then ja. The returned page
// is linked to its site and the site's root page.
func (c *Client) GetPage(ctx context.Context, slug, lang string) (*Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	lang = normalizeLang(lang)

	page, err := c.load(ctx, slug, lang)
	if err != nil {
		return nil, err
	}

	site := &seo.Site{ID: c.site.ID, Name: c.site.Name, RootURL: c.site.RootURL}
	page.Site = site
	if slug == RootSlug {
		site.RootPage = &page.Page
		return page, nil
	}
	root, err := c.load(ctx, RootSlug, lang)
	switch {
	case err == nil:
		root.Site = site
		site.RootPage = &root.Page
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}
	return page, nil
}

// ListPages returns every page available in lang or a fallback language,
// ordered by slug.
func (c *Client) ListPages(ctx context.Context, lang string) ([]*Page, error) {
	lang = normalizeLang(lang)
	seen := map[string]struct{}{}
	for _, candidate := range languagePriority(lang) {
		entries, err := os.ReadDir(filepath.Join(c.contentDir, candidate))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("cms: list %s: %w", candidate, err)
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || filepath.Ext(name) != ".md" {
				continue
			}
			if slug := sanitizeSlug(strings.TrimSuffix(name, ".md")); slug != "" {
				seen[slug] = struct{}{}
			}
		}
	}
	slugs := make([]string, 0, len(seen))
	for slug := range seen {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	pages := make([]*Page, 0, len(slugs))
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := c.GetPage(ctx, slug, lang)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// MenuPages filters pages to those shown in menus, excluding the root.
func MenuPages(pages []*Page) []*Page {
	out := make([]*Page, 0, len(pages))
	for _, p := range pages {
		if p.ShowInMenus && p.Slug != RootSlug {
			out = append(out, p)
		}
	}
	return out
}

func (c *Client) load(ctx context.Context, slug, lang string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := lang + "|" + slug
	if page, ok := c.cached(key); ok {
		return page, nil
	}
	page, err := c.readWithFallback(slug, lang)
	if err != nil {
		return nil, err
	}
	c.store(key, page)
	return clonePage(page), nil
}

func (c *Client) readWithFallback(slug, lang string) (*Page, error) {
	for _, candidate := range languagePriority(lang) {
		page, err := c.readMarkdown(slug, candidate)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		// For other errors (parse issues), stop early.
		return nil, err
	}
	return nil, ErrNotFound
}

func languagePriority(lang string) []string {
	priority := []string{lang}
	if lang != "en" {
		priority = append(priority, "en")
	}
	if lang != "ja" {
		priority = append(priority, "ja")
	}
	return priority
}

func (c *Client) readMarkdown(slug, lang string) (*Page, error) {
	file := filepath.Join(c.contentDir, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	info, statErr := os.Stat(file)
	if statErr != nil {
		info = nil
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return nil, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	page, err := front.page(slug)
	if err != nil {
		return nil, fmt.Errorf("cms: %s: %w", file, err)
	}
	page.Lang = firstNonEmpty(strings.TrimSpace(front.Lang), lang)
	page.Body = richtext.Text(body)
	page.URL = c.pageURL(slug)
	if page.LastPublishedAt.IsZero() && info != nil {
		page.LastPublishedAt = info.ModTime().UTC()
	}
	return page, nil
}

func (c *Client) pageURL(slug string) string {
	if slug == RootSlug {
		return c.site.RootURL + "/"
	}
	return c.site.RootURL + "/" + slug + "/"
}

func (c *Client) cached(key string) (*Page, bool) {
	now := c.now()
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok || now.After(entry.expires) {
		return nil, false
	}
	return clonePage(entry.page), true
}

func (c *Client) store(key string, page *Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{
		page:    clonePage(page),
		expires: c.now().Add(c.ttl),
	}
}

// clonePage copies the page and its slices and maps so cached entries stay
// immutable. Images are shared.
func clonePage(src *Page) *Page {
	cp := *src
	cp.Site = nil
	if src.Fields != nil {
		cp.Fields = make(map[string]string, len(src.Fields))
		for k, v := range src.Fields {
			cp.Fields[k] = v
		}
	}
	if src.Images != nil {
		cp.Images = make(map[string]*seo.Image, len(src.Images))
		for k, v := range src.Images {
			cp.Images[k] = v
		}
	}
	cp.Org.Hours = append([]seo.OpenHours(nil), src.Org.Hours...)
	cp.Org.Actions = append([]seo.Action(nil), src.Org.Actions...)
	return &cp
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") {
		return ""
	}
	if strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return "en"
	}
	return lang
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// scalar captures the raw text of a YAML scalar so dates and decimals are
// parsed by this package rather than the YAML resolver.
type scalar string

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", node.Line)
	}
	*s = scalar(strings.TrimSpace(node.Value))
	return nil
}

func (s scalar) decimal() (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(string(s))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s scalar) timePtr() *time.Time {
	t := parseContentDate(string(s))
	if t.IsZero() {
		return nil
	}
	return &t
}
