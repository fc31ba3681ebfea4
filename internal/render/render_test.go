package render

import (
	"context"
	"encoding/json"
	"html/template"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/hanko-seo/internal/images"
	"finitefield.org/hanko-seo/internal/richtext"
	"finitefield.org/hanko-seo/internal/seo"
	"finitefield.org/hanko-seo/internal/testutil"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	resolver := seo.NewResolver(
		seo.WithRenditioner(images.NewStatic("/media/")),
		seo.WithMediaURL("/media/"),
	)
	r, err := New(resolver)
	require.NoError(t, err)
	return r
}

func testPage() *seo.Page {
	site := &seo.Site{ID: "default", Name: "Hanko Field", RootURL: "https://example.com"}
	return &seo.Page{
		Title:             "Full Seo Page",
		Slug:              "fullseo",
		URL:               "https://example.com/fullseo/",
		SEOTitle:          "Custom Title",
		SearchDescription: "Custom Description",
		OGImage:           &seo.Image{Title: "OG", File: "original_images/og.png"},
		Owner:             "Aiko Tanaka",
		Site:              site,
		Org: seo.Organization{
			Type: "Store",
			Name: "Hanko Field Store",
			Logo: &seo.Image{Title: "Logo", File: "original_images/logo.png"},
		},
	}
}

func allSettings() seo.Settings {
	s := seo.DefaultSettings("default")
	s.TwitterSite = "hankofield"
	s.AMPPages = true
	return s
}

func TestHeadTagOrder(t *testing.T) {
	t.Parallel()
	r := newTestRenderer(t)
	head, err := r.Head(context.Background(), testPage(), allSettings())
	require.NoError(t, err)

	doc := testutil.ParseHTML(t, []byte(head))
	require.Equal(t, []string{
		"title",
		"link:canonical",
		"description",
		"og:title",
		"og:description",
		"og:image",
		"og:site_name",
		"og:url",
		"og:type",
		"twitter:card",
		"twitter:title",
		"twitter:image",
		"twitter:site",
		"link:amphtml",
	}, testutil.HeadTags(doc))

	require.Equal(t, "Custom Title", testutil.Text(doc, "title"))
	img, _ := testutil.MetaContent(doc, "og:image")
	require.Equal(t, "https://example.com/media/original_images/og.png", img)
	site, _ := testutil.MetaContent(doc, "twitter:site")
	require.Equal(t, "@hankofield", site)
	amp, _ := doc.Find(`link[rel="amphtml"]`).Attr("href")
	require.Equal(t, "https://example.com/fullseo/amp/", amp)

	scripts := doc.Find(`script[type="application/ld+json"]`)
	require.Equal(t, 1, scripts.Length())
	var org map[string]any
	require.NoError(t, json.Unmarshal([]byte(scripts.Text()), &org))
	require.Equal(t, "Store", org["@type"])
	require.Equal(t, "Hanko Field Store", org["name"])
}

func TestHeadRespectsSettings(t *testing.T) {
	t.Parallel()
	r := newTestRenderer(t)
	page := testPage()
	page.OGImage = nil
	page.Org = seo.Organization{}

	head, err := r.Head(context.Background(), page, seo.Settings{SiteID: "default", TwitterMeta: true})
	require.NoError(t, err)
	doc := testutil.ParseHTML(t, []byte(head))

	require.Equal(t, []string{
		"title", "link:canonical", "description",
		"twitter:card", "twitter:title", "twitter:image",
	}, testutil.HeadTags(doc))
	card, _ := testutil.MetaContent(doc, "twitter:card")
	require.Equal(t, "summary", card)
	image, ok := testutil.MetaContent(doc, "twitter:image")
	require.True(t, ok)
	require.Empty(t, image)
	require.Equal(t, 0, doc.Find("script").Length())
}

func TestHeadArticle(t *testing.T) {
	t.Parallel()
	r := newTestRenderer(t)
	page := testPage()
	page.ContentType = seo.ContentTypeArticle
	published := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	page.PublishedAt = &published

	head, err := r.Head(context.Background(), page, seo.DefaultSettings("default"))
	require.NoError(t, err)
	doc := testutil.ParseHTML(t, []byte(head))

	pub, ok := testutil.MetaContent(doc, "article:published_time")
	require.True(t, ok)
	require.Equal(t, "2024-03-01T09:30:00Z", pub)
	author, _ := testutil.MetaContent(doc, "article:author")
	require.Equal(t, "Aiko Tanaka", author)
	_, ok = testutil.MetaContent(doc, "twitter:site")
	require.False(t, ok)

	scripts := doc.Find(`script[type="application/ld+json"]`)
	require.Equal(t, 2, scripts.Length())
	var article map[string]any
	require.NoError(t, json.Unmarshal([]byte(scripts.Eq(1).Text()), &article))
	require.Equal(t, "Article", article["@type"])
	require.Equal(t, "2024-03-01T09:30:00Z", article["datePublished"])
}

func TestHeadEscapesScriptBreakout(t *testing.T) {
	t.Parallel()
	r := newTestRenderer(t)
	page := testPage()
	page.Org.Name = `</script><script>alert(1)</script>`

	head, err := r.Head(context.Background(), page, seo.DefaultSettings("default"))
	require.NoError(t, err)
	require.NotContains(t, string(head), "<script>alert(1)")
	require.Contains(t, string(head), `</script>`)
}

func TestPageDocument(t *testing.T) {
	t.Parallel()
	r := newTestRenderer(t)
	doc := Document{
		Lang: "ja",
		Page: testPage(),
		Body: richtext.Text("Hello **world**\n\n<script>alert(1)</script>\n\n![Seal](/media/seal.png)"),
		Menu: []MenuItem{{Title: "About", URL: "https://example.com/about/"}},
	}
	out, err := r.Page(context.Background(), doc, allSettings())
	require.NoError(t, err)

	html := testutil.ParseHTML(t, out)
	lang, _ := html.Find("html").Attr("lang")
	require.Equal(t, "ja", lang)
	require.Equal(t, "Full Seo Page", testutil.Text(html, "main h1"))
	require.Equal(t, "world", testutil.Text(html, "main strong"))
	require.Equal(t, 1, html.Find("main img").Length())
	require.Equal(t, 0, html.Find("main script").Length())
	require.Equal(t, "About", testutil.Text(html, "nav a"))
	require.Equal(t, 1, html.Find(`head link[rel="amphtml"]`).Length())

	_, err = r.Page(context.Background(), Document{}, allSettings())
	require.Error(t, err)
}

func TestAMPPageDocument(t *testing.T) {
	t.Parallel()
	r := newTestRenderer(t)
	doc := Document{
		Page: testPage(),
		Body: richtext.Text("![Seal](/media/seal.png)"),
		Menu: []MenuItem{{Title: "About", URL: "/about/"}},
	}
	out, err := r.AMPPage(context.Background(), doc, allSettings())
	require.NoError(t, err)

	html := testutil.ParseHTML(t, out)
	_, ok := html.Find("html").Attr("amp")
	require.True(t, ok)
	lang, _ := html.Find("html").Attr("lang")
	require.Equal(t, "en", lang)
	canonical, _ := html.Find(`link[rel="canonical"]`).Attr("href")
	require.Equal(t, "https://example.com/fullseo/", canonical)
	require.Equal(t, 0, html.Find(`link[rel="amphtml"]`).Length())
	require.Equal(t, 0, html.Find("nav").Length())
	require.Equal(t, 0, html.Find("main img").Length())
	src, _ := html.Find("main amp-img").Attr("src")
	require.Equal(t, "/media/seal.png", src)
	require.NotZero(t, html.Find("style[amp-boilerplate]").Length())
}

func TestConvertToAMP(t *testing.T) {
	t.Parallel()

	got, err := ConvertToAMP(template.HTML(`<p><img src="/a.png"></p>`))
	require.NoError(t, err)
	require.Equal(t, template.HTML(`<p><amp-img src="/a.png"></amp-img></p>`), got)

	got, err = ConvertToAMP(`<img src="/a.png" onerror="x()">`)
	require.NoError(t, err)
	require.NotContains(t, string(got), "onerror")
	require.Contains(t, string(got), "<amp-img")

	got, err = ConvertToAMP(richtext.Text("![x](/b.png)"))
	require.NoError(t, err)
	require.Contains(t, string(got), `<amp-img src="/b.png" alt="x">`)

	got, err = ConvertToAMP(nil)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = ConvertToAMP(42)
	require.Error(t, err)
}

func TestSEOJSON(t *testing.T) {
	t.Parallel()
	require.Equal(t, template.JS(`{"a":"\u003cb\u003e"}`), SEOJSON(map[string]string{"a": "<b>"}))
}

func TestWithTemplateFS(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"templates/all.tmpl": {Data: []byte(strings.Join([]string{
			`{{define "meta"}}<title>{{.Title}}!</title>{{end}}`,
			`{{define "struct_data"}}{{end}}`,
			`{{define "head"}}{{template "meta" .}}{{end}}`,
			`{{define "page"}}{{template "head" .Meta}}{{end}}`,
			`{{define "amp_page"}}{{template "head" .Meta}}{{end}}`,
		}, ""))},
	}
	r, err := New(nil, WithTemplateFS(fsys))
	require.NoError(t, err)
	head, err := r.Head(context.Background(), &seo.Page{Title: "Home", SEOTitle: "Home"}, seo.Settings{})
	require.NoError(t, err)
	require.Equal(t, template.HTML("<title>Home!</title>"), head)

	_, err = New(nil, WithTemplateFS(fstest.MapFS{
		"templates/partial.tmpl": {Data: []byte(`{{define "meta"}}{{end}}`)},
	}))
	require.Error(t, err)
}
