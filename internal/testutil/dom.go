// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// MetaContent returns the content attribute of the first meta tag whose
// name or property equals key, and whether one was found.
func MetaContent(doc *goquery.Document, key string) (string, bool) {
	sel := doc.Find(`meta[name="` + key + `"], meta[property="` + key + `"]`).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Attr("content")
}

// HeadTags lists the head's meta and link tags as "name", "property" or
// "rel" identifiers in document order.
func HeadTags(doc *goquery.Document) []string {
	var out []string
	doc.Find("title, meta[name], meta[property], link[rel]").Each(func(_ int, s *goquery.Selection) {
		switch {
		case goquery.NodeName(s) == "title":
			out = append(out, "title")
		case s.Is("link"):
			rel, _ := s.Attr("rel")
			out = append(out, "link:"+rel)
		default:
			if v, ok := s.Attr("property"); ok {
				out = append(out, v)
				return
			}
			v, _ := s.Attr("name")
			out = append(out, v)
		}
	})
	return out
}

// Text returns the trimmed text of the first match of selector.
func Text(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}
