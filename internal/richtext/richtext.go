// Package richtext renders editor-authored markdown into sanitized HTML.
package richtext

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Text is markdown source that may contain inline HTML.
type Text string

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	policy = newPolicy()
)

var embedHost = regexp.MustCompile(`^https://(www\.youtube(-nocookie)?\.com|player\.vimeo\.com)/`)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	p.AllowAttrs("loading", "width", "height").OnElements("img")
	p.AllowAttrs("src").Matching(embedHost).OnElements("iframe")
	p.AllowAttrs("width", "height", "allowfullscreen", "frameborder").OnElements("iframe")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Render converts the markdown to sanitized HTML.
func (t Text) Render() (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(t), &buf); err != nil {
		return "", fmt.Errorf("richtext: convert: %w", err)
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

// Sanitize cleans an HTML fragment with the rich-text policy.
func Sanitize(s string) template.HTML {
	return template.HTML(policy.Sanitize(s))
}
