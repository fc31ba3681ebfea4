// Package amp rewrites HTML fragments into AMP HTML.
package amp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Convert renames img to amp-img and iframe to amp-iframe with a responsive
// layout. With pretty set the result is indented one space per depth, one
// node per line. Converting AMP output again leaves it unchanged.
func Convert(src string, pretty bool) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	root, err := parseFragment(src)
	if err != nil {
		return "", err
	}

	doc := goquery.NewDocumentFromNode(root)
	// Iframe bodies may nest further iframes once re-parsed.
	for iframes := doc.Find("iframe"); iframes.Length() > 0; iframes = doc.Find("iframe") {
		var err error
		iframes.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			n := s.Get(0)
			rename(n, "amp-iframe")
			s.SetAttr("layout", "responsive")
			err = reparseChildren(n)
			return err == nil
		})
		if err != nil {
			return "", err
		}
	}
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		rename(s.Get(0), "amp-img")
	})

	var buf bytes.Buffer
	if pretty {
		prettify(&buf, root)
		return buf.String(), nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("amp: render: %w", err)
		}
	}
	return buf.String(), nil
}

func parseFragment(src string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), body)
	if err != nil {
		return nil, fmt.Errorf("amp: parse: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body, nil
}

// reparseChildren turns the raw text the parser keeps inside an iframe back
// into markup, so placeholder and fallback children survive as elements.
func reparseChildren(n *html.Node) error {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			return nil
		}
		text.WriteString(c.Data)
	}
	if text.Len() == 0 {
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(text.String()), n)
	if err != nil {
		return fmt.Errorf("amp: parse iframe content: %w", err)
	}
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// rename clears the atom so the renderer treats the node as a normal
// element with an explicit closing tag.
func rename(n *html.Node, name string) {
	n.Data = name
	n.DataAtom = 0
}
