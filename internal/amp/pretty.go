package amp

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var rawTextElements = map[string]bool{"script": true, "style": true}

// Whitespace is significant inside these, so they are written verbatim.
var preformattedElements = map[string]bool{"pre": true, "textarea": true}

func prettify(buf *bytes.Buffer, root *html.Node) {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		writePretty(buf, c, 0)
	}
}

func writePretty(buf *bytes.Buffer, n *html.Node, depth int) {
	indent := strings.Repeat(" ", depth)
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return
		}
		buf.WriteString(indent)
		if n.Parent != nil && rawTextElements[n.Parent.Data] {
			buf.WriteString(text)
		} else {
			buf.WriteString(html.EscapeString(text))
		}
		buf.WriteByte('\n')
	case html.CommentNode:
		buf.WriteString(indent + "<!--" + n.Data + "-->\n")
	case html.DoctypeNode:
		buf.WriteString(indent + "<!DOCTYPE " + n.Data + ">\n")
	case html.ElementNode:
		buf.WriteString(indent)
		if preformattedElements[n.Data] {
			_ = html.Render(buf, n)
			buf.WriteByte('\n')
			return
		}
		buf.WriteByte('<')
		buf.WriteString(n.Data)
		for _, a := range n.Attr {
			buf.WriteByte(' ')
			if a.Namespace != "" {
				buf.WriteString(a.Namespace + ":")
			}
			buf.WriteString(a.Key)
			buf.WriteString(`="`)
			buf.WriteString(html.EscapeString(a.Val))
			buf.WriteByte('"')
		}
		if voidElements[n.Data] && n.FirstChild == nil {
			buf.WriteString("/>\n")
			return
		}
		buf.WriteString(">\n")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writePretty(buf, c, depth+1)
		}
		buf.WriteString(indent + "</" + n.Data + ">\n")
	}
}
