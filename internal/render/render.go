// Package render executes the SEO head, page and AMP page templates.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"finitefield.org/hanko-seo/internal/amp"
	"finitefield.org/hanko-seo/internal/richtext"
	"finitefield.org/hanko-seo/internal/seo"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// MenuItem is one navigation link.
type MenuItem struct {
	Title string
	URL   string
}

// Document is the body side of a rendered page.
type Document struct {
	Lang string
	Page *seo.Page
	Body richtext.Text
	Menu []MenuItem
}

type pageView struct {
	Lang    string
	Heading string
	Meta    seo.Meta
	Body    richtext.Text
	Menu    []MenuItem
}

// Renderer resolves page metadata and executes the templates.
type Renderer struct {
	tmpl     *template.Template
	resolver *seo.Resolver
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	fsys fs.FS
}

// WithTemplateFS replaces the embedded templates. fsys must hold
// templates/*.tmpl defining meta, struct_data, head, page and amp_page.
func WithTemplateFS(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// New parses the templates. A nil resolver uses seo.NewResolver defaults.
func New(resolver *seo.Resolver, opts ...Option) (*Renderer, error) {
	o := options{fsys: embedded}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if resolver == nil {
		resolver = seo.NewResolver()
	}
	tmpl, err := template.New("_root").Funcs(FuncMap()).ParseFS(o.fsys, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	for _, name := range []string{"meta", "struct_data", "head", "page", "amp_page"} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("render: template %q not defined", name)
		}
	}
	return &Renderer{tmpl: tmpl, resolver: resolver}, nil
}

// Resolver returns the property resolver the renderer uses.
func (r *Renderer) Resolver() *seo.Resolver { return r.resolver }

// Head renders the meta tags and structured data for p.
func (r *Renderer) Head(ctx context.Context, p *seo.Page, s seo.Settings) (template.HTML, error) {
	m := r.resolver.Meta(ctx, p, s)
	out, err := r.execute("head", m)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

// Page renders a complete HTML document.
func (r *Renderer) Page(ctx context.Context, doc Document, s seo.Settings) ([]byte, error) {
	if doc.Page == nil {
		return nil, fmt.Errorf("render: document has no page")
	}
	return r.execute("page", r.view(ctx, doc, s))
}

// AMPPage renders the AMP variant of a document. The head links back to the
// canonical page and omits the amphtml link.
func (r *Renderer) AMPPage(ctx context.Context, doc Document, s seo.Settings) ([]byte, error) {
	if doc.Page == nil {
		return nil, fmt.Errorf("render: document has no page")
	}
	view := r.view(ctx, doc, s)
	view.Meta.AMPURL = ""
	view.Menu = nil
	return r.execute("amp_page", view)
}

func (r *Renderer) view(ctx context.Context, doc Document, s seo.Settings) pageView {
	lang := doc.Lang
	if lang == "" {
		lang = "en"
	}
	return pageView{
		Lang:    lang,
		Heading: doc.Page.Title,
		Meta:    r.resolver.Meta(ctx, doc.Page, s),
		Body:    doc.Body,
		Menu:    doc.Menu,
	}
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render: execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// FuncMap holds the template helpers: convert_to_amp, seo_json, jsonld and
// richtext.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"convert_to_amp": ConvertToAMP,
		"seo_json":       SEOJSON,
		"jsonld":         func(s string) template.JS { return template.JS(s) },
		"richtext":       func(t richtext.Text) (template.HTML, error) { return t.Render() },
	}
}

// ConvertToAMP converts trusted HTML or rich text to AMP HTML. Rich text is
// rendered first. Plain strings are sanitized before conversion.
func ConvertToAMP(v any) (template.HTML, error) {
	var src string
	switch val := v.(type) {
	case nil:
		return "", nil
	case template.HTML:
		src = string(val)
	case richtext.Text:
		rendered, err := val.Render()
		if err != nil {
			return "", err
		}
		src = string(rendered)
	case string:
		src = string(richtext.Sanitize(val))
	default:
		return "", fmt.Errorf("convert_to_amp: unsupported value %T", v)
	}
	out, err := amp.Convert(src, false)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

// SEOJSON serializes v for a JSON-LD script element.
func SEOJSON(v any) template.JS {
	return template.JS(seo.JSON(v))
}
