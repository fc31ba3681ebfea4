// Package panels declares the admin edit panels for page SEO fields and the
// site settings, localized through the i18n bundles.
package panels

import (
	"finitefield.org/hanko-seo/internal/i18n"
	"finitefield.org/hanko-seo/internal/seo"
)

// Kind names the editor widget of a field.
type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindURL      Kind = "url"
	KindImage    Kind = "image"
	KindChoice   Kind = "choice"
	KindMulti    Kind = "multiple_choice"
	KindDecimal  Kind = "decimal"
	KindTime     Kind = "time"
	KindBoolean  Kind = "boolean"
	KindJSON     Kind = "json"
	KindStream   Kind = "stream"
)

// Field is one form field. Blocks lists the block types of a stream field.
type Field struct {
	Name          string       `json:"name"`
	Kind          Kind         `json:"kind"`
	Label         string       `json:"label"`
	HelpText      string       `json:"helpText,omitempty"`
	MaxLength     int          `json:"maxLength,omitempty"`
	Required      bool         `json:"required"`
	Choices       []seo.Choice `json:"choices,omitempty"`
	MaxDigits     int          `json:"maxDigits,omitempty"`
	DecimalPlaces int          `json:"decimalPlaces,omitempty"`
	Blocks        []Block      `json:"blocks,omitempty"`
}

// Block is a stream field block type.
type Block struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Fields []Field `json:"fields"`
}

// Panel groups fields under a heading. Help panels carry Content and no fields.
type Panel struct {
	ID      string  `json:"id"`
	Heading string  `json:"heading"`
	Content string  `json:"content,omitempty"`
	Fields  []Field `json:"fields,omitempty"`
}

// Set builds panels for one language.
type Set struct {
	bundle *i18n.Bundle
	lang   string
}

// New returns a Set that translates through b. A nil b uses the embedded bundles.
func New(b *i18n.Bundle, lang string) *Set {
	if b == nil {
		b = i18n.Default()
	}
	if lang == "" || !b.IsSupported(lang) {
		lang = b.Fallback()
	}
	return &Set{bundle: b, lang: lang}
}

// Lang is the language labels are rendered in.
func (s *Set) Lang() string { return s.lang }

func (s *Set) t(key string) string { return s.bundle.T(s.lang, key) }

// help returns the translated help text or "" when the key has none.
func (s *Set) help(key string) string {
	if v := s.t(key); v != key {
		return v
	}
	return ""
}

func (s *Set) field(name string, kind Kind) Field {
	return Field{
		Name:     name,
		Kind:     kind,
		Label:    s.t("field." + name + ".label"),
		HelpText: s.help("field." + name + ".help"),
	}
}

func (s *Set) charField(name string, kind Kind) Field {
	f := s.field(name, kind)
	f.MaxLength = seo.MaxCharFieldLength
	return f
}

func (s *Set) blockField(block, name string, kind Kind) Field {
	prefix := "block." + block + "." + name
	return Field{
		Name:     name,
		Kind:     kind,
		Label:    s.t(prefix + ".label"),
		HelpText: s.help(prefix + ".help"),
	}
}

// MetaPanels is the promote panel: slug, title tag, description, canonical
// URL and preview image.
func (s *Set) MetaPanels() []Panel {
	slug := s.field("slug", KindText)
	slug.Required = true
	slug.MaxLength = seo.MaxCharFieldLength

	seoTitle := s.charField("seo_title", KindText)
	canonical := s.charField("canonical_url", KindURL)

	return []Panel{{
		ID:      "seo_meta",
		Heading: s.t("panel.seo_meta.heading"),
		Fields: []Field{
			slug,
			seoTitle,
			s.field("search_description", KindTextarea),
			canonical,
			s.field("og_image", KindImage),
		},
	}}
}

// MenuPanels holds the navigation toggle.
func (s *Set) MenuPanels() []Panel {
	return []Panel{{
		ID:      "seo_menu",
		Heading: s.t("panel.seo_menu.heading"),
		Fields:  []Field{s.field("show_in_menus", KindBoolean)},
	}}
}

// StructPanels is the organization structured-data help and fields.
func (s *Set) StructPanels() []Panel {
	orgType := s.charField("struct_org_type", KindChoice)
	orgType.Choices = s.orgTypeChoices()

	geo := func(name string) Field {
		f := s.field(name, KindDecimal)
		f.MaxDigits = seo.GeoMaxDigits
		f.DecimalPlaces = seo.GeoDecimalPlaces
		return f
	}

	hours := s.field("struct_org_hours", KindStream)
	hours.Blocks = []Block{s.hoursBlock()}
	actions := s.field("struct_org_actions", KindStream)
	actions.Blocks = []Block{s.actionBlock()}

	return []Panel{
		{
			ID:      "struct_help",
			Heading: s.t("panel.struct_help.heading"),
			Content: s.t("panel.struct_help.content"),
		},
		{
			ID:      "seo_struct",
			Heading: s.t("panel.seo_struct.heading"),
			Fields: []Field{
				orgType,
				s.charField("struct_org_name", KindText),
				s.field("struct_org_logo", KindImage),
				s.field("struct_org_image", KindImage),
				s.charField("struct_org_phone", KindText),
				s.charField("struct_org_address_street", KindText),
				s.charField("struct_org_address_locality", KindText),
				s.charField("struct_org_address_region", KindText),
				s.charField("struct_org_address_postal", KindText),
				s.charField("struct_org_address_country", KindText),
				geo("struct_org_geo_lat"),
				geo("struct_org_geo_lng"),
				hours,
				actions,
				s.field("struct_org_extra_json", KindJSON),
			},
		},
	}
}

// Panels is the meta, menu and struct panels in order.
func (s *Set) Panels() []Panel {
	out := s.MetaPanels()
	out = append(out, s.MenuPanels()...)
	return append(out, s.StructPanels()...)
}

// SettingsPanels is the site settings form.
func (s *Set) SettingsPanels() []Panel {
	site := s.field("twitter_site", KindText)
	site.MaxLength = seo.MaxTwitterSiteLength
	return []Panel{{
		ID:      "settings",
		Heading: s.t("panel.settings.heading"),
		Fields: []Field{
			s.field("og_meta", KindBoolean),
			s.field("twitter_meta", KindBoolean),
			site,
			s.field("struct_meta", KindBoolean),
			s.field("amp_pages", KindBoolean),
		},
	}}
}

func (s *Set) hoursBlock() Block {
	days := s.blockField("hours", "days", KindMulti)
	days.Required = true
	days.Choices = make([]seo.Choice, 0, len(seo.Weekdays))
	for _, d := range seo.Weekdays {
		days.Choices = append(days.Choices, seo.Choice{Value: d, Label: s.t("weekday." + d)})
	}
	start := s.blockField("hours", "start_time", KindTime)
	start.Required = true
	end := s.blockField("hours", "end_time", KindTime)
	end.Required = true

	return Block{
		Name:   "hours",
		Label:  s.t("block.hours.label"),
		Fields: []Field{days, start, end},
	}
}

func (s *Set) actionBlock() Block {
	actionType := s.blockField("action", "action_type", KindChoice)
	actionType.Required = true
	actionType.Choices = seo.ActionTypeChoices

	target := s.blockField("action", "target", KindURL)
	target.Required = true

	lang := s.blockField("action", "language", KindText)
	lang.MaxLength = seo.MaxCharFieldLength

	result := s.blockField("action", "result_type", KindChoice)
	result.Choices = seo.ResultTypeChoices

	name := s.blockField("action", "result_name", KindText)
	name.MaxLength = seo.MaxCharFieldLength

	return Block{
		Name:  "action",
		Label: s.t("block.action.label"),
		Fields: []Field{
			actionType,
			target,
			lang,
			result,
			name,
			s.blockField("action", "extra_json", KindJSON),
		},
	}
}

// orgTypeChoices prepends the blank choice the admin select shows.
func (s *Set) orgTypeChoices() []seo.Choice {
	out := make([]seo.Choice, 0, len(seo.OrgTypeChoices)+1)
	out = append(out, seo.Choice{Value: "", Label: "---------"})
	return append(out, seo.OrgTypeChoices...)
}
