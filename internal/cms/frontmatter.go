package cms

import (
	"fmt"
	"strings"

	"finitefield.org/hanko-seo/internal/seo"
)

type frontMatter struct {
	Title             string                `yaml:"title"`
	Summary           string                `yaml:"summary"`
	Lang              string                `yaml:"lang"`
	SEOTitle          string                `yaml:"seo_title"`
	SearchDescription string                `yaml:"search_description"`
	CanonicalURL      string                `yaml:"canonical_url"`
	OGImage           *seo.Image            `yaml:"og_image"`
	Owner             string                `yaml:"owner"`
	FirstPublishedAt  scalar                `yaml:"first_published_at"`
	LastPublishedAt   scalar                `yaml:"last_published_at"`
	Author            string                `yaml:"author"`
	PublishedAt       scalar                `yaml:"published_at"`
	ModifiedAt        scalar                `yaml:"modified_at"`
	ContentType       string                `yaml:"content_type"`
	TwitterCard       string                `yaml:"twitter_card"`
	ShowInMenus       bool                  `yaml:"show_in_menus"`
	Fields            map[string]string     `yaml:"fields"`
	Images            map[string]*seo.Image `yaml:"images"`
	Sources           frontMatterSources    `yaml:"sources"`
	StructOrg         frontMatterOrg        `yaml:"struct_org"`
}

type frontMatterSources struct {
	Description  []string `yaml:"description"`
	CanonicalURL []string `yaml:"canonical_url"`
	Image        []string `yaml:"image"`
	PageTitle    []string `yaml:"page_title"`
}

type frontMatterOrg struct {
	Type      string              `yaml:"type"`
	Name      string              `yaml:"name"`
	Logo      *seo.Image          `yaml:"logo"`
	Image     *seo.Image          `yaml:"image"`
	Phone     string              `yaml:"phone"`
	Address   seo.Address         `yaml:"address"`
	GeoLat    scalar              `yaml:"geo_lat"`
	GeoLng    scalar              `yaml:"geo_lng"`
	Hours     []frontMatterHours  `yaml:"hours"`
	Actions   []frontMatterAction `yaml:"actions"`
	ExtraJSON string              `yaml:"extra_json"`
}

type frontMatterHours struct {
	Days   []string `yaml:"days"`
	Opens  scalar   `yaml:"start_time"`
	Closes scalar   `yaml:"end_time"`
}

type frontMatterAction struct {
	Type       string `yaml:"action_type"`
	Target     string `yaml:"target"`
	Language   string `yaml:"language"`
	ResultType string `yaml:"result_type"`
	ResultName string `yaml:"result_name"`
	ExtraJSON  string `yaml:"extra_json"`
}

func (f frontMatter) page(slug string) (*Page, error) {
	p := &Page{
		Summary: strings.TrimSpace(f.Summary),
		Page: seo.Page{
			Title:             strings.TrimSpace(f.Title),
			Slug:              slug,
			SEOTitle:          strings.TrimSpace(f.SEOTitle),
			SearchDescription: strings.TrimSpace(f.SearchDescription),
			CanonicalURL:      strings.TrimSpace(f.CanonicalURL),
			OGImage:           f.OGImage,
			Owner:             strings.TrimSpace(f.Owner),
			FirstPublishedAt:  parseContentDate(string(f.FirstPublishedAt)),
			LastPublishedAt:   parseContentDate(string(f.LastPublishedAt)),
			Author:            strings.TrimSpace(f.Author),
			PublishedAt:       f.PublishedAt.timePtr(),
			ModifiedAt:        f.ModifiedAt.timePtr(),
			ContentType:       seo.ContentType(strings.TrimSpace(f.ContentType)),
			TwitterCard:       seo.TwitterCard(strings.TrimSpace(f.TwitterCard)),
			ShowInMenus:       f.ShowInMenus,
			Fields:            f.Fields,
			Images:            f.Images,

			DescriptionSources:  f.Sources.Description,
			CanonicalURLSources: f.Sources.CanonicalURL,
			ImageSources:        f.Sources.Image,
			PageTitleSources:    f.Sources.PageTitle,
		},
	}
	if p.Title == "" {
		// fall back to slug prettified
		p.Title = prettifySlug(slug)
	}

	org, err := f.StructOrg.organization()
	if err != nil {
		return nil, err
	}
	p.Org = org
	return p, nil
}

func (o frontMatterOrg) organization() (seo.Organization, error) {
	org := seo.Organization{
		Type:      strings.TrimSpace(o.Type),
		Name:      strings.TrimSpace(o.Name),
		Logo:      o.Logo,
		Image:     o.Image,
		Phone:     strings.TrimSpace(o.Phone),
		Address:   o.Address,
		ExtraJSON: strings.TrimSpace(o.ExtraJSON),
	}
	var err error
	if org.GeoLat, err = o.GeoLat.decimal(); err != nil {
		return seo.Organization{}, fmt.Errorf("struct_org.geo_lat: %w", err)
	}
	if org.GeoLng, err = o.GeoLng.decimal(); err != nil {
		return seo.Organization{}, fmt.Errorf("struct_org.geo_lng: %w", err)
	}
	for i, h := range o.Hours {
		opens, err := seo.ParseTimeOfDay(string(h.Opens))
		if err != nil {
			return seo.Organization{}, fmt.Errorf("struct_org.hours[%d].start_time: %w", i, err)
		}
		closes, err := seo.ParseTimeOfDay(string(h.Closes))
		if err != nil {
			return seo.Organization{}, fmt.Errorf("struct_org.hours[%d].end_time: %w", i, err)
		}
		org.Hours = append(org.Hours, seo.OpenHours{Days: h.Days, Opens: opens, Closes: closes})
	}
	for _, a := range o.Actions {
		org.Actions = append(org.Actions, seo.Action{
			Type:       strings.TrimSpace(a.Type),
			Target:     strings.TrimSpace(a.Target),
			Language:   strings.TrimSpace(a.Language),
			ResultType: strings.TrimSpace(a.ResultType),
			ResultName: strings.TrimSpace(a.ResultName),
			ExtraJSON:  strings.TrimSpace(a.ExtraJSON),
		})
	}
	return org, nil
}
