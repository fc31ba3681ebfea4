package seo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDay(t *testing.T) {
	t.Parallel()
	got, err := ParseTimeOfDay("07:05:59")
	require.NoError(t, err)
	require.Equal(t, "07:05", got.String())

	_, err = ParseTimeOfDay("25:00")
	require.Error(t, err)

	var decoded TimeOfDay
	require.NoError(t, decoded.UnmarshalJSON([]byte(`"18:45"`)))
	require.Equal(t, TimeOfDay{Hour: 18, Minute: 45}, decoded)
}

func TestActionStructDict(t *testing.T) {
	t.Parallel()
	order := Action{Type: "OrderAction", Target: "https://example.com/order"}
	want := map[string]any{
		"@type": "OrderAction",
		"target": map[string]any{
			"@type":          "EntryPoint",
			"urlTemplate":    "https://example.com/order",
			"inLanguage":     "en-US",
			"actionPlatform": ActionPlatforms,
		},
	}
	require.Empty(t, cmp.Diff(want, order.StructDict()))

	reserve := Action{
		Type:       "ReserveAction",
		Target:     "https://example.com/book",
		Language:   "ja-JP",
		ResultType: "Reservation",
		ExtraJSON:  `{"name": "Book a seal consultation"}`,
	}
	got := reserve.StructDict()
	require.Equal(t, map[string]any{"@type": "Reservation", "name": ""}, got["result"])
	require.Equal(t, "Book a seal consultation", got["name"])
	require.Equal(t, "ja-JP", got["target"].(map[string]any)["inLanguage"])
}

func TestSettings(t *testing.T) {
	t.Parallel()
	s := DefaultSettings("default")
	require.True(t, s.OGMeta)
	require.True(t, s.TwitterMeta)
	require.True(t, s.StructMeta)
	require.False(t, s.AMPPages)
	require.False(t, s.HasTwitterSite())

	s.TwitterSite = "@@hankofield"
	require.Equal(t, "@hankofield", s.AtTwitterSite())
	s.TwitterSite = "hankofield"
	require.Equal(t, "@hankofield", s.AtTwitterSite())
	s.TwitterSite = " @hankofield "
	require.True(t, s.HasTwitterSite())
	require.Equal(t, "@hankofield", s.AtTwitterSite())
	require.NoError(t, s.Validate())

	s.TwitterSite = strings.Repeat("x", 17)
	err := s.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, "twitter_site")
}

func TestPageValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, fullPage(testSite()).Validate())

	testCases := []struct {
		name   string
		mutate func(p *Page)
		field  string
	}{
		{name: "missing title", mutate: func(p *Page) { p.Title = "" }, field: "title"},
		{name: "long seo title", mutate: func(p *Page) { p.SEOTitle = strings.Repeat("a", 256) }, field: "seo_title"},
		{name: "relative canonical", mutate: func(p *Page) { p.CanonicalURL = "/about/" }, field: "canonical_url"},
		{name: "unknown org type", mutate: func(p *Page) { p.Org.Type = "Bakery" }, field: "struct_org_type"},
		{name: "too many places", mutate: func(p *Page) { p.Org.GeoLat = dec("41.123456789") }, field: "struct_org_geo_lat"},
		{name: "too many digits", mutate: func(p *Page) { p.Org.GeoLng = dec("1234.5") }, field: "struct_org_geo_lng"},
		{name: "bad extra json", mutate: func(p *Page) { p.Org.ExtraJSON = `{"x":` }, field: "struct_org_extra_json"},
		{name: "extra json array", mutate: func(p *Page) { p.Org.ExtraJSON = `[1]` }, field: "struct_org_extra_json"},
		{
			name:   "bad weekday",
			mutate: func(p *Page) { p.Org.Hours = []OpenHours{{Days: []string{"Funday"}}} },
			field:  "struct_org_hours.0.days",
		},
		{
			name:   "bad action type",
			mutate: func(p *Page) { p.Org.Actions = []Action{{Type: "BuyAction"}} },
			field:  "struct_org_actions.0.action_type",
		},
		{
			name:   "bad action language",
			mutate: func(p *Page) { p.Org.Actions = []Action{{Type: "OrderAction", Language: "not a tag!"}} },
			field:  "struct_org_actions.0.language",
		},
		{
			name:   "bad result type",
			mutate: func(p *Page) { p.Org.Actions = []Action{{Type: "OrderAction", ResultType: "Order"}} },
			field:  "struct_org_actions.0.result_type",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := fullPage(testSite())
			tc.mutate(p)
			err := p.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
			require.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestMeta(t *testing.T) {
	t.Parallel()
	r := newTestResolver()
	ctx := context.Background()
	page := fullPage(testSite())

	settings := DefaultSettings("default")
	settings.TwitterSite = "hankofield"
	settings.AMPPages = true

	m := r.Meta(ctx, page, settings)
	require.Equal(t, "Custom Title", m.Title)
	require.Equal(t, "https://example.com/fullseo/", m.Canonical)
	require.Equal(t, "https://example.com/fullseo/amp/", m.AMPURL)
	require.NotNil(t, m.OG)
	require.Equal(t, "https://example.com/media/original_images/og.png", m.OG.Image)
	require.Equal(t, "Hanko Field", m.OG.SiteName)
	require.Equal(t, "website", m.OG.Type)
	require.Empty(t, m.OG.PublishedTime)
	require.Equal(t, "@hankofield", m.Twitter.Site)
	require.NotEmpty(t, m.OrganizationJSON)
	require.Empty(t, m.ArticleJSON)

	page.ContentType = ContentTypeArticle
	settings = Settings{SiteID: "default", StructMeta: true}
	m = r.Meta(ctx, page, settings)
	require.Nil(t, m.OG)
	require.Nil(t, m.Twitter)
	require.Empty(t, m.AMPURL)
	require.Contains(t, m.ArticleJSON, `"@type":"Article"`)

	settings.OGMeta = true
	m = r.Meta(ctx, page, settings)
	require.Equal(t, "2024-03-01T09:30:00Z", m.OG.PublishedTime)
	require.Equal(t, "Aiko Tanaka", m.OG.Author)
}
