package seo

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Field limits mirrored from the admin form.
const (
	MaxCharFieldLength = 255
	GeoMaxDigits       = 11
	GeoDecimalPlaces   = 8
)

// ValidationError maps field names to messages, like an admin form's errors.
type ValidationError struct {
	Fields map[string]string
}

// Add records msg for field. The first message per field wins.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

// OrNil returns e when it holds errors and nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "seo: invalid fields: " + strings.Join(parts, "; ")
}

func maxLengthMessage(limit int, value string) string {
	return fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", limit, utf8.RuneCountInString(value))
}

// Validate checks page fields against the rules the edit panels enforce.
func (p *Page) Validate() error {
	verr := &ValidationError{}

	for field, value := range map[string]string{
		"seo_title":                   p.SEOTitle,
		"canonical_url":               p.CanonicalURL,
		"struct_org_type":             p.Org.Type,
		"struct_org_name":             p.Org.Name,
		"struct_org_phone":            p.Org.Phone,
		"struct_org_address_street":   p.Org.Address.Street,
		"struct_org_address_locality": p.Org.Address.Locality,
		"struct_org_address_region":   p.Org.Address.Region,
		"struct_org_address_postal":   p.Org.Address.Postal,
		"struct_org_address_country":  p.Org.Address.Country,
	} {
		if utf8.RuneCountInString(value) > MaxCharFieldLength {
			verr.Add(field, maxLengthMessage(MaxCharFieldLength, value))
		}
	}

	if strings.TrimSpace(p.Title) == "" {
		verr.Add("title", "This field is required.")
	}
	if p.CanonicalURL != "" && !isHTTPURL(p.CanonicalURL) {
		verr.Add("canonical_url", "Enter a valid URL.")
	}
	if p.Org.Type != "" && !IsOrgType(p.Org.Type) {
		verr.Add("struct_org_type", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", p.Org.Type))
	}
	validateGeo(verr, "struct_org_geo_lat", p.Org.GeoLat)
	validateGeo(verr, "struct_org_geo_lng", p.Org.GeoLng)

	for i, h := range p.Org.Hours {
		field := fmt.Sprintf("struct_org_hours.%d", i)
		if len(h.Days) == 0 {
			verr.Add(field+".days", "This field is required.")
		}
		for _, d := range h.Days {
			if !isWeekday(d) {
				verr.Add(field+".days", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", d))
			}
		}
	}

	for i, a := range p.Org.Actions {
		field := fmt.Sprintf("struct_org_actions.%d", i)
		if !IsActionType(a.Type) {
			verr.Add(field+".action_type", "Select a valid choice.")
		}
		if a.Target != "" && !isHTTPURL(a.Target) {
			verr.Add(field+".target", "Enter a valid URL.")
		}
		if _, err := language.Parse(a.Lang()); err != nil {
			verr.Add(field+".language", "Enter a valid BCP 47 language tag.")
		}
		if a.ResultType != "" && !IsResultType(a.ResultType) {
			verr.Add(field+".result_type", "Select a valid choice.")
		}
		if _, err := decodeExtraJSON(a.ExtraJSON); err != nil {
			verr.Add(field+".extra_json", "Enter a valid JSON object.")
		}
	}

	if _, err := decodeExtraJSON(p.Org.ExtraJSON); err != nil {
		verr.Add("struct_org_extra_json", "Enter a valid JSON object.")
	}

	return verr.OrNil()
}

func validateGeo(verr *ValidationError, field string, d *decimal.Decimal) {
	if d == nil {
		return
	}
	if !d.Equal(d.Round(GeoDecimalPlaces)) {
		verr.Add(field, fmt.Sprintf("Ensure that there are no more than %d decimal places.", GeoDecimalPlaces))
		return
	}
	whole := d.Abs().Truncate(0).String()
	if whole == "0" {
		whole = ""
	}
	if len(whole) > GeoMaxDigits-GeoDecimalPlaces {
		verr.Add(field, fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", GeoMaxDigits-GeoDecimalPlaces))
	}
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isWeekday(d string) bool {
	for _, w := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}
