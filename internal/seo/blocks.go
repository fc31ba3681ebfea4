package seo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Days offered for opening hours, in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ActionPlatforms are attached to every action entry point.
var ActionPlatforms = []string{
	"http://schema.org/DesktopWebPlatform",
	"http://schema.org/IOSPlatform",
	"http://schema.org/AndroidPlatform",
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS"; seconds are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("seo: invalid time of day %q", s)
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalJSON encodes the time as "HH:MM".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes "HH:MM" or "HH:MM:SS".
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// OpenHours is one opening-hours block: a set of days sharing the same times.
type OpenHours struct {
	Days   []string
	Opens  TimeOfDay
	Closes TimeOfDay
}

// StructDict returns the OpeningHoursSpecification for the block.
func (h OpenHours) StructDict() map[string]any {
	days := make([]string, len(h.Days))
	copy(days, h.Days)
	return map[string]any{
		"@type":     "OpeningHoursSpecification",
		"dayOfWeek": days,
		"opens":     h.Opens.String(),
		"closes":    h.Closes.String(),
	}
}

// Action is a Schema.org potential action such as ReserveAction.
type Action struct {
	Type       string
	Target     string
	Language   string
	ResultType string
	ResultName string
	ExtraJSON  string
}

// Lang returns the action language, en-US when unset.
func (a Action) Lang() string {
	if strings.TrimSpace(a.Language) == "" {
		return defaultActionLanguage
	}
	return a.Language
}

// StructDict returns the action dictionary. Extra JSON is merged last and
// is ignored when it does not decode to an object.
func (a Action) StructDict() map[string]any {
	sd := map[string]any{
		"@type": a.Type,
		"target": map[string]any{
			"@type":          "EntryPoint",
			"urlTemplate":    a.Target,
			"inLanguage":     a.Lang(),
			"actionPlatform": append([]string(nil), ActionPlatforms...),
		},
	}
	if a.ResultType != "" {
		sd["result"] = map[string]any{
			"@type": a.ResultType,
			"name":  a.ResultName,
		}
	}
	_ = mergeExtraJSON(sd, a.ExtraJSON)
	return sd
}

var errExtraNotObject = errors.New("extra JSON must be an object")

// decodeExtraJSON parses raw into an object. Blank input yields nil, nil.
func decodeExtraJSON(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errExtraNotObject
	}
	return obj, nil
}

// mergeExtraJSON overlays the decoded object onto dst. dst is unchanged on error.
func mergeExtraJSON(dst map[string]any, raw string) error {
	extra, err := decodeExtraJSON(raw)
	if err != nil {
		return err
	}
	for k, v := range extra {
		dst[k] = v
	}
	return nil
}
