package horoscope

import (
	"strings"
	"time"
)

// Reading is the stable JSON contract served to the front end. Shaping
// guarantees every field is populated.
type Reading struct {
	Sign          string `json:"sign"`
	Rising        string `json:"rising,omitempty"`
	Day           string `json:"day"`
	Language      string `json:"lang"`
	CurrentDate   string `json:"current_date"`
	Description   string `json:"description"`
	Compatibility string `json:"compatibility"`
	Mood          string `json:"mood"`
	Color         string `json:"color"`
	LuckyNumber   string `json:"lucky_number"`
	LuckyTime     string `json:"lucky_time"`
	FashionTip    string `json:"fashion_tip"`
}

// GeneratedFields lists the field names the generator is asked to produce.
var GeneratedFields = []string{
	"description",
	"compatibility",
	"mood",
	"color",
	"lucky_number",
	"lucky_time",
	"fashion_tip",
}

// Shape builds a complete Reading from a best-effort generator result.
// Generator values win unless empty; the locale's static default table is
// the fallback, never the reverse. The fashion tip, when not supplied
// directly, is derived from color first and mood second.
func Shape(req Request, fields map[string]string, now time.Time) Reading {
	loc, ok := LocaleFor(req.Language)
	if !ok {
		loc, _ = LocaleFor(DefaultLanguage)
	}

	pick := func(key, fallback string) string {
		if v := strings.TrimSpace(fields[key]); v != "" {
			return v
		}
		return fallback
	}

	r := Reading{
		Sign:          req.Sun,
		Rising:        req.Rising,
		Day:           req.Day,
		Language:      req.Language,
		CurrentDate:   pick("current_date", ResolveDate(req.Day, now).Format("2006-01-02")),
		Description:   pick("description", loc.Defaults.Description),
		Compatibility: pick("compatibility", loc.Defaults.Compatibility),
		Mood:          pick("mood", loc.Defaults.Mood),
		Color:         pick("color", loc.Defaults.Color),
		LuckyNumber:   pick("lucky_number", loc.Defaults.LuckyNumber),
		LuckyTime:     pick("lucky_time", loc.Defaults.LuckyTime),
	}
	r.FashionTip = fashionTip(loc, fields, r.Color, r.Mood)

	return r
}

func fashionTip(loc Locale, fields map[string]string, color, mood string) string {
	if v := strings.TrimSpace(fields["fashion_tip"]); v != "" {
		return v
	}
	if tip, ok := loc.ColorTips[strings.ToLower(color)]; ok {
		return tip
	}
	if tip, ok := loc.MoodTips[strings.ToLower(mood)]; ok {
		return tip
	}
	return loc.Defaults.FashionTip
}

// Fallback is the static payload substituted when every collaborator fails.
func Fallback(req Request, now time.Time) Reading {
	return Shape(req, nil, now)
}

// ResolveDate maps a day selector onto a calendar date.
func ResolveDate(day string, now time.Time) time.Time {
	switch day {
	case DayTomorrow:
		return now.AddDate(0, 0, 1)
	case DayYesterday:
		return now.AddDate(0, 0, -1)
	default:
		return now
	}
}
