package horoscope

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultLanguage is used when a request omits the language code.
const DefaultLanguage = "en"

// Defaults is the static per-language fallback table. Every field must be
// present so shaping can always produce a complete payload.
type Defaults struct {
	Description   string `toml:"description"`
	Compatibility string `toml:"compatibility"`
	Mood          string `toml:"mood"`
	Color         string `toml:"color"`
	LuckyNumber   string `toml:"lucky_number"`
	LuckyTime     string `toml:"lucky_time"`
	FashionTip    string `toml:"fashion_tip"`
}

// Locale carries everything language-specific: the prompt tone, the default
// table and the fashion-tip lookup tables keyed by lower-case color and mood.
type Locale struct {
	Name      string            `toml:"name"`
	Tone      string            `toml:"tone"`
	Defaults  Defaults          `toml:"defaults"`
	ColorTips map[string]string `toml:"color_tips"`
	MoodTips  map[string]string `toml:"mood_tips"`
}

//go:embed locales.toml
var localesTOML []byte

var locales = mustLoadLocales()

func mustLoadLocales() map[string]Locale {
	var parsed map[string]Locale
	if err := toml.Unmarshal(localesTOML, &parsed); err != nil {
		panic(fmt.Sprintf("horoscope: parse locales.toml: %v", err))
	}
	if len(parsed) == 0 {
		panic("horoscope: locales.toml defines no languages")
	}

	for lang, loc := range parsed {
		if err := validateLocale(loc); err != nil {
			panic(fmt.Sprintf("horoscope: locale %q: %v", lang, err))
		}
	}
	if _, ok := parsed[DefaultLanguage]; !ok {
		panic(fmt.Sprintf("horoscope: locales.toml is missing the default language %q", DefaultLanguage))
	}

	return parsed
}

func validateLocale(loc Locale) error {
	if strings.TrimSpace(loc.Name) == "" {
		return fmt.Errorf("name is empty")
	}
	if strings.TrimSpace(loc.Tone) == "" {
		return fmt.Errorf("tone is empty")
	}

	defaults := map[string]string{
		"description":   loc.Defaults.Description,
		"compatibility": loc.Defaults.Compatibility,
		"mood":          loc.Defaults.Mood,
		"color":         loc.Defaults.Color,
		"lucky_number":  loc.Defaults.LuckyNumber,
		"lucky_time":    loc.Defaults.LuckyTime,
		"fashion_tip":   loc.Defaults.FashionTip,
	}
	for field, value := range defaults {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("defaults.%s is empty", field)
		}
	}

	if len(loc.ColorTips) == 0 {
		return fmt.Errorf("color_tips is empty")
	}
	if len(loc.MoodTips) == 0 {
		return fmt.Errorf("mood_tips is empty")
	}
	for key := range loc.ColorTips {
		if key != strings.ToLower(key) {
			return fmt.Errorf("color_tips key %q must be lower-case", key)
		}
	}
	for key := range loc.MoodTips {
		if key != strings.ToLower(key) {
			return fmt.Errorf("mood_tips key %q must be lower-case", key)
		}
	}

	return nil
}

// LocaleFor returns the locale for a normalized language code.
func LocaleFor(lang string) (Locale, bool) {
	loc, ok := locales[lang]
	return loc, ok
}

// Languages returns the supported language codes, sorted.
func Languages() []string {
	out := make([]string, 0, len(locales))
	for lang := range locales {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
