package horoscope

import "strings"

// The twelve zodiac sign identifiers, in ecliptic order.
var Signs = []string{
	"aries",
	"taurus",
	"gemini",
	"cancer",
	"leo",
	"virgo",
	"libra",
	"scorpio",
	"sagittarius",
	"capricorn",
	"aquarius",
	"pisces",
}

var signSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Signs))
	for _, s := range Signs {
		set[s] = struct{}{}
	}
	return set
}()

// Day selectors accepted by the reading endpoints.
const (
	DayToday     = "today"
	DayTomorrow  = "tomorrow"
	DayYesterday = "yesterday"
)

// ParseSign normalizes a raw sign value to its lower-case identifier.
func ParseSign(raw string) (string, error) {
	sign := strings.ToLower(strings.TrimSpace(raw))
	if sign == "" {
		return "", ErrSignRequired
	}
	if _, ok := signSet[sign]; !ok {
		return "", ErrUnknownSign
	}
	return sign, nil
}

// ParseDay normalizes a raw day selector. Empty input defaults to today.
func ParseDay(raw string) (string, error) {
	day := strings.ToLower(strings.TrimSpace(raw))
	switch day {
	case "":
		return DayToday, nil
	case DayToday, DayTomorrow, DayYesterday:
		return day, nil
	default:
		return "", ErrUnknownDay
	}
}

// ParseLanguage normalizes a raw language code against the locale table.
// Empty input defaults to English.
func ParseLanguage(raw string) (string, error) {
	lang := strings.ToLower(strings.TrimSpace(raw))
	if lang == "" {
		return DefaultLanguage, nil
	}
	if _, ok := locales[lang]; !ok {
		return "", ErrUnknownLanguage
	}
	return lang, nil
}
