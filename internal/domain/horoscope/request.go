package horoscope

import "strings"

// Kind distinguishes the two reading endpoints in cache keys and prompts.
type Kind string

const (
	KindDaily        Kind = "daily"
	KindPersonalized Kind = "personalized"
)

// Request is a fully validated, normalized reading request.
type Request struct {
	Kind     Kind
	Sun      string
	Rising   string // optional, personalized only
	Day      string
	Language string
}

// NewDailyRequest validates raw endpoint inputs into a daily Request.
func NewDailyRequest(sign, day, lang string) (Request, error) {
	sun, err := ParseSign(sign)
	if err != nil {
		return Request{}, err
	}
	d, err := ParseDay(day)
	if err != nil {
		return Request{}, err
	}
	l, err := ParseLanguage(lang)
	if err != nil {
		return Request{}, err
	}
	return Request{Kind: KindDaily, Sun: sun, Day: d, Language: l}, nil
}

// NewPersonalizedRequest validates raw endpoint inputs into a personalized
// Request. Rising is optional; when present it must be a valid sign.
func NewPersonalizedRequest(sun, rising, day, lang string) (Request, error) {
	req, err := NewDailyRequest(sun, day, lang)
	if err != nil {
		return Request{}, err
	}
	req.Kind = KindPersonalized

	if strings.TrimSpace(rising) != "" {
		r, err := ParseSign(rising)
		if err != nil {
			return Request{}, err
		}
		req.Rising = r
	}
	return req, nil
}

// CacheKey derives the deterministic cache key for this request. Components
// come from closed enumerations, so the separator cannot collide.
func (r Request) CacheKey() string {
	return strings.Join([]string{string(r.Kind), r.Sun, r.Rising, r.Day, r.Language}, "|")
}
