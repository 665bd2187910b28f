package httpapi

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domainhoroscope "starcast/internal/domain/horoscope"
	horoscopeuc "starcast/internal/usecase/horoscope"
)

func (h *handler) robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml\n", h.publicURL)
}

func (h *handler) sitemap(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	fmt.Fprintf(&b, "  <url><loc>%s/</loc></url>\n", h.publicURL)
	for _, sign := range domainhoroscope.Signs {
		fmt.Fprintf(&b, "  <url><loc>%s/daily/%s</loc></url>\n", h.publicURL, sign)
	}
	b.WriteString("</urlset>\n")

	_, _ = w.Write([]byte(b.String()))
}

var signPageTmpl = template.Must(template.New("sign").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}} · Starcast</title>
<meta name="description" content="{{.Description}}">
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Description}}</p>
<ul>
<li>Mood: {{.Mood}}</li>
<li>Color: {{.Color}}</li>
<li>Lucky number: {{.LuckyNumber}}</li>
<li>Lucky time: {{.LuckyTime}}</li>
</ul>
<p>{{.FashionTip}}</p>
</body>
</html>
`))

type signPageData struct {
	Lang        string
	Title       string
	Description string
	Mood        string
	Color       string
	LuckyNumber string
	LuckyTime   string
	FashionTip  string
}

func (h *handler) signPage(w http.ResponseWriter, r *http.Request) {
	sign := chi.URLParam(r, "sign")

	payload, err := h.svc.Daily(r.Context(), horoscopeuc.DailyInput{
		Sign:     sign,
		Day:      domainhoroscope.DayToday,
		Language: r.URL.Query().Get("lang"),
	})
	if err != nil {
		if domainhoroscope.IsValidation(err) {
			http.NotFound(w, r)
			return
		}
		writeError(w, r, err)
		return
	}

	var reading domainhoroscope.Reading
	if err := json.Unmarshal(payload, &reading); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = signPageTmpl.Execute(w, signPageData{
		Lang:        reading.Language,
		Title:       strings.ToUpper(reading.Sign[:1]) + reading.Sign[1:] + " · " + reading.CurrentDate,
		Description: reading.Description,
		Mood:        reading.Mood,
		Color:       reading.Color,
		LuckyNumber: reading.LuckyNumber,
		LuckyTime:   reading.LuckyTime,
		FashionTip:  reading.FashionTip,
	})
}

func (h *handler) landing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>Starcast</title></head>\n<body>\n<h1>Starcast</h1>\n<p>Daily readings for every sign.</p>\n<ul>\n")
	for _, sign := range domainhoroscope.Signs {
		fmt.Fprintf(&b, "<li><a href=\"/daily/%s\">%s</a></li>\n", sign, strings.ToUpper(sign[:1])+sign[1:])
	}
	b.WriteString("</ul>\n</body>\n</html>\n")

	_, _ = w.Write([]byte(b.String()))
}
