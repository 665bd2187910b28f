package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"starcast/internal/bootstrap/config"
	domainhoroscope "starcast/internal/domain/horoscope"
	cacheinfra "starcast/internal/infrastructure/cache"
	"starcast/internal/ports"
	horoscopeuc "starcast/internal/usecase/horoscope"
)

type stubGenerator struct {
	fields map[string]string
	err    error
	calls  int
}

func (g *stubGenerator) Generate(_ context.Context, _, _ string) (map[string]string, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.fields, nil
}

type stubSignData struct{}

func (stubSignData) Fetch(_ context.Context, _, _ string) (ports.SignData, error) {
	return ports.SignData{}, errors.New("unreachable")
}

type stubSubscribers struct {
	subs   map[string]ports.Subscriber
	charts map[string]ports.NatalChart
}

func newStubSubscribers() *stubSubscribers {
	return &stubSubscribers{
		subs:   make(map[string]ports.Subscriber),
		charts: make(map[string]ports.NatalChart),
	}
}

func (r *stubSubscribers) CreateSubscriber(_ context.Context, email, sign, language string) (ports.Subscriber, error) {
	if _, ok := r.subs[email]; ok {
		return ports.Subscriber{}, ports.ErrDuplicateSubscriber
	}
	sub := ports.Subscriber{ID: "sub-1", Email: email, Sign: sign, Language: language}
	r.subs[email] = sub
	return sub, nil
}

func (r *stubSubscribers) ListSubscribers(_ context.Context) ([]ports.Subscriber, error) {
	out := make([]ports.Subscriber, 0, len(r.subs))
	for _, sub := range r.subs {
		out = append(out, sub)
	}
	return out, nil
}

func (r *stubSubscribers) SaveChart(_ context.Context, chart ports.NatalChart) (ports.NatalChart, error) {
	chart.ID = "chart-1"
	r.charts[chart.Email] = chart
	return chart, nil
}

func (r *stubSubscribers) ChartByEmail(_ context.Context, email string) (ports.NatalChart, error) {
	chart, ok := r.charts[email]
	if !ok {
		return ports.NatalChart{}, ports.ErrChartNotFound
	}
	return chart, nil
}

type stubMailer struct {
	sent int
}

func (m *stubMailer) Send(_ context.Context, _, _, _ string) error {
	m.sent++
	return nil
}

func setupRouter(t *testing.T) (http.Handler, *stubGenerator, *stubSubscribers) {
	t.Helper()

	gen := &stubGenerator{fields: map[string]string{
		"description": "Bold day",
		"mood":        "Energetic",
		"color":       "Red",
	}}
	subscribers := newStubSubscribers()

	svc := horoscopeuc.NewService(
		cacheinfra.NewMemory(),
		gen,
		stubSignData{},
		subscribers,
		&stubMailer{},
		config.CacheConfig{
			DailyTTL:        30 * time.Minute,
			PersonalizedTTL: 20 * time.Minute,
		},
	)

	return NewRouter(svc, "https://starcast.test"), gen, subscribers
}

func decodeBody[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", resp.Body.String(), err)
	}
	return out
}

func TestDailyEndpoint(t *testing.T) {
	router, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/daily?sign=Leo&day=today&lang=en", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	reading := decodeBody[domainhoroscope.Reading](t, resp)
	if reading.Sign != "leo" {
		t.Fatalf("sign = %q, want leo", reading.Sign)
	}
	if reading.Mood != "Energetic" || reading.Color != "Red" {
		t.Fatalf("reading = %+v", reading)
	}

	loc, _ := domainhoroscope.LocaleFor("en")
	if reading.FashionTip != loc.ColorTips["red"] {
		t.Fatalf("fashion_tip = %q, want color-table entry for red", reading.FashionTip)
	}
	if reading.LuckyNumber != loc.Defaults.LuckyNumber || reading.LuckyTime != loc.Defaults.LuckyTime {
		t.Fatalf("lucky fields not defaulted: %+v", reading)
	}
}

func TestDailyEndpointValidation(t *testing.T) {
	router, gen, _ := setupRouter(t)

	for _, target := range []string{
		"/api/daily?sign=ophiuchus&day=today&lang=en",
		"/api/daily?sign=leo&day=never&lang=en",
		"/api/daily?sign=leo&day=today&lang=xx",
		"/api/daily",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("GET %s status = %d, want 400", target, resp.Code)
		}
		body := decodeBody[map[string]string](t, resp)
		if body["error"] == "" {
			t.Fatalf("GET %s missing error message", target)
		}
	}

	if gen.calls != 0 {
		t.Fatalf("generator calls = %d, validation failures must not reach the generator", gen.calls)
	}
}

func TestDailyEndpointServesCacheHit(t *testing.T) {
	router, gen, _ := setupRouter(t)

	var bodies []string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/daily?sign=leo&day=today&lang=en", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d", resp.Code)
		}
		bodies = append(bodies, resp.Body.String())
	}

	if bodies[0] != bodies[1] {
		t.Fatalf("responses differ across cache hit:\n%s\n%s", bodies[0], bodies[1])
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
}

func TestPersonalizedEndpoint(t *testing.T) {
	router, _, _ := setupRouter(t)

	body := `{"sun":"leo","rising":"virgo","day":"tomorrow","lang":"tr"}`
	req := httptest.NewRequest(http.MethodPost, "/api/personalized", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	reading := decodeBody[domainhoroscope.Reading](t, resp)
	if reading.Sign != "leo" || reading.Rising != "virgo" || reading.Language != "tr" {
		t.Fatalf("reading = %+v", reading)
	}
}

func TestPersonalizedEndpointRejectsMalformedBody(t *testing.T) {
	router, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/personalized", strings.NewReader("{not json"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestGeneratorFailureStillReturns200(t *testing.T) {
	router, gen, _ := setupRouter(t)
	gen.err = errors.New("upstream 503")

	req := httptest.NewRequest(http.MethodGet, "/api/daily?sign=leo&day=today&lang=en", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, soft fallback must answer 200", resp.Code)
	}

	reading := decodeBody[domainhoroscope.Reading](t, resp)
	if reading.Description == "" || reading.Mood == "" || reading.Color == "" || reading.FashionTip == "" {
		t.Fatalf("fallback payload incomplete: %+v", reading)
	}
}

func TestSubscribeEndpoint(t *testing.T) {
	router, _, _ := setupRouter(t)

	body := `{"email":"leo.fan@example.com","sign":"leo","lang":"en"}`
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	// Same email again conflicts.
	req = httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 for duplicate", resp.Code)
	}
}

func TestSubscribeEndpointRejectsBadInput(t *testing.T) {
	router, _, _ := setupRouter(t)

	for _, body := range []string{
		`{"email":"no-at-sign","sign":"leo","lang":"en"}`,
		`{"email":"a@b.c","sign":"ophiuchus","lang":"en"}`,
		`{"email":"a@b.c","sign":"leo","lang":"xx"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, resp.Code)
		}
	}
}

func TestSaveChartEndpoint(t *testing.T) {
	router, _, subscribers := setupRouter(t)

	body := `{"email":"leo@example.com","sun":"leo","rising":"virgo","birth_date":"1990-08-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/me/save-chart", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	if chart, ok := subscribers.charts["leo@example.com"]; !ok || chart.Rising != "virgo" {
		t.Fatalf("chart not stored: %+v", subscribers.charts)
	}
}

func TestSendWeeklyAlertsEndpoint(t *testing.T) {
	router, _, subscribers := setupRouter(t)
	subscribers.subs["a@example.com"] = ports.Subscriber{Email: "a@example.com", Sign: "leo", Language: "en"}

	req := httptest.NewRequest(http.MethodPost, "/tasks/send-weekly-alerts", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.Code)
	}
	result := decodeBody[map[string]int](t, resp)
	if result["sent"] != 1 {
		t.Fatalf("sent = %d, want 1", result["sent"])
	}
}

func TestHealthz(t *testing.T) {
	router, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
}

func TestRobotsAndSitemap(t *testing.T) {
	router, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "https://starcast.test/sitemap.xml") {
		t.Fatalf("robots.txt = %d %q", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("sitemap status = %d", resp.Code)
	}
	for _, sign := range domainhoroscope.Signs {
		if !strings.Contains(resp.Body.String(), "/daily/"+sign) {
			t.Fatalf("sitemap missing %s", sign)
		}
	}
}

func TestSignPage(t *testing.T) {
	router, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/daily/leo", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("content-type = %q", ct)
	}
	if !strings.Contains(resp.Body.String(), "Bold day") {
		t.Fatalf("page missing reading description: %s", resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/daily/ophiuchus", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("unknown sign page status = %d, want 404", resp.Code)
	}
}
