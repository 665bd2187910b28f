package horoscope

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"starcast/internal/bootstrap/config"
	"starcast/internal/bootstrap/logging"
	domainhoroscope "starcast/internal/domain/horoscope"
	"starcast/internal/errs"
	"starcast/internal/ports"
)

// ErrInvalidEmail is returned by Subscribe and SaveChart for unusable emails.
var ErrInvalidEmail = errors.New("a valid email address is required")

// Service orchestrates the reading pipeline: validate, cache lookup,
// generate, shape, cache store. All I/O sits behind ports.
type Service struct {
	cache       ports.ReadingCache
	generator   ports.Generator
	signData    ports.SignDataSource
	subscribers ports.SubscriberRepository
	mailer      ports.Mailer

	dailyTTL        time.Duration
	personalizedTTL time.Duration
	now             func() time.Time
}

func NewService(
	cache ports.ReadingCache,
	generator ports.Generator,
	signData ports.SignDataSource,
	subscribers ports.SubscriberRepository,
	mailer ports.Mailer,
	cfg config.CacheConfig,
) *Service {
	return &Service{
		cache:           cache,
		generator:       generator,
		signData:        signData,
		subscribers:     subscribers,
		mailer:          mailer,
		dailyTTL:        cfg.DailyTTL,
		personalizedTTL: cfg.PersonalizedTTL,
		now:             time.Now,
	}
}

type DailyInput struct {
	Sign     string
	Day      string
	Language string
}

type PersonalizedInput struct {
	Sun      string
	Rising   string
	Day      string
	Language string
}

// Daily returns the shaped daily reading payload, serving cache hits
// without touching the generator.
func (s *Service) Daily(ctx context.Context, in DailyInput) (json.RawMessage, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	req, err := domainhoroscope.NewDailyRequest(in.Sign, in.Day, in.Language)
	if err != nil {
		return nil, err
	}
	return s.reading(ctx, req, s.dailyTTL)
}

// Personalized returns the shaped sun+rising reading payload.
func (s *Service) Personalized(ctx context.Context, in PersonalizedInput) (json.RawMessage, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	req, err := domainhoroscope.NewPersonalizedRequest(in.Sun, in.Rising, in.Day, in.Language)
	if err != nil {
		return nil, err
	}
	return s.reading(ctx, req, s.personalizedTTL)
}

func (s *Service) reading(ctx context.Context, req domainhoroscope.Request, ttl time.Duration) (json.RawMessage, error) {
	key := req.CacheKey()
	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "usecase.horoscope"),
		slog.String("cache_key", key),
	)

	if payload, found := s.cache.Get(ctx, key); found {
		logging.Info(logCtx, "reading served from cache")
		return payload, nil
	}

	fields, err := s.generate(ctx, req)
	if err != nil {
		logging.Warn(logCtx, "generator failed, trying sign data source", slog.Any("err", errs.Loggable(err)))

		fields, err = s.signDataFields(ctx, req)
		if err != nil {
			// Soft fallback: the caller still gets a complete payload.
			// Failures are never cached so the next request retries.
			logging.Warn(logCtx, "sign data source failed, serving static fallback", slog.Any("err", errs.Loggable(err)))
			return marshalReading(domainhoroscope.Fallback(req, s.now()))
		}
	}

	payload, err := marshalReading(domainhoroscope.Shape(req, fields, s.now()))
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, payload, ttl)
	logging.Info(logCtx, "reading generated and cached", slog.Duration("ttl", ttl))
	return payload, nil
}

func (s *Service) generate(ctx context.Context, req domainhoroscope.Request) (map[string]string, error) {
	user, err := userPrompt(req)
	if err != nil {
		return nil, errs.Wrap(err, "build user prompt")
	}

	fields, err := s.generator.Generate(ctx, systemPrompt(req.Language), user)
	if err != nil {
		return nil, errs.Wrap(err, "generate reading")
	}
	return fields, nil
}

func (s *Service) signDataFields(ctx context.Context, req domainhoroscope.Request) (map[string]string, error) {
	if s.signData == nil {
		return nil, errors.New("no sign data source configured")
	}

	data, err := s.signData.Fetch(ctx, req.Sun, req.Day)
	if err != nil {
		return nil, errs.Wrap(err, "fetch sign data")
	}

	return map[string]string{
		"current_date":  data.CurrentDate,
		"description":   data.Description,
		"compatibility": data.Compatibility,
		"mood":          data.Mood,
		"color":         data.Color,
		"lucky_number":  data.LuckyNumber,
		"lucky_time":    data.LuckyTime,
	}, nil
}

func marshalReading(r domainhoroscope.Reading) (json.RawMessage, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, errs.Wrap(err, "marshal reading")
	}
	return payload, nil
}

type SubscribeInput struct {
	Email    string
	Sign     string
	Language string
}

// Subscribe registers an email for the weekly reading alerts.
func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (ports.Subscriber, error) {
	if ctx == nil {
		return ports.Subscriber{}, errors.New("context is required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return ports.Subscriber{}, ErrInvalidEmail
	}
	sign, err := domainhoroscope.ParseSign(in.Sign)
	if err != nil {
		return ports.Subscriber{}, err
	}
	lang, err := domainhoroscope.ParseLanguage(in.Language)
	if err != nil {
		return ports.Subscriber{}, err
	}

	return s.subscribers.CreateSubscriber(ctx, email, sign, lang)
}

type SaveChartInput struct {
	Email     string
	Sun       string
	Rising    string
	BirthDate string
}

// SaveChart stores or replaces the caller's sun/rising combination.
func (s *Service) SaveChart(ctx context.Context, in SaveChartInput) (ports.NatalChart, error) {
	if ctx == nil {
		return ports.NatalChart{}, errors.New("context is required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return ports.NatalChart{}, ErrInvalidEmail
	}
	sun, err := domainhoroscope.ParseSign(in.Sun)
	if err != nil {
		return ports.NatalChart{}, err
	}

	rising := ""
	if strings.TrimSpace(in.Rising) != "" {
		rising, err = domainhoroscope.ParseSign(in.Rising)
		if err != nil {
			return ports.NatalChart{}, err
		}
	}

	return s.subscribers.SaveChart(ctx, ports.NatalChart{
		Email:     email,
		Sun:       sun,
		Rising:    rising,
		BirthDate: strings.TrimSpace(in.BirthDate),
	})
}
