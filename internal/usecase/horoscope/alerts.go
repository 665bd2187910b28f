package horoscope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"starcast/internal/bootstrap/logging"
	domainhoroscope "starcast/internal/domain/horoscope"
	"starcast/internal/errs"
)

// SendWeeklyAlerts emails every subscriber their current daily reading.
// Readings are cached per (sign, language), so a large subscriber list costs
// at most signs x languages generator calls. Individual delivery failures
// are logged and skipped; the job itself only fails when the subscriber
// list cannot be loaded.
func (s *Service) SendWeeklyAlerts(ctx context.Context) (int, error) {
	if ctx == nil {
		return 0, errors.New("context is required")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "usecase.horoscope.alerts"))

	subs, err := s.subscribers.ListSubscribers(ctx)
	if err != nil {
		return 0, errs.Wrap(err, "list subscribers")
	}

	sent := 0
	for _, sub := range subs {
		payload, err := s.Daily(ctx, DailyInput{
			Sign:     sub.Sign,
			Day:      domainhoroscope.DayToday,
			Language: sub.Language,
		})
		if err != nil {
			logging.Warn(logCtx, "skip subscriber, reading failed",
				slog.String("email", sub.Email),
				slog.Any("err", errs.Loggable(err)))
			continue
		}

		subject, body, err := alertEmail(sub.Sign, payload)
		if err != nil {
			logging.Warn(logCtx, "skip subscriber, render failed",
				slog.String("email", sub.Email),
				slog.Any("err", errs.Loggable(err)))
			continue
		}

		if err := s.mailer.Send(ctx, sub.Email, subject, body); err != nil {
			logging.Warn(logCtx, "skip subscriber, delivery failed",
				slog.String("email", sub.Email),
				slog.Any("err", errs.Loggable(err)))
			continue
		}
		sent++
	}

	logging.Info(logCtx, "weekly alerts finished",
		slog.Int("subscribers", len(subs)),
		slog.Int("sent", sent))
	return sent, nil
}

func alertEmail(sign string, payload json.RawMessage) (subject, body string, err error) {
	var reading domainhoroscope.Reading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return "", "", err
	}

	title := strings.ToUpper(sign[:1]) + sign[1:]
	subject = fmt.Sprintf("Your %s reading for %s", title, reading.CurrentDate)
	body = fmt.Sprintf(
		"<h2>%s · %s</h2><p>%s</p><ul><li>Mood: %s</li><li>Color: %s</li><li>Lucky number: %s</li><li>Lucky time: %s</li></ul><p>%s</p>",
		title, reading.CurrentDate,
		reading.Description,
		reading.Mood, reading.Color, reading.LuckyNumber, reading.LuckyTime,
		reading.FashionTip,
	)
	return subject, body, nil
}
